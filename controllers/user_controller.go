package controllers

import (
	"learnhub-backend/middleware"
	"learnhub-backend/services"
	"learnhub-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	Leaderboard *services.LeaderboardService
}

func NewUserController(leaderboard *services.LeaderboardService) *UserController {
	return &UserController{Leaderboard: leaderboard}
}

// GetProfile godoc
// @Summary Get the caller's gamification profile
// @Description Returns XP total and currently held badges
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	profile, err := uc.Leaderboard.Profile(middleware.UserID(c))
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, profile)
}

// GetLeaderboard godoc
// @Summary Get the XP leaderboard
// @Tags user
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /leaderboard [get]
func (uc *UserController) GetLeaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	entries, err := uc.Leaderboard.Top(limit)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"leaders": entries})
}
