package controllers

import (
	"learnhub-backend/services"
	"learnhub-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type BadgesController struct {
	Badges   *services.BadgeService
	Validate *validator.Validate
}

func NewBadgesController(badges *services.BadgeService) *BadgesController {
	return &BadgesController{Badges: badges, Validate: validator.New()}
}

// ListBadges godoc
// @Summary List the badge catalog
// @Tags badges
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Security ApiKeyAuth
// @Router /badges [get]
func (bc *BadgesController) ListBadges(c *fiber.Ctx) error {
	badges, err := bc.Badges.Catalog()
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"badges": badges})
}

// CreateBadge godoc
// @Summary Create a badge
// @Tags admin-badges
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/badges [post]
func (bc *BadgesController) CreateBadge(c *fiber.Ctx) error {
	var req services.BadgeInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := bc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	badge, err := bc.Badges.CreateBadge(req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Created(c, badge)
}

// UpdateBadge godoc
// @Summary Update a badge
// @Tags admin-badges
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/badges/{id} [put]
func (bc *BadgesController) UpdateBadge(c *fiber.Ctx) error {
	badgeID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid badge id")
	}

	var req services.BadgeInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := bc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	badge, err := bc.Badges.UpdateBadge(uint(badgeID), req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, badge)
}

// DeleteBadge godoc
// @Summary Delete a badge
// @Tags admin-badges
// @Produce json
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/badges/{id} [delete]
func (bc *BadgesController) DeleteBadge(c *fiber.Ctx) error {
	badgeID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid badge id")
	}

	if err := bc.Badges.DeleteBadge(uint(badgeID)); err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.NoContent(c)
}
