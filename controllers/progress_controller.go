package controllers

import (
	"learnhub-backend/middleware"
	"learnhub-backend/services"
	"learnhub-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Engine   *services.ProgressEngine
	Validate *validator.Validate
}

func NewProgressController(engine *services.ProgressEngine) *ProgressController {
	return &ProgressController{Engine: engine, Validate: validator.New()}
}

// GetCourseProgress godoc
// @Summary Get course progress
// @Description Returns lecture marks, notes and quiz history for one course
// @Tags my-courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /my-courses/{courseId}/progress [get]
func (pc *ProgressController) GetCourseProgress(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	view, err := pc.Engine.GetProgress(middleware.UserID(c), uint(courseID))
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, view)
}

type markRequest struct {
	Marked *bool `json:"marked" validate:"required"`
	GainXP int   `json:"gain_xp" validate:"gte=0"`
}

// UpdateLectureMark godoc
// @Summary Mark or unmark a lecture
// @Description Toggles lecture completion, applies the XP delta and returns badge changes
// @Tags my-courses
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /my-courses/{courseId}/lectures/{lectureId}/mark [put]
func (pc *ProgressController) UpdateLectureMark(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}
	lectureID, err := c.ParamsInt("lectureId")
	if err != nil {
		return utils.BadRequest(c, "invalid lecture id")
	}

	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := pc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := pc.Engine.SetLectureMark(
		middleware.UserID(c), uint(courseID), uint(lectureID), *req.Marked, req.GainXP,
	)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}

type noteRequest struct {
	Note string `json:"note" validate:"required,max=200"`
}

// AddNote godoc
// @Summary Add a note to a lecture
// @Tags my-courses
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /my-courses/{courseId}/lectures/{lectureId}/notes [post]
func (pc *ProgressController) AddNote(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}
	lectureID, err := c.ParamsInt("lectureId")
	if err != nil {
		return utils.BadRequest(c, "invalid lecture id")
	}

	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := pc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	if err := pc.Engine.AddNote(middleware.UserID(c), uint(courseID), uint(lectureID), req.Note); err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "note added successfully"})
}

// DeleteNote godoc
// @Summary Remove a note from a lecture
// @Tags my-courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /my-courses/{courseId}/lectures/{lectureId}/notes/{index} [delete]
func (pc *ProgressController) DeleteNote(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}
	lectureID, err := c.ParamsInt("lectureId")
	if err != nil {
		return utils.BadRequest(c, "invalid lecture id")
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return utils.BadRequest(c, "invalid note index")
	}

	if err := pc.Engine.RemoveNote(middleware.UserID(c), uint(courseID), uint(lectureID), index); err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "notes removed from lecture progress"})
}

type submitQuizRequest struct {
	Answers []services.AnswerSubmission `json:"answers" validate:"required,dive"`
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the answers, records the attempt and applies the net XP delta
// @Tags my-courses
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /my-courses/{courseId}/quizzes/{quizId}/submit [post]
func (pc *ProgressController) SubmitQuiz(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("courseId")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}
	quizID, err := c.ParamsInt("quizId")
	if err != nil {
		return utils.BadRequest(c, "invalid quiz id")
	}

	var req submitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := pc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := pc.Engine.SubmitQuiz(middleware.UserID(c), uint(courseID), uint(quizID), req.Answers)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, result)
}
