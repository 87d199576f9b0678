package controllers

import (
	"learnhub-backend/services"
	"learnhub-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type CoursesController struct {
	Catalog  *services.CatalogService
	Sequence *services.SequenceService
	Validate *validator.Validate
}

func NewCoursesController(catalog *services.CatalogService, sequence *services.SequenceService) *CoursesController {
	return &CoursesController{Catalog: catalog, Sequence: sequence, Validate: validator.New()}
}

// GetCourseDetails godoc
// @Summary Get course details
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id} [get]
func (cc *CoursesController) GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	course, err := cc.Catalog.GetCourse(uint(courseID))
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, course)
}

// GetSequence godoc
// @Summary Get the resolved course sequence
// @Description Returns the ordered content list; deleted items resolve to placeholders
// @Tags courses
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/sequence [get]
func (cc *CoursesController) GetSequence(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	sequence, err := cc.Sequence.Resolve(uint(courseID))
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"sequence": sequence})
}

type setSequenceRequest struct {
	Sequence []services.SequenceItemInput `json:"sequence" validate:"required,dive"`
}

// SetSequence godoc
// @Summary Replace the course sequence
// @Tags admin-courses
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/sequence [put]
func (cc *CoursesController) SetSequence(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	var req setSequenceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "sequence must be an array of objects")
	}
	if err := cc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	if err := cc.Sequence.SetSequence(uint(courseID), req.Sequence); err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "course sequence updated successfully"})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses [post]
func (cc *CoursesController) CreateCourse(c *fiber.Ctx) error {
	var req services.CourseInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := cc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	course, err := cc.Catalog.CreateCourse(req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Created(c, course)
}

// AddLecture godoc
// @Summary Add a lecture to a course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/lectures [post]
func (cc *CoursesController) AddLecture(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	var req services.LectureInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := cc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	lecture, err := cc.Catalog.AddLecture(uint(courseID), req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Created(c, lecture)
}

// AddQuiz godoc
// @Summary Add a quiz to a course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/quizzes [post]
func (cc *CoursesController) AddQuiz(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}

	var req services.QuizInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := cc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	quiz, err := cc.Catalog.AddQuiz(uint(courseID), req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Created(c, quiz)
}

// AddQuestion godoc
// @Summary Add a question to a quiz
// @Description The correct answer must be one of the provided options
// @Tags admin-courses
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 422 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/courses/{id}/quizzes/{quizId}/questions [post]
func (cc *CoursesController) AddQuestion(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil {
		return utils.BadRequest(c, "invalid course id")
	}
	quizID, err := c.ParamsInt("quizId")
	if err != nil {
		return utils.BadRequest(c, "invalid quiz id")
	}

	var req services.QuestionInput
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if err := cc.Validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	question, err := cc.Catalog.AddQuestion(uint(courseID), uint(quizID), req)
	if err != nil {
		return utils.FromAppError(c, err)
	}
	return utils.Created(c, question)
}
