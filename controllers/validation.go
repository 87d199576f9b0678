package controllers

import (
	"errors"

	"learnhub-backend/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// validationFailed отдаёт 422 с картой поле -> нарушенное правило
func validationFailed(c *fiber.Ctx, err error) error {
	details := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			details[fe.Field()] = fe.Tag()
		}
	} else {
		details["body"] = err.Error()
	}
	return utils.ValidationError(c, details)
}
