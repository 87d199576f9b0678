package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"learnhub-backend/services"
	"learnhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// newTestApp registers the progress handlers without auth middleware;
// these tests exercise request validation, which rejects before any
// service call.
func newTestApp() *fiber.App {
	app := fiber.New()
	pc := NewProgressController(services.NewProgressEngine(nil, nil))
	app.Put("/api/my-courses/:courseId/lectures/:lectureId/mark", pc.UpdateLectureMark)
	app.Post("/api/my-courses/:courseId/lectures/:lectureId/notes", pc.AddNote)
	app.Post("/api/my-courses/:courseId/quizzes/:quizId/submit", pc.SubmitQuiz)
	return app
}

func TestAddNoteRejectsOverlongNote(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(map[string]string{
		"note": strings.Repeat("a", 201),
	})
	req := httptest.NewRequest("POST", "/api/my-courses/1/lectures/1/notes", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateLectureMarkRequiresMarkedFlag(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"gain_xp": 6,
	})
	req := httptest.NewRequest("PUT", "/api/my-courses/1/lectures/1/mark", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpdateLectureMarkRejectsNegativeGain(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"marked":  true,
		"gain_xp": -3,
	})
	req := httptest.NewRequest("PUT", "/api/my-courses/1/lectures/1/mark", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestValidationFailureReportsFieldDetails(t *testing.T) {
	app := newTestApp()

	body, _ := json.Marshal(map[string]interface{}{
		"gain_xp": 6,
	})
	req := httptest.NewRequest("PUT", "/api/my-courses/1/lectures/1/mark", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	var envelope utils.ErrorResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.False(t, envelope.Success)
	details, ok := envelope.Details.(map[string]interface{})
	assert.True(t, ok)
	assert.Contains(t, details, "Marked")
}

func TestSubmitQuizRequiresAnswersArray(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/my-courses/1/quizzes/1/submit", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestInvalidCourseIDParam(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("POST", "/api/my-courses/abc/lectures/1/notes", bytes.NewBufferString(`{"note":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
