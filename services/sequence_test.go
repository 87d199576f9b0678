package services

import (
	"testing"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func makeSequencedCourse() *models.Course {
	return &models.Course{
		Model: gorm.Model{ID: 1},
		Lectures: []models.Lecture{
			{Model: gorm.Model{ID: 10}, CourseID: 1, Name: "Intro", Description: "first steps"},
		},
		Quizzes: []models.Quiz{
			{Model: gorm.Model{ID: 20}, CourseID: 1, Title: "Checkpoint", TotalPoints: 10},
		},
		SequenceItems: []models.CourseSequenceItem{
			{CourseID: 1, Position: 0, ContentType: models.ContentTypeVideo, ContentID: 10},
			{CourseID: 1, Position: 1, ContentType: models.ContentTypeQuiz, ContentID: 20},
		},
	}
}

func TestBuildSequenceResolvesDetails(t *testing.T) {
	resolved := BuildSequence(makeSequencedCourse())

	require.Len(t, resolved, 2)
	assert.Equal(t, models.ContentTypeVideo, resolved[0].Type)
	assert.Equal(t, "Intro", resolved[0].Name)
	assert.Equal(t, models.ContentTypeQuiz, resolved[1].Type)
	assert.Equal(t, "Checkpoint", resolved[1].Name)
	assert.Equal(t, 10, resolved[1].TotalPoints)
}

func TestBuildSequencePlaceholderForDanglingRef(t *testing.T) {
	course := makeSequencedCourse()
	course.SequenceItems = append(course.SequenceItems, models.CourseSequenceItem{
		CourseID: 1, Position: 2, ContentType: models.ContentTypeVideo, ContentID: 999,
	})

	resolved := BuildSequence(course)

	require.Len(t, resolved, 3)
	assert.Equal(t, "Content Not Found", resolved[2].Name)
	assert.Equal(t, models.ContentTypeVideo, resolved[2].Type)
	assert.Equal(t, uint(999), resolved[2].ID)
}

func TestValidateSequenceAcceptsOwnContent(t *testing.T) {
	course := makeSequencedCourse()
	items := []SequenceItemInput{
		{Type: "quiz", ContentID: 20},
		{Type: "video", ContentID: 10},
	}

	assert.NoError(t, ValidateSequence(course, items))
}

func TestValidateSequenceRejectsUnknownType(t *testing.T) {
	course := makeSequencedCourse()
	items := []SequenceItemInput{{Type: "article", ContentID: 10}}

	err := ValidateSequence(course, items)
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}

func TestValidateSequenceRejectsForeignContent(t *testing.T) {
	course := makeSequencedCourse()

	err := ValidateSequence(course, []SequenceItemInput{{Type: "video", ContentID: 20}})
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))

	err = ValidateSequence(course, []SequenceItemInput{{Type: "quiz", ContentID: 10}})
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}
