package services

import (
	"testing"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func makeQuestion(id uint, text string, options []string, correct string, points int) models.QuizQuestion {
	q := models.QuizQuestion{
		Model:         gorm.Model{ID: id},
		Question:      text,
		CorrectAnswer: correct,
		Points:        points,
	}
	if err := q.SetOptions(options); err != nil {
		panic(err)
	}
	return q
}

func TestGradeAllCorrect(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "capital of France?", []string{"Paris", "Lyon"}, "Paris", 5),
			makeQuestion(2, "2+2?", []string{"3", "4"}, "4", 5),
		},
	}

	grader := NewQuizGrader(nil)
	result, err := grader.Grade(quiz, []AnswerSubmission{
		{QuestionID: 1, SubmittedAnswer: "Paris"},
		{QuestionID: 2, SubmittedAnswer: "4"},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Score)
	assert.Equal(t, 10, result.TotalPoints)
	assert.Len(t, result.PerQuestion, 2)
	assert.True(t, result.PerQuestion[0].Correct)
	assert.Equal(t, 5, result.PerQuestion[0].PointsAwarded)
}

func TestGradeCaseInsensitive(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "capital of France?", []string{"Paris", "Lyon"}, "Paris", 1),
		},
	}

	grader := NewQuizGrader(nil)
	result, err := grader.Grade(quiz, []AnswerSubmission{
		{QuestionID: 1, SubmittedAnswer: "  pArIs "},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Score)
	assert.True(t, result.PerQuestion[0].Correct)
}

func TestGradeUnknownQuestionIgnored(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "q1", []string{"a", "b"}, "a", 2),
		},
	}

	grader := NewQuizGrader(nil)
	result, err := grader.Grade(quiz, []AnswerSubmission{
		{QuestionID: 1, SubmittedAnswer: "a"},
		{QuestionID: 99, SubmittedAnswer: "a"},
	})
	require.NoError(t, err)

	// The unmatched answer is skipped, not scored.
	assert.Equal(t, 2, result.Score)
	assert.Len(t, result.PerQuestion, 1)
}

func TestGradeTotalCoversUnansweredQuestions(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "q1", []string{"a", "b"}, "a", 3),
			makeQuestion(2, "q2", []string{"a", "b"}, "b", 4),
		},
	}

	grader := NewQuizGrader(nil)
	result, err := grader.Grade(quiz, []AnswerSubmission{
		{QuestionID: 1, SubmittedAnswer: "a"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 7, result.TotalPoints)
}

func TestGradeWrongAnswerScoresZero(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "q1", []string{"a", "b"}, "a", 3),
		},
	}

	grader := NewQuizGrader(nil)
	result, err := grader.Grade(quiz, []AnswerSubmission{
		{QuestionID: 1, SubmittedAnswer: "b"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Score)
	assert.False(t, result.PerQuestion[0].Correct)
	assert.Equal(t, 0, result.PerQuestion[0].PointsAwarded)
}

func TestGradeInvalidDefinitionConflicts(t *testing.T) {
	quiz := &models.Quiz{
		Questions: []models.QuizQuestion{
			makeQuestion(1, "q1", []string{"a", "b"}, "c", 1),
		},
	}

	grader := NewQuizGrader(nil)
	_, err := grader.Grade(quiz, nil)
	require.Error(t, err)
	assert.True(t, utils.IsConflict(err))
}
