package services

import (
	"log"
	"strings"

	"learnhub-backend/models"
	"learnhub-backend/utils"
)

// AnswerSubmission is one submitted answer to a quiz question.
type AnswerSubmission struct {
	QuestionID      uint   `json:"question_id" validate:"required"`
	SubmittedAnswer string `json:"submitted_answer"`
}

// QuestionResult reports the outcome for one scored question.
type QuestionResult struct {
	QuestionID    uint `json:"question_id"`
	Correct       bool `json:"correct"`
	PointsAwarded int  `json:"points_awarded"`
}

// GradeResult is the outcome of grading one answer set.
type GradeResult struct {
	Score       int              `json:"score"`
	TotalPoints int              `json:"total_points"`
	PerQuestion []QuestionResult `json:"per_question"`
}

// QuizGrader scores an answer set against a quiz definition. It is pure:
// persistence and XP accounting are the engine's job.
type QuizGrader struct {
	Logger *log.Logger
}

func NewQuizGrader(logger *log.Logger) *QuizGrader {
	return &QuizGrader{Logger: logger}
}

// Grade scores the submitted answers. Answers referencing unknown
// question ids are logged and skipped. A question is correct when the
// submitted answer matches the correct option case-insensitively. The
// total is the sum of points over all questions in the definition, not
// just the answered ones.
func (g *QuizGrader) Grade(quiz *models.Quiz, answers []AnswerSubmission) (*GradeResult, error) {
	questions := make(map[uint]*models.QuizQuestion, len(quiz.Questions))
	totalPoints := 0
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		if !containsOption(q.OptionsList(), q.CorrectAnswer) {
			return nil, utils.NewConflict(
				"correct answer %q for question %d is not one of the provided options",
				q.CorrectAnswer, q.ID,
			)
		}
		questions[q.ID] = q
		totalPoints += q.Points
	}

	result := GradeResult{
		TotalPoints: totalPoints,
		PerQuestion: make([]QuestionResult, 0, len(answers)),
	}

	for _, answer := range answers {
		q, ok := questions[answer.QuestionID]
		if !ok {
			if g.Logger != nil {
				g.Logger.Printf("quiz %d: skipping answer for unknown question %d", quiz.ID, answer.QuestionID)
			}
			continue
		}

		correct := strings.EqualFold(
			strings.TrimSpace(answer.SubmittedAnswer),
			strings.TrimSpace(q.CorrectAnswer),
		)
		awarded := 0
		if correct {
			awarded = q.Points
			result.Score += awarded
		}
		result.PerQuestion = append(result.PerQuestion, QuestionResult{
			QuestionID:    q.ID,
			Correct:       correct,
			PointsAwarded: awarded,
		})
	}

	return &result, nil
}

func containsOption(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}
