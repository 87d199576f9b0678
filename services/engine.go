package services

import (
	"log"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
)

// ProgressEngine orchestrates the content-interaction operations: each
// mutating request updates progress, applies the XP delta and reconciles
// badges inside one database transaction. A failure anywhere rolls the
// whole operation back, so the badge invariant
// (held badges == badges with threshold <= XP) holds after every
// completed request.
type ProgressEngine struct {
	DB       *gorm.DB
	Catalog  *CatalogService
	Progress *ProgressService
	Grader   *QuizGrader
	Ledger   *XPLedger
	Badges   *BadgeService
	Sequence *SequenceService
	Logger   *log.Logger
}

func NewProgressEngine(db *gorm.DB, logger *log.Logger) *ProgressEngine {
	catalog := NewCatalogService(db)
	return &ProgressEngine{
		DB:       db,
		Catalog:  catalog,
		Progress: NewProgressService(db),
		Grader:   NewQuizGrader(logger),
		Ledger:   NewXPLedger(),
		Badges:   NewBadgeService(db),
		Sequence: NewSequenceService(db, catalog),
		Logger:   logger,
	}
}

// MarkResult is returned by SetLectureMark.
type MarkResult struct {
	Marked       bool                 `json:"marked"`
	Changed      bool                 `json:"changed"`
	XP           int                  `json:"xp"`
	BadgeChanges []models.BadgeChange `json:"badge_changes"`
}

// QuizResult is returned by SubmitQuiz.
type QuizResult struct {
	Score        int                  `json:"score"`
	TotalPoints  int                  `json:"total_points"`
	PerQuestion  []QuestionResult     `json:"per_question"`
	XP           int                  `json:"xp"`
	BadgeChanges []models.BadgeChange `json:"badge_changes"`
}

// CourseProgressView is the combined progress picture for one course.
type CourseProgressView struct {
	CourseID   uint                  `json:"course_id"`
	Lectures   []LectureProgressView `json:"lecture_progress"`
	QuizScores []models.QuizScore    `json:"quiz_scores"`
}

type LectureProgressView struct {
	LectureID uint     `json:"lecture_id"`
	Marked    bool     `json:"marked"`
	Notes     []string `json:"notes"`
}

// GetProgress returns the progress entry for a course the user has
// interacted with, or NotFound otherwise.
func (e *ProgressEngine) GetProgress(userID, courseID uint) (*CourseProgressView, error) {
	if _, err := e.Progress.Get(userID, courseID); err != nil {
		return nil, err
	}

	lectureRows, err := e.Progress.LectureProgressList(userID, courseID)
	if err != nil {
		return nil, err
	}
	quizRows, err := e.Progress.QuizHistory(userID, courseID)
	if err != nil {
		return nil, err
	}

	view := CourseProgressView{
		CourseID:   courseID,
		Lectures:   make([]LectureProgressView, 0, len(lectureRows)),
		QuizScores: quizRows,
	}
	for _, row := range lectureRows {
		view.Lectures = append(view.Lectures, LectureProgressView{
			LectureID: row.LectureID,
			Marked:    row.Marked,
			Notes:     row.NotesList(),
		})
	}
	return &view, nil
}

// SetLectureMark stores the marked flag for a lecture and credits
// (or debits, on unmark) gainXP when the stored flag actually changes.
// Repeating an identical mark is a no-op on XP and badges.
func (e *ProgressEngine) SetLectureMark(userID, courseID, lectureID uint, marked bool, gainXP int) (*MarkResult, error) {
	if gainXP < 0 {
		return nil, utils.NewValidation("gainXP must not be negative")
	}
	if _, err := e.Catalog.GetLecture(courseID, lectureID); err != nil {
		return nil, err
	}

	var result MarkResult
	err := e.DB.Transaction(func(tx *gorm.DB) error {
		// Every XP-affecting operation locks the user row before any
		// progress row, so concurrent requests for one user serialize
		// in a single order and cannot deadlock against each other.
		xp, err := e.Ledger.LockUser(tx, userID)
		if err != nil {
			return err
		}
		if _, err := e.Progress.GetOrCreate(tx, userID, courseID); err != nil {
			return err
		}

		_, changed, err := e.Progress.SetLectureMark(tx, userID, courseID, lectureID, marked)
		if err != nil {
			return err
		}
		result.Marked = marked
		result.Changed = changed
		result.BadgeChanges = []models.BadgeChange{}

		if !changed {
			result.XP = xp
			return nil
		}

		delta := gainXP
		if !marked {
			delta = -gainXP
		}
		newXP, err := e.Ledger.ApplyDelta(tx, userID, delta)
		if err != nil {
			return err
		}
		result.XP = newXP

		changes, err := e.Badges.Reconcile(tx, userID, newXP)
		if err != nil {
			return err
		}
		result.BadgeChanges = changes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitQuiz grades the answer set, appends the attempt to the history
// and applies the net XP delta against the previous attempt, so repeated
// submissions credit improvement and debit regression but never
// double-count.
func (e *ProgressEngine) SubmitQuiz(userID, courseID, quizID uint, answers []AnswerSubmission) (*QuizResult, error) {
	quiz, err := e.Catalog.GetQuiz(courseID, quizID)
	if err != nil {
		return nil, err
	}

	grade, err := e.Grader.Grade(quiz, answers)
	if err != nil {
		return nil, err
	}

	result := QuizResult{
		Score:        grade.Score,
		TotalPoints:  grade.TotalPoints,
		PerQuestion:  grade.PerQuestion,
		BadgeChanges: []models.BadgeChange{},
	}

	err = e.DB.Transaction(func(tx *gorm.DB) error {
		// The delta below is only correct against a stable previous
		// score, so resubmissions for one user serialize on the user
		// row before the history is read.
		if _, err := e.Ledger.LockUser(tx, userID); err != nil {
			return err
		}
		if _, err := e.Progress.GetOrCreate(tx, userID, courseID); err != nil {
			return err
		}

		previous, _, err := e.Progress.LatestQuizScore(tx, userID, courseID, quizID)
		if err != nil {
			return err
		}
		if _, err := e.Progress.AppendQuizScore(tx, userID, courseID, quizID, grade.Score, grade.TotalPoints); err != nil {
			return err
		}

		newXP, err := e.Ledger.ApplyDelta(tx, userID, grade.Score-previous)
		if err != nil {
			return err
		}
		result.XP = newXP

		changes, err := e.Badges.Reconcile(tx, userID, newXP)
		if err != nil {
			return err
		}
		result.BadgeChanges = changes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AddNote appends a note to a lecture of a course the user works on.
func (e *ProgressEngine) AddNote(userID, courseID, lectureID uint, text string) error {
	if _, err := e.Catalog.GetLecture(courseID, lectureID); err != nil {
		return err
	}
	return e.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := e.Progress.GetOrCreate(tx, userID, courseID); err != nil {
			return err
		}
		return e.Progress.AddNote(tx, userID, courseID, lectureID, text)
	})
}

// RemoveNote deletes the note at the given index.
func (e *ProgressEngine) RemoveNote(userID, courseID, lectureID uint, index int) error {
	if _, err := e.Catalog.GetLecture(courseID, lectureID); err != nil {
		return err
	}
	return e.DB.Transaction(func(tx *gorm.DB) error {
		return e.Progress.RemoveNote(tx, userID, courseID, lectureID, index)
	})
}

// GetSequence returns the resolved content sequence of a course.
func (e *ProgressEngine) GetSequence(courseID uint) ([]ResolvedItem, error) {
	return e.Sequence.Resolve(courseID)
}

// SetSequence replaces the content sequence of a course.
func (e *ProgressEngine) SetSequence(courseID uint, items []SequenceItemInput) error {
	return e.Sequence.SetSequence(courseID, items)
}
