package services

import (
	"errors"
	"time"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MaxNoteLength is the longest note accepted on a lecture.
const MaxNoteLength = 200

// ProgressService owns the per-user, per-course progress rows: lecture
// marks, notes and the append-only quiz score history. Mutating methods
// take the caller's transaction so the engine can combine them with XP
// and badge writes atomically.
type ProgressService struct {
	DB *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{DB: db}
}

// GetOrCreate ensures the course progress row for (user, course) exists.
// The insert carries ON CONFLICT DO NOTHING so a concurrent first
// interaction with the same course is not a duplicate-key error.
func (ps *ProgressService) GetOrCreate(tx *gorm.DB, userID, courseID uint) (*models.CourseProgress, error) {
	progress := models.CourseProgress{UserID: userID, CourseID: courseID}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress)
	if res.Error != nil {
		return nil, utils.NewInternal("ensuring course progress: %v", res.Error)
	}
	if res.RowsAffected == 0 {
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).
			First(&progress).Error
		if err != nil {
			return nil, utils.NewInternal("loading course progress: %v", err)
		}
	}
	return &progress, nil
}

// Get returns the course progress row, or NotFound when the user never
// touched the course.
func (ps *ProgressService) Get(userID, courseID uint) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := ps.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFound("no progress for course %d", courseID)
	}
	if err != nil {
		return nil, utils.NewInternal("loading course progress: %v", err)
	}
	return &progress, nil
}

// LectureProgressList returns all lecture progress rows for the course.
func (ps *ProgressService) LectureProgressList(userID, courseID uint) ([]models.LectureProgress, error) {
	var rows []models.LectureProgress
	err := ps.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("lecture_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, utils.NewInternal("loading lecture progress: %v", err)
	}
	return rows, nil
}

// QuizHistory returns the attempt history for the course, oldest first.
func (ps *ProgressService) QuizHistory(userID, courseID uint) ([]models.QuizScore, error) {
	var rows []models.QuizScore
	err := ps.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("submitted_at ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, utils.NewInternal("loading quiz history: %v", err)
	}
	return rows, nil
}

// lockLectureProgress loads the (user, course, lecture) row FOR UPDATE.
// Writes to the same key serialize on this lock; distinct keys proceed
// independently.
func (ps *ProgressService) lockLectureProgress(tx *gorm.DB, userID, courseID, lectureID uint) (*models.LectureProgress, error) {
	var lp models.LectureProgress
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND course_id = ? AND lecture_id = ?", userID, courseID, lectureID).
		First(&lp).Error
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

// SetLectureMark stores the marked flag for the lecture, creating the
// row on first use. It reports the previous flag and whether the stored
// value actually changed; a repeated identical mark changes nothing.
func (ps *ProgressService) SetLectureMark(tx *gorm.DB, userID, courseID, lectureID uint, marked bool) (previous bool, changed bool, err error) {
	lp, err := ps.lockLectureProgress(tx, userID, courseID, lectureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		candidate := &models.LectureProgress{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
			Marked:    marked,
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(candidate)
		if res.Error != nil {
			return false, false, utils.NewInternal("creating lecture progress: %v", res.Error)
		}
		if res.RowsAffected > 0 {
			// A fresh row starts unmarked, so only mark(true) is a change.
			return false, marked, nil
		}
		// A concurrent request created the row first; its transaction has
		// committed by the time DO NOTHING returns, so the lock read below
		// sees it.
		lp, err = ps.lockLectureProgress(tx, userID, courseID, lectureID)
		if err != nil {
			return false, false, utils.NewInternal("locking lecture progress: %v", err)
		}
	} else if err != nil {
		return false, false, utils.NewInternal("locking lecture progress: %v", err)
	}

	previous = lp.Marked
	if previous == marked {
		return previous, false, nil
	}
	if err := tx.Model(lp).Update("marked", marked).Error; err != nil {
		return previous, false, utils.NewInternal("updating lecture mark: %v", err)
	}
	return previous, true, nil
}

// AddNote appends a note to the lecture, creating the row on first use.
func (ps *ProgressService) AddNote(tx *gorm.DB, userID, courseID, lectureID uint, text string) error {
	if len(text) > MaxNoteLength {
		return utils.NewValidation("write note less than %d characters", MaxNoteLength)
	}

	lp, err := ps.lockLectureProgress(tx, userID, courseID, lectureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		candidate := &models.LectureProgress{
			UserID:    userID,
			CourseID:  courseID,
			LectureID: lectureID,
		}
		if err := candidate.SetNotes([]string{text}); err != nil {
			return utils.NewInternal("encoding notes: %v", err)
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(candidate)
		if res.Error != nil {
			return utils.NewInternal("creating lecture progress: %v", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}
		// Lost the insert race; append to the committed row instead.
		lp, err = ps.lockLectureProgress(tx, userID, courseID, lectureID)
		if err != nil {
			return utils.NewInternal("locking lecture progress: %v", err)
		}
	} else if err != nil {
		return utils.NewInternal("locking lecture progress: %v", err)
	}

	notes := append(lp.NotesList(), text)
	if err := lp.SetNotes(notes); err != nil {
		return utils.NewInternal("encoding notes: %v", err)
	}
	if err := tx.Model(lp).Update("notes", lp.Notes).Error; err != nil {
		return utils.NewInternal("saving notes: %v", err)
	}
	return nil
}

// RemoveNote deletes the note at index, shifting later notes down.
func (ps *ProgressService) RemoveNote(tx *gorm.DB, userID, courseID, lectureID uint, index int) error {
	lp, err := ps.lockLectureProgress(tx, userID, courseID, lectureID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewValidation("no note found on this note index")
	}
	if err != nil {
		return utils.NewInternal("locking lecture progress: %v", err)
	}

	notes := lp.NotesList()
	if index < 0 || index >= len(notes) {
		return utils.NewValidation("no note found on this note index")
	}
	notes = append(notes[:index], notes[index+1:]...)
	if err := lp.SetNotes(notes); err != nil {
		return utils.NewInternal("encoding notes: %v", err)
	}
	if err := tx.Model(lp).Update("notes", lp.Notes).Error; err != nil {
		return utils.NewInternal("saving notes: %v", err)
	}
	return nil
}

// AppendQuizScore records one attempt; prior entries are never mutated.
func (ps *ProgressService) AppendQuizScore(tx *gorm.DB, userID, courseID, quizID uint, score, totalPoints int) (*models.QuizScore, error) {
	entry := models.QuizScore{
		UserID:      userID,
		CourseID:    courseID,
		QuizID:      quizID,
		Score:       score,
		TotalPoints: totalPoints,
		SubmittedAt: time.Now().UTC(),
	}
	if err := tx.Create(&entry).Error; err != nil {
		return nil, utils.NewInternal("recording quiz score: %v", err)
	}
	return &entry, nil
}

// LatestQuizScore returns the score of the most recent prior attempt for
// the quiz, with ok=false when there is none.
func (ps *ProgressService) LatestQuizScore(tx *gorm.DB, userID, courseID, quizID uint) (score int, ok bool, err error) {
	var entry models.QuizScore
	res := tx.Where("user_id = ? AND course_id = ? AND quiz_id = ?", userID, courseID, quizID).
		Order("submitted_at DESC, id DESC").
		First(&entry)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if res.Error != nil {
		return 0, false, utils.NewInternal("loading latest quiz score: %v", res.Error)
	}
	return entry.Score, true, nil
}
