package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// CourseProgress is one row per (user, purchased course), created lazily
// on the first interaction with that course.
type CourseProgress struct {
	gorm.Model
	UserID   uint `gorm:"uniqueIndex:idx_course_progress_key;not null"`
	CourseID uint `gorm:"uniqueIndex:idx_course_progress_key;not null"`
}

// LectureProgress is one row per (user, course, lecture). The composite
// unique index is the linearization key for mark updates.
type LectureProgress struct {
	gorm.Model
	UserID    uint   `gorm:"uniqueIndex:idx_lecture_progress_key;not null"`
	CourseID  uint   `gorm:"uniqueIndex:idx_lecture_progress_key;not null"`
	LectureID uint   `gorm:"uniqueIndex:idx_lecture_progress_key;not null"`
	Marked    bool   `gorm:"default:false"`
	Notes     string // JSON array of note strings, each at most 200 characters
}

// NotesList decodes the JSON notes column, oldest note first.
func (lp *LectureProgress) NotesList() []string {
	var notes []string
	if lp.Notes != "" {
		json.Unmarshal([]byte(lp.Notes), &notes)
	}
	return notes
}

// SetNotes encodes the notes into the JSON column.
func (lp *LectureProgress) SetNotes(notes []string) error {
	raw, err := json.Marshal(notes)
	if err != nil {
		return err
	}
	lp.Notes = string(raw)
	return nil
}

// QuizScore is one attempt in the append-only quiz history. Prior rows
// are never mutated; resubmissions append.
type QuizScore struct {
	gorm.Model
	UserID      uint `gorm:"index:idx_quiz_score_key;not null"`
	CourseID    uint `gorm:"index:idx_quiz_score_key;not null"`
	QuizID      uint `gorm:"index:idx_quiz_score_key;not null"`
	Score       int  `gorm:"not null"`
	TotalPoints int  `gorm:"not null"`
	SubmittedAt time.Time
}
