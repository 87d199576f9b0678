package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type Course struct {
	gorm.Model
	Title         string `gorm:"unique;not null"`
	Description   string
	Category      string
	CreatedBy     string
	Price         int
	Expiry        int // months of access after purchase
	ThumbnailURL  string
	Lectures      []Lecture
	Quizzes       []Quiz
	SequenceItems []CourseSequenceItem
}

type Lecture struct {
	gorm.Model
	CourseID    uint `gorm:"index"`
	Name        string
	Description string
	VideoURL    string
}

type Quiz struct {
	gorm.Model
	CourseID    uint `gorm:"index"`
	Title       string
	Description string
	TotalPoints int // kept in sync with the sum of question points
	Questions   []QuizQuestion
}

type QuizQuestion struct {
	gorm.Model
	QuizID        uint   `gorm:"index"`
	Question      string `gorm:"not null"`
	Options       string // JSON array of option strings
	CorrectAnswer string `gorm:"not null"` // exact text of the correct option
	Points        int    `gorm:"default:1"`
}

// OptionsList decodes the JSON options column.
func (q *QuizQuestion) OptionsList() []string {
	var opts []string
	if q.Options != "" {
		json.Unmarshal([]byte(q.Options), &opts)
	}
	return opts
}

// SetOptions encodes the options into the JSON column.
func (q *QuizQuestion) SetOptions(opts []string) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	q.Options = string(raw)
	return nil
}

const (
	ContentTypeVideo = "video"
	ContentTypeQuiz  = "quiz"
)

// CourseSequenceItem is one entry of the ordered content sequence of a
// course. ContentID references a lecture (video) or quiz of the same
// course; membership is enforced when the sequence is written, not read.
type CourseSequenceItem struct {
	gorm.Model
	CourseID    uint   `gorm:"index"`
	Position    int    `gorm:"not null"`
	ContentType string `gorm:"not null"` // video, quiz
	ContentID   uint   `gorm:"not null"`
}
