package services

import (
	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
)

// ResolvedItem is one display-ready entry of a course sequence.
type ResolvedItem struct {
	Type        string `json:"type"`
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	TotalPoints int    `json:"total_points,omitempty"` // quizzes only
}

// SequenceItemInput is one reference in a sequence replacement request.
type SequenceItemInput struct {
	Type      string `json:"type" validate:"required,oneof=video quiz"`
	ContentID uint   `json:"content_id" validate:"required"`
}

// SequenceService expands the stored content sequence into resolved
// items and validates replacements against the course's own content.
type SequenceService struct {
	DB      *gorm.DB
	Catalog *CatalogService
}

func NewSequenceService(db *gorm.DB, catalog *CatalogService) *SequenceService {
	return &SequenceService{DB: db, Catalog: catalog}
}

// BuildSequence walks the stored sequence of a loaded course and
// substitutes full details via id lookup maps. A reference whose target
// was deleted resolves to a placeholder instead of failing the request.
func BuildSequence(course *models.Course) []ResolvedItem {
	lectures := make(map[uint]*models.Lecture, len(course.Lectures))
	for i := range course.Lectures {
		lectures[course.Lectures[i].ID] = &course.Lectures[i]
	}
	quizzes := make(map[uint]*models.Quiz, len(course.Quizzes))
	for i := range course.Quizzes {
		quizzes[course.Quizzes[i].ID] = &course.Quizzes[i]
	}

	resolved := make([]ResolvedItem, 0, len(course.SequenceItems))
	for _, item := range course.SequenceItems {
		switch item.ContentType {
		case models.ContentTypeVideo:
			if lecture, ok := lectures[item.ContentID]; ok {
				resolved = append(resolved, ResolvedItem{
					Type:        models.ContentTypeVideo,
					ID:          item.ContentID,
					Name:        lecture.Name,
					Description: lecture.Description,
				})
				continue
			}
		case models.ContentTypeQuiz:
			if quiz, ok := quizzes[item.ContentID]; ok {
				resolved = append(resolved, ResolvedItem{
					Type:        models.ContentTypeQuiz,
					ID:          item.ContentID,
					Name:        quiz.Title,
					Description: quiz.Description,
					TotalPoints: quiz.TotalPoints,
				})
				continue
			}
		}
		resolved = append(resolved, ResolvedItem{
			Type:        item.ContentType,
			ID:          item.ContentID,
			Name:        "Content Not Found",
			Description: "This item might have been removed.",
		})
	}
	return resolved
}

// ValidateSequence checks every item's type and course membership.
func ValidateSequence(course *models.Course, items []SequenceItemInput) error {
	lectureIDs := make(map[uint]bool, len(course.Lectures))
	for _, lecture := range course.Lectures {
		lectureIDs[lecture.ID] = true
	}
	quizIDs := make(map[uint]bool, len(course.Quizzes))
	for _, quiz := range course.Quizzes {
		quizIDs[quiz.ID] = true
	}

	for _, item := range items {
		switch item.Type {
		case models.ContentTypeVideo:
			if !lectureIDs[item.ContentID] {
				return utils.NewValidation("lecture with ID %d not found in this course", item.ContentID)
			}
		case models.ContentTypeQuiz:
			if !quizIDs[item.ContentID] {
				return utils.NewValidation("quiz with ID %d not found in this course", item.ContentID)
			}
		default:
			return utils.NewValidation("invalid type %q, type must be 'video' or 'quiz'", item.Type)
		}
	}
	return nil
}

// Resolve returns the display-ready ordered sequence of the course.
func (ss *SequenceService) Resolve(courseID uint) ([]ResolvedItem, error) {
	course, err := ss.Catalog.GetCourse(courseID)
	if err != nil {
		return nil, err
	}
	return BuildSequence(course), nil
}

// SetSequence validates the items and replaces the stored sequence
// atomically; on any invalid item nothing is written.
func (ss *SequenceService) SetSequence(courseID uint, items []SequenceItemInput) error {
	course, err := ss.Catalog.GetCourse(courseID)
	if err != nil {
		return err
	}
	if err := ValidateSequence(course, items); err != nil {
		return err
	}

	return ss.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("course_id = ?", courseID).
			Delete(&models.CourseSequenceItem{}).Error; err != nil {
			return utils.NewInternal("clearing course sequence: %v", err)
		}
		if len(items) == 0 {
			return nil
		}
		rows := make([]models.CourseSequenceItem, 0, len(items))
		for i, item := range items {
			rows = append(rows, models.CourseSequenceItem{
				CourseID:    courseID,
				Position:    i,
				ContentType: item.Type,
				ContentID:   item.ContentID,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return utils.NewInternal("storing course sequence: %v", err)
		}
		return nil
	})
}
