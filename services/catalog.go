package services

import (
	"errors"

	"learnhub-backend/models"
	"learnhub-backend/utils"

	"gorm.io/gorm"
)

// CatalogService owns course content: courses, lectures, quizzes and
// questions. The progress engine reads it; admin routes write it.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// GetCourse loads a course with its lectures, quizzes and sequence.
func (cs *CatalogService) GetCourse(courseID uint) (*models.Course, error) {
	var course models.Course
	err := cs.DB.
		Preload("Lectures").
		Preload("Quizzes.Questions").
		Preload("SequenceItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&course, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFound("course %d not found", courseID)
	}
	if err != nil {
		return nil, utils.NewInternal("loading course %d: %v", courseID, err)
	}
	return &course, nil
}

// GetQuiz loads a quiz with its questions, checking course membership.
func (cs *CatalogService) GetQuiz(courseID, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := cs.DB.
		Preload("Questions").
		Where("course_id = ?", courseID).
		First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFound("quiz %d not found in course %d", quizID, courseID)
	}
	if err != nil {
		return nil, utils.NewInternal("loading quiz %d: %v", quizID, err)
	}
	return &quiz, nil
}

// GetLecture checks that a lecture exists and belongs to the course.
func (cs *CatalogService) GetLecture(courseID, lectureID uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := cs.DB.Where("course_id = ?", courseID).First(&lecture, lectureID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewNotFound("lecture %d not found in course %d", lectureID, courseID)
	}
	if err != nil {
		return nil, utils.NewInternal("loading lecture %d: %v", lectureID, err)
	}
	return &lecture, nil
}

type CourseInput struct {
	Title        string `json:"title" validate:"required,min=5,max=50"`
	Description  string `json:"description" validate:"required,min=8,max=500"`
	Category     string `json:"category" validate:"required"`
	CreatedBy    string `json:"created_by"`
	Price        int    `json:"price"`
	Expiry       int    `json:"expiry"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (cs *CatalogService) CreateCourse(in CourseInput) (*models.Course, error) {
	course := models.Course{
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		CreatedBy:    in.CreatedBy,
		Price:        in.Price,
		Expiry:       in.Expiry,
		ThumbnailURL: in.ThumbnailURL,
	}
	if err := cs.DB.Create(&course).Error; err != nil {
		return nil, utils.NewInternal("creating course: %v", err)
	}
	return &course, nil
}

type LectureInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
}

func (cs *CatalogService) AddLecture(courseID uint, in LectureInput) (*models.Lecture, error) {
	if err := cs.DB.First(&models.Course{}, courseID).Error; err != nil {
		return nil, utils.NewNotFound("course %d not found", courseID)
	}
	lecture := models.Lecture{
		CourseID:    courseID,
		Name:        in.Name,
		Description: in.Description,
		VideoURL:    in.VideoURL,
	}
	if err := cs.DB.Create(&lecture).Error; err != nil {
		return nil, utils.NewInternal("adding lecture: %v", err)
	}
	return &lecture, nil
}

type QuizInput struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func (cs *CatalogService) AddQuiz(courseID uint, in QuizInput) (*models.Quiz, error) {
	if err := cs.DB.First(&models.Course{}, courseID).Error; err != nil {
		return nil, utils.NewNotFound("course %d not found", courseID)
	}
	quiz := models.Quiz{
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
	}
	if err := cs.DB.Create(&quiz).Error; err != nil {
		return nil, utils.NewInternal("adding quiz: %v", err)
	}
	return &quiz, nil
}

type QuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Points        *int     `json:"points" validate:"omitempty,gte=0"`
}

// AddQuestion appends a question to a quiz. The correct answer must be
// one of the options; the quiz's total points are kept in sync in the
// same transaction.
func (cs *CatalogService) AddQuestion(courseID, quizID uint, in QuestionInput) (*models.QuizQuestion, error) {
	found := false
	for _, opt := range in.Options {
		if opt == in.CorrectAnswer {
			found = true
			break
		}
	}
	if !found {
		return nil, utils.NewValidation("the correct answer must be one of the provided options")
	}

	points := 1
	if in.Points != nil {
		points = *in.Points
	}

	question := models.QuizQuestion{
		QuizID:        quizID,
		Question:      in.Question,
		CorrectAnswer: in.CorrectAnswer,
		Points:        points,
	}
	if err := question.SetOptions(in.Options); err != nil {
		return nil, utils.NewValidation("invalid options: %v", err)
	}

	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		var quiz models.Quiz
		if err := tx.Where("course_id = ?", courseID).First(&quiz, quizID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewNotFound("quiz %d not found in course %d", quizID, courseID)
			}
			return utils.NewInternal("loading quiz %d: %v", quizID, err)
		}
		if err := tx.Create(&question).Error; err != nil {
			return utils.NewInternal("adding question: %v", err)
		}
		if err := tx.Model(&quiz).
			Update("total_points", gorm.Expr("total_points + ?", points)).Error; err != nil {
			return utils.NewInternal("updating quiz total points: %v", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}
