package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) List() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("sort_order").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions").
		Preload("Questions.Answers").
		First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Quiz{}, id).Error
}

// CreateQuestion persists an authoring draft: the question plus its answers.
func (r *QuizRepository) CreateQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) CreateAnswer(answer *model.Answer) error {
	return r.DB.Create(answer).Error
}

// CountByCourse counts quizzes reachable through the course's sections.
func (r *QuizRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Joins("JOIN lesson_categories ON lesson_categories.id = quizzes.lesson_category_id").
		Where("lesson_categories.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

// CourseIDForQuiz resolves which course a quiz belongs to, for gating.
func (r *QuizRepository) CourseIDForQuiz(quizID uint) (uint, error) {
	var category model.LessonCategory
	err := r.DB.
		Joins("JOIN quizzes ON quizzes.lesson_category_id = lesson_categories.id").
		Where("quizzes.id = ?", quizID).
		First(&category).Error
	return category.CourseID, err
}
