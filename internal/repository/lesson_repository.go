package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) ListByCourse(courseID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Preload("Files").
		Where("course_id = ?", courseID).
		Order("sort_order").
		Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.Preload("Files").First(&lesson, id).Error
	return &lesson, err
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

func (r *LessonRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

// Lesson sections.

func (r *LessonRepository) ListCategoriesByCourse(courseID uint) ([]model.LessonCategory, error) {
	var categories []model.LessonCategory
	err := r.DB.
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Quizzes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Where("course_id = ?", courseID).
		Order("sort_order").
		Find(&categories).Error
	return categories, err
}

func (r *LessonRepository) FindCategoryByID(id uint) (*model.LessonCategory, error) {
	var category model.LessonCategory
	err := r.DB.First(&category, id).Error
	return &category, err
}

func (r *LessonRepository) CreateCategory(category *model.LessonCategory) error {
	return r.DB.Create(category).Error
}

func (r *LessonRepository) UpdateCategory(category *model.LessonCategory) error {
	return r.DB.Save(category).Error
}

func (r *LessonRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&model.LessonCategory{}, id).Error
}

// Lesson files.

func (r *LessonRepository) FindFileByID(id uint) (*model.LessonFile, error) {
	var file model.LessonFile
	err := r.DB.First(&file, id).Error
	return &file, err
}

func (r *LessonRepository) CreateFile(file *model.LessonFile) error {
	return r.DB.Create(file).Error
}

func (r *LessonRepository) UpdateFile(file *model.LessonFile) error {
	return r.DB.Save(file).Error
}

func (r *LessonRepository) DeleteFile(id uint) error {
	return r.DB.Delete(&model.LessonFile{}, id).Error
}
