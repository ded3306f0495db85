package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter narrows List; zero values mean no filtering.
type CourseFilter struct {
	TeacherID  uint
	CategoryID uint
}

func (r *CourseRepository) List(filter CourseFilter) ([]model.Course, error) {
	var courses []model.Course
	q := r.DB.Preload("Category").Preload("Teacher").Preload("Teacher.TeacherProfile")
	if filter.TeacherID != 0 {
		q = q.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	err := q.Order("created_at DESC").Find(&courses).Error
	return courses, err
}

// FindByID loads the course with everything the detail screen renders:
// teacher, category, sections with their lessons and quizzes, and loose
// lessons with files.
func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Category").
		Preload("Teacher").
		Preload("Teacher.TeacherProfile").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("Lessons.Files").
		Preload("LessonCategories", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		Preload("LessonCategories.Quizzes", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order") }).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

// UpdateFields applies a partial update.
func (r *CourseRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}

func (r *CourseRepository) ListCategories() ([]model.CourseCategory, error) {
	var categories []model.CourseCategory
	err := r.DB.Order("title").Find(&categories).Error
	return categories, err
}
