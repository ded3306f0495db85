package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
}

func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo}
}

func (s *CourseService) List(filter repository.CourseFilter) ([]model.Course, error) {
	return s.CourseRepo.List(filter)
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) Create(teacherID uint, course *model.Course) error {
	course.TeacherID = teacherID
	if course.Price < 0 {
		return errors.New("price must not be negative")
	}
	return s.CourseRepo.Create(course)
}

// CourseUpdate is a partial update; nil leaves a field unchanged.
type CourseUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	IsAvailable *bool
	CategoryID  *uint
}

// Update applies the patch after checking the caller owns the course.
func (s *CourseService) Update(teacherID, courseID uint, update CourseUpdate) (*model.Course, error) {
	course, err := s.Get(courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != teacherID {
		return nil, util.ErrPermissionDenied
	}

	fields := map[string]interface{}{}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		fields["price"] = *update.Price
	}
	if update.IsAvailable != nil {
		fields["is_available"] = *update.IsAvailable
	}
	if update.CategoryID != nil {
		fields["category_id"] = *update.CategoryID
	}

	if len(fields) > 0 {
		if err := s.CourseRepo.UpdateFields(courseID, fields); err != nil {
			return nil, err
		}
	}
	return s.Get(courseID)
}

func (s *CourseService) Delete(teacherID, courseID uint) error {
	course, err := s.Get(courseID)
	if err != nil {
		return err
	}
	if course.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return s.CourseRepo.Delete(courseID)
}

func (s *CourseService) ListCategories() ([]model.CourseCategory, error) {
	return s.CourseRepo.ListCategories()
}
