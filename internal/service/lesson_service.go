package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonService covers sections, lessons and lesson files, including the
// enrollment gate in front of file downloads and video URLs.
type LessonService struct {
	LessonRepo *repository.LessonRepository
	CourseRepo *repository.CourseRepository
	Storage    StorageProvider
	Gate       contentGate
}

func NewLessonService(lessonRepo *repository.LessonRepository, courseRepo *repository.CourseRepository, storage StorageProvider, gate contentGate) *LessonService {
	return &LessonService{
		LessonRepo: lessonRepo,
		CourseRepo: courseRepo,
		Storage:    storage,
		Gate:       gate,
	}
}

func (s *LessonService) ownsCourse(teacherID, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.TeacherID != teacherID {
		return util.ErrPermissionDenied
	}
	return nil
}

// Sections.

func (s *LessonService) ListSections(courseID uint) ([]model.LessonCategory, error) {
	return s.LessonRepo.ListCategoriesByCourse(courseID)
}

func (s *LessonService) CreateSection(teacherID uint, section *model.LessonCategory) error {
	if err := s.ownsCourse(teacherID, section.CourseID); err != nil {
		return err
	}
	return s.LessonRepo.CreateCategory(section)
}

func (s *LessonService) UpdateSection(teacherID, sectionID uint, title, description *string, order *int) (*model.LessonCategory, error) {
	section, err := s.LessonRepo.FindCategoryByID(sectionID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsCourse(teacherID, section.CourseID); err != nil {
		return nil, err
	}

	if title != nil {
		section.Title = *title
	}
	if description != nil {
		section.Description = *description
	}
	if order != nil {
		section.Order = *order
	}
	if err := s.LessonRepo.UpdateCategory(section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *LessonService) DeleteSection(teacherID, sectionID uint) error {
	section, err := s.LessonRepo.FindCategoryByID(sectionID)
	if err != nil {
		return err
	}
	if err := s.ownsCourse(teacherID, section.CourseID); err != nil {
		return err
	}
	return s.LessonRepo.DeleteCategory(sectionID)
}

// Lessons.

func (s *LessonService) ListByCourse(courseID uint) ([]model.Lesson, error) {
	return s.LessonRepo.ListByCourse(courseID)
}

func (s *LessonService) Create(teacherID uint, lesson *model.Lesson) error {
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return err
	}
	return s.LessonRepo.Create(lesson)
}

// LessonUpdate is a partial update of a lesson's authorable fields.
type LessonUpdate struct {
	Title      *string
	Content    *string
	VideoURL   *string
	CategoryID *uint
	Order      *int
}

func (s *LessonService) Update(teacherID, lessonID uint, update LessonUpdate) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return nil, err
	}

	if update.Title != nil {
		lesson.Title = *update.Title
	}
	if update.Content != nil {
		lesson.Content = *update.Content
	}
	if update.VideoURL != nil {
		lesson.VideoURL = *update.VideoURL
	}
	if update.CategoryID != nil {
		lesson.CategoryID = update.CategoryID
	}
	if update.Order != nil {
		lesson.Order = *update.Order
	}
	if err := s.LessonRepo.Update(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) Delete(teacherID, lessonID uint) error {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return err
	}
	return s.LessonRepo.Delete(lessonID)
}

// Files.

// UploadFile stores the content with the storage provider and attaches the
// record to the lesson.
func (s *LessonService) UploadFile(ctx context.Context, teacherID, lessonID uint, title, filename string, reader io.Reader, size int64, contentType string) (*model.LessonFile, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return nil, err
	}

	objectKey := uuid.New().String() + filepath.Ext(filename)
	url, err := s.Storage.Upload(ctx, objectKey, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	file := &model.LessonFile{
		LessonID:  lessonID,
		Title:     title,
		FileURL:   url,
		ObjectKey: objectKey,
	}
	if err := s.LessonRepo.CreateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

// AttachFile records an externally hosted file without uploading anything.
func (s *LessonService) AttachFile(teacherID, lessonID uint, title, fileURL string) (*model.LessonFile, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return nil, err
	}

	file := &model.LessonFile{
		LessonID: lessonID,
		Title:    title,
		FileURL:  fileURL,
	}
	if err := s.LessonRepo.CreateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *LessonService) UpdateFile(teacherID, fileID uint, title *string) (*model.LessonFile, error) {
	file, err := s.LessonRepo.FindFileByID(fileID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.LessonRepo.FindByID(file.LessonID)
	if err != nil {
		return nil, err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return nil, err
	}

	if title != nil {
		file.Title = *title
	}
	if err := s.LessonRepo.UpdateFile(file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *LessonService) DeleteFile(ctx context.Context, teacherID, fileID uint) error {
	file, err := s.LessonRepo.FindFileByID(fileID)
	if err != nil {
		return err
	}
	lesson, err := s.LessonRepo.FindByID(file.LessonID)
	if err != nil {
		return err
	}
	if err := s.ownsCourse(teacherID, lesson.CourseID); err != nil {
		return err
	}

	if file.ObjectKey != "" {
		if err := s.Storage.Delete(ctx, file.ObjectKey); err != nil {
			return err
		}
	}
	return s.LessonRepo.DeleteFile(fileID)
}

// Gated reads.

// FileForDownload returns the file after the enrollment gate passes.
func (s *LessonService) FileForDownload(userID uint, role model.UserRole, fileID uint) (*model.LessonFile, error) {
	file, err := s.LessonRepo.FindFileByID(fileID)
	if err != nil {
		return nil, err
	}
	lesson, err := s.LessonRepo.FindByID(file.LessonID)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.CanAccessContent(userID, role, lesson.CourseID); err != nil {
		return nil, err
	}
	return file, nil
}

// VideoURL returns the lesson's video URL after the enrollment gate passes.
func (s *LessonService) VideoURL(userID uint, role model.UserRole, lessonID uint) (string, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		return "", err
	}
	if err := s.Gate.CanAccessContent(userID, role, lesson.CourseID); err != nil {
		return "", err
	}
	return lesson.VideoURL, nil
}
