package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Narrow views of the repositories, so the enrollment rules can be tested
// without a database.
type enrollmentStore interface {
	Create(enrollment *model.Enrollment) error
	FindByStudentAndCourse(studentID, courseID uint) (*model.Enrollment, error)
	ListByStudent(studentID uint) ([]model.Enrollment, error)
	Delete(id uint) error
	ListByTeacher(teacherID uint) ([]model.Enrollment, error)
	CountByCourse(courseID uint) (int64, error)
}

type courseFinder interface {
	FindByID(id uint) (*model.Course, error)
}

type completedPaymentFinder interface {
	FindCompleted(studentID, courseID uint) (*model.Payment, error)
}

// EnrollmentService decides who may join a course and who may touch its
// gated content.
type EnrollmentService struct {
	Enrollments enrollmentStore
	Courses     courseFinder
	Payments    completedPaymentFinder
}

func NewEnrollmentService(enrollments enrollmentStore, courses courseFinder, payments completedPaymentFinder) *EnrollmentService {
	return &EnrollmentService{
		Enrollments: enrollments,
		Courses:     courses,
		Payments:    payments,
	}
}

// Enroll joins the student to the course. Free courses enroll directly; a
// priced course requires a completed payment on record first. The payment
// is never created here, so a payment that succeeded followed by an
// enrollment failure leaves the student unenrolled and the error visible.
func (s *EnrollmentService) Enroll(studentID, courseID uint) (*model.Enrollment, error) {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !course.IsAvailable {
		return nil, util.ErrCourseUnavailable
	}

	if _, err := s.Enrollments.FindByStudentAndCourse(studentID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if course.Price > 0 {
		if _, err := s.Payments.FindCompleted(studentID, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				monitoring.EnrollmentCounter.WithLabelValues("payment_required").Inc()
				return nil, util.ErrPaymentRequired
			}
			return nil, err
		}
	}

	enrollment := &model.Enrollment{
		StudentID:    studentID,
		CourseID:     courseID,
		Status:       "active",
		EnrolledDate: time.Now(),
	}
	if err := s.Enrollments.Create(enrollment); err != nil {
		monitoring.EnrollmentCounter.WithLabelValues("error").Inc()
		return nil, err
	}

	monitoring.EnrollmentCounter.WithLabelValues("enrolled").Inc()
	logger.Log.Info("student enrolled",
		zap.Uint("studentId", studentID),
		zap.Uint("courseId", courseID),
	)
	return enrollment, nil
}

// Unenroll hard-deletes the join record. Completion flags are left alone so
// a re-enrolling student keeps their progress.
func (s *EnrollmentService) Unenroll(studentID, courseID uint) error {
	enrollment, err := s.Enrollments.FindByStudentAndCourse(studentID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotEnrolled
		}
		return err
	}

	if err := s.Enrollments.Delete(enrollment.ID); err != nil {
		return err
	}
	monitoring.EnrollmentCounter.WithLabelValues("unenrolled").Inc()
	return nil
}

func (s *EnrollmentService) ListMine(studentID uint) ([]model.Enrollment, error) {
	return s.Enrollments.ListByStudent(studentID)
}

func (s *EnrollmentService) IsEnrolled(studentID, courseID uint) bool {
	_, err := s.Enrollments.FindByStudentAndCourse(studentID, courseID)
	return err == nil
}

// CanAccessContent is the gate in front of lesson files, videos and
// completion toggles: the owning teacher passes unconditionally, a student
// passes with an active enrollment.
func (s *EnrollmentService) CanAccessContent(userID uint, role model.UserRole, courseID uint) error {
	course, err := s.Courses.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}

	if role == model.Teacher {
		if course.TeacherID == userID {
			return nil
		}
		return util.ErrPermissionDenied
	}

	if !s.IsEnrolled(userID, courseID) {
		return util.ErrNotEnrolled
	}
	return nil
}

// CourseStat is one row of the teacher dashboard.
type CourseStat struct {
	CourseID    uint   `json:"courseId"`
	CourseTitle string `json:"courseTitle"`
	Enrolled    int64  `json:"enrolled"`
}

// TeacherStats counts enrollments per owned course.
func (s *EnrollmentService) TeacherStats(teacherID uint) ([]CourseStat, error) {
	enrollments, err := s.Enrollments.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	byCourse := make(map[uint]*CourseStat)
	order := make([]uint, 0)
	for _, e := range enrollments {
		stat, ok := byCourse[e.CourseID]
		if !ok {
			stat = &CourseStat{CourseID: e.CourseID}
			if e.Course != nil {
				stat.CourseTitle = e.Course.Title
			}
			byCourse[e.CourseID] = stat
			order = append(order, e.CourseID)
		}
		stat.Enrolled++
	}

	stats := make([]CourseStat, 0, len(order))
	for _, id := range order {
		stats = append(stats, *byCourse[id])
	}
	return stats, nil
}
