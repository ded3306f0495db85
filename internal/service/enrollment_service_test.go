package service

import (
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeEnrollmentStore struct {
	nextID uint
	rows   map[uint]*model.Enrollment
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{nextID: 1, rows: make(map[uint]*model.Enrollment)}
}

func (s *fakeEnrollmentStore) Create(enrollment *model.Enrollment) error {
	enrollment.ID = s.nextID
	s.nextID++
	cp := *enrollment
	s.rows[enrollment.ID] = &cp
	return nil
}

func (s *fakeEnrollmentStore) FindByStudentAndCourse(studentID, courseID uint) (*model.Enrollment, error) {
	for _, e := range s.rows {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeEnrollmentStore) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range s.rows {
		if e.StudentID == studentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) Delete(id uint) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeEnrollmentStore) ListByTeacher(teacherID uint) ([]model.Enrollment, error) {
	var out []model.Enrollment
	for _, e := range s.rows {
		if e.Course != nil && e.Course.TeacherID == teacherID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *fakeEnrollmentStore) CountByCourse(courseID uint) (int64, error) {
	var n int64
	for _, e := range s.rows {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

type fakeCourseFinder struct {
	courses map[uint]*model.Course
}

func (f *fakeCourseFinder) FindByID(id uint) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

// fakePaymentFinder records whether the payment ledger was consulted at all.
type fakePaymentFinder struct {
	consulted bool
	completed map[[2]uint]*model.Payment
}

func newFakePaymentFinder() *fakePaymentFinder {
	return &fakePaymentFinder{completed: make(map[[2]uint]*model.Payment)}
}

func (f *fakePaymentFinder) FindCompleted(studentID, courseID uint) (*model.Payment, error) {
	f.consulted = true
	payment, ok := f.completed[[2]uint{studentID, courseID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return payment, nil
}

func newTestEnrollmentService() (*EnrollmentService, *fakeEnrollmentStore, *fakeCourseFinder, *fakePaymentFinder) {
	enrollments := newFakeEnrollmentStore()
	courses := &fakeCourseFinder{courses: map[uint]*model.Course{
		1: {BaseModel: model.BaseModel{ID: 1}, Title: "Go Basics", TeacherID: 9, Price: 0, IsAvailable: true},
		2: {BaseModel: model.BaseModel{ID: 2}, Title: "Advanced Go", TeacherID: 9, Price: 49.99, IsAvailable: true},
		3: {BaseModel: model.BaseModel{ID: 3}, Title: "Retired", TeacherID: 9, Price: 0, IsAvailable: false},
	}}
	payments := newFakePaymentFinder()
	return NewEnrollmentService(enrollments, courses, payments), enrollments, courses, payments
}

func TestEnrollFreeCourseSkipsPayments(t *testing.T) {
	svc, _, _, payments := newTestEnrollmentService()

	enrollment, err := svc.Enroll(5, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(5), enrollment.StudentID)
	assert.Equal(t, "active", enrollment.Status)
	assert.False(t, payments.consulted, "free enrollment must not touch the payment ledger")
	assert.True(t, svc.IsEnrolled(5, 1))
}

func TestEnrollPaidCourseRequiresCompletedPayment(t *testing.T) {
	svc, _, _, payments := newTestEnrollmentService()

	_, err := svc.Enroll(5, 2)
	assert.ErrorIs(t, err, util.ErrPaymentRequired)
	assert.False(t, svc.IsEnrolled(5, 2))

	payments.completed[[2]uint{5, 2}] = &model.Payment{Status: model.PaymentCompleted}
	enrollment, err := svc.Enroll(5, 2)
	require.NoError(t, err)
	assert.Equal(t, uint(2), enrollment.CourseID)
}

func TestEnrollDuplicate(t *testing.T) {
	svc, _, _, _ := newTestEnrollmentService()

	_, err := svc.Enroll(5, 1)
	require.NoError(t, err)

	_, err = svc.Enroll(5, 1)
	assert.ErrorIs(t, err, util.ErrAlreadyEnrolled)
}

func TestEnrollUnavailableCourse(t *testing.T) {
	svc, _, _, _ := newTestEnrollmentService()

	_, err := svc.Enroll(5, 3)
	assert.ErrorIs(t, err, util.ErrCourseUnavailable)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _, _, _ := newTestEnrollmentService()

	_, err := svc.Enroll(5, 99)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestUnenroll(t *testing.T) {
	svc, _, _, _ := newTestEnrollmentService()

	_, err := svc.Enroll(5, 1)
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(5, 1))
	assert.False(t, svc.IsEnrolled(5, 1))

	err = svc.Unenroll(5, 1)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestCanAccessContent(t *testing.T) {
	svc, _, _, _ := newTestEnrollmentService()

	// The owning teacher passes without enrollment.
	assert.NoError(t, svc.CanAccessContent(9, model.Teacher, 2))

	// A different teacher does not.
	err := svc.CanAccessContent(8, model.Teacher, 2)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)

	// A student needs an enrollment.
	err = svc.CanAccessContent(5, model.Student, 1)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	_, err = svc.Enroll(5, 1)
	require.NoError(t, err)
	assert.NoError(t, svc.CanAccessContent(5, model.Student, 1))
}

func TestTeacherStats(t *testing.T) {
	svc, enrollments, courses, _ := newTestEnrollmentService()

	for _, studentID := range []uint{5, 6, 7} {
		require.NoError(t, enrollments.Create(&model.Enrollment{
			StudentID: studentID,
			CourseID:  1,
			Course:    courses.courses[1],
		}))
	}
	require.NoError(t, enrollments.Create(&model.Enrollment{
		StudentID: 5,
		CourseID:  2,
		Course:    courses.courses[2],
	}))

	stats, err := svc.TeacherStats(9)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	byCourse := make(map[uint]CourseStat)
	for _, s := range stats {
		byCourse[s.CourseID] = s
	}
	assert.Equal(t, int64(3), byCourse[1].Enrolled)
	assert.Equal(t, "Go Basics", byCourse[1].CourseTitle)
	assert.Equal(t, int64(1), byCourse[2].Enrolled)
}
