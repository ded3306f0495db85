package service

import (
	"testing"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAttemptStore struct {
	nextID uint
	rows   map[uint]*model.QuizAttempt
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{nextID: 1, rows: make(map[uint]*model.QuizAttempt)}
}

func (s *fakeAttemptStore) Create(attempt *model.QuizAttempt) error {
	attempt.ID = s.nextID
	s.nextID++
	cp := *attempt
	s.rows[attempt.ID] = &cp
	return nil
}

func (s *fakeAttemptStore) FindByID(id uint) (*model.QuizAttempt, error) {
	attempt, ok := s.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *attempt
	return &cp, nil
}

func (s *fakeAttemptStore) FindOpen(studentID, quizID uint) (*model.QuizAttempt, error) {
	for _, a := range s.rows {
		if a.StudentID == studentID && a.QuizID == quizID && a.Status == model.AttemptInProgress {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// Finalize mirrors the conditional UPDATE in the real repository: it only
// succeeds while the stored row is still in progress.
func (s *fakeAttemptStore) Finalize(attempt *model.QuizAttempt, status model.AttemptStatus) (bool, error) {
	stored, ok := s.rows[attempt.ID]
	if !ok || stored.Status != model.AttemptInProgress {
		return false, nil
	}
	cp := *attempt
	cp.Status = status
	s.rows[attempt.ID] = &cp
	return true, nil
}

func (s *fakeAttemptStore) ListExpiredInProgress(now time.Time) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range s.rows {
		if a.Status == model.AttemptInProgress && now.After(a.ExpiresAt) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeQuizFinder struct {
	quizzes  map[uint]*model.Quiz
	courseOf map[uint]uint
}

func (f *fakeQuizFinder) FindByID(id uint) (*model.Quiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (f *fakeQuizFinder) CourseIDForQuiz(quizID uint) (uint, error) {
	return f.courseOf[quizID], nil
}

type recordingResultWriter struct {
	results []*model.QuizResult
	err     error
}

func (w *recordingResultWriter) Create(result *model.QuizResult) error {
	if w.err != nil {
		return w.err
	}
	w.results = append(w.results, result)
	return nil
}

type openGate struct{}

func (openGate) CanAccessContent(userID uint, role model.UserRole, courseID uint) error { return nil }

type closedGate struct{ err error }

func (g closedGate) CanAccessContent(userID uint, role model.UserRole, courseID uint) error {
	return g.err
}

// twoQuestionQuiz declares total 50 with questions worth 2 and 3 marks.
func twoQuestionQuiz() *model.Quiz {
	return &model.Quiz{
		BaseModel:  model.BaseModel{ID: 1},
		Title:      "Pointers",
		TotalMarks: 50,
		Duration:   30,
		Questions: []model.Question{
			{
				BaseModel: model.BaseModel{ID: 101},
				Marks:     2,
				Answers: []model.Answer{
					{BaseModel: model.BaseModel{ID: 1001}, IsCorrect: true},
					{BaseModel: model.BaseModel{ID: 1002}},
				},
			},
			{
				BaseModel: model.BaseModel{ID: 102},
				Marks:     3,
				Answers: []model.Answer{
					{BaseModel: model.BaseModel{ID: 1003}},
					{BaseModel: model.BaseModel{ID: 1004}, IsCorrect: true},
				},
			},
		},
	}
}

func newTestAttemptService(gate contentGate) (*AttemptService, *fakeAttemptStore, *recordingResultWriter) {
	attempts := newFakeAttemptStore()
	results := &recordingResultWriter{}
	quizzes := &fakeQuizFinder{
		quizzes:  map[uint]*model.Quiz{1: twoQuestionQuiz()},
		courseOf: map[uint]uint{1: 7},
	}
	svc := NewAttemptService(attempts, quizzes, results, gate)
	svc.Now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc, attempts, results
}

func TestStartOpensTimedAttempt(t *testing.T) {
	svc, _, _ := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptInProgress, attempt.Status)
	assert.Equal(t, svc.Now(), attempt.StartedAt)
	assert.Equal(t, svc.Now().Add(30*time.Minute), attempt.ExpiresAt)
}

func TestStartReturnsOpenAttempt(t *testing.T) {
	svc, _, _ := newTestAttemptService(openGate{})

	first, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	second, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestStartBlockedByGate(t *testing.T) {
	svc, _, _ := newTestAttemptService(closedGate{util.ErrNotEnrolled})

	_, err := svc.Start(5, model.Student, 1)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)
}

func TestStartUnknownQuiz(t *testing.T) {
	svc, _, _ := newTestAttemptService(openGate{})

	_, err := svc.Start(5, model.Student, 99)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestSubmitGradesAndRecordsResult(t *testing.T) {
	svc, attempts, results := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	// Correct on the 2-mark question, wrong on the 3-mark one.
	graded, err := svc.Submit(5, attempt.ID, model.SelectionMap{101: 1001, 102: 1003})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, graded.Status)
	assert.Equal(t, 2, graded.RawScore)
	assert.Equal(t, 50, graded.TotalMarks)
	assert.InDelta(t, 40.0, graded.Percentage, 1e-9)
	assert.InDelta(t, 20.0, graded.ScaledMarks, 1e-9)
	assert.Equal(t, "F", graded.Grade)

	require.Len(t, results.results, 1)
	assert.InDelta(t, 40.0, results.results[0].Score, 1e-9)
	assert.Equal(t, "F", results.results[0].GradeAwarded)

	stored, err := attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, stored.Status)
}

func TestSubmitTwiceFails(t *testing.T) {
	svc, _, _ := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	_, err = svc.Submit(5, attempt.ID, model.SelectionMap{101: 1001})
	require.NoError(t, err)

	_, err = svc.Submit(5, attempt.ID, model.SelectionMap{101: 1002})
	assert.ErrorIs(t, err, util.ErrAttemptAlreadySubmitted)
}

func TestSubmitSomeoneElsesAttempt(t *testing.T) {
	svc, _, _ := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	_, err = svc.Submit(6, attempt.ID, model.SelectionMap{})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestSubmitSurvivesResultWriteFailure(t *testing.T) {
	svc, _, results := newTestAttemptService(openGate{})
	results.err = gorm.ErrInvalidDB

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	graded, err := svc.Submit(5, attempt.ID, model.SelectionMap{101: 1001, 102: 1004})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, graded.Status)
	assert.InDelta(t, 100.0, graded.Percentage, 1e-9)
	assert.Equal(t, "A", graded.Grade)
}

func TestFinalizeExpiredScoresSavedSelections(t *testing.T) {
	svc, attempts, results := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	// Selections saved mid-attempt, then the window closes.
	stored := attempts.rows[attempt.ID]
	stored.Selections = model.SelectionMap{101: 1001}
	svc.Now = func() time.Time { return attempt.ExpiresAt.Add(time.Second) }

	require.NoError(t, svc.FinalizeExpired())

	after, err := attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptExpired, after.Status)
	assert.Equal(t, 2, after.RawScore)
	require.Len(t, results.results, 1)
}

func TestFinalizeExpiredSkipsSubmittedRace(t *testing.T) {
	svc, attempts, results := newTestAttemptService(openGate{})

	attempt, err := svc.Start(5, model.Student, 1)
	require.NoError(t, err)

	expired, err := attempts.ListExpiredInProgress(attempt.ExpiresAt.Add(time.Second))
	require.NoError(t, err)
	require.Empty(t, expired)

	// A manual submit lands before the sweep runs.
	_, err = svc.Submit(5, attempt.ID, model.SelectionMap{101: 1001})
	require.NoError(t, err)

	svc.Now = func() time.Time { return attempt.ExpiresAt.Add(time.Second) }
	require.NoError(t, svc.FinalizeExpired())

	after, err := attempts.FindByID(attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, after.Status)
	assert.Len(t, results.results, 1)
}
