package service

import (
	"errors"
	"time"

	"lms_backend/internal/grading"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Views of the repositories the attempt flow needs.
type attemptStore interface {
	Create(attempt *model.QuizAttempt) error
	FindByID(id uint) (*model.QuizAttempt, error)
	FindOpen(studentID, quizID uint) (*model.QuizAttempt, error)
	Finalize(attempt *model.QuizAttempt, status model.AttemptStatus) (bool, error)
	ListExpiredInProgress(now time.Time) ([]model.QuizAttempt, error)
}

type quizFinder interface {
	FindByID(id uint) (*model.Quiz, error)
	CourseIDForQuiz(quizID uint) (uint, error)
}

type resultWriter interface {
	Create(result *model.QuizResult) error
}

type contentGate interface {
	CanAccessContent(userID uint, role model.UserRole, courseID uint) error
}

// AttemptService runs timed quiz attempts. The window is enforced server
// side: a submission after the deadline goes through the same scoring path,
// and the conditional finalize in the store guarantees it happens exactly
// once however it is triggered.
type AttemptService struct {
	Attempts attemptStore
	Quizzes  quizFinder
	Results  resultWriter
	Gate     contentGate

	// Now is replaceable in tests.
	Now func() time.Time
}

func NewAttemptService(attempts attemptStore, quizzes quizFinder, results resultWriter, gate contentGate) *AttemptService {
	return &AttemptService{
		Attempts: attempts,
		Quizzes:  quizzes,
		Results:  results,
		Gate:     gate,
		Now:      time.Now,
	}
}

// Start opens an attempt for the quiz, or returns the one already open.
func (s *AttemptService) Start(studentID uint, role model.UserRole, quizID uint) (*model.QuizAttempt, error) {
	quiz, err := s.Quizzes.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	courseID, err := s.Quizzes.CourseIDForQuiz(quizID)
	if err != nil {
		return nil, err
	}
	if err := s.Gate.CanAccessContent(studentID, role, courseID); err != nil {
		return nil, err
	}

	if open, err := s.Attempts.FindOpen(studentID, quizID); err == nil {
		return open, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := s.Now()
	attempt := &model.QuizAttempt{
		StudentID:  studentID,
		QuizID:     quizID,
		Status:     model.AttemptInProgress,
		StartedAt:  now,
		ExpiresAt:  now.Add(time.Duration(quiz.Duration) * time.Minute),
		Selections: model.SelectionMap{},
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// Submit grades the attempt with the student's selections. A second submit
// of the same attempt fails with ErrAttemptAlreadySubmitted.
func (s *AttemptService) Submit(studentID, attemptID uint, selections model.SelectionMap) (*model.QuizAttempt, error) {
	attempt, err := s.Attempts.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrPermissionDenied
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	attempt.Selections = selections
	if err := s.finalize(attempt, model.AttemptSubmitted); err != nil {
		return nil, err
	}

	monitoring.QuizSubmissionCounter.WithLabelValues("manual").Inc()
	return attempt, nil
}

// finalize grades and persists over the shared path. Writing the result
// record is fire-and-forget: the student still gets their score when it
// fails.
func (s *AttemptService) finalize(attempt *model.QuizAttempt, status model.AttemptStatus) error {
	quiz, err := s.Quizzes.FindByID(attempt.QuizID)
	if err != nil {
		return err
	}

	res := grading.Grade(toGradingQuestions(quiz.Questions), attempt.Selections, quiz.TotalMarks)
	attempt.RawScore = res.RawScore
	attempt.TotalMarks = res.TotalMarks
	attempt.Percentage = res.Percentage
	attempt.ScaledMarks = res.ScaledMarks
	attempt.Grade = res.Grade

	ok, err := s.Attempts.Finalize(attempt, status)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrAttemptAlreadySubmitted
	}
	attempt.Status = status

	result := &model.QuizResult{
		StudentID:    attempt.StudentID,
		QuizID:       attempt.QuizID,
		Score:        res.Percentage,
		GradeAwarded: res.Grade,
	}
	if err := s.Results.Create(result); err != nil {
		logger.Log.Error("failed to persist quiz result",
			zap.Uint("attemptId", attempt.ID),
			zap.Error(err),
		)
	}
	return nil
}

// FinalizeExpired sweeps attempts whose window has closed and scores them
// with whatever selections were saved. Triggered by the background ticker.
func (s *AttemptService) FinalizeExpired() error {
	expired, err := s.Attempts.ListExpiredInProgress(s.Now())
	if err != nil {
		return err
	}

	for i := range expired {
		attempt := &expired[i]
		if err := s.finalize(attempt, model.AttemptExpired); err != nil {
			if errors.Is(err, util.ErrAttemptAlreadySubmitted) {
				continue // a manual submit won the race
			}
			logger.Log.Error("failed to finalize expired attempt",
				zap.Uint("attemptId", attempt.ID),
				zap.Error(err),
			)
			continue
		}
		monitoring.QuizSubmissionCounter.WithLabelValues("expired").Inc()
	}
	return nil
}

func toGradingQuestions(questions []model.Question) []grading.Question {
	out := make([]grading.Question, 0, len(questions))
	for _, q := range questions {
		gq := grading.Question{ID: q.ID, Marks: q.Marks}
		for _, a := range q.Answers {
			gq.Answers = append(gq.Answers, grading.Answer{ID: a.ID, Correct: a.IsCorrect})
		}
		out = append(out, gq)
	}
	return out
}
