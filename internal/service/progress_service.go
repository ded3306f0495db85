package service

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const (
	CompletionLessons = "lessons"
	CompletionQuizzes = "quizzes"
)

// CompletionStore keeps the per-(student, course) sets of ticked-off lesson
// and quiz ids. Server-owned so completion follows the account across
// devices.
type CompletionStore interface {
	Toggle(ctx context.Context, studentID, courseID uint, kind string, itemID uint) (bool, error)
	Members(ctx context.Context, studentID, courseID uint, kind string) ([]uint, error)
	Count(ctx context.Context, studentID, courseID uint, kind string) (int64, error)
}

// RedisCompletionStore backs the completion sets with redis sets.
type RedisCompletionStore struct {
	Client *redis.Client
}

func NewRedisCompletionStore(client *redis.Client) *RedisCompletionStore {
	return &RedisCompletionStore{Client: client}
}

func completionKey(studentID, courseID uint, kind string) string {
	return fmt.Sprintf("completions:%d:%d:%s", studentID, courseID, kind)
}

// Toggle flips membership of the item and reports whether it is now
// completed. Toggling twice restores the set.
func (s *RedisCompletionStore) Toggle(ctx context.Context, studentID, courseID uint, kind string, itemID uint) (bool, error) {
	key := completionKey(studentID, courseID, kind)
	member := fmt.Sprintf("%d", itemID)

	present, err := s.Client.SIsMember(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	if present {
		if err := s.Client.SRem(ctx, key, member).Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.Client.SAdd(ctx, key, member).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisCompletionStore) Members(ctx context.Context, studentID, courseID uint, kind string) ([]uint, error) {
	raw, err := s.Client.SMembers(ctx, completionKey(studentID, courseID, kind)).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(raw))
	for _, m := range raw {
		var id uint
		if _, err := fmt.Sscanf(m, "%d", &id); err == nil {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *RedisCompletionStore) Count(ctx context.Context, studentID, courseID uint, kind string) (int64, error) {
	return s.Client.SCard(ctx, completionKey(studentID, courseID, kind)).Result()
}

// Counting views of the lesson and quiz repositories.
type lessonCounter interface {
	CountByCourse(courseID uint) (int64, error)
}

type quizCounter interface {
	CountByCourse(courseID uint) (int64, error)
}

// ProgressService computes a student's completion percentage for a course.
type ProgressService struct {
	Store   CompletionStore
	Lessons lessonCounter
	Quizzes quizCounter
}

func NewProgressService(store CompletionStore, lessons lessonCounter, quizzes quizCounter) *ProgressService {
	return &ProgressService{
		Store:   store,
		Lessons: lessons,
		Quizzes: quizzes,
	}
}

func (s *ProgressService) ToggleLesson(ctx context.Context, studentID, courseID, lessonID uint) (bool, error) {
	return s.Store.Toggle(ctx, studentID, courseID, CompletionLessons, lessonID)
}

func (s *ProgressService) ToggleQuiz(ctx context.Context, studentID, courseID, quizID uint) (bool, error) {
	return s.Store.Toggle(ctx, studentID, courseID, CompletionQuizzes, quizID)
}

// Progress is the summary the course detail screen renders.
type Progress struct {
	CompletedLessons []uint  `json:"completedLessons"`
	CompletedQuizzes []uint  `json:"completedQuizzes"`
	CompletedCount   int64   `json:"completedCount"`
	TotalItems       int64   `json:"totalItems"`
	Percentage       float64 `json:"percentage"`
}

// Compute returns completed / (lessons + quizzes) * 100, and 0 for a course
// with nothing in it.
func (s *ProgressService) Compute(ctx context.Context, studentID, courseID uint) (*Progress, error) {
	lessonCount, err := s.Lessons.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizCount, err := s.Quizzes.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}

	doneLessons, err := s.Store.Members(ctx, studentID, courseID, CompletionLessons)
	if err != nil {
		return nil, err
	}
	doneQuizzes, err := s.Store.Members(ctx, studentID, courseID, CompletionQuizzes)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		CompletedLessons: doneLessons,
		CompletedQuizzes: doneQuizzes,
		CompletedCount:   int64(len(doneLessons) + len(doneQuizzes)),
		TotalItems:       lessonCount + quizCount,
	}
	if progress.TotalItems > 0 {
		progress.Percentage = float64(progress.CompletedCount) / float64(progress.TotalItems) * 100
	}
	return progress, nil
}
