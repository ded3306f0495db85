package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCompletionStore is an in-memory CompletionStore for tests.
type memCompletionStore struct {
	sets map[string]map[uint]struct{}
}

func newMemCompletionStore() *memCompletionStore {
	return &memCompletionStore{sets: make(map[string]map[uint]struct{})}
}

func (s *memCompletionStore) set(studentID, courseID uint, kind string) map[uint]struct{} {
	key := completionKey(studentID, courseID, kind)
	if s.sets[key] == nil {
		s.sets[key] = make(map[uint]struct{})
	}
	return s.sets[key]
}

func (s *memCompletionStore) Toggle(ctx context.Context, studentID, courseID uint, kind string, itemID uint) (bool, error) {
	set := s.set(studentID, courseID, kind)
	if _, ok := set[itemID]; ok {
		delete(set, itemID)
		return false, nil
	}
	set[itemID] = struct{}{}
	return true, nil
}

func (s *memCompletionStore) Members(ctx context.Context, studentID, courseID uint, kind string) ([]uint, error) {
	set := s.set(studentID, courseID, kind)
	out := make([]uint, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out, nil
}

func (s *memCompletionStore) Count(ctx context.Context, studentID, courseID uint, kind string) (int64, error) {
	return int64(len(s.set(studentID, courseID, kind))), nil
}

type fixedCounter struct{ n int64 }

func (c fixedCounter) CountByCourse(courseID uint) (int64, error) { return c.n, nil }

func TestProgressPercentage(t *testing.T) {
	store := newMemCompletionStore()
	svc := NewProgressService(store, fixedCounter{4}, fixedCounter{1})
	ctx := context.Background()

	done, err := svc.ToggleLesson(ctx, 5, 1, 10)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = svc.ToggleQuiz(ctx, 5, 1, 20)
	require.NoError(t, err)
	assert.True(t, done)

	progress, err := svc.Compute(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), progress.CompletedCount)
	assert.Equal(t, int64(5), progress.TotalItems)
	assert.InDelta(t, 40.0, progress.Percentage, 1e-9)
	assert.ElementsMatch(t, []uint{10}, progress.CompletedLessons)
	assert.ElementsMatch(t, []uint{20}, progress.CompletedQuizzes)
}

func TestProgressEmptyCourse(t *testing.T) {
	svc := NewProgressService(newMemCompletionStore(), fixedCounter{0}, fixedCounter{0})

	progress, err := svc.Compute(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), progress.TotalItems)
	assert.Zero(t, progress.Percentage)
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	store := newMemCompletionStore()
	svc := NewProgressService(store, fixedCounter{4}, fixedCounter{1})
	ctx := context.Background()

	done, err := svc.ToggleLesson(ctx, 5, 1, 10)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.ToggleLesson(ctx, 5, 1, 10)
	require.NoError(t, err)
	assert.False(t, done)

	progress, err := svc.Compute(ctx, 5, 1)
	require.NoError(t, err)
	assert.Empty(t, progress.CompletedLessons)
	assert.Zero(t, progress.Percentage)
}

func TestProgressIsolatedPerStudentAndCourse(t *testing.T) {
	store := newMemCompletionStore()
	svc := NewProgressService(store, fixedCounter{2}, fixedCounter{0})
	ctx := context.Background()

	_, err := svc.ToggleLesson(ctx, 5, 1, 10)
	require.NoError(t, err)

	other, err := svc.Compute(ctx, 6, 1)
	require.NoError(t, err)
	assert.Zero(t, other.Percentage)

	otherCourse, err := svc.Compute(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, otherCourse.CompletedLessons)
}
