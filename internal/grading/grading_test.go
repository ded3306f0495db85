package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func twoQuestionQuiz() []Question {
	return []Question{
		{ID: 1, Marks: 3, Answers: []Answer{{ID: 10, Correct: true}, {ID: 11}}},
		{ID: 2, Marks: 7, Answers: []Answer{{ID: 20}, {ID: 21, Correct: true}}},
	}
}

func TestGradeScoringExample(t *testing.T) {
	// Question 1 (3 marks) answered correctly, question 2 (7 marks) wrong,
	// quiz declared total 50.
	res := Grade(twoQuestionQuiz(), map[uint]uint{1: 10, 2: 20}, 50)

	assert.Equal(t, 3, res.RawScore)
	assert.Equal(t, 10, res.TotalMarks)
	assert.InDelta(t, 30.0, res.Percentage, 1e-9)
	assert.InDelta(t, 15.0, res.ScaledMarks, 1e-9)
	assert.Equal(t, "F", res.Grade)
}

func TestGradeDeterministic(t *testing.T) {
	questions := twoQuestionQuiz()
	selections := map[uint]uint{1: 10, 2: 21}

	first := Grade(questions, selections, 50)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Grade(questions, selections, 50))
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	res := Grade(nil, nil, 50)

	assert.Equal(t, 0, res.RawScore)
	assert.Equal(t, 0, res.TotalMarks)
	assert.Equal(t, 0.0, res.Percentage)
	assert.Equal(t, 0.0, res.ScaledMarks)
	assert.Equal(t, "F", res.Grade)
}

func TestGradeUnansweredContributesZero(t *testing.T) {
	res := Grade(twoQuestionQuiz(), map[uint]uint{2: 21}, 10)

	assert.Equal(t, 7, res.RawScore)
	assert.InDelta(t, 70.0, res.Percentage, 1e-9)
	assert.Equal(t, "C", res.Grade)
}

func TestGradeQuestionWithoutAnswers(t *testing.T) {
	questions := []Question{
		{ID: 1, Marks: 5},
		{ID: 2, Marks: 5, Answers: []Answer{{ID: 20, Correct: true}}},
	}
	// A selection pointing at a question with no answers is ignored.
	res := Grade(questions, map[uint]uint{1: 99, 2: 20}, 10)

	assert.Equal(t, 5, res.RawScore)
	assert.Equal(t, 10, res.TotalMarks)
}

func TestGradeMultipleCorrectAnswers(t *testing.T) {
	// Malformed authoring: both answers flagged correct. Only the selected
	// answer's own flag counts, so picking either awards the marks but an
	// unselected "correct" answer never does.
	questions := []Question{
		{ID: 1, Marks: 4, Answers: []Answer{{ID: 10, Correct: true}, {ID: 11, Correct: true}, {ID: 12}}},
	}

	assert.Equal(t, 4, Grade(questions, map[uint]uint{1: 11}, 4).RawScore)
	assert.Equal(t, 0, Grade(questions, map[uint]uint{1: 12}, 4).RawScore)
	assert.Equal(t, 0, Grade(questions, nil, 4).RawScore)
}

func TestLetterBoundaries(t *testing.T) {
	cases := []struct {
		percentage float64
		want       string
	}{
		{100, "A"},
		{90.0, "A"},
		{89.9, "B"},
		{80.0, "B"},
		{79.9, "C"},
		{70.0, "C"},
		{69.9, "D"},
		{60.0, "D"},
		{59.9, "E"},
		{50.0, "E"},
		{49.9, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Letter(tc.percentage), "percentage %v", tc.percentage)
	}
}
