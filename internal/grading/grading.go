// Package grading scores a quiz from a question set and a student's
// selected-answer map. It is deterministic and has no dependencies on the
// transport or persistence layers.
package grading

// Question is the slice of a quiz the grader needs: the marks at stake and
// the candidate answers.
type Question struct {
	ID      uint
	Marks   int
	Answers []Answer
}

type Answer struct {
	ID      uint
	Correct bool
}

// Result is the outcome of grading one attempt.
type Result struct {
	RawScore    int     // sum of marks over correctly answered questions
	TotalMarks  int     // sum of marks over all questions
	Percentage  float64 // 0 when the quiz has no marks at stake
	ScaledMarks float64 // percentage applied to the quiz's declared total
	Grade       string
}

// Grade scores the selections against the questions. Unanswered questions
// contribute 0. Only the selected answer's own Correct flag is consulted, so
// a question erroneously authored with several correct answers cannot award
// marks for an answer the student did not pick.
func Grade(questions []Question, selections map[uint]uint, declaredTotal int) Result {
	var raw, total int
	for _, q := range questions {
		total += q.Marks
		answerID, ok := selections[q.ID]
		if !ok {
			continue
		}
		for _, a := range q.Answers {
			if a.ID == answerID {
				if a.Correct {
					raw += q.Marks
				}
				break
			}
		}
	}

	pct := 0.0
	if total > 0 {
		pct = float64(raw) / float64(total) * 100
	}

	return Result{
		RawScore:    raw,
		TotalMarks:  total,
		Percentage:  pct,
		ScaledMarks: pct / 100 * float64(declaredTotal),
		Grade:       Letter(pct),
	}
}

// Letter maps a percentage to the fixed grade thresholds.
func Letter(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	case percentage >= 50:
		return "E"
	default:
		return "F"
	}
}
