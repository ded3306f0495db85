package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "in_progress"
	AttemptSubmitted  AttemptStatus = "submitted"
	AttemptExpired    AttemptStatus = "expired"
)

// SelectionMap maps question id to the chosen answer id, stored as JSON.
type SelectionMap map[uint]uint

func (m SelectionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *SelectionMap) Scan(value interface{}) error {
	if value == nil {
		*m = SelectionMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("unsupported type for SelectionMap")
}

// QuizAttempt is one timed run of a quiz by a student. Submissions after
// ExpiresAt are finalized over the same scoring path, exactly once.
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	StudentID  uint          `gorm:"index:idx_attempt_student_quiz;not null" json:"studentId"`
	QuizID     uint          `gorm:"index:idx_attempt_student_quiz;not null" json:"quizId"`
	Status     AttemptStatus `gorm:"type:enum('in_progress','submitted','expired');default:'in_progress'" json:"status"`
	StartedAt  time.Time     `gorm:"not null" json:"startedAt"`
	ExpiresAt  time.Time     `gorm:"not null" json:"expiresAt"`
	Selections SelectionMap  `gorm:"type:json" json:"selections"`

	RawScore    int     `json:"rawScore"`
	TotalMarks  int     `json:"totalMarks"`
	Percentage  float64 `json:"percentage"`
	ScaledMarks float64 `json:"scaledMarks"`
	Grade       string  `gorm:"size:2" json:"grade"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
