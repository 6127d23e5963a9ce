package model

import (
	"time"

	"github.com/google/uuid"
)

// TestSession is one exam attempt's fixed question roster ("exam paper").
// Created once per attempt, owned exclusively by the student who started
// it, and never mutated afterwards; retained indefinitely for audit.
type TestSession struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	// ScheduledTestID is nil for ad-hoc mock attempts. It also determines
	// the bank scope the session was sampled from and must be graded
	// against: nil means the global bank, otherwise the test owner's
	// private bank.
	ScheduledTestID *uuid.UUID  `json:"scheduled_test_id,omitempty"`
	QuestionIDs     []uuid.UUID `json:"question_ids"`
	CreatedAt       time.Time   `json:"created_at"`
}

// IsScheduled reports whether the session belongs to a scheduled test.
func (s *TestSession) IsScheduled() bool { return s.ScheduledTestID != nil }
