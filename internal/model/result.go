package model

import (
	"time"

	"github.com/google/uuid"
)

// Termination describes how a session reached its terminal state.
type Termination struct {
	// Reason is empty for a normal submission and carries the detected
	// violation (e.g. "Tab Switched") for a malpractice auto-submit.
	Reason string
}

// TerminationNormal is a student-initiated submission.
var TerminationNormal = Termination{}

// TerminationMalpractice is a forced auto-submission with the detected
// violation attached. Reason must be non-empty.
func TerminationMalpractice(reason string) Termination {
	return Termination{Reason: reason}
}

// Malpractice reports whether the termination was the auto-submit path.
func (t Termination) Malpractice() bool { return t.Reason != "" }

// Result is the single terminal record of a session. Mock and scheduled
// attempts share one table; ScheduledTestID is nil for mocks. A unique
// constraint on SessionID guarantees at most one result per session.
type Result struct {
	ID              uuid.UUID         `json:"id"`
	SessionID       uuid.UUID         `json:"session_id"`
	StudentID       uuid.UUID         `json:"student_id"`
	ScheduledTestID *uuid.UUID        `json:"scheduled_test_id,omitempty"`
	Score           int               `json:"score"`
	TotalMarks      int               `json:"total_marks"`
	Answers         map[string]string `json:"answers"`
	// MalpracticeReason is set if and only if termination came through
	// the auto-submit path.
	MalpracticeReason *string   `json:"malpractice_reason,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// SubmitRequest is the payload for terminating a session normally.
// Answers may be empty; unanswered questions grade as incorrect.
type SubmitRequest struct {
	SessionID string            `json:"session_id" binding:"required,uuid"`
	Answers   map[string]string `json:"answers"`
}

// AutoSubmitRequest is the payload for a malpractice-triggered termination.
type AutoSubmitRequest struct {
	SessionID string            `json:"session_id" binding:"required,uuid"`
	Answers   map[string]string `json:"answers"`
	Reason    string            `json:"reason" binding:"required,min=1,max=200"`
}
