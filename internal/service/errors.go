package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Domain errors surfaced to handlers. None of these are retried
// automatically; the HTTP layer maps them to response codes that let the
// caller distinguish "try again later" from "this attempt is void".
var (
	// ErrNotYetOpen rejects a scheduled attempt before the window starts.
	ErrNotYetOpen = errors.New("test window has not opened yet")
	// ErrWindowClosed rejects a scheduled attempt after the window ends.
	ErrWindowClosed = errors.New("test window has closed")
	// ErrNotEnrolled rejects a student who is not on the classroom roster.
	ErrNotEnrolled = errors.New("student is not enrolled in the classroom")
	// ErrNotOwner rejects access to a resource the caller does not own.
	ErrNotOwner = errors.New("caller does not own this resource")
	// ErrDuplicateSubmission rejects a second termination of a session.
	// The first persisted result remains authoritative.
	ErrDuplicateSubmission = errors.New("session already has a result")
	// ErrEmailTaken rejects registration with an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials rejects a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrBatchMismatch rejects joining a classroom of a different batch.
	ErrBatchMismatch = errors.New("join code is not valid for this batch")
	// ErrAlreadyMember rejects joining a classroom twice.
	ErrAlreadyMember = errors.New("student is already a member")
	// ErrInvalidQuestion rejects a question that fails its construction
	// invariants (unknown section, wrong option count, answer not an
	// option).
	ErrInvalidQuestion = errors.New("invalid question")
)

// BankIntegrityError reports that a session references question ids that
// no longer resolve in its bank scope at grading time. This means the
// bank was mutated mid-exam and the attempt cannot be graded honestly;
// it is alerted, never swallowed.
type BankIntegrityError struct {
	SessionID uuid.UUID
	Expected  int
	Resolved  int
}

func (e *BankIntegrityError) Error() string {
	return fmt.Sprintf("session %s references %d questions but only %d resolve in its bank scope",
		e.SessionID, e.Expected, e.Resolved)
}
