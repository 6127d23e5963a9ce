package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduledTest defines the admissible window during which students of a
// classroom may start an attempt drawn from the owning HOD's private bank.
// Invariant: StartTime < EndTime (enforced at binding and by a SQL CHECK).
type ScheduledTest struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	HodID       uuid.UUID `json:"hod_id"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedAt   time.Time `json:"created_at"`
}

// ScheduleTestRequest is the payload for scheduling a test.
type ScheduleTestRequest struct {
	Title     string    `json:"title" binding:"required,min=2,max=200"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required,gtfield=StartTime"`
}
