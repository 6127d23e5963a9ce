package model

import (
	"time"

	"github.com/google/uuid"
)

// Classroom is a roster of students owned by a HOD. Students join with a
// shareable code; the classroom's batch must match the student's batch.
type Classroom struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Batch     string    `json:"batch"`
	HodID     uuid.UUID `json:"hod_id"`
	JoinCode  string    `json:"join_code"`
	CreatedAt time.Time `json:"created_at"`
}

// RosterEntry is one student on a classroom roster. Roster order (join
// time, then id) is the stable tie-break order for analytics.
type RosterEntry struct {
	StudentID uuid.UUID `json:"student_id"`
	FullName  string    `json:"full_name"`
	RollNo    string    `json:"roll_no,omitempty"`
	JoinedAt  time.Time `json:"joined_at"`
}

// CreateClassroomRequest is the payload for creating a classroom.
type CreateClassroomRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=120"`
	Batch string `json:"batch" binding:"required,max=20"`
}

// JoinClassroomRequest is the payload for a student joining by code.
type JoinClassroomRequest struct {
	JoinCode string `json:"join_code" binding:"required,min=4,max=16"`
}
