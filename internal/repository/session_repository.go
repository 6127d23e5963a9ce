package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// SessionRepository handles test session data access. Sessions are
// write-once: there is no update path by design.
type SessionRepository struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

// Create inserts a new session with its fixed question roster.
func (r *SessionRepository) Create(ctx context.Context, s *model.TestSession) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO test_sessions (student_id, scheduled_test_id, question_ids)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		s.StudentID, s.ScheduledTestID, s.QuestionIDs,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID retrieves a session by id.
func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TestSession, error) {
	s := &model.TestSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, scheduled_test_id, question_ids, created_at
		 FROM test_sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.StudentID, &s.ScheduledTestID, &s.QuestionIDs, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetByTestAndStudent retrieves a student's session for a scheduled test,
// if one exists.
func (r *SessionRepository) GetByTestAndStudent(ctx context.Context, scheduledTestID, studentID uuid.UUID) (*model.TestSession, error) {
	s := &model.TestSession{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_id, scheduled_test_id, question_ids, created_at
		 FROM test_sessions
		 WHERE scheduled_test_id = $1 AND student_id = $2`,
		scheduledTestID, studentID,
	).Scan(&s.ID, &s.StudentID, &s.ScheduledTestID, &s.QuestionIDs, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
