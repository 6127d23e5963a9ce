package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// ScheduledTestRepository handles scheduled test data access.
type ScheduledTestRepository struct {
	pool *pgxpool.Pool
}

// NewScheduledTestRepository creates a new ScheduledTestRepository.
func NewScheduledTestRepository(pool *pgxpool.Pool) *ScheduledTestRepository {
	return &ScheduledTestRepository{pool: pool}
}

// Create inserts a new scheduled test.
func (r *ScheduledTestRepository) Create(ctx context.Context, t *model.ScheduledTest) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO scheduled_tests (title, hod_id, classroom_id, start_time, end_time)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		t.Title, t.HodID, t.ClassroomID, t.StartTime, t.EndTime,
	).Scan(&t.ID, &t.CreatedAt)
}

// GetByID retrieves a scheduled test by id.
func (r *ScheduledTestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ScheduledTest, error) {
	t := &model.ScheduledTest{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, hod_id, classroom_id, start_time, end_time, created_at
		 FROM scheduled_tests WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.HodID, &t.ClassroomID, &t.StartTime, &t.EndTime, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListByClassroom retrieves all tests for a classroom, upcoming first.
func (r *ScheduledTestRepository) ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.ScheduledTest, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, hod_id, classroom_id, start_time, end_time, created_at
		 FROM scheduled_tests WHERE classroom_id = $1
		 ORDER BY start_time`, classroomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []model.ScheduledTest
	for rows.Next() {
		var t model.ScheduledTest
		if err := rows.Scan(&t.ID, &t.Title, &t.HodID, &t.ClassroomID, &t.StartTime, &t.EndTime, &t.CreatedAt); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
