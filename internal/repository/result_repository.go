package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// ResultRepository handles terminal result data access. The
// results.session_id unique constraint is the at-most-one-result-per-
// session guarantee; Create surfaces the violation untouched so the
// service can map it to a duplicate-submission error.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

const resultColumns = `id, session_id, student_id, scheduled_test_id, score, total_marks, answers, malpractice_reason, created_at`

func scanResult(row pgx.Row) (*model.Result, error) {
	res := &model.Result{}
	err := row.Scan(&res.ID, &res.SessionID, &res.StudentID, &res.ScheduledTestID,
		&res.Score, &res.TotalMarks, &res.Answers, &res.MalpracticeReason, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Create inserts a terminal result.
func (r *ResultRepository) Create(ctx context.Context, res *model.Result) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO results (session_id, student_id, scheduled_test_id, score, total_marks, answers, malpractice_reason)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		res.SessionID, res.StudentID, res.ScheduledTestID,
		res.Score, res.TotalMarks, res.Answers, res.MalpracticeReason,
	).Scan(&res.ID, &res.CreatedAt)
}

// GetByID retrieves a result by id.
func (r *ResultRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE id = $1`, id))
}

// GetBySession retrieves the terminal result of a session, if any.
func (r *ResultRepository) GetBySession(ctx context.Context, sessionID uuid.UUID) (*model.Result, error) {
	return scanResult(r.pool.QueryRow(ctx,
		`SELECT `+resultColumns+` FROM results WHERE session_id = $1`, sessionID))
}

// ResultSummary is a history row without the full answers payload.
type ResultSummary struct {
	ID         uuid.UUID `json:"id"`
	Score      int       `json:"score"`
	TotalMarks int       `json:"total_marks"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListMockByStudent retrieves a student's mock results, newest first.
func (r *ResultRepository) ListMockByStudent(ctx context.Context, studentID uuid.UUID) ([]ResultSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, score, total_marks, created_at
		 FROM results
		 WHERE student_id = $1 AND scheduled_test_id IS NULL
		 ORDER BY created_at DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []ResultSummary
	for rows.Next() {
		var s ResultSummary
		if err := rows.Scan(&s.ID, &s.Score, &s.TotalMarks, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListByScheduledTest retrieves all results for one scheduled test.
func (r *ResultRepository) ListByScheduledTest(ctx context.Context, scheduledTestID uuid.UUID) ([]model.Result, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+resultColumns+`
		 FROM results WHERE scheduled_test_id = $1`, scheduledTestID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, rows.Err()
}
