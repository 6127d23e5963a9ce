package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// QuestionRepository handles question bank data access. A NULL hod_id row
// belongs to the shared global bank; otherwise to that HOD's private bank.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, hod_id, section, question_text, options, correct_answer, explanation, created_at`

func scanQuestion(row pgx.Row) (model.Question, error) {
	var q model.Question
	err := row.Scan(&q.ID, &q.Scope.OwnerID, &q.Section, &q.QuestionText,
		&q.Options, &q.CorrectAnswer, &q.Explanation, &q.CreatedAt)
	return q, err
}

// ListBySection retrieves the full question pool of one section within a
// scope. Implements bank.Source.
func (r *QuestionRepository) ListBySection(ctx context.Context, scope model.Scope, section model.Section) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE hod_id IS NOT DISTINCT FROM $1 AND section = $2`,
		scope.OwnerID, section,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

// GetByIDs resolves question ids within a scope. The result order is
// unspecified; callers that need session order must reorder by id.
// Questions outside the scope are not returned; a shorter result than
// the requested id list signals bank corruption to the grading path.
func (r *QuestionRepository) GetByIDs(ctx context.Context, scope model.Scope, ids []uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE hod_id IS NOT DISTINCT FROM $1 AND id = ANY($2)`,
		scope.OwnerID, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

// ListByScope retrieves all questions of a scope, newest first.
func (r *QuestionRepository) ListByScope(ctx context.Context, scope model.Scope) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+`
		 FROM questions
		 WHERE hod_id IS NOT DISTINCT FROM $1
		 ORDER BY created_at DESC, id`,
		scope.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectQuestions(rows)
}

// CountsBySection returns how many questions each section holds in a scope.
func (r *QuestionRepository) CountsBySection(ctx context.Context, scope model.Scope) (map[model.Section]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT section, COUNT(*)
		 FROM questions
		 WHERE hod_id IS NOT DISTINCT FROM $1
		 GROUP BY section`,
		scope.OwnerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.Section]int)
	for rows.Next() {
		var section model.Section
		var n int
		if err := rows.Scan(&section, &n); err != nil {
			return nil, err
		}
		counts[section] = n
	}
	return counts, rows.Err()
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (hod_id, section, question_text, options, correct_answer, explanation)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		q.Scope.OwnerID, q.Section, q.QuestionText, q.Options, q.CorrectAnswer, q.Explanation,
	).Scan(&q.ID, &q.CreatedAt)
}

// CreateMany inserts a batch of questions in one round trip.
func (r *QuestionRepository) CreateMany(ctx context.Context, questions []model.Question) error {
	batch := &pgx.Batch{}
	for i := range questions {
		q := &questions[i]
		batch.Queue(
			`INSERT INTO questions (hod_id, section, question_text, options, correct_answer, explanation)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			q.Scope.OwnerID, q.Section, q.QuestionText, q.Options, q.CorrectAnswer, q.Explanation,
		)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// Delete removes a question from a scope. Returns pgx.ErrNoRows if the
// question does not exist in that scope.
func (r *QuestionRepository) Delete(ctx context.Context, scope model.Scope, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM questions WHERE hod_id IS NOT DISTINCT FROM $1 AND id = $2`,
		scope.OwnerID, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteByScope wipes a whole bank scope (bulk replace support).
func (r *QuestionRepository) DeleteByScope(ctx context.Context, scope model.Scope) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM questions WHERE hod_id IS NOT DISTINCT FROM $1`,
		scope.OwnerID,
	)
	return err
}

func collectQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
