package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// ClassroomRepository handles classroom and roster data access.
type ClassroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

// Create inserts a new classroom.
func (r *ClassroomRepository) Create(ctx context.Context, c *model.Classroom) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classrooms (name, batch, hod_id, join_code)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.Name, c.Batch, c.HodID, c.JoinCode,
	).Scan(&c.ID, &c.CreatedAt)
}

// GetByID retrieves a classroom by id.
func (r *ClassroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Classroom, error) {
	return r.get(ctx, `id = $1`, id)
}

// GetByJoinCode retrieves a classroom by its join code.
func (r *ClassroomRepository) GetByJoinCode(ctx context.Context, code string) (*model.Classroom, error) {
	return r.get(ctx, `join_code = $1`, code)
}

func (r *ClassroomRepository) get(ctx context.Context, where string, arg any) (*model.Classroom, error) {
	c := &model.Classroom{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, batch, hod_id, join_code, created_at
		 FROM classrooms WHERE `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Batch, &c.HodID, &c.JoinCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListByHod retrieves all classrooms owned by a HOD, newest first.
func (r *ClassroomRepository) ListByHod(ctx context.Context, hodID uuid.UUID) ([]model.Classroom, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, batch, hod_id, join_code, created_at
		 FROM classrooms WHERE hod_id = $1
		 ORDER BY created_at DESC`, hodID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClassrooms(rows)
}

// ListForStudent retrieves the classrooms a student is enrolled in.
func (r *ClassroomRepository) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Classroom, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.name, c.batch, c.hod_id, c.join_code, c.created_at
		 FROM classrooms c
		 JOIN classroom_students cs ON cs.classroom_id = c.id
		 WHERE cs.student_id = $1
		 ORDER BY c.created_at DESC`, studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectClassrooms(rows)
}

// Delete removes a classroom owned by the given HOD.
func (r *ClassroomRepository) Delete(ctx context.Context, id, hodID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM classrooms WHERE id = $1 AND hod_id = $2`, id, hodID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateJoinCode replaces the classroom's join code.
func (r *ClassroomRepository) UpdateJoinCode(ctx context.Context, id uuid.UUID, code string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE classrooms SET join_code = $1 WHERE id = $2`, code, id)
	return err
}

// AddStudent enrolls a student. Returns false if already enrolled.
func (r *ClassroomRepository) AddStudent(ctx context.Context, classroomID, studentID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO classroom_students (classroom_id, student_id)
		 VALUES ($1, $2)
		 ON CONFLICT (classroom_id, student_id) DO NOTHING`,
		classroomID, studentID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// RemoveStudent removes a student from the roster.
func (r *ClassroomRepository) RemoveStudent(ctx context.Context, classroomID, studentID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM classroom_students WHERE classroom_id = $1 AND student_id = $2`,
		classroomID, studentID,
	)
	return err
}

// IsMember reports whether a student is on the classroom roster.
func (r *ClassroomRepository) IsMember(ctx context.Context, classroomID, studentID uuid.UUID) (bool, error) {
	var member bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM classroom_students
			WHERE classroom_id = $1 AND student_id = $2
		)`, classroomID, studentID,
	).Scan(&member)
	return member, err
}

// Roster retrieves the classroom roster in stable order: join time, then
// student id. Analytics relies on this ordering for tie-breaks.
func (r *ClassroomRepository) Roster(ctx context.Context, classroomID uuid.UUID) ([]model.RosterEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT cs.student_id, u.full_name, u.roll_no, cs.joined_at
		 FROM classroom_students cs
		 JOIN users u ON u.id = cs.student_id
		 WHERE cs.classroom_id = $1
		 ORDER BY cs.joined_at, cs.student_id`, classroomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roster []model.RosterEntry
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(&e.StudentID, &e.FullName, &e.RollNo, &e.JoinedAt); err != nil {
			return nil, err
		}
		roster = append(roster, e)
	}
	return roster, rows.Err()
}

func collectClassrooms(rows pgx.Rows) ([]model.Classroom, error) {
	var classrooms []model.Classroom
	for rows.Next() {
		var c model.Classroom
		if err := rows.Scan(&c.ID, &c.Name, &c.Batch, &c.HodID, &c.JoinCode, &c.CreatedAt); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}
