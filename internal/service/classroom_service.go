package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// ClassroomService manages classrooms, rosters and scheduled tests. Every
// mutating operation verifies HOD ownership before touching anything.
type ClassroomService struct {
	classroomRepo *repository.ClassroomRepository
	testRepo      *repository.ScheduledTestRepository
	log           zerolog.Logger
}

// NewClassroomService creates a new ClassroomService.
func NewClassroomService(
	classroomRepo *repository.ClassroomRepository,
	testRepo *repository.ScheduledTestRepository,
	log zerolog.Logger,
) *ClassroomService {
	return &ClassroomService{
		classroomRepo: classroomRepo,
		testRepo:      testRepo,
		log:           log.With().Str("component", "classroom_service").Logger(),
	}
}

// newJoinCode generates a shareable classroom code, "C-" plus six upper
// hex characters.
func newJoinCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate join code: %w", err)
	}
	return "C-" + strings.ToUpper(hex.EncodeToString(buf)), nil
}

// Create makes a new classroom owned by the HOD with a fresh join code.
func (s *ClassroomService) Create(ctx context.Context, hodID uuid.UUID, req *model.CreateClassroomRequest) (*model.Classroom, error) {
	code, err := newJoinCode()
	if err != nil {
		return nil, err
	}

	classroom := &model.Classroom{
		Name:     req.Name,
		Batch:    req.Batch,
		HodID:    hodID,
		JoinCode: code,
	}
	if err := s.classroomRepo.Create(ctx, classroom); err != nil {
		return nil, fmt.Errorf("create classroom: %w", err)
	}

	s.log.Info().
		Str("classroom_id", classroom.ID.String()).
		Str("hod_id", hodID.String()).
		Msg("Classroom created")
	return classroom, nil
}

// List returns the HOD's classrooms.
func (s *ClassroomService) List(ctx context.Context, hodID uuid.UUID) ([]model.Classroom, error) {
	return s.classroomRepo.ListByHod(ctx, hodID)
}

// ClassroomDetails is a classroom with its roster.
type ClassroomDetails struct {
	Classroom *model.Classroom    `json:"classroom"`
	Roster    []model.RosterEntry `json:"roster"`
}

// Details returns a classroom and its roster to its owning HOD.
func (s *ClassroomService) Details(ctx context.Context, classroomID, hodID uuid.UUID) (*ClassroomDetails, error) {
	classroom, err := s.ownedClassroom(ctx, classroomID, hodID)
	if err != nil {
		return nil, err
	}

	roster, err := s.classroomRepo.Roster(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}
	return &ClassroomDetails{Classroom: classroom, Roster: roster}, nil
}

// Delete removes a classroom owned by the HOD.
func (s *ClassroomService) Delete(ctx context.Context, classroomID, hodID uuid.UUID) error {
	if err := s.classroomRepo.Delete(ctx, classroomID, hodID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotOwner
		}
		return fmt.Errorf("delete classroom: %w", err)
	}
	return nil
}

// RegenerateJoinCode replaces the classroom's join code, invalidating the
// old one immediately.
func (s *ClassroomService) RegenerateJoinCode(ctx context.Context, classroomID, hodID uuid.UUID) (*model.Classroom, error) {
	classroom, err := s.ownedClassroom(ctx, classroomID, hodID)
	if err != nil {
		return nil, err
	}

	code, err := newJoinCode()
	if err != nil {
		return nil, err
	}
	if err := s.classroomRepo.UpdateJoinCode(ctx, classroomID, code); err != nil {
		return nil, fmt.Errorf("update join code: %w", err)
	}
	classroom.JoinCode = code
	return classroom, nil
}

// RemoveStudent drops a student from the roster.
func (s *ClassroomService) RemoveStudent(ctx context.Context, classroomID, hodID, studentID uuid.UUID) error {
	if _, err := s.ownedClassroom(ctx, classroomID, hodID); err != nil {
		return err
	}
	return s.classroomRepo.RemoveStudent(ctx, classroomID, studentID)
}

// Join enrolls a student by join code. The classroom's batch must match
// the student's batch.
func (s *ClassroomService) Join(ctx context.Context, studentID uuid.UUID, batch, joinCode string) (*model.Classroom, error) {
	classroom, err := s.classroomRepo.GetByJoinCode(ctx, joinCode)
	if err != nil {
		return nil, fmt.Errorf("get classroom: %w", err)
	}

	if classroom.Batch != batch {
		return nil, ErrBatchMismatch
	}

	added, err := s.classroomRepo.AddStudent(ctx, classroom.ID, studentID)
	if err != nil {
		return nil, fmt.Errorf("add student: %w", err)
	}
	if !added {
		return nil, ErrAlreadyMember
	}

	s.log.Info().
		Str("classroom_id", classroom.ID.String()).
		Str("student_id", studentID.String()).
		Msg("Student joined classroom")
	return classroom, nil
}

// ListForStudent returns the classrooms a student belongs to.
func (s *ClassroomService) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]model.Classroom, error) {
	return s.classroomRepo.ListForStudent(ctx, studentID)
}

// ScheduleTest creates a scheduled test on a classroom the HOD owns.
func (s *ClassroomService) ScheduleTest(ctx context.Context, classroomID, hodID uuid.UUID, req *model.ScheduleTestRequest) (*model.ScheduledTest, error) {
	if _, err := s.ownedClassroom(ctx, classroomID, hodID); err != nil {
		return nil, err
	}

	test := &model.ScheduledTest{
		Title:       req.Title,
		HodID:       hodID,
		ClassroomID: classroomID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		return nil, fmt.Errorf("create scheduled test: %w", err)
	}

	s.log.Info().
		Str("test_id", test.ID.String()).
		Str("classroom_id", classroomID.String()).
		Time("start", test.StartTime).
		Time("end", test.EndTime).
		Msg("Test scheduled")
	return test, nil
}

// ListTests returns a classroom's scheduled tests to its owning HOD.
func (s *ClassroomService) ListTests(ctx context.Context, classroomID, hodID uuid.UUID) ([]model.ScheduledTest, error) {
	if _, err := s.ownedClassroom(ctx, classroomID, hodID); err != nil {
		return nil, err
	}
	return s.testRepo.ListByClassroom(ctx, classroomID)
}

// ListTestsForStudent returns a classroom's scheduled tests to an
// enrolled student.
func (s *ClassroomService) ListTestsForStudent(ctx context.Context, classroomID, studentID uuid.UUID) ([]model.ScheduledTest, error) {
	member, err := s.classroomRepo.IsMember(ctx, classroomID, studentID)
	if err != nil {
		return nil, fmt.Errorf("check roster: %w", err)
	}
	if !member {
		return nil, ErrNotEnrolled
	}
	return s.testRepo.ListByClassroom(ctx, classroomID)
}

func (s *ClassroomService) ownedClassroom(ctx context.Context, classroomID, hodID uuid.UUID) (*model.Classroom, error) {
	classroom, err := s.classroomRepo.GetByID(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	if classroom.HodID != hodID {
		return nil, ErrNotOwner
	}
	return classroom, nil
}
