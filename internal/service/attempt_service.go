package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/bank"
	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// paperTTL bounds how long a rendered paper stays cached. Sessions are
// immutable, so a cached paper can never go stale.
const paperTTL = 24 * time.Hour

// AttemptService builds exam attempts: it samples the question roster
// (session factory) and enforces the scheduled-test timing window. All
// window checks compare stored timestamps against the server clock at
// request time; no background exam clock exists, so after a process
// restart the client simply re-queries the paper and recomputes its
// countdown from the returned end time.
type AttemptService struct {
	accessor      *bank.Accessor
	questionRepo  *repository.QuestionRepository
	sessionRepo   *repository.SessionRepository
	testRepo      *repository.ScheduledTestRepository
	classroomRepo *repository.ClassroomRepository
	rdb           *redis.Client
	log           zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	accessor *bank.Accessor,
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.SessionRepository,
	testRepo *repository.ScheduledTestRepository,
	classroomRepo *repository.ClassroomRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		accessor:      accessor,
		questionRepo:  questionRepo,
		sessionRepo:   sessionRepo,
		testRepo:      testRepo,
		classroomRepo: classroomRepo,
		rdb:           rdb,
		log:           log.With().Str("component", "attempt_service").Logger(),
	}
}

// Paper is the attempt payload rendered for the client: the session id,
// the questions without correct answers, and for scheduled attempts the
// server-anchored end time the countdown must use.
type Paper struct {
	SessionID uuid.UUID                  `json:"session_id"`
	Questions []model.QuestionForStudent `json:"questions"`
	EndTime   *time.Time                 `json:"end_time,omitempty"`
}

// StartMock creates a fresh mock attempt from the global bank using the
// fixed 40-question plan. Accessor failures pass through unmodified; no
// relaxed plan is ever retried.
func (s *AttemptService) StartMock(ctx context.Context, studentID uuid.UUID) (*Paper, error) {
	return s.start(ctx, studentID, model.GlobalScope, nil, nil)
}

// StartScheduled starts (or resumes) an attempt for a scheduled test.
// The roster and window checks run before any sampling. Calling it again
// for the same test returns the existing session's paper instead of
// minting a second attempt.
func (s *AttemptService) StartScheduled(ctx context.Context, scheduledTestID, studentID uuid.UUID) (*Paper, error) {
	test, err := s.testRepo.GetByID(ctx, scheduledTestID)
	if err != nil {
		return nil, fmt.Errorf("get scheduled test: %w", err)
	}

	// Roster membership is checked before the window so a non-enrolled
	// student always sees an enrollment failure, never the window state.
	member, err := s.classroomRepo.IsMember(ctx, test.ClassroomID, studentID)
	if err != nil {
		return nil, fmt.Errorf("check roster: %w", err)
	}
	if !member {
		s.log.Warn().
			Str("scheduled_test_id", scheduledTestID.String()).
			Str("student_id", studentID.String()).
			Msg("Start attempt by non-enrolled student")
		return nil, ErrNotEnrolled
	}

	if err := checkWindow(test, time.Now()); err != nil {
		return nil, err
	}

	// One attempt per scheduled test: a re-query after a refresh or a
	// process restart gets the same paper back.
	existing, err := s.sessionRepo.GetByTestAndStudent(ctx, scheduledTestID, studentID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check existing session: %w", err)
	}
	if existing != nil {
		return s.loadPaper(ctx, existing, &test.EndTime)
	}

	paper, err := s.start(ctx, studentID, model.PrivateScope(test.HodID), &scheduledTestID, &test.EndTime)
	if err != nil && repository.IsUniqueViolation(err) {
		// Lost a race with a concurrent start; serve the winner's paper.
		existing, err = s.sessionRepo.GetByTestAndStudent(ctx, scheduledTestID, studentID)
		if err != nil {
			return nil, fmt.Errorf("get racing session: %w", err)
		}
		return s.loadPaper(ctx, existing, &test.EndTime)
	}
	return paper, err
}

// start samples a roster, persists the session and caches the paper.
func (s *AttemptService) start(ctx context.Context, studentID uuid.UUID, scope model.Scope, scheduledTestID *uuid.UUID, endTime *time.Time) (*Paper, error) {
	questions, err := s.accessor.Sample(ctx, scope, bank.MockPlan)
	if err != nil {
		return nil, err
	}

	session := &model.TestSession{
		StudentID:       studentID,
		ScheduledTestID: scheduledTestID,
		QuestionIDs:     make([]uuid.UUID, 0, len(questions)),
	}
	for _, q := range questions {
		session.QuestionIDs = append(session.QuestionIDs, q.ID)
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	paper := &Paper{
		SessionID: session.ID,
		Questions: make([]model.QuestionForStudent, 0, len(questions)),
		EndTime:   endTime,
	}
	for _, q := range questions {
		paper.Questions = append(paper.Questions, q.ForStudent())
	}

	s.cachePaper(ctx, paper)

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("student_id", studentID.String()).
		Bool("scheduled", scheduledTestID != nil).
		Int("questions", len(questions)).
		Msg("Session created")

	return paper, nil
}

// GetPaper re-serves a session's paper to its owner, Redis first with a
// database fallback that re-resolves the fixed question roster.
func (s *AttemptService) GetPaper(ctx context.Context, sessionID, studentID uuid.UUID) (*Paper, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.StudentID != studentID {
		return nil, ErrNotOwner
	}

	var endTime *time.Time
	if session.IsScheduled() {
		test, err := s.testRepo.GetByID(ctx, *session.ScheduledTestID)
		if err != nil {
			return nil, fmt.Errorf("get scheduled test: %w", err)
		}
		endTime = &test.EndTime
	}

	return s.loadPaper(ctx, session, endTime)
}

// loadPaper fetches the cached paper, rebuilding and self-healing the
// cache on a miss.
func (s *AttemptService) loadPaper(ctx context.Context, session *model.TestSession, endTime *time.Time) (*Paper, error) {
	key := config.CacheKey.SessionPaperKey(session.ID.String())

	raw, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var paper Paper
		if jsonErr := json.Unmarshal([]byte(raw), &paper); jsonErr == nil {
			paper.EndTime = endTime
			return &paper, nil
		}
		// Corrupt cache entry falls through to the rebuild path.
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Paper cache read failed, rebuilding from DB")
	}

	scope, err := sessionScope(ctx, s.testRepo, session)
	if err != nil {
		return nil, err
	}

	questions, err := resolveSessionQuestions(ctx, s.questionRepo, scope, session)
	if err != nil {
		return nil, err
	}

	paper := &Paper{
		SessionID: session.ID,
		Questions: make([]model.QuestionForStudent, 0, len(questions)),
		EndTime:   endTime,
	}
	for _, q := range questions {
		paper.Questions = append(paper.Questions, q.ForStudent())
	}

	s.cachePaper(ctx, paper)
	return paper, nil
}

func (s *AttemptService) cachePaper(ctx context.Context, paper *Paper) {
	raw, err := json.Marshal(paper)
	if err != nil {
		return
	}
	key := config.CacheKey.SessionPaperKey(paper.SessionID.String())
	if err := s.rdb.Set(ctx, key, raw, paperTTL).Err(); err != nil {
		// Cache write failure is not fatal; the DB fallback covers it.
		s.log.Warn().Err(err).Msg("Paper cache write failed")
	}
}

// checkWindow validates "now" against the half-open admissible window
// [StartTime, EndTime) of a scheduled test. Only the server clock is
// consulted; client timestamps are never trusted.
func checkWindow(test *model.ScheduledTest, now time.Time) error {
	if now.Before(test.StartTime) {
		return ErrNotYetOpen
	}
	if !now.Before(test.EndTime) {
		return ErrWindowClosed
	}
	return nil
}
