package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/config"
	"github.com/placeprep/placeprep-backend/internal/grading"
	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// ResultService terminates sessions and serves graded outcomes. Every
// termination path, normal or malpractice, converges on the same grade
// and persist step; the results table's session_id unique constraint is
// what makes termination exactly-once under concurrent submits.
type ResultService struct {
	questionRepo *repository.QuestionRepository
	sessionRepo  *repository.SessionRepository
	testRepo     *repository.ScheduledTestRepository
	resultRepo   *repository.ResultRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewResultService creates a new ResultService.
func NewResultService(
	questionRepo *repository.QuestionRepository,
	sessionRepo *repository.SessionRepository,
	testRepo *repository.ScheduledTestRepository,
	resultRepo *repository.ResultRepository,
	rdb *redis.Client,
	log zerolog.Logger,
) *ResultService {
	return &ResultService{
		questionRepo: questionRepo,
		sessionRepo:  sessionRepo,
		testRepo:     testRepo,
		resultRepo:   resultRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "result_service").Logger(),
	}
}

// GradedResult pairs the stored result with its section breakdown.
type GradedResult struct {
	Result    *model.Result     `json:"result"`
	Breakdown grading.Breakdown `json:"breakdown"`
}

// Submit terminates a session through the student-initiated path.
func (s *ResultService) Submit(ctx context.Context, sessionID, studentID uuid.UUID, answers map[string]string) (*GradedResult, error) {
	return s.terminate(ctx, sessionID, studentID, answers, model.TerminationNormal)
}

// AutoSubmit terminates a session through the malpractice path. The
// attempt is graded on whatever answers accompanied the violation report;
// the reason is recorded on the result.
func (s *ResultService) AutoSubmit(ctx context.Context, sessionID, studentID uuid.UUID, answers map[string]string, reason string) (*GradedResult, error) {
	return s.terminate(ctx, sessionID, studentID, answers, model.TerminationMalpractice(reason))
}

// terminate is the single convergence point for all termination paths:
// resolve the session's roster from its bank scope, grade, persist once.
func (s *ResultService) terminate(ctx context.Context, sessionID, studentID uuid.UUID, answers map[string]string, term model.Termination) (*GradedResult, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session.StudentID != studentID {
		return nil, ErrNotOwner
	}

	scope, err := sessionScope(ctx, s.testRepo, session)
	if err != nil {
		return nil, err
	}

	questions, err := resolveSessionQuestions(ctx, s.questionRepo, scope, session)
	if err != nil {
		return nil, err
	}

	breakdown := grading.Grade(questions, answers)

	result := &model.Result{
		SessionID:       session.ID,
		StudentID:       session.StudentID,
		ScheduledTestID: session.ScheduledTestID,
		Score:           breakdown.Score,
		TotalMarks:      breakdown.TotalMarks,
		Answers:         answers,
	}
	if result.Answers == nil {
		result.Answers = map[string]string{}
	}
	if term.Malpractice() {
		reason := term.Reason
		result.MalpracticeReason = &reason
	}

	if err := s.resultRepo.Create(ctx, result); err != nil {
		if repository.IsUniqueViolation(err) {
			// First termination wins; the stored result stays authoritative.
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("create result: %w", err)
	}

	// The paper is unreachable after termination; drop its cache entry.
	s.rdb.Del(ctx, config.CacheKey.SessionPaperKey(session.ID.String()))

	s.log.Info().
		Str("session_id", session.ID.String()).
		Str("student_id", studentID.String()).
		Int("score", result.Score).
		Int("total_marks", result.TotalMarks).
		Bool("malpractice", term.Malpractice()).
		Msg("Session terminated")

	return &GradedResult{Result: result, Breakdown: breakdown}, nil
}

// ResultDetails is the full post-termination review of one attempt.
type ResultDetails struct {
	Result    *model.Result            `json:"result"`
	Breakdown grading.Breakdown        `json:"breakdown"`
	Percent   float64                  `json:"percent"`
	Questions []grading.QuestionReview `json:"questions"`
}

// Details serves a result's drill-down to its owning student, with every
// question re-resolved in the session's stored order and the correct
// answers revealed.
func (s *ResultService) Details(ctx context.Context, resultID, studentID uuid.UUID) (*ResultDetails, error) {
	result, err := s.resultRepo.GetByID(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	if result.StudentID != studentID {
		return nil, ErrNotOwner
	}
	return s.buildDetails(ctx, result)
}

// DetailsForHOD is the same drill-down keyed by session, for the HOD
// analysis views. Only the HOD who scheduled the session's test may read
// it; mock sessions are never visible to HODs.
func (s *ResultService) DetailsForHOD(ctx context.Context, sessionID, hodID uuid.UUID) (*ResultDetails, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !session.IsScheduled() {
		return nil, ErrNotOwner
	}

	test, err := s.testRepo.GetByID(ctx, *session.ScheduledTestID)
	if err != nil {
		return nil, fmt.Errorf("get scheduled test: %w", err)
	}
	if test.HodID != hodID {
		return nil, ErrNotOwner
	}

	result, err := s.resultRepo.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return s.buildDetails(ctx, result)
}

func (s *ResultService) buildDetails(ctx context.Context, result *model.Result) (*ResultDetails, error) {
	session, err := s.sessionRepo.GetByID(ctx, result.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	scope, err := sessionScope(ctx, s.testRepo, session)
	if err != nil {
		return nil, err
	}

	questions, err := resolveSessionQuestions(ctx, s.questionRepo, scope, session)
	if err != nil {
		return nil, err
	}

	breakdown := grading.Grade(questions, result.Answers)
	return &ResultDetails{
		Result:    result,
		Breakdown: breakdown,
		Percent:   grading.Percent(result.Score, result.TotalMarks),
		Questions: grading.Review(questions, result.Answers),
	}, nil
}

// History lists a student's mock attempts, newest first.
func (s *ResultService) History(ctx context.Context, studentID uuid.UUID) ([]repository.ResultSummary, error) {
	return s.resultRepo.ListMockByStudent(ctx, studentID)
}
