package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/grading"
	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// AnalyticsService builds the HOD's post-test reports for scheduled
// tests. Reports are computed on read from the stored results; nothing is
// pre-aggregated.
type AnalyticsService struct {
	testRepo      *repository.ScheduledTestRepository
	classroomRepo *repository.ClassroomRepository
	resultRepo    *repository.ResultRepository
	log           zerolog.Logger
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(
	testRepo *repository.ScheduledTestRepository,
	classroomRepo *repository.ClassroomRepository,
	resultRepo *repository.ResultRepository,
	log zerolog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		testRepo:      testRepo,
		classroomRepo: classroomRepo,
		resultRepo:    resultRepo,
		log:           log.With().Str("component", "analytics_service").Logger(),
	}
}

// StudentOutcome is one roster student's outcome on a scheduled test.
type StudentOutcome struct {
	StudentID  uuid.UUID `json:"student_id"`
	FullName   string    `json:"full_name"`
	RollNo     string    `json:"roll_no,omitempty"`
	ResultID   uuid.UUID `json:"result_id"`
	SessionID  uuid.UUID `json:"session_id"`
	Score      int       `json:"score"`
	TotalMarks int       `json:"total_marks"`
	Percent    float64   `json:"percent"`
	Reason     string    `json:"reason,omitempty"`
}

// TestReport partitions a classroom roster against a scheduled test's
// results. The three buckets are mutually exclusive and together cover
// the whole roster.
type TestReport struct {
	Test          *model.ScheduledTest `json:"test"`
	Attempted     []StudentOutcome     `json:"attempted"`
	NotAttempted  []model.RosterEntry  `json:"not_attempted"`
	Malpracticed  []StudentOutcome     `json:"malpracticed"`
	Topper        *StudentOutcome      `json:"topper,omitempty"`
	RosterSize    int                  `json:"roster_size"`
	AverageScore  float64              `json:"average_score"`
}

// AnalyzeTest builds the report for one scheduled test. Only the HOD who
// scheduled the test may read it.
func (s *AnalyticsService) AnalyzeTest(ctx context.Context, scheduledTestID, hodID uuid.UUID) (*TestReport, error) {
	test, err := s.testRepo.GetByID(ctx, scheduledTestID)
	if err != nil {
		return nil, fmt.Errorf("get scheduled test: %w", err)
	}
	if test.HodID != hodID {
		return nil, ErrNotOwner
	}

	roster, err := s.classroomRepo.Roster(ctx, test.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("get roster: %w", err)
	}

	results, err := s.resultRepo.ListByScheduledTest(ctx, scheduledTestID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return buildReport(test, roster, results), nil
}

// buildReport partitions the roster into attempted, not-attempted and
// malpracticed, walking the roster in its stored order so the topper
// tie-break (first on the roster among equal top scores) is stable.
// Students with a result who are no longer on the roster are dropped;
// the roster is the report's universe.
func buildReport(test *model.ScheduledTest, roster []model.RosterEntry, results []model.Result) *TestReport {
	byStudent := make(map[uuid.UUID]*model.Result, len(results))
	for i := range results {
		byStudent[results[i].StudentID] = &results[i]
	}

	report := &TestReport{
		Test:         test,
		Attempted:    []StudentOutcome{},
		NotAttempted: []model.RosterEntry{},
		Malpracticed: []StudentOutcome{},
		RosterSize:   len(roster),
	}

	scoreSum := 0
	for _, entry := range roster {
		res, ok := byStudent[entry.StudentID]
		if !ok {
			report.NotAttempted = append(report.NotAttempted, entry)
			continue
		}

		outcome := StudentOutcome{
			StudentID:  entry.StudentID,
			FullName:   entry.FullName,
			RollNo:     entry.RollNo,
			ResultID:   res.ID,
			SessionID:  res.SessionID,
			Score:      res.Score,
			TotalMarks: res.TotalMarks,
			Percent:    grading.Percent(res.Score, res.TotalMarks),
		}

		if res.MalpracticeReason != nil {
			outcome.Reason = *res.MalpracticeReason
			report.Malpracticed = append(report.Malpracticed, outcome)
			continue
		}

		report.Attempted = append(report.Attempted, outcome)
		scoreSum += res.Score
		if report.Topper == nil || outcome.Score > report.Topper.Score {
			top := outcome
			report.Topper = &top
		}
	}

	if len(report.Attempted) > 0 {
		report.AverageScore = float64(scoreSum) / float64(len(report.Attempted))
	}

	return report
}
