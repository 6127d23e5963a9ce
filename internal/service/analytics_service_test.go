package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
)

func rosterEntry(name string, joined time.Time) model.RosterEntry {
	return model.RosterEntry{
		StudentID: uuid.New(),
		FullName:  name,
		JoinedAt:  joined,
	}
}

func resultFor(entry model.RosterEntry, score int, reason *string) model.Result {
	return model.Result{
		ID:                uuid.New(),
		SessionID:         uuid.New(),
		StudentID:         entry.StudentID,
		Score:             score,
		TotalMarks:        40,
		MalpracticeReason: reason,
	}
}

func TestBuildReportPartitionsRoster(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	alice := rosterEntry("Alice", base)
	bob := rosterEntry("Bob", base.Add(time.Minute))
	carol := rosterEntry("Carol", base.Add(2*time.Minute))
	dave := rosterEntry("Dave", base.Add(3*time.Minute))

	reason := "Tab Switched"
	results := []model.Result{
		resultFor(alice, 30, nil),
		resultFor(bob, 12, &reason),
		resultFor(dave, 35, nil),
	}

	test := &model.ScheduledTest{ID: uuid.New()}
	report := buildReport(test, []model.RosterEntry{alice, bob, carol, dave}, results)

	if len(report.Attempted) != 2 {
		t.Errorf("Attempted = %d students, want 2", len(report.Attempted))
	}
	if len(report.NotAttempted) != 1 || report.NotAttempted[0].StudentID != carol.StudentID {
		t.Errorf("NotAttempted should contain only Carol, got %+v", report.NotAttempted)
	}
	if len(report.Malpracticed) != 1 || report.Malpracticed[0].StudentID != bob.StudentID {
		t.Errorf("Malpracticed should contain only Bob, got %+v", report.Malpracticed)
	}
	if report.Malpracticed[0].Reason != reason {
		t.Errorf("malpractice reason = %q, want %q", report.Malpracticed[0].Reason, reason)
	}
	if report.RosterSize != 4 {
		t.Errorf("RosterSize = %d, want 4", report.RosterSize)
	}

	// Buckets must be mutually exclusive and cover the roster.
	total := len(report.Attempted) + len(report.NotAttempted) + len(report.Malpracticed)
	if total != 4 {
		t.Errorf("bucket sizes sum to %d, want 4", total)
	}

	if report.Topper == nil || report.Topper.StudentID != dave.StudentID {
		t.Errorf("Topper should be Dave with 35, got %+v", report.Topper)
	}

	// Malpracticed scores never count toward the average.
	wantAvg := float64(30+35) / 2
	if report.AverageScore != wantAvg {
		t.Errorf("AverageScore = %v, want %v", report.AverageScore, wantAvg)
	}
}

func TestBuildReportTopperTieBreaksByRosterOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	first := rosterEntry("First Joiner", base)
	second := rosterEntry("Second Joiner", base.Add(time.Hour))

	results := []model.Result{
		resultFor(second, 38, nil),
		resultFor(first, 38, nil),
	}

	report := buildReport(&model.ScheduledTest{}, []model.RosterEntry{first, second}, results)

	if report.Topper == nil || report.Topper.StudentID != first.StudentID {
		t.Errorf("tie at 38 should resolve to the earlier roster entry, got %+v", report.Topper)
	}
}

func TestBuildReportMalpracticedNeverTopper(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	honest := rosterEntry("Honest", base)
	cheater := rosterEntry("Cheater", base.Add(time.Minute))

	reason := "Tab Switched"
	results := []model.Result{
		resultFor(honest, 10, nil),
		resultFor(cheater, 40, &reason),
	}

	report := buildReport(&model.ScheduledTest{}, []model.RosterEntry{honest, cheater}, results)

	if report.Topper == nil || report.Topper.StudentID != honest.StudentID {
		t.Errorf("topper must come from the attempted bucket, got %+v", report.Topper)
	}
}

func TestBuildReportEmptyRoster(t *testing.T) {
	report := buildReport(&model.ScheduledTest{}, nil, nil)

	if report.Topper != nil {
		t.Errorf("Topper = %+v, want nil for empty roster", report.Topper)
	}
	if report.AverageScore != 0 {
		t.Errorf("AverageScore = %v, want 0", report.AverageScore)
	}
	if len(report.Attempted)+len(report.NotAttempted)+len(report.Malpracticed) != 0 {
		t.Error("empty roster should produce empty buckets")
	}
}

func TestBuildReportDropsOffRosterResults(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	member := rosterEntry("Member", base)
	removed := rosterEntry("Removed", base.Add(time.Minute))

	results := []model.Result{
		resultFor(member, 20, nil),
		resultFor(removed, 39, nil),
	}

	// Only member remains on the roster.
	report := buildReport(&model.ScheduledTest{}, []model.RosterEntry{member}, results)

	if len(report.Attempted) != 1 {
		t.Fatalf("Attempted = %d, want 1", len(report.Attempted))
	}
	if report.Topper.StudentID != member.StudentID {
		t.Errorf("off-roster result must not become topper")
	}
}
