package bank

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// fakeSource serves fixed per-section pools from memory.
type fakeSource struct {
	pools map[model.Section][]model.Question
	err   error
}

func (f *fakeSource) ListBySection(_ context.Context, _ model.Scope, section model.Section) ([]model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Return a copy so the accessor's shuffle cannot corrupt the fixture.
	pool := f.pools[section]
	out := make([]model.Question, len(pool))
	copy(out, pool)
	return out, nil
}

func makePool(section model.Section, n int) []model.Question {
	pool := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, model.Question{
			ID:           uuid.New(),
			Section:      section,
			QuestionText: fmt.Sprintf("%s question %d", section, i),
		})
	}
	return pool
}

func fullSource() *fakeSource {
	return &fakeSource{pools: map[model.Section][]model.Question{
		model.SectionQuantitative: makePool(model.SectionQuantitative, 25),
		model.SectionReasoning:    makePool(model.SectionReasoning, 25),
		model.SectionEnglish:      makePool(model.SectionEnglish, 25),
		model.SectionProgramming:  makePool(model.SectionProgramming, 25),
	}}
}

func TestSampleDrawsPlanCounts(t *testing.T) {
	accessor := NewAccessor(fullSource())

	picked, err := accessor.Sample(context.Background(), model.GlobalScope, MockPlan)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(picked) != MockPlan.Total() {
		t.Fatalf("Sample() returned %d questions, want %d", len(picked), MockPlan.Total())
	}

	counts := make(map[model.Section]int)
	for _, q := range picked {
		counts[q.Section]++
	}
	for section, want := range MockPlan {
		if counts[section] != want {
			t.Errorf("section %s: got %d questions, want %d", section, counts[section], want)
		}
	}
}

func TestSampleNoDuplicates(t *testing.T) {
	accessor := NewAccessor(fullSource())

	picked, err := accessor.Sample(context.Background(), model.GlobalScope, MockPlan)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	seen := make(map[uuid.UUID]bool, len(picked))
	for _, q := range picked {
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSampleStableSectionOrder(t *testing.T) {
	accessor := NewAccessor(fullSource())

	picked, err := accessor.Sample(context.Background(), model.GlobalScope, MockPlan)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}

	// The flattened paper must follow canonical section order.
	rank := make(map[model.Section]int, len(model.Sections))
	for i, s := range model.Sections {
		rank[s] = i
	}
	for i := 1; i < len(picked); i++ {
		if rank[picked[i].Section] < rank[picked[i-1].Section] {
			t.Fatalf("section order broken at index %d: %s after %s",
				i, picked[i].Section, picked[i-1].Section)
		}
	}
}

func TestSampleInsufficientBankIsAtomic(t *testing.T) {
	source := fullSource()
	// Starve one section below the plan.
	source.pools[model.SectionEnglish] = makePool(model.SectionEnglish, 3)
	accessor := NewAccessor(source)

	picked, err := accessor.Sample(context.Background(), model.GlobalScope, MockPlan)
	if picked != nil {
		t.Fatalf("Sample() returned %d questions on failure, want none", len(picked))
	}

	var bankErr *InsufficientBankError
	if !errors.As(err, &bankErr) {
		t.Fatalf("Sample() error = %v, want InsufficientBankError", err)
	}
	if bankErr.Section != model.SectionEnglish {
		t.Errorf("error section = %s, want %s", bankErr.Section, model.SectionEnglish)
	}
	if bankErr.Requested != 10 || bankErr.Available != 3 {
		t.Errorf("error counts = %d/%d, want requested 10 available 3",
			bankErr.Requested, bankErr.Available)
	}
}

func TestSampleSourceErrorPassesThrough(t *testing.T) {
	wantErr := errors.New("connection refused")
	accessor := NewAccessor(&fakeSource{err: wantErr})

	_, err := accessor.Sample(context.Background(), model.GlobalScope, MockPlan)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Sample() error = %v, want %v", err, wantErr)
	}
}

func TestSampleSkipsUnrequestedSections(t *testing.T) {
	accessor := NewAccessor(fullSource())
	plan := Plan{model.SectionProgramming: 5}

	picked, err := accessor.Sample(context.Background(), model.GlobalScope, plan)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if len(picked) != 5 {
		t.Fatalf("Sample() returned %d questions, want 5", len(picked))
	}
	for _, q := range picked {
		if q.Section != model.SectionProgramming {
			t.Errorf("unexpected section %s in single-section plan", q.Section)
		}
	}
}
