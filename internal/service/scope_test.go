package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// fakeResolver returns a fixed question set in arbitrary order.
type fakeResolver struct {
	questions []model.Question
}

func (f *fakeResolver) GetByIDs(_ context.Context, _ model.Scope, ids []uuid.UUID) ([]model.Question, error) {
	byID := make(map[uuid.UUID]model.Question, len(f.questions))
	for _, q := range f.questions {
		byID[q.ID] = q
	}
	var out []model.Question
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func TestResolveSessionQuestionsPreservesSessionOrder(t *testing.T) {
	q1 := model.Question{ID: uuid.New(), Section: model.SectionQuantitative}
	q2 := model.Question{ID: uuid.New(), Section: model.SectionEnglish}
	q3 := model.Question{ID: uuid.New(), Section: model.SectionDSA}

	// Resolver holds them out of session order.
	resolver := &fakeResolver{questions: []model.Question{q3, q1, q2}}

	session := &model.TestSession{
		ID:          uuid.New(),
		QuestionIDs: []uuid.UUID{q1.ID, q2.ID, q3.ID},
	}

	got, err := resolveSessionQuestions(context.Background(), resolver, model.GlobalScope, session)
	if err != nil {
		t.Fatalf("resolveSessionQuestions() error = %v", err)
	}

	want := []uuid.UUID{q1.ID, q2.ID, q3.ID}
	for i, q := range got {
		if q.ID != want[i] {
			t.Errorf("position %d: got %s, want %s", i, q.ID, want[i])
		}
	}
}

func TestResolveSessionQuestionsDetectsMissingQuestions(t *testing.T) {
	q1 := model.Question{ID: uuid.New(), Section: model.SectionQuantitative}
	resolver := &fakeResolver{questions: []model.Question{q1}}

	session := &model.TestSession{
		ID:          uuid.New(),
		QuestionIDs: []uuid.UUID{q1.ID, uuid.New()}, // second id no longer resolves
	}

	_, err := resolveSessionQuestions(context.Background(), resolver, model.GlobalScope, session)

	var integrityErr *BankIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("error = %v, want BankIntegrityError", err)
	}
	if integrityErr.Expected != 2 || integrityErr.Resolved != 1 {
		t.Errorf("integrity counts = %d/%d, want expected 2 resolved 1",
			integrityErr.Expected, integrityErr.Resolved)
	}
	if integrityErr.SessionID != session.ID {
		t.Errorf("SessionID = %s, want %s", integrityErr.SessionID, session.ID)
	}
}
