package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// questionResolver resolves a session's fixed question roster within a
// bank scope. Implemented by repository.QuestionRepository.
type questionResolver interface {
	GetByIDs(ctx context.Context, scope model.Scope, ids []uuid.UUID) ([]model.Question, error)
}

// sessionScope returns the bank scope a session was sampled from: the
// global bank for mock sessions, the owning HOD's private bank for
// scheduled sessions.
func sessionScope(ctx context.Context, testRepo *repository.ScheduledTestRepository, session *model.TestSession) (model.Scope, error) {
	if !session.IsScheduled() {
		return model.GlobalScope, nil
	}
	test, err := testRepo.GetByID(ctx, *session.ScheduledTestID)
	if err != nil {
		return model.Scope{}, fmt.Errorf("get scheduled test: %w", err)
	}
	return model.PrivateScope(test.HodID), nil
}

// resolveSessionQuestions resolves every question id a session references
// and returns them in the session's stored order. If any id no longer
// resolves in the scope, the session cannot be served or graded honestly
// and a BankIntegrityError is returned.
func resolveSessionQuestions(ctx context.Context, resolver questionResolver, scope model.Scope, session *model.TestSession) ([]model.Question, error) {
	questions, err := resolver.GetByIDs(ctx, scope, session.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve questions: %w", err)
	}
	if len(questions) != len(session.QuestionIDs) {
		return nil, &BankIntegrityError{
			SessionID: session.ID,
			Expected:  len(session.QuestionIDs),
			Resolved:  len(questions),
		}
	}

	byID := make(map[uuid.UUID]model.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	ordered := make([]model.Question, 0, len(session.QuestionIDs))
	for _, id := range session.QuestionIDs {
		q, ok := byID[id]
		if !ok {
			return nil, &BankIntegrityError{
				SessionID: session.ID,
				Expected:  len(session.QuestionIDs),
				Resolved:  len(byID),
			}
		}
		ordered = append(ordered, q)
	}
	return ordered, nil
}
