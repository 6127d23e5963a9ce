package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/placeprep/placeprep-backend/internal/model"
	"github.com/placeprep/placeprep-backend/internal/repository"
)

// QuestionService manages the question banks: the shared global bank
// (admin) and per-HOD private banks. Scope is always supplied by the
// caller's verified principal, never by request payload.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// Add inserts one question into a bank scope.
func (s *QuestionService) Add(ctx context.Context, scope model.Scope, req *model.AddQuestionRequest) (*model.Question, error) {
	q := model.Question{
		Scope:         scope,
		Section:       model.Section(req.Section),
		QuestionText:  req.QuestionText,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Explanation:   req.Explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuestion, err)
	}

	if err := s.questionRepo.Create(ctx, &q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return &q, nil
}

// List returns all questions of a scope, newest first. The full records
// with correct answers are returned; this is a bank-management view, not
// an exam paper.
func (s *QuestionService) List(ctx context.Context, scope model.Scope) ([]model.Question, error) {
	return s.questionRepo.ListByScope(ctx, scope)
}

// Counts reports how many questions each section holds in a scope, with
// every known section present even when empty.
func (s *QuestionService) Counts(ctx context.Context, scope model.Scope) (map[model.Section]int, error) {
	counts, err := s.questionRepo.CountsBySection(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	for _, section := range model.Sections {
		if _, ok := counts[section]; !ok {
			counts[section] = 0
		}
	}
	return counts, nil
}

// Delete removes one question from a scope.
func (s *QuestionService) Delete(ctx context.Context, scope model.Scope, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, scope, id)
}

// Replace wipes a scope and loads a new question set in its place.
// Sessions already sampled from the old set will fail grading with a bank
// integrity error; replacement is an offline maintenance operation.
func (s *QuestionService) Replace(ctx context.Context, scope model.Scope, req *model.ReplaceQuestionsRequest) (int, error) {
	questions := make([]model.Question, 0, len(req.Questions))
	for i, item := range req.Questions {
		q := model.Question{
			Scope:         scope,
			Section:       model.Section(item.Section),
			QuestionText:  item.QuestionText,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		}
		if err := q.Validate(); err != nil {
			return 0, fmt.Errorf("%w: question %d: %s", ErrInvalidQuestion, i, err)
		}
		questions = append(questions, q)
	}

	if err := s.questionRepo.DeleteByScope(ctx, scope); err != nil {
		return 0, fmt.Errorf("clear bank: %w", err)
	}
	if err := s.questionRepo.CreateMany(ctx, questions); err != nil {
		return 0, fmt.Errorf("load bank: %w", err)
	}

	s.log.Info().
		Bool("global", scope.IsGlobal()).
		Int("questions", len(questions)).
		Msg("Bank replaced")
	return len(questions), nil
}
