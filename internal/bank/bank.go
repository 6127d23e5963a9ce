// Package bank provides read-only sampling access to the question banks.
//
// The accessor is an explicit capability object parameterized by scope
// (global bank vs a HOD's private bank) so request handlers never share
// hidden mutable bank state.
package bank

import (
	"context"
	"math/rand/v2"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// Plan maps each requested section to the number of questions to draw.
type Plan map[model.Section]int

// MockPlan is the fixed category plan for the standard 40-question
// placement paper.
var MockPlan = Plan{
	model.SectionQuantitative: 10,
	model.SectionReasoning:    10,
	model.SectionEnglish:      10,
	model.SectionProgramming:  10,
}

// Total returns the number of questions the plan requests across sections.
func (p Plan) Total() int {
	n := 0
	for _, count := range p {
		n += count
	}
	return n
}

// Source supplies the raw per-section question pools the accessor samples
// from. Implemented by repository.QuestionRepository.
type Source interface {
	ListBySection(ctx context.Context, scope model.Scope, section model.Section) ([]model.Question, error)
}

// Accessor performs scoped, category-filtered random sampling.
type Accessor struct {
	source Source
}

// NewAccessor creates an Accessor backed by the given source.
func NewAccessor(source Source) *Accessor {
	return &Accessor{source: source}
}

// Sample draws plan[section] questions uniformly at random without
// replacement from each requested section of the scope. The call is
// atomic: if any section has fewer questions than requested, it fails
// with InsufficientBankError and returns nothing.
//
// Sections are drawn in model.Sections order so the flattened paper has a
// stable section ordering; within a section the order is random. Repeated
// calls may return different sets; uniqueness within one call is
// guaranteed because each bank row is drawn at most once.
func (a *Accessor) Sample(ctx context.Context, scope model.Scope, plan Plan) ([]model.Question, error) {
	picked := make([]model.Question, 0, plan.Total())

	for _, section := range model.Sections {
		requested, ok := plan[section]
		if !ok || requested == 0 {
			continue
		}

		pool, err := a.source.ListBySection(ctx, scope, section)
		if err != nil {
			return nil, err
		}
		if len(pool) < requested {
			return nil, &InsufficientBankError{
				Section:   section,
				Requested: requested,
				Available: len(pool),
			}
		}

		rand.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		picked = append(picked, pool[:requested]...)
	}

	return picked, nil
}
