// Package grading resolves submitted answers against the authoritative
// answer bank. Grading is a pure function of the resolved questions and
// the submitted answers; it never trusts client-supplied correctness.
package grading

import (
	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
)

// Breakdown is the outcome of grading one attempt. All values are
// integers; percentage formatting happens at the presentation boundary.
type Breakdown struct {
	Score         int                   `json:"score"`
	TotalMarks    int                   `json:"total_marks"`
	SectionScores map[model.Section]int `json:"section_scores"`
	SectionTotals map[model.Section]int `json:"section_totals"`
}

// Grade scores submitted answers against the resolved question records.
// Every resolved question counts toward TotalMarks and its section total;
// a question scores a mark iff the submitted option string-equals the
// authoritative correct answer. Unanswered questions count as incorrect.
func Grade(questions []model.Question, answers map[string]string) Breakdown {
	b := Breakdown{
		TotalMarks:    len(questions),
		SectionScores: make(map[model.Section]int),
		SectionTotals: make(map[model.Section]int),
	}

	for _, q := range questions {
		b.SectionTotals[q.Section]++
		if answers[q.ID.String()] == q.CorrectAnswer {
			b.Score++
			b.SectionScores[q.Section]++
		}
	}

	return b
}

// QuestionReview is the post-termination drill-down for one question,
// with the correct answer and explanation revealed.
type QuestionReview struct {
	ID            uuid.UUID     `json:"id"`
	Section       model.Section `json:"section"`
	QuestionText  string        `json:"question_text"`
	Options       []string      `json:"options"`
	CorrectAnswer string        `json:"correct_answer"`
	Explanation   string        `json:"explanation"`
	StudentAnswer string        `json:"student_answer,omitempty"`
	Attempted     bool          `json:"attempted"`
	Correct       bool          `json:"correct"`
}

// Review builds the per-question analysis for a graded attempt.
func Review(questions []model.Question, answers map[string]string) []QuestionReview {
	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		given, attempted := answers[q.ID.String()]
		reviews = append(reviews, QuestionReview{
			ID:            q.ID,
			Section:       q.Section,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			StudentAnswer: given,
			Attempted:     attempted,
			Correct:       attempted && given == q.CorrectAnswer,
		})
	}
	return reviews
}

// Percent renders a score as a percentage rounded to one decimal place.
// Used at the presentation boundary only; stored values stay integral.
func Percent(score, total int) float64 {
	if total == 0 {
		return 0
	}
	raw := float64(score) / float64(total) * 1000
	return float64(int(raw+0.5)) / 10
}
