package grading

import (
	"testing"

	"github.com/google/uuid"

	"github.com/placeprep/placeprep-backend/internal/model"
)

func question(section model.Section, correct string) model.Question {
	return model.Question{
		ID:            uuid.New(),
		Section:       section,
		QuestionText:  "q",
		Options:       []string{"A", "B", "C", "D"},
		CorrectAnswer: correct,
	}
}

func TestGrade(t *testing.T) {
	questions := []model.Question{
		question(model.SectionQuantitative, "A"),
		question(model.SectionQuantitative, "B"),
		question(model.SectionEnglish, "C"),
		question(model.SectionEnglish, "D"),
	}

	answers := map[string]string{
		questions[0].ID.String(): "A", // correct
		questions[1].ID.String(): "C", // wrong
		questions[2].ID.String(): "C", // correct
		// questions[3] unanswered
	}

	b := Grade(questions, answers)

	if b.Score != 2 {
		t.Errorf("Score = %d, want 2", b.Score)
	}
	if b.TotalMarks != 4 {
		t.Errorf("TotalMarks = %d, want 4", b.TotalMarks)
	}
	if b.SectionScores[model.SectionQuantitative] != 1 {
		t.Errorf("Quantitative score = %d, want 1", b.SectionScores[model.SectionQuantitative])
	}
	if b.SectionTotals[model.SectionQuantitative] != 2 {
		t.Errorf("Quantitative total = %d, want 2", b.SectionTotals[model.SectionQuantitative])
	}
	if b.SectionScores[model.SectionEnglish] != 1 {
		t.Errorf("English score = %d, want 1", b.SectionScores[model.SectionEnglish])
	}
}

func TestGradeEmptyAnswersAllIncorrect(t *testing.T) {
	questions := []model.Question{
		question(model.SectionReasoning, "A"),
		question(model.SectionReasoning, "B"),
	}

	b := Grade(questions, nil)

	if b.Score != 0 {
		t.Errorf("Score = %d, want 0", b.Score)
	}
	if b.TotalMarks != 2 {
		t.Errorf("TotalMarks = %d, want 2", b.TotalMarks)
	}
}

func TestGradeUnknownAnswerKeysIgnored(t *testing.T) {
	questions := []model.Question{question(model.SectionDSA, "A")}

	answers := map[string]string{
		questions[0].ID.String(): "A",
		uuid.New().String():      "A", // stray key, not on the paper
	}

	b := Grade(questions, answers)
	if b.Score != 1 || b.TotalMarks != 1 {
		t.Errorf("Score/Total = %d/%d, want 1/1", b.Score, b.TotalMarks)
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	questions := []model.Question{
		question(model.SectionQuantitative, "A"),
		question(model.SectionEnglish, "B"),
	}
	answers := map[string]string{questions[0].ID.String(): "A"}

	first := Grade(questions, answers)
	second := Grade(questions, answers)

	if first.Score != second.Score || first.TotalMarks != second.TotalMarks {
		t.Errorf("repeated grading differs: %+v vs %+v", first, second)
	}
}

func TestReview(t *testing.T) {
	questions := []model.Question{
		question(model.SectionProgramming, "A"),
		question(model.SectionProgramming, "B"),
		question(model.SectionProgramming, "C"),
	}
	answers := map[string]string{
		questions[0].ID.String(): "A", // correct
		questions[1].ID.String(): "D", // wrong
		// questions[2] unattempted
	}

	reviews := Review(questions, answers)
	if len(reviews) != 3 {
		t.Fatalf("Review() returned %d entries, want 3", len(reviews))
	}

	tests := []struct {
		idx       int
		attempted bool
		correct   bool
	}{
		{0, true, true},
		{1, true, false},
		{2, false, false},
	}
	for _, tt := range tests {
		r := reviews[tt.idx]
		if r.Attempted != tt.attempted {
			t.Errorf("review[%d].Attempted = %v, want %v", tt.idx, r.Attempted, tt.attempted)
		}
		if r.Correct != tt.correct {
			t.Errorf("review[%d].Correct = %v, want %v", tt.idx, r.Correct, tt.correct)
		}
		if r.CorrectAnswer == "" {
			t.Errorf("review[%d] missing revealed correct answer", tt.idx)
		}
	}

	// Review preserves the input (session) order.
	for i, r := range reviews {
		if r.ID != questions[i].ID {
			t.Errorf("review[%d] out of order", i)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		score int
		total int
		want  float64
	}{
		{"full marks", 40, 40, 100},
		{"zero", 0, 40, 0},
		{"typical", 25, 40, 62.5},
		{"rounds to one decimal", 1, 3, 33.3},
		{"rounds up", 2, 3, 66.7},
		{"empty paper", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.score, tt.total); got != tt.want {
				t.Errorf("Percent(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
			}
		})
	}
}
