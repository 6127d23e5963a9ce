package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validQuestion() Question {
	return Question{
		ID:            uuid.New(),
		Section:       SectionQuantitative,
		QuestionText:  "2 + 2 = ?",
		Options:       []string{"3", "4", "5", "6"},
		CorrectAnswer: "4",
	}
}

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Question)
		wantErr bool
	}{
		{"valid", func(q *Question) {}, false},
		{"unknown section", func(q *Question) { q.Section = "History" }, true},
		{"too few options", func(q *Question) { q.Options = q.Options[:3] }, true},
		{"too many options", func(q *Question) { q.Options = append(q.Options, "7") }, true},
		{"answer not an option", func(q *Question) { q.CorrectAnswer = "42" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion()
			tt.mutate(&q)
			err := q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCorrectAnswerNeverSerialized(t *testing.T) {
	q := validQuestion()

	raw, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), `"4"`) && strings.Contains(string(raw), "correct") {
		t.Errorf("correct answer leaked into JSON: %s", raw)
	}

	student := q.ForStudent()
	rawStudent, err := json.Marshal(student)
	if err != nil {
		t.Fatalf("marshal student view: %v", err)
	}
	if strings.Contains(string(rawStudent), "correct_answer") || strings.Contains(string(rawStudent), "explanation") {
		t.Errorf("grading fields leaked into student view: %s", rawStudent)
	}
}

func TestParseSection(t *testing.T) {
	for _, s := range Sections {
		got, err := ParseSection(string(s))
		if err != nil || got != s {
			t.Errorf("ParseSection(%q) = %v, %v", s, got, err)
		}
	}

	for _, raw := range []string{"", "quantitative", "Math", "programming "} {
		if _, err := ParseSection(raw); err == nil {
			t.Errorf("ParseSection(%q) should fail", raw)
		}
	}
}

func TestScope(t *testing.T) {
	if !GlobalScope.IsGlobal() {
		t.Error("GlobalScope.IsGlobal() = false")
	}

	owner := uuid.New()
	scope := PrivateScope(owner)
	if scope.IsGlobal() {
		t.Error("PrivateScope(...).IsGlobal() = true")
	}
	if scope.OwnerID == nil || *scope.OwnerID != owner {
		t.Errorf("PrivateScope owner = %v, want %s", scope.OwnerID, owner)
	}
}

func TestTermination(t *testing.T) {
	if TerminationNormal.Malpractice() {
		t.Error("normal termination flagged as malpractice")
	}

	term := TerminationMalpractice("Tab Switched")
	if !term.Malpractice() {
		t.Error("malpractice termination not flagged")
	}
	if term.Reason != "Tab Switched" {
		t.Errorf("Reason = %q, want %q", term.Reason, "Tab Switched")
	}
}
