package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Scope identifies which bank partition a question belongs to and which
// partition a session's questions were drawn from. A session is always
// graded against the scope it was sampled from.
type Scope struct {
	// OwnerID is the HOD whose private bank this scope selects.
	// nil selects the shared global bank.
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

// GlobalScope selects the shared question bank used by mock tests.
var GlobalScope = Scope{}

// PrivateScope selects a HOD's private question bank.
func PrivateScope(ownerID uuid.UUID) Scope {
	return Scope{OwnerID: &ownerID}
}

// IsGlobal reports whether the scope selects the global bank.
func (s Scope) IsGlobal() bool { return s.OwnerID == nil }

// Question represents a single bank question. Immutable once created;
// rows are only removed by bulk bank-management operations.
type Question struct {
	ID           uuid.UUID `json:"id"`
	Scope        Scope     `json:"-"`
	Section      Section   `json:"section"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
	// CorrectAnswer is the authoritative answer string. Never serialized
	// to students; the `json:"-"` tag is the last line of defense and
	// handlers additionally project through QuestionForStudent.
	CorrectAnswer string    `json:"-"`
	Explanation   string    `json:"explanation,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuestionForStudent is a question as rendered into an exam paper,
// with the correct answer and explanation stripped.
type QuestionForStudent struct {
	ID           uuid.UUID `json:"id"`
	Section      Section   `json:"section"`
	QuestionText string    `json:"question_text"`
	Options      []string  `json:"options"`
}

// ForStudent strips grading-only fields from a question.
func (q Question) ForStudent() QuestionForStudent {
	return QuestionForStudent{
		ID:           q.ID,
		Section:      q.Section,
		QuestionText: q.QuestionText,
		Options:      q.Options,
	}
}

// Validate enforces the construction-time invariants of a question record:
// a known section, exactly four options, and a correct answer that is one
// of the options.
func (q Question) Validate() error {
	if !q.Section.Valid() {
		return fmt.Errorf("unknown section %q", q.Section)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("question must have exactly %d options, got %d", OptionCount, len(q.Options))
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("correct answer is not one of the options")
}

// AddQuestionRequest is the payload for adding a question to a bank.
type AddQuestionRequest struct {
	Section       string   `json:"section" binding:"required,oneof=Quantitative Reasoning English Programming DSA"`
	QuestionText  string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options       []string `json:"options" binding:"required,len=4,dive,required,max=500"`
	CorrectAnswer string   `json:"correct_answer" binding:"required,max=500"`
	Explanation   string   `json:"explanation" binding:"required,max=2000"`
}

// ReplaceQuestionsRequest is the payload for bulk replacing a bank.
type ReplaceQuestionsRequest struct {
	Questions []AddQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}
