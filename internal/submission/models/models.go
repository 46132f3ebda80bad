package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnswerValue is the closed set of verification outcomes. Anything outside
// the set degrades to AnswerUnanswered; it never fails a submission or a
// report.
type AnswerValue string

const (
	AnswerCompliant     AnswerValue = "compliant"
	AnswerNonCompliant  AnswerValue = "non_compliant"
	AnswerNotApplicable AnswerValue = "not_applicable"
	AnswerUnanswered    AnswerValue = "unanswered"
)

// ParseAnswer maps a raw token to the closed answer set. The boolean reports
// whether the token was recognized; unrecognized tokens come back as
// AnswerUnanswered so callers can count the degradation.
func ParseAnswer(raw string) (AnswerValue, bool) {
	switch AnswerValue(strings.TrimSpace(strings.ToLower(raw))) {
	case AnswerCompliant:
		return AnswerCompliant, true
	case AnswerNonCompliant:
		return AnswerNonCompliant, true
	case AnswerNotApplicable:
		return AnswerNotApplicable, true
	case AnswerUnanswered, "":
		return AnswerUnanswered, true
	default:
		return AnswerUnanswered, false
	}
}

// Answer is one verified checklist question.
type Answer struct {
	QuestionID string      `json:"question_id"`
	Section    string      `json:"section"`
	Response   AnswerValue `json:"response"`
	Notes      string      `json:"notes,omitempty"`
}

// Submission is one completed checklist for a company. Answers keep the
// order they were submitted in.
type Submission struct {
	ID              uuid.UUID `json:"id"`
	CompanyRUC      string    `json:"company_ruc"`
	InspectorCedula string    `json:"inspector_cedula"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Answers         []Answer  `json:"answers"`
}
