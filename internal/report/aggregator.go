// Package report computes compliance statistics from a company's submission
// history and renders them as JSON, PDF, and spreadsheet artifacts.
package report

import (
	"math"

	"sesaco/internal/submission/models"
	dErrors "sesaco/pkg/domain-errors"
)

// SectionStatistics tallies one checklist section across every submission.
// Total always equals Compliant + NonCompliant + NotApplicable + Unanswered.
type SectionStatistics struct {
	Total         int `json:"total"`
	Compliant     int `json:"compliant"`
	NonCompliant  int `json:"non_compliant"`
	NotApplicable int `json:"not_applicable"`
	Unanswered    int `json:"unanswered"`
}

// CompliancePercentage is the narrow per-section ratio used for section
// display and ranking: not-applicable questions are excluded from the
// denominator. When nothing in the section is applicable the percentage is
// 0 by definition, never a division error.
//
// This deliberately differs from the overall percentage, whose denominator
// keeps not-applicable and unanswered questions. The two figures were always
// computed this way and reports have been read against both, so the
// asymmetry is preserved.
func (s SectionStatistics) CompliancePercentage() float64 {
	applicable := s.Total - s.NotApplicable
	if applicable <= 0 {
		return 0
	}
	return round2(float64(s.Compliant) / float64(applicable) * 100)
}

// AggregateReport is the computed statistics for one company. It is derived
// fresh on every request and never stored.
type AggregateReport struct {
	TotalVerifications          int                          `json:"total_verifications"`
	OverallCompliancePercentage float64                      `json:"overall_compliance_percentage"`
	Sections                    map[string]SectionStatistics `json:"sections"`
	MostRecentSubmission        models.Submission            `json:"most_recent_submission"`
	MalformedAnswers            int                          `json:"malformed_answers"`

	// sectionOrder records section keys in first-encounter order so
	// renderers can walk sections deterministically.
	sectionOrder []string
}

// SectionKeys returns the section keys in the order they were first seen
// across the submission history.
func (r AggregateReport) SectionKeys() []string {
	keys := make([]string, len(r.sectionOrder))
	copy(keys, r.sectionOrder)
	return keys
}

// Compute aggregates a company's submissions into one report.
//
// The submission list must be non-empty; an empty list fails with a no_data
// error so callers surface "complete at least one verification" instead of a
// zero-filled report. Section keys are taken from the answers as-is: an
// unknown key simply opens a new bucket. Answer tokens outside the closed
// set degrade to unanswered and are counted in MalformedAnswers.
func Compute(submissions []models.Submission) (AggregateReport, error) {
	if len(submissions) == 0 {
		return AggregateReport{}, dErrors.New(dErrors.CodeNoData, "no verifications recorded for this company")
	}

	report := AggregateReport{
		TotalVerifications: len(submissions),
		Sections:           make(map[string]SectionStatistics),
	}

	totalQuestions := 0
	totalCompliant := 0
	for i, submission := range submissions {
		// Later input order wins timestamp ties.
		if i == 0 || !submission.SubmittedAt.Before(report.MostRecentSubmission.SubmittedAt) {
			report.MostRecentSubmission = submission
		}
		for _, answer := range submission.Answers {
			stats, ok := report.Sections[answer.Section]
			if !ok {
				report.sectionOrder = append(report.sectionOrder, answer.Section)
			}
			stats.Total++
			response, recognized := models.ParseAnswer(string(answer.Response))
			if !recognized {
				report.MalformedAnswers++
			}
			switch response {
			case models.AnswerCompliant:
				stats.Compliant++
				totalCompliant++
			case models.AnswerNonCompliant:
				stats.NonCompliant++
			case models.AnswerNotApplicable:
				stats.NotApplicable++
			default:
				stats.Unanswered++
			}
			report.Sections[answer.Section] = stats
			totalQuestions++
		}
	}

	// The overall denominator includes not-applicable and unanswered
	// questions, unlike the per-section figure.
	if totalQuestions > 0 {
		report.OverallCompliancePercentage = round2(float64(totalCompliant) / float64(totalQuestions) * 100)
	}
	return report, nil
}

// NonConformities returns the non-compliant answers of the given section
// from the most recent submission only, in their original question order.
func NonConformities(section string, submissions []models.Submission) []models.Answer {
	report, err := Compute(submissions)
	if err != nil {
		return nil
	}
	var out []models.Answer
	for _, answer := range report.MostRecentSubmission.Answers {
		if answer.Section == section && answer.Response == models.AnswerNonCompliant {
			out = append(out, answer)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
