package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sesaco/internal/catalog"
	companymodels "sesaco/internal/company/models"
	"sesaco/internal/submission/models"
)

var resultLabels = map[models.AnswerValue]string{
	models.AnswerCompliant:     "Cumple",
	models.AnswerNonCompliant:  "No cumple",
	models.AnswerNotApplicable: "No aplica",
	models.AnswerUnanswered:    "Sin responder",
}

func resultLabel(v models.AnswerValue) string {
	if label, ok := resultLabels[v]; ok {
		return label
	}
	return string(v)
}

// WriteXLSX renders the report as a workbook: one row per answer of the most
// recent submission on the Reporte sheet, plus a Resumen sheet with the
// per-section statistics.
func WriteXLSX(w io.Writer, company companymodels.Company, aggregate AggregateReport, cat *catalog.Catalog) error {
	f := excelize.NewFile()
	defer f.Close()

	const reportSheet = "Reporte"
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Sección", "Categoría", "Pregunta", "Normativa", "Resultado", "Observaciones"}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, answer := range aggregate.MostRecentSubmission.Answers {
		question, regulation := answer.QuestionID, ""
		sectionTitle := cat.SectionTitle(answer.Section)
		if entry, ok := cat.Lookup(answer.QuestionID); ok {
			question, regulation = entry.Question.Question, entry.Regulation
		}
		row := []any{
			answer.Section,
			sectionTitle,
			question,
			regulation,
			resultLabel(answer.Response),
			answer.Notes,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	const summarySheet = "Resumen"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	meta := [][]any{
		{"Empresa", company.BusinessName},
		{"RUC", company.RUC},
		{"Total verificaciones", aggregate.TotalVerifications},
		{"Cumplimiento general (%)", aggregate.OverallCompliancePercentage},
	}
	for i, row := range meta {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return fmt.Errorf("write summary meta: %w", err)
		}
	}
	statsHeader := []any{"Sección", "Total", "Cumple", "No cumple", "No aplica", "Sin responder", "Cumplimiento (%)"}
	if err := f.SetSheetRow(summarySheet, "A6", &statsHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, key := range aggregate.SectionKeys() {
		stats := aggregate.Sections[key]
		row := []any{
			cat.SectionTitle(key),
			stats.Total,
			stats.Compliant,
			stats.NonCompliant,
			stats.NotApplicable,
			stats.Unanswered,
			stats.CompliancePercentage(),
		}
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+7), &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
