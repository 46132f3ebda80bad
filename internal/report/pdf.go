package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"sesaco/internal/catalog"
	companymodels "sesaco/internal/company/models"
	"sesaco/internal/submission/models"
)

// Banding thresholds for the executive summary, matching how reports have
// always been read: >=80 excellent, >=50 moderate, below that low.
func evaluation(percentage float64) string {
	switch {
	case percentage >= 80:
		return "EXCELENTE"
	case percentage >= 50:
		return "MODERADO"
	default:
		return "BAJO"
	}
}

// WritePDF renders the report as the inspection document: title and company
// block, executive summary with the overall banding, per-section detail with
// the narrow percentage and the identified non-conformities, and a signature
// page.
func WritePDF(w io.Writer, company companymodels.Company, aggregate AggregateReport, cat *catalog.Catalog, inspectorName string, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("REPORTE DE VERIFICACIÓN DE SEGURIDAD INDUSTRIAL"), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, tr("Empresa: "+company.BusinessName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("RUC: "+company.RUC), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, tr("Fecha de generación: "+generatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Resumen Ejecutivo"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 8, tr(fmt.Sprintf("Cumplimiento general: %.2f%%", aggregate.OverallCompliancePercentage)), "", "L", false)
	pdf.CellFormat(0, 8, tr("Evaluación: "+evaluation(aggregate.OverallCompliancePercentage)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Total de verificaciones: %d", aggregate.TotalVerifications)), "", 1, "L", false, 0, "")
	if aggregate.MalformedAnswers > 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 8, tr(fmt.Sprintf("Advertencia: %d respuestas no reconocidas tratadas como sin responder", aggregate.MalformedAnswers)), "", 1, "L", false, 0, "")
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Detalle por Área"), "", 1, "L", false, 0, "")

	for _, key := range aggregate.SectionKeys() {
		stats := aggregate.Sections[key]
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr("Área: "+cat.SectionTitle(key)), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(90, 8, tr(fmt.Sprintf("Porcentaje de cumplimiento: %.1f%%", stats.CompliancePercentage())), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 8, tr(fmt.Sprintf("No conformidades: %d", stats.NonCompliant)), "", 1, "L", false, 0, "")

		nonConformities := sectionNonConformities(key, aggregate)
		if len(nonConformities) == 0 {
			continue
		}
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 8, tr("No conformidades identificadas:"), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		for _, nc := range nonConformities {
			question, regulation := nc.QuestionID, ""
			if entry, ok := cat.Lookup(nc.QuestionID); ok {
				question, regulation = entry.Question.Question, entry.Regulation
			}
			pdf.MultiCell(0, 6, tr("- "+question), "", "L", false)
			if regulation != "" {
				pdf.MultiCell(0, 6, tr("  Normativa: "+regulation), "", "L", false)
			}
			if nc.Notes != "" {
				pdf.MultiCell(0, 6, tr("  Observaciones: "+nc.Notes), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, tr("Firma y Sello del Inspector"), "", 1, "L", false, 0, "")
	pdf.Ln(20)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(80, 10, tr("Nombre: "+inspectorName), "", 1, "L", false, 0, "")
	pdf.CellFormat(80, 10, tr("Cédula: _________________________"), "", 1, "L", false, 0, "")
	pdf.CellFormat(80, 10, tr("Firma:  _________________________"), "", 1, "L", false, 0, "")
	pdf.Ln(20)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 10, tr("Documento generado automáticamente por el sistema SESACO - Seguridad Industrial S.A."), "", 0, "C", false, 0, "")

	return pdf.Output(w)
}

// sectionNonConformities is NonConformities applied to an already computed
// report, so the PDF does not re-aggregate per section.
func sectionNonConformities(section string, aggregate AggregateReport) []models.Answer {
	var out []models.Answer
	for _, a := range aggregate.MostRecentSubmission.Answers {
		if a.Section == section && a.Response == models.AnswerNonCompliant {
			out = append(out, a)
		}
	}
	return out
}
