package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"helpdesk_client/internal/models"
)

// ExportPDF writes a tabular summary of the report to path: title,
// covered period, the three KPI counters, and the per-category
// breakdown.
func ExportPDF(path string, r models.Report, categories []CategoryTotal) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 158, 127)
	pdf.CellFormat(0, 14, tr("Relatório Executivo de TI"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(60, 60, 60)
	period := fmt.Sprintf("Período: %s até %s", formatDate(r.Period.Start), formatDate(r.Period.End))
	pdf.CellFormat(0, 8, tr(period), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// KPI row.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetTextColor(30, 41, 59)
	for _, header := range []string{"Total Chamados", "Em Aberto", "Resolvidos"} {
		pdf.CellFormat(60, 9, tr(header), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 14)
	for _, value := range []int{r.Metrics.Total, r.Metrics.Open, r.Metrics.Resolved} {
		pdf.CellFormat(60, 11, fmt.Sprintf("%d", value), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(16)

	// Category breakdown.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Detalhamento por Categoria"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(0, 158, 127)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(120, 9, "Categoria", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 9, "Quantidade", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(30, 41, 59)
	fill := false
	for _, row := range categories {
		if fill {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(120, 8, tr(capitalize(row.Name)), "1", 0, "L", true, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", row.Count), "1", 1, "L", true, 0, "")
		fill = !fill
	}

	return pdf.OutputFileAndClose(path)
}

// formatDate renders an ISO timestamp as dd/mm/yyyy, falling back to
// the raw date prefix when parsing fails.
func formatDate(iso string) string {
	if iso == "" {
		return "-"
	}
	if t, err := time.Parse(time.RFC3339, iso); err == nil {
		return t.Format("02/01/2006")
	}
	if len(iso) >= 10 {
		if t, err := time.Parse("2006-01-02", iso[:10]); err == nil {
			return t.Format("02/01/2006")
		}
		return iso[:10]
	}
	return iso
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
