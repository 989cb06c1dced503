package report

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"helpdesk_client/internal/models"
)

func TestMergeCategoriesFoldsPrinterIntoHardware(t *testing.T) {
	rows := []models.CategoryCount{
		{CategoryID: 1, Count: 3}, // hardware
		{CategoryID: 4, Count: 2}, // impressora, legacy
		{CategoryID: 3, Count: 4}, // rede
		{CategoryID: 99, Count: 1},
	}

	got := MergeCategories(rows)
	want := []CategoryTotal{
		{Name: "hardware", Count: 5},
		{Name: "rede", Count: 4},
		{Name: "outros", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged rows = %#v, want %#v", got, want)
	}
}

func TestMergeCategoriesTieBreaksByName(t *testing.T) {
	rows := []models.CategoryCount{
		{CategoryID: 2, Count: 2}, // software
		{CategoryID: 3, Count: 2}, // rede
	}
	got := MergeCategories(rows)
	if got[0].Name != "rede" || got[1].Name != "software" {
		t.Fatalf("equal counts must order by name: %#v", got)
	}
}

func TestExportPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relatorio.pdf")

	r := models.Report{
		Period:  models.ReportPeriod{Start: "2025-01-01", End: "2025-02-01"},
		Metrics: models.ReportMetrics{Total: 10, Open: 4, Resolved: 6},
	}
	categories := []CategoryTotal{{Name: "hardware", Count: 7}, {Name: "rede", Count: 3}}

	if err := ExportPDF(path, r, categories); err != nil {
		t.Fatalf("export: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("exported PDF is empty")
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2025-01-31T08:00:00Z": "31/01/2025",
		"2025-01-31":           "31/01/2025",
		"":                     "-",
	}
	for in, want := range cases {
		if got := formatDate(in); got != want {
			t.Fatalf("formatDate(%q) = %q, want %q", in, got, want)
		}
	}
}
