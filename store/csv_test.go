package store

import (
	"strings"
	"testing"
)

func TestImportCSV_AppendsAfterExistingRows(t *testing.T) {
	sheet := NewMemorySheet()
	sheet.Define("clients", []string{"Client ID", "Name"})
	sheet.AppendRow("clients", Row{"CL1", "existing"})

	input := "Client ID,Name\nCL2,imported one\nCL3,imported two\n"
	count, err := ImportCSV(sheet, "clients", strings.NewReader(input), true)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 imported rows, got %d", count)
	}

	rows, _ := sheet.ListRows("clients")
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows total, got %d", len(rows))
	}
	if rows[0][1] != "existing" {
		t.Fatalf("existing row displaced: %v", rows[0])
	}
}

func TestImportCSV_RaggedRowsAccepted(t *testing.T) {
	sheet := NewMemorySheet()
	sheet.Define("clients", []string{"Client ID", "Name", "Notes"})

	input := "CL1,short\nCL2,full,with notes\n"
	count, err := ImportCSV(sheet, "clients", strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}
}
