package store

import (
	"errors"
	"testing"
)

func TestMemorySheet_UndefinedReturnsErrSheetMissing(t *testing.T) {
	m := NewMemorySheet()

	if _, err := m.ListRows("ghost"); !errors.Is(err, ErrSheetMissing) {
		t.Fatalf("list: expected ErrSheetMissing, got %v", err)
	}
	if err := m.AppendRow("ghost", Row{"x"}); !errors.Is(err, ErrSheetMissing) {
		t.Fatalf("append: expected ErrSheetMissing, got %v", err)
	}
}

func TestMemorySheet_WriteAndDeleteBounds(t *testing.T) {
	m := NewMemorySheet()
	m.Define("t", []string{"A"})
	m.AppendRow("t", Row{"one"})

	if err := m.WriteRow("t", 1, Row{"x"}); !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}
	if err := m.DeleteRow("t", -1); !errors.Is(err, ErrRowOutOfRange) {
		t.Fatalf("expected out of range, got %v", err)
	}

	if err := m.WriteRow("t", 0, Row{"two"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, _ := m.ListRows("t")
	if rows[0][0] != "two" {
		t.Fatalf("write not applied: %v", rows)
	}

	if err := m.DeleteRow("t", 0); err != nil {
		t.Fatalf("delete: %v", err)
	}
	rows, _ = m.ListRows("t")
	if len(rows) != 0 {
		t.Fatalf("expected empty, got %v", rows)
	}
}

func TestMemorySheet_ListRowsCopiesOut(t *testing.T) {
	m := NewMemorySheet()
	m.Define("t", []string{"A"})
	m.AppendRow("t", Row{"original"})

	rows, _ := m.ListRows("t")
	rows[0][0] = "mutated"

	again, _ := m.ListRows("t")
	if again[0][0] != "original" {
		t.Fatal("caller mutation leaked into the sheet")
	}
}

func TestMemorySheet_DefineIsIdempotent(t *testing.T) {
	m := NewMemorySheet()
	m.Define("t", []string{"A", "B"})
	m.AppendRow("t", Row{"1", "2"})
	m.Define("t", []string{"A", "B"})

	rows, err := m.ListRows("t")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("redefine dropped data: %v", rows)
	}
}
