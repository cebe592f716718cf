package store

import (
	"errors"
	"testing"

	"coachdesk-backend/apperr"
)

var testSchema = Schema{
	Sheet:    "widgets",
	IDPrefix: "WD",
	Headers:  []string{"Widget ID", "Name", "Color"},
}

func newTestStore(t *testing.T) (*RecordStore, *MemorySheet) {
	t.Helper()
	sheet := NewMemorySheet()
	if err := sheet.Define(testSchema.Sheet, testSchema.Headers); err != nil {
		t.Fatalf("define: %v", err)
	}
	return NewRecordStore(sheet, testSchema), sheet
}

func TestRecordStore_AppendAssignsID(t *testing.T) {
	rs, _ := newTestStore(t)

	stored, err := rs.Append(Record{"Name": "alpha", "Color": "red"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	id := stored["Widget ID"]
	if len(id) != 15 || id[:2] != "WD" {
		t.Fatalf("expected generated WD id, got %q", id)
	}

	found, err := rs.FindByID(id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found == nil || found["Name"] != "alpha" || found["Color"] != "red" {
		t.Fatalf("round trip mismatch: %v", found)
	}
}

func TestRecordStore_FindAbsentIsNil(t *testing.T) {
	rs, _ := newTestStore(t)

	found, err := rs.FindByID("WD0000000000000")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != nil {
		t.Fatalf("expected nil for absent id, got %v", found)
	}
}

func TestRecordStore_UpdatePartialKeepsOtherFields(t *testing.T) {
	rs, _ := newTestStore(t)

	stored, _ := rs.Append(Record{"Name": "alpha", "Color": "red"})
	id := stored["Widget ID"]

	updated, err := rs.UpdateBy(id, Record{"Color": "blue"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated["Name"] != "alpha" || updated["Color"] != "blue" {
		t.Fatalf("merge mismatch: %v", updated)
	}
	if updated["Widget ID"] != id {
		t.Fatalf("id changed: %q", updated["Widget ID"])
	}
}

func TestRecordStore_UpdateCannotChangeID(t *testing.T) {
	rs, _ := newTestStore(t)

	stored, _ := rs.Append(Record{"Name": "alpha"})
	id := stored["Widget ID"]

	updated, err := rs.UpdateBy(id, Record{"Widget ID": "WD9999999999999"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated["Widget ID"] != id {
		t.Fatalf("id should be immutable, got %q", updated["Widget ID"])
	}
}

func TestRecordStore_UpdateAbsentIsNil(t *testing.T) {
	rs, _ := newTestStore(t)

	updated, err := rs.UpdateBy("WD0000000000000", Record{"Name": "x"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil for absent id, got %v", updated)
	}
}

func TestRecordStore_DeleteAbsentKeepsRows(t *testing.T) {
	rs, sheet := newTestStore(t)

	rs.Append(Record{"Name": "alpha"})
	rs.Append(Record{"Name": "beta"})

	ok, err := rs.DeleteBy("WD0000000000000")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("expected false for absent id")
	}

	rows, _ := sheet.ListRows(testSchema.Sheet)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows untouched, got %d", len(rows))
	}
}

func TestRecordStore_ListSkipsBlankIDRows(t *testing.T) {
	rs, sheet := newTestStore(t)

	rs.Append(Record{"Name": "alpha"})
	// A manually blanked row, as a spreadsheet edit could leave behind.
	sheet.AppendRow(testSchema.Sheet, Row{"", "ghost", ""})
	rs.Append(Record{"Name": "beta"})

	records, err := rs.ListAll(nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, rec := range records {
		if rec["Name"] == "ghost" {
			t.Fatal("blank-ID row leaked into results")
		}
	}
}

func TestRecordStore_UndefinedSheetIsConfigurationError(t *testing.T) {
	rs := NewRecordStore(NewMemorySheet(), testSchema)

	_, err := rs.ListAll(nil)
	if !apperr.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !errors.Is(err, ErrSheetMissing) {
		t.Fatalf("expected ErrSheetMissing in chain, got %v", err)
	}
}
