package store

import (
	"coachdesk-backend/utils"
)

// RecordStore implements the generic table operations for one entity schema.
// Lookups are linear scans; at a few hundred rows per sheet that is the
// intended trade-off. There is no locking, so two concurrent read-modify-write
// updates against the same row can lose one of them (single-operator usage).
type RecordStore struct {
	sheet  Sheet
	schema Schema

	// generateID is swappable in tests.
	generateID func(prefix string) string
}

func NewRecordStore(sheet Sheet, schema Schema) *RecordStore {
	return &RecordStore{
		sheet:      sheet,
		schema:     schema,
		generateID: utils.GenerateUniqueID,
	}
}

func (rs *RecordStore) Schema() Schema { return rs.schema }

func (rs *RecordStore) rowToRecord(row Row) Record {
	rec := make(Record, len(rs.schema.Headers))
	for i, h := range rs.schema.Headers {
		if i < len(row) {
			rec[h] = row[i]
		} else {
			rec[h] = ""
		}
	}
	return rec
}

// recordToRow serializes a record in header order, mapping missing fields to
// the empty string.
func (rs *RecordStore) recordToRow(rec Record) Row {
	row := make(Row, len(rs.schema.Headers))
	for i, h := range rs.schema.Headers {
		row[i] = rec[h]
	}
	return row
}

// ListAll returns every non-empty row in original order, optionally filtered.
// Rows whose ID cell is blank are skipped.
func (rs *RecordStore) ListAll(filter func(Record) bool) ([]Record, error) {
	rows, err := rs.sheet.ListRows(rs.schema.Sheet)
	if err != nil {
		return nil, sheetError(rs.schema.Sheet, err)
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rec := rs.rowToRecord(row)
		if filter == nil || filter(rec) {
			records = append(records, rec)
		}
	}
	return records, nil
}

// FindOneBy returns the first record whose field equals value, or nil when
// there is none. Absence is not an error here; callers decide.
func (rs *RecordStore) FindOneBy(field, value string) (Record, error) {
	rows, err := rs.sheet.ListRows(rs.schema.Sheet)
	if err != nil {
		return nil, sheetError(rs.schema.Sheet, err)
	}
	idx := rs.fieldIndex(field)
	if idx < 0 {
		return nil, nil
	}
	for _, row := range rows {
		if len(row) > idx && row[idx] == value && row[0] != "" {
			return rs.rowToRecord(row), nil
		}
	}
	return nil, nil
}

// FindByID is FindOneBy over the schema's ID column.
func (rs *RecordStore) FindByID(id string) (Record, error) {
	return rs.FindOneBy(rs.schema.IDField(), id)
}

// Append generates an ID, writes the full row in header order and returns the
// stored record.
func (rs *RecordStore) Append(rec Record) (Record, error) {
	stored := make(Record, len(rec)+1)
	for k, v := range rec {
		stored[k] = v
	}
	stored[rs.schema.IDField()] = rs.generateID(rs.schema.IDPrefix)
	if err := rs.sheet.AppendRow(rs.schema.Sheet, rs.recordToRow(stored)); err != nil {
		return nil, sheetError(rs.schema.Sheet, err)
	}
	return stored, nil
}

// UpdateBy merges partial over the stored record (shallow, partial wins),
// re-serializes the full row and writes it back in place. The ID is immutable.
// Returns nil when the ID does not exist.
func (rs *RecordStore) UpdateBy(id string, partial Record) (Record, error) {
	rows, err := rs.sheet.ListRows(rs.schema.Sheet)
	if err != nil {
		return nil, sheetError(rs.schema.Sheet, err)
	}
	for i, row := range rows {
		if len(row) == 0 || row[0] != id {
			continue
		}
		merged := rs.rowToRecord(row)
		for k, v := range partial {
			merged[k] = v
		}
		merged[rs.schema.IDField()] = id
		if err := rs.sheet.WriteRow(rs.schema.Sheet, i, rs.recordToRow(merged)); err != nil {
			return nil, sheetError(rs.schema.Sheet, err)
		}
		return merged, nil
	}
	return nil, nil
}

// DeleteBy physically removes the row. Returns false when the ID is absent.
func (rs *RecordStore) DeleteBy(id string) (bool, error) {
	rows, err := rs.sheet.ListRows(rs.schema.Sheet)
	if err != nil {
		return false, sheetError(rs.schema.Sheet, err)
	}
	for i, row := range rows {
		if len(row) > 0 && row[0] == id {
			if err := rs.sheet.DeleteRow(rs.schema.Sheet, i); err != nil {
				return false, sheetError(rs.schema.Sheet, err)
			}
			return true, nil
		}
	}
	return false, nil
}

func (rs *RecordStore) fieldIndex(field string) int {
	for i, h := range rs.schema.Headers {
		if h == field {
			return i
		}
	}
	return -1
}
