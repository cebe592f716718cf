package store

import "strconv"

// SettingsSchema backs the key-value configuration table. The key column
// doubles as the primary key; there is no generated ID.
var SettingsSchema = Schema{
	Sheet:   "settings",
	Headers: []string{"Key", "Value", "Description"},
}

// SettingsStore provides get-with-default reads and upsert writes over the
// settings sheet.
type SettingsStore struct {
	sheet Sheet
}

func NewSettingsStore(sheet Sheet) *SettingsStore {
	return &SettingsStore{sheet: sheet}
}

// Get returns the value for key, or def when the key is missing or the sheet
// itself is unavailable. Configuration reads never fail a caller.
func (s *SettingsStore) Get(key, def string) string {
	rows, err := s.sheet.ListRows(SettingsSchema.Sheet)
	if err != nil {
		return def
	}
	for _, row := range rows {
		if len(row) >= 2 && row[0] == key {
			return row[1]
		}
	}
	return def
}

func (s *SettingsStore) GetInt(key string, def int) int {
	v := s.Get(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Put updates the value for key in place, or appends a new row when the key
// does not exist yet.
func (s *SettingsStore) Put(key, value, description string) error {
	rows, err := s.sheet.ListRows(SettingsSchema.Sheet)
	if err != nil {
		return sheetError(SettingsSchema.Sheet, err)
	}
	for i, row := range rows {
		if len(row) >= 1 && row[0] == key {
			desc := description
			if desc == "" && len(row) >= 3 {
				desc = row[2]
			}
			return s.sheet.WriteRow(SettingsSchema.Sheet, i, Row{key, value, desc})
		}
	}
	return s.sheet.AppendRow(SettingsSchema.Sheet, Row{key, value, description})
}

// All returns every setting row as a record.
func (s *SettingsStore) All() ([]Record, error) {
	rows, err := s.sheet.ListRows(SettingsSchema.Sheet)
	if err != nil {
		return nil, sheetError(SettingsSchema.Sheet, err)
	}
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || row[0] == "" {
			continue
		}
		rec := Record{}
		for i, h := range SettingsSchema.Headers {
			if i < len(row) {
				rec[h] = row[i]
			}
		}
		out = append(out, rec)
	}
	return out, nil
}
