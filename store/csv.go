package store

import (
	"encoding/csv"
	"io"
)

// ImportCSV appends the rows of a CSV stream to a sheet. When hasHeader is
// true the first line is skipped; imports are additive and never clear
// existing data. Returns the number of rows imported.
func ImportCSV(sheet Sheet, name string, r io.Reader, hasHeader bool) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	count := 0
	first := true
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
		if first && hasHeader {
			first = false
			continue
		}
		first = false
		if err := sheet.AppendRow(name, Row(fields)); err != nil {
			return count, sheetError(name, err)
		}
		count++
	}
	return count, nil
}
