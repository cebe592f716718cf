// Package store provides the tabular record layer every manager is built on:
// a Sheet is the substrate (one named table of ordered string rows under a
// fixed header row), a RecordStore adds header-keyed records, generated IDs
// and the generic list/find/append/update/delete operations.
package store

import (
	"errors"
	"fmt"

	"coachdesk-backend/apperr"
)

// Row holds one data row's cells in header order.
type Row []string

// Record is a header-name-keyed view of one row.
type Record map[string]string

// ErrSheetMissing is returned by substrates when a sheet has not been
// initialized. The record store wraps it as a configuration error.
var ErrSheetMissing = errors.New("sheet not initialized")

// ErrRowOutOfRange is returned for writes or deletes past the last data row.
var ErrRowOutOfRange = errors.New("row index out of range")

// Sheet is the tabular substrate contract. Row indexes are zero-based
// positions within the ListRows order; column order and header names are part
// of each sheet's schema and must match exactly for round-trip correctness.
type Sheet interface {
	ListRows(name string) ([]Row, error)
	AppendRow(name string, row Row) error
	WriteRow(name string, index int, row Row) error
	DeleteRow(name string, index int) error
}

// Definer is implemented by substrates that persist sheet definitions; the
// init command uses it to create the five tables.
type Definer interface {
	Define(name string, headers []string) error
}

// Schema describes one entity's table. Headers[0] must be the ID column.
type Schema struct {
	Sheet    string
	IDPrefix string
	Headers  []string
}

func (s Schema) IDField() string { return s.Headers[0] }

func sheetError(name string, err error) error {
	if errors.Is(err, ErrSheetMissing) {
		return &apperr.Error{
			Kind: apperr.KindConfiguration,
			Msg:  fmt.Sprintf("sheet %q not initialized, run with -init first", name),
			Err:  err,
		}
	}
	return err
}
