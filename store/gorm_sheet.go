package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SheetDef records that a sheet exists and what its header row is. Created by
// the init command; its absence turns every access into a configuration error.
type SheetDef struct {
	Name    string `gorm:"primaryKey"`
	Headers datatypes.JSON
}

// SheetRow is one data row: the cells are a JSON array of strings kept in
// header order. Position preserves the original append order across deletes.
type SheetRow struct {
	ID       uint   `gorm:"primaryKey"`
	Sheet    string `gorm:"index;not null"`
	Position int    `gorm:"not null"`
	Cells    datatypes.JSON
}

// GormSheet is the database-backed substrate: one generic row table plays the
// role of the spreadsheet, each named sheet a slice of it.
type GormSheet struct {
	db *gorm.DB
}

func NewGormSheet(db *gorm.DB) *GormSheet {
	return &GormSheet{db: db}
}

func (g *GormSheet) Migrate() error {
	return g.db.AutoMigrate(&SheetDef{}, &SheetRow{})
}

func (g *GormSheet) Define(name string, headers []string) error {
	raw, err := json.Marshal(headers)
	if err != nil {
		return err
	}
	var existing SheetDef
	err = g.db.First(&existing, "name = ?", name).Error
	if err == nil {
		return nil // already defined, keep existing data
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return g.db.Create(&SheetDef{Name: name, Headers: raw}).Error
}

func (g *GormSheet) ensureDefined(name string) error {
	var def SheetDef
	if err := g.db.First(&def, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSheetMissing
		}
		return err
	}
	return nil
}

func (g *GormSheet) ListRows(name string) ([]Row, error) {
	if err := g.ensureDefined(name); err != nil {
		return nil, err
	}
	var stored []SheetRow
	if err := g.db.Where("sheet = ?", name).Order("position").Find(&stored).Error; err != nil {
		return nil, err
	}
	rows := make([]Row, len(stored))
	for i, sr := range stored {
		var cells []string
		if err := json.Unmarshal(sr.Cells, &cells); err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", name, sr.Position, err)
		}
		rows[i] = cells
	}
	return rows, nil
}

func (g *GormSheet) AppendRow(name string, row Row) error {
	if err := g.ensureDefined(name); err != nil {
		return err
	}
	raw, err := json.Marshal([]string(row))
	if err != nil {
		return err
	}
	var maxPos int
	if err := g.db.Model(&SheetRow{}).Where("sheet = ?", name).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
		return err
	}
	return g.db.Create(&SheetRow{Sheet: name, Position: maxPos + 1, Cells: raw}).Error
}

func (g *GormSheet) WriteRow(name string, index int, row Row) error {
	sr, err := g.nthRow(name, index)
	if err != nil {
		return err
	}
	raw, err := json.Marshal([]string(row))
	if err != nil {
		return err
	}
	return g.db.Model(&SheetRow{}).Where("id = ?", sr.ID).Update("cells", raw).Error
}

func (g *GormSheet) DeleteRow(name string, index int) error {
	sr, err := g.nthRow(name, index)
	if err != nil {
		return err
	}
	return g.db.Delete(&SheetRow{}, sr.ID).Error
}

func (g *GormSheet) nthRow(name string, index int) (*SheetRow, error) {
	if err := g.ensureDefined(name); err != nil {
		return nil, err
	}
	if index < 0 {
		return nil, ErrRowOutOfRange
	}
	var sr SheetRow
	err := g.db.Where("sheet = ?", name).Order("position").
		Offset(index).Limit(1).First(&sr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRowOutOfRange
	}
	if err != nil {
		return nil, err
	}
	return &sr, nil
}
