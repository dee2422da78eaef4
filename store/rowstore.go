package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors for the Row Store.
var (
	// ErrBackendUnavailable wraps any network/auth failure talking to the
	// tabular backend. Never retried; it propagates to the caller.
	ErrBackendUnavailable = errors.New("row store backend unavailable")

	// ErrRowNotFound means the addressed position does not exist.
	ErrRowNotFound = errors.New("row not found")

	// ErrVersionConflict means the row was modified between the caller's
	// FetchAll and its OverwriteRow. The caller's change was not applied.
	ErrVersionConflict = errors.New("row version conflict")
)

// Row is one fixed-width row of a range as seen by a FetchAll. Position and
// Version together address the row for a later overwrite.
type Row struct {
	Position int
	Version  int64
	Cells    []string
}

// RowStore presents named ranges of a shared tabular backend as ordered
// sequences of rows. There are no transactions and no atomic
// read-modify-write: every mutation in this system is FetchAll, locate in
// memory, OverwriteRow, as independent round trips. The version stamp turns
// a racing overwrite into a detectable conflict instead of a silent loss.
type RowStore interface {
	// FetchAll retrieves every row currently in the range, in storage order.
	FetchAll(ctx context.Context, rangeID string) ([]Row, error)

	// Append adds one row at the end of the range. No uniqueness check is
	// made against existing rows.
	Append(ctx context.Context, rangeID string, cells []string) error

	// OverwriteRow replaces the entire row at a position obtained from a
	// prior FetchAll. Fields not carried in cells are lost. The version must
	// be the one read; if the stored version has advanced the write is
	// rejected with ErrVersionConflict.
	OverwriteRow(ctx context.Context, rangeID string, position int, version int64, cells []string) error
}

// sheetRow is the backing table. One row per (range, position); cells are a
// JSON-encoded string array.
type sheetRow struct {
	ID       uint   `gorm:"primaryKey"`
	RangeID  string `gorm:"index:idx_range_position,priority:1;not null"`
	Position int    `gorm:"index:idx_range_position,priority:2;not null"`
	Version  int64  `gorm:"not null;default:1"`
	Cells    string `gorm:"not null"`
}

// TableName specifies the table name for the backing rows
func (sheetRow) TableName() string {
	return "sheet_rows"
}

// TableStore is the gorm-backed RowStore.
type TableStore struct {
	db *gorm.DB
}

// NewTableStore creates a RowStore over the given database handle.
func NewTableStore(db *gorm.DB) *TableStore {
	return &TableStore{db: db}
}

// Migrate creates the backing table if missing.
func (s *TableStore) Migrate() error {
	return s.db.AutoMigrate(&sheetRow{})
}

// FetchAll retrieves every row of the range in position order.
func (s *TableStore) FetchAll(ctx context.Context, rangeID string) ([]Row, error) {
	var records []sheetRow
	err := s.db.WithContext(ctx).
		Where("range_id = ?", rangeID).
		Order("position asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", ErrBackendUnavailable, rangeID, err)
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		cells, err := decodeCells(rec.Cells)
		if err != nil {
			return nil, fmt.Errorf("%w: fetch %s position %d: %v", ErrBackendUnavailable, rangeID, rec.Position, err)
		}
		rows = append(rows, Row{Position: rec.Position, Version: rec.Version, Cells: cells})
	}
	return rows, nil
}

// Append adds one row at the end of the range. Determining the end and
// inserting are two independent round trips; nothing guards the gap.
func (s *TableStore) Append(ctx context.Context, rangeID string, cells []string) error {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&sheetRow{}).
		Where("range_id = ?", rangeID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrBackendUnavailable, rangeID, err)
	}

	encoded, err := encodeCells(cells)
	if err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrBackendUnavailable, rangeID, err)
	}

	rec := sheetRow{
		RangeID:  rangeID,
		Position: int(count),
		Version:  1,
		Cells:    encoded,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("%w: append %s: %v", ErrBackendUnavailable, rangeID, err)
	}
	return nil
}

// OverwriteRow replaces the row at position, guarded by the version the
// caller read. A stale version is rejected with ErrVersionConflict; of two
// racing writers exactly one lands in full.
func (s *TableStore) OverwriteRow(ctx context.Context, rangeID string, position int, version int64, cells []string) error {
	encoded, err := encodeCells(cells)
	if err != nil {
		return fmt.Errorf("%w: overwrite %s position %d: %v", ErrBackendUnavailable, rangeID, position, err)
	}

	res := s.db.WithContext(ctx).
		Model(&sheetRow{}).
		Where("range_id = ? AND position = ? AND version = ?", rangeID, position, version).
		Updates(map[string]interface{}{
			"cells":   encoded,
			"version": version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: overwrite %s position %d: %v", ErrBackendUnavailable, rangeID, position, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Nothing matched: either the position never existed or another writer
	// advanced the version between our read and this write.
	var count int64
	err = s.db.WithContext(ctx).
		Model(&sheetRow{}).
		Where("range_id = ? AND position = ?", rangeID, position).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("%w: overwrite %s position %d: %v", ErrBackendUnavailable, rangeID, position, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: %s position %d", ErrRowNotFound, rangeID, position)
	}
	return fmt.Errorf("%w: %s position %d read at version %d", ErrVersionConflict, rangeID, position, version)
}

func encodeCells(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	b, err := json.Marshal(cells)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeCells(encoded string) ([]string, error) {
	var cells []string
	if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
		return nil, err
	}
	return cells, nil
}
