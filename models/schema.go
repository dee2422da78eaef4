package models

import "fmt"

// Schema is a versioned descriptor mapping logical field names to physical
// column positions inside a sheet range. Column lookups never scan header
// text at runtime; the mapping is fixed here and validated at startup.
type Schema struct {
	RangeID string
	Version int
	Columns map[string]int
}

// Logical column names for the orders range.
const (
	ColCode              = "code"
	ColCreatedAt         = "created_at"
	ColTenantName        = "tenant_name"
	ColPhone             = "phone"
	ColDescription       = "description"
	ColTechnician        = "technician"
	ColStatus            = "status"
	ColNotes             = "notes"
	ColApprovedValue     = "approved_value"
	ColBeforePhotoURL    = "before_photo_url"
	ColAfterPhotoURL     = "after_photo_url"
	ColSignatureURL      = "signature_url"
	ColReviewerSignature = "reviewer_signature_url"
	ColInvoiceURL        = "invoice_url"
	ColReportPath        = "report_path"
)

// Logical column names for the users range.
const (
	ColUsername = "username"
	ColSecret   = "secret"
	ColRole     = "role"
)

// OrderSchema describes the orders range layout.
var OrderSchema = Schema{
	RangeID: "orders",
	Version: 2,
	Columns: map[string]int{
		ColCode:              0,
		ColCreatedAt:         1,
		ColTenantName:        2,
		ColPhone:             3,
		ColDescription:       4,
		ColTechnician:        5,
		ColStatus:            6,
		ColNotes:             7,
		ColApprovedValue:     8,
		ColBeforePhotoURL:    9,
		ColAfterPhotoURL:     10,
		ColSignatureURL:      11,
		ColReviewerSignature: 12,
		ColInvoiceURL:        13,
		ColReportPath:        14,
	},
}

// UserSchema describes the users range layout.
var UserSchema = Schema{
	RangeID: "users",
	Version: 1,
	Columns: map[string]int{
		ColUsername: 0,
		ColSecret:   1,
		ColRole:     2,
	},
}

// Width returns the fixed row width of the range.
func (s Schema) Width() int {
	return len(s.Columns)
}

// Col returns the physical position of a logical column name. Unknown names
// are a programming error.
func (s Schema) Col(name string) int {
	pos, ok := s.Columns[name]
	if !ok {
		panic(fmt.Sprintf("schema %s v%d has no column %q", s.RangeID, s.Version, name))
	}
	return pos
}

// Validate checks that the descriptor is usable: a range id, at least one
// column, and positions forming a dense 0..width-1 sequence with no
// duplicates.
func (s Schema) Validate() error {
	if s.RangeID == "" {
		return fmt.Errorf("schema has no range id")
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %s v%d has no columns", s.RangeID, s.Version)
	}
	seen := make(map[int]string, len(s.Columns))
	for name, pos := range s.Columns {
		if pos < 0 || pos >= len(s.Columns) {
			return fmt.Errorf("schema %s v%d: column %q position %d out of range", s.RangeID, s.Version, name, pos)
		}
		if other, dup := seen[pos]; dup {
			return fmt.Errorf("schema %s v%d: columns %q and %q share position %d", s.RangeID, s.Version, other, name, pos)
		}
		seen[pos] = name
	}
	return nil
}

// ValidateSchemas validates every schema the application relies on. Called
// once at startup.
func ValidateSchemas() error {
	for _, s := range []Schema{OrderSchema, UserSchema} {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// cellAt reads a cell tolerantly: rows shorter than the schema width read as
// empty strings rather than panicking.
func cellAt(cells []string, pos int) string {
	if pos < 0 || pos >= len(cells) {
		return ""
	}
	return cells[pos]
}
