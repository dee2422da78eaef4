package models

// Order statuses. Transitions only move forward:
// Pending -> InProgress -> Finalized.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusFinalized  = "Finalized"
)

// TechnicianUnassigned is the technician value for orders nobody has
// picked up yet.
const TechnicianUnassigned = "unassigned"

// CreatedAtLayout is the local-format timestamp written into the
// created_at cell.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Order represents a maintenance service order as stored in one row of the
// orders range. The code is the business key; the store does not enforce
// its uniqueness.
type Order struct {
	Code                 string `json:"code"`
	CreatedAt            string `json:"createdAt"`
	TenantName           string `json:"tenantName"`
	Phone                string `json:"phone"`
	Description          string `json:"description"`
	Technician           string `json:"technician"`
	Status               string `json:"status"`
	Notes                string `json:"notes"`
	ApprovedValue        string `json:"approvedValue,omitempty"`
	BeforePhotoURL       string `json:"beforePhotoUrl,omitempty"`
	AfterPhotoURL        string `json:"afterPhotoUrl,omitempty"`
	SignatureURL         string `json:"signatureUrl,omitempty"`
	ReviewerSignatureURL string `json:"reviewerSignatureUrl,omitempty"`
	InvoiceURL           string `json:"invoiceUrl,omitempty"`
	ReportPath           string `json:"reportPath,omitempty"`
}

// OrderFromCells maps a raw row onto an Order using OrderSchema. Short rows
// read as empty cells.
func OrderFromCells(cells []string) Order {
	s := OrderSchema
	return Order{
		Code:                 cellAt(cells, s.Col(ColCode)),
		CreatedAt:            cellAt(cells, s.Col(ColCreatedAt)),
		TenantName:           cellAt(cells, s.Col(ColTenantName)),
		Phone:                cellAt(cells, s.Col(ColPhone)),
		Description:          cellAt(cells, s.Col(ColDescription)),
		Technician:           cellAt(cells, s.Col(ColTechnician)),
		Status:               cellAt(cells, s.Col(ColStatus)),
		Notes:                cellAt(cells, s.Col(ColNotes)),
		ApprovedValue:        cellAt(cells, s.Col(ColApprovedValue)),
		BeforePhotoURL:       cellAt(cells, s.Col(ColBeforePhotoURL)),
		AfterPhotoURL:        cellAt(cells, s.Col(ColAfterPhotoURL)),
		SignatureURL:         cellAt(cells, s.Col(ColSignatureURL)),
		ReviewerSignatureURL: cellAt(cells, s.Col(ColReviewerSignature)),
		InvoiceURL:           cellAt(cells, s.Col(ColInvoiceURL)),
		ReportPath:           cellAt(cells, s.Col(ColReportPath)),
	}
}

// Cells maps the Order back onto a full-width row. Every field is carried;
// an overwrite with these cells replaces the entire row.
func (o Order) Cells() []string {
	s := OrderSchema
	cells := make([]string, s.Width())
	cells[s.Col(ColCode)] = o.Code
	cells[s.Col(ColCreatedAt)] = o.CreatedAt
	cells[s.Col(ColTenantName)] = o.TenantName
	cells[s.Col(ColPhone)] = o.Phone
	cells[s.Col(ColDescription)] = o.Description
	cells[s.Col(ColTechnician)] = o.Technician
	cells[s.Col(ColStatus)] = o.Status
	cells[s.Col(ColNotes)] = o.Notes
	cells[s.Col(ColApprovedValue)] = o.ApprovedValue
	cells[s.Col(ColBeforePhotoURL)] = o.BeforePhotoURL
	cells[s.Col(ColAfterPhotoURL)] = o.AfterPhotoURL
	cells[s.Col(ColSignatureURL)] = o.SignatureURL
	cells[s.Col(ColReviewerSignature)] = o.ReviewerSignatureURL
	cells[s.Col(ColInvoiceURL)] = o.InvoiceURL
	cells[s.Col(ColReportPath)] = o.ReportPath
	return cells
}
