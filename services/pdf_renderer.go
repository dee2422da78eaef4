package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/ddiazp/maintenance-orders-api/models"
)

// ReportMode selects which optional sections a closure report includes.
type ReportMode string

// The three supported render modes.
const (
	ModeTechnician ReportMode = "technician"
	ModeReview     ReportMode = "review"
	ModeFinal      ReportMode = "final"
)

// ParseReportMode validates a caller-supplied mode string.
func ParseReportMode(mode string) (ReportMode, error) {
	switch ReportMode(mode) {
	case ModeTechnician, ModeReview, ModeFinal:
		return ReportMode(mode), nil
	}
	return "", NewValidationError("unknown report mode %q", mode)
}

// ReportImage is one fetched image section of a report.
type ReportImage struct {
	Label string
	PNG   []byte
}

// ReportDocument is everything the renderer needs: the closure pipeline
// decides which sections are present, the renderer only lays them out.
type ReportDocument struct {
	Order models.Order
	Mode  ReportMode

	// ShowApprovedValue includes the approved-value line; omitted in
	// technician mode.
	ShowApprovedValue bool

	// Images in render order: before/after photos, tenant signature, and
	// (outside technician mode) the reviewer signature.
	Images []ReportImage

	// Invoice, when non-nil, becomes an appended invoice page (final mode
	// only).
	Invoice []byte
}

// Renderer produces the PDF bytes for a report document. The rendering
// engine itself is a black box behind this interface.
type Renderer interface {
	Render(doc ReportDocument) ([]byte, error)
}

// PDFRenderer renders report documents with fpdf.
type PDFRenderer struct{}

// NewPDFRenderer creates the default renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the order fields, the image sections, and (when present)
// the invoice page.
func (r *PDFRenderer) Render(doc ReportDocument) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Maintenance Service Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, value, "", "L", false)
	}

	order := doc.Order
	line("Order code", order.Code)
	line("Created", order.CreatedAt)
	line("Tenant", order.TenantName)
	line("Phone", order.Phone)
	line("Description", order.Description)
	line("Technician", order.Technician)
	line("Status", order.Status)
	line("Notes", order.Notes)
	if doc.ShowApprovedValue {
		line("Approved value", order.ApprovedValue)
	}

	for i, img := range doc.Images {
		if len(img.PNG) == 0 {
			continue
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, img.Label, "", 1, "L", false, 0, "")

		name := fmt.Sprintf("img-%d", i)
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.PNG))
		pdf.ImageOptions(name, 15, pdf.GetY(), 80, 0, true, opts, 0, "")
	}

	if doc.Invoice != nil {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 10, "Invoice", "", 1, "C", false, 0, "")

		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("invoice", opts, bytes.NewReader(doc.Invoice))
		pdf.ImageOptions("invoice", 15, pdf.GetY(), 180, 0, true, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report for order %s: %w", order.Code, err)
	}
	return buf.Bytes(), nil
}
