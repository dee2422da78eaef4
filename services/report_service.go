package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ddiazp/maintenance-orders-api/models"
)

// ReportService is the closure pipeline: given a finalized order it fetches
// the order's remote images, renders the PDF for the requested mode, and
// writes the artifact to a location keyed by order code and mode.
type ReportService struct {
	fetcher   ImageFetcher
	renderer  Renderer
	artifacts ArtifactStore
}

// NewReportService wires the pipeline's collaborators.
func NewReportService(fetcher ImageFetcher, renderer Renderer, artifacts ArtifactStore) *ReportService {
	return &ReportService{
		fetcher:   fetcher,
		renderer:  renderer,
		artifacts: artifacts,
	}
}

// ReportKey is the artifact key for an order's report in a given mode.
func ReportKey(code string, mode ReportMode) string {
	return fmt.Sprintf("reports/%s_%s.pdf", code, mode)
}

// Generate produces the report and returns its location. Image fetches are
// sequential and independent; a failed or missing fetch is logged and that
// section omitted, never fatal. Rendering and artifact-write failures do
// propagate.
func (s *ReportService) Generate(ctx context.Context, order models.Order, mode ReportMode) (string, error) {
	doc := ReportDocument{
		Order:             order,
		Mode:              mode,
		ShowApprovedValue: mode != ModeTechnician && order.ApprovedValue != "",
	}

	fetch := func(label, url string) []byte {
		if url == "" {
			return nil
		}
		img, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Printf("report %s: skipping %s image: %v", order.Code, label, err)
			return nil
		}
		return img
	}

	addImage := func(label, url string) {
		if img := fetch(label, url); img != nil {
			doc.Images = append(doc.Images, ReportImage{Label: label, PNG: img})
		}
	}

	addImage("Before photo", order.BeforePhotoURL)
	addImage("After photo", order.AfterPhotoURL)
	addImage("Tenant signature", order.SignatureURL)
	if mode != ModeTechnician {
		addImage("Reviewer signature", order.ReviewerSignatureURL)
	}
	if mode == ModeFinal {
		doc.Invoice = fetch("Invoice", order.InvoiceURL)
	}

	pdf, err := s.renderer.Render(doc)
	if err != nil {
		return "", err
	}

	key := ReportKey(order.Code, mode)
	if err := s.artifacts.Put(ctx, key, pdf, "application/pdf"); err != nil {
		return "", err
	}

	location, err := s.artifacts.URL(ctx, key)
	if err != nil {
		return "", err
	}
	log.Printf("report %s: wrote %s artifact to %s", order.Code, mode, location)
	return location, nil
}
