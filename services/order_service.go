package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ddiazp/maintenance-orders-api/models"
	"github.com/ddiazp/maintenance-orders-api/store"
)

// OrderService is the workflow engine: it enforces the order state machine
// and role-based visibility on top of the row store. Every mutation is
// fetch, locate in memory, overwrite; there is no atomic variant. A racing
// writer surfaces as a store.ErrVersionConflict.
type OrderService struct {
	store     store.RowStore
	reports   *ReportService
	artifacts ArtifactStore
	now       func() time.Time
}

var orderServiceInstance *OrderService

// InitOrderService initializes the order workflow engine.
func InitOrderService(st store.RowStore, reports *ReportService, artifacts ArtifactStore) *OrderService {
	orderServiceInstance = &OrderService{
		store:     st,
		reports:   reports,
		artifacts: artifacts,
		now:       time.Now,
	}
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(s *OrderService) {
	orderServiceInstance = s
}

// CreateOrderInput is the caller-supplied part of a new order.
type CreateOrderInput struct {
	Code        string
	TenantName  string
	Phone       string
	Technician  string
	Description string
}

// CreateOrder validates and appends a new order row with status Pending.
// No duplicate-code check is made; keeping codes unique is a caller
// responsibility.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return NewValidationError("order code is required")
	}
	if strings.TrimSpace(in.TenantName) == "" {
		return NewValidationError("tenant name is required")
	}

	technician := in.Technician
	if technician == "" {
		technician = models.TechnicianUnassigned
	}

	order := models.Order{
		Code:        in.Code,
		CreatedAt:   s.now().Format(models.CreatedAtLayout),
		TenantName:  in.TenantName,
		Phone:       in.Phone,
		Description: in.Description,
		Technician:  technician,
		Status:      models.StatusPending,
	}

	return s.store.Append(ctx, models.OrderSchema.RangeID, order.Cells())
}

// ListOrders fetches every order and applies the identity's visibility
// filter, preserving storage order.
func (s *OrderService) ListOrders(ctx context.Context, identity models.Identity) ([]models.Order, error) {
	rows, err := s.store.FetchAll(ctx, models.OrderSchema.RangeID)
	if err != nil {
		return nil, err
	}

	visible := VisibilityFilter(identity)
	orders := make([]models.Order, 0, len(rows))
	for _, row := range rows {
		order := models.OrderFromCells(row.Cells)
		if visible(order) {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

// AssignTech assigns a technician to the order with the given code and
// moves it to InProgress.
func (s *OrderService) AssignTech(ctx context.Context, code, technician string) error {
	if strings.TrimSpace(code) == "" {
		return NewValidationError("order code is required")
	}
	if strings.TrimSpace(technician) == "" {
		return NewValidationError("technician is required")
	}

	row, order, err := s.locateOrder(ctx, code)
	if err != nil {
		return err
	}

	order.Technician = technician
	order.Status = models.StatusInProgress
	return s.store.OverwriteRow(ctx, models.OrderSchema.RangeID, row.Position, row.Version, order.Cells())
}

// CloseOrder finalizes the order: stores the captured signature, moves the
// row to Finalized, then runs the closure pipeline and returns the produced
// report's location.
func (s *OrderService) CloseOrder(ctx context.Context, code string, sig models.Signature, mode ReportMode) (models.Order, string, error) {
	if strings.TrimSpace(code) == "" {
		return models.Order{}, "", NewValidationError("order code is required")
	}

	row, order, err := s.locateOrder(ctx, code)
	if err != nil {
		return models.Order{}, "", err
	}

	if len(sig.Image) > 0 {
		key := fmt.Sprintf("signatures/%s_%s.png", code, uuid.NewString())
		if err := s.artifacts.Put(ctx, key, sig.Image, "image/png"); err != nil {
			return models.Order{}, "", err
		}
		location, err := s.artifacts.URL(ctx, key)
		if err != nil {
			return models.Order{}, "", err
		}
		order.SignatureURL = location
	}

	order.Status = models.StatusFinalized
	if err := s.store.OverwriteRow(ctx, models.OrderSchema.RangeID, row.Position, row.Version, order.Cells()); err != nil {
		return models.Order{}, "", err
	}

	location, err := s.reports.Generate(ctx, order, mode)
	if err != nil {
		return models.Order{}, "", err
	}

	// Record the report location on the row. The report already exists and
	// its location is being returned to the caller, so a failure here only
	// warrants a warning.
	if err := s.recordReportPath(ctx, code, location); err != nil {
		log.Printf("order %s: failed to record report path: %v", code, err)
	} else {
		order.ReportPath = location
	}

	return order, location, nil
}

func (s *OrderService) recordReportPath(ctx context.Context, code, location string) error {
	row, order, err := s.locateOrder(ctx, code)
	if err != nil {
		return err
	}
	order.ReportPath = location
	return s.store.OverwriteRow(ctx, models.OrderSchema.RangeID, row.Position, row.Version, order.Cells())
}

// Summary buckets all orders by status. Rows with an empty status count
// under Pending; bucket counts always sum to the row count.
func (s *OrderService) Summary(ctx context.Context) (map[string]int, error) {
	rows, err := s.store.FetchAll(ctx, models.OrderSchema.RangeID)
	if err != nil {
		return nil, err
	}

	summary := map[string]int{
		models.StatusPending:    0,
		models.StatusInProgress: 0,
		models.StatusFinalized:  0,
	}
	for _, row := range rows {
		status := models.OrderFromCells(row.Cells).Status
		if status == "" {
			status = models.StatusPending
		}
		summary[status]++
	}
	return summary, nil
}

// locateOrder finds the first row whose code cell equals code. Duplicate
// codes are undefined behavior; the first match wins.
func (s *OrderService) locateOrder(ctx context.Context, code string) (store.Row, models.Order, error) {
	rows, err := s.store.FetchAll(ctx, models.OrderSchema.RangeID)
	if err != nil {
		return store.Row{}, models.Order{}, err
	}

	for _, row := range rows {
		order := models.OrderFromCells(row.Cells)
		if order.Code == code {
			return row, order, nil
		}
	}
	return store.Row{}, models.Order{}, &NotFoundError{Kind: "order", Key: code}
}
