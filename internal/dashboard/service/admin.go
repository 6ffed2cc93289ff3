package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"voltworks/internal/status"
	"voltworks/pkg/logger"
	"voltworks/pkg/model"
)

// RevenueSummary aggregates paid invoices for the admin overview. Totals are
// grouped by currency; mixing currencies in one sum would produce nonsense.
type RevenueSummary struct {
	Totals       map[string]decimal.Decimal `json:"totals"`
	PaidInvoices int                        `json:"paid_invoices"`
	ByStatus     map[string]int             `json:"by_status"`
}

type StockAlert struct {
	Part         model.Part `json:"part"`
	CurrentStock int        `json:"current_stock"`
}

type AdminService interface {
	Revenue(ctx context.Context) (*RevenueSummary, error)
	LowStock(ctx context.Context, threshold int) ([]StockAlert, error)
	Overdue(ctx context.Context) ([]AppointmentView, error)
}

type adminService struct {
	appointments AppointmentService
	catalog      CatalogService
	log          *logger.Logger
}

func NewAdminService(appointments AppointmentService, catalog CatalogService, log *logger.Logger) AdminService {
	return &adminService{
		appointments: appointments,
		catalog:      catalog,
		log:          log,
	}
}

func (s *adminService) Revenue(ctx context.Context) (*RevenueSummary, error) {
	views, err := s.appointments.All(ctx)
	if err != nil {
		return nil, err
	}

	summary := &RevenueSummary{
		Totals:   make(map[string]decimal.Decimal),
		ByStatus: make(map[string]int),
	}

	for _, view := range views {
		summary.ByStatus[view.StatusKey]++

		invoice := view.Invoice
		if invoice == nil || invoice.Status != "paid" {
			continue
		}
		summary.Totals[invoice.Currency] = summary.Totals[invoice.Currency].Add(invoice.Amount)
		summary.PaidInvoices++
	}

	return summary, nil
}

func (s *adminService) LowStock(ctx context.Context, threshold int) ([]StockAlert, error) {
	parts, err := s.catalog.Parts(ctx)
	if err != nil {
		return nil, err
	}

	var alerts []StockAlert
	for _, part := range parts {
		if part.Status != "active" {
			continue
		}
		if stock := part.CurrentStock(); stock <= threshold {
			alerts = append(alerts, StockAlert{Part: part, CurrentStock: stock})
		}
	}
	return alerts, nil
}

// Overdue lists appointments whose scheduled time has passed without the work
// reaching an in-progress or terminal state.
func (s *adminService) Overdue(ctx context.Context) ([]AppointmentView, error) {
	views, err := s.appointments.All(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var overdue []AppointmentView
	for _, view := range views {
		if !view.ScheduledAt.Before(now) {
			continue
		}
		switch view.StatusKey {
		case status.KeyPending, status.KeyConfirmed, status.KeyAssigned:
			overdue = append(overdue, view)
		}
	}
	return overdue, nil
}
