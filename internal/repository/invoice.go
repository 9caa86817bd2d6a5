package repository

import (
	"context"
	"time"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository/dao"
)

var (
	ErrInvoiceNotFound = dao.ErrInvoiceNotFound
	ErrInvoiceExists   = dao.ErrInvoiceExists
)

type InvoiceDAO interface {
	Insert(ctx context.Context, invoice dao.Invoice) (dao.Invoice, error)
	FindByID(ctx context.Context, id uint) (dao.Invoice, error)
	FindByRegistrationID(ctx context.Context, registrationID uint) (dao.Invoice, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) error
}

type InvoiceRepository struct {
	dao InvoiceDAO
}

func NewInvoiceRepository(dao InvoiceDAO) *InvoiceRepository {
	return &InvoiceRepository{
		dao: dao,
	}
}

func (r *InvoiceRepository) domainToDao(inv domain.Invoice) dao.Invoice {
	items := make([]dao.InvoiceItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = dao.InvoiceItem{
			Type:      item.Type,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		}
	}

	return dao.Invoice{
		ID:             inv.ID,
		Number:         inv.Number,
		RegistrationID: inv.RegistrationID,
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Status:         inv.Status,
		IssuedAt:       inv.IssuedAt,
		PaidAt:         inv.PaidAt,
	}
}

func (r *InvoiceRepository) daoToDomain(inv dao.Invoice) domain.Invoice {
	items := make([]domain.InvoiceItem, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = domain.InvoiceItem{
			ID:        item.ID,
			Type:      item.Type,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Amount:    item.Amount,
		}
	}

	return domain.Invoice{
		ID:             inv.ID,
		Number:         inv.Number,
		RegistrationID: inv.RegistrationID,
		Items:          items,
		Subtotal:       inv.Subtotal,
		TaxRate:        inv.TaxRate,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		Status:         inv.Status,
		IssuedAt:       inv.IssuedAt,
		PaidAt:         inv.PaidAt,
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(invoice))
	if err != nil {
		return domain.Invoice{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id uint) (domain.Invoice, error) {
	invoice, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	return r.daoToDomain(invoice), nil
}

func (r *InvoiceRepository) FindByRegistrationID(ctx context.Context, registrationID uint) (domain.Invoice, error) {
	invoice, err := r.dao.FindByRegistrationID(ctx, registrationID)
	if err != nil {
		return domain.Invoice{}, err
	}

	return r.daoToDomain(invoice), nil
}

func (r *InvoiceRepository) MarkPaid(ctx context.Context, id uint, paidAt time.Time) error {
	return r.dao.MarkPaid(ctx, id, paidAt)
}
