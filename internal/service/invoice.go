package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

var (
	ErrInvoiceNotFound         = repository.ErrInvoiceNotFound
	ErrRegistrationNotInvoiced = errors.New("registration is not completed yet")
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)
	FindByID(ctx context.Context, id uint) (domain.Invoice, error)
	FindByRegistrationID(ctx context.Context, registrationID uint) (domain.Invoice, error)
	MarkPaid(ctx context.Context, id uint, paidAt time.Time) error
}

type InvoiceRegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	SetInvoiceID(ctx context.Context, registrationID, invoiceID uint) error
}

type InvoiceService struct {
	repo    InvoiceRepository
	regRepo InvoiceRegistrationRepository
	taxRate float64
}

func NewInvoiceService(repo InvoiceRepository, regRepo InvoiceRegistrationRepository, taxRate float64) *InvoiceService {
	return &InvoiceService{
		repo:    repo,
		regRepo: regRepo,
		taxRate: taxRate,
	}
}

func newInvoiceNumber() string {
	return "INV-" + strings.ToUpper(uuid.NewString()[:8])
}

// Generate builds an invoice from a completed registration's stands and
// equipment. Generation is idempotent: when an invoice already exists for the
// registration it is returned as-is.
func (s *InvoiceService) Generate(ctx context.Context, registrationID uint) (domain.Invoice, error) {
	registration, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("s.regRepo.FindByID -> %w", err)
	}
	if registration.Status != domain.RegistrationStatusCompleted {
		return domain.Invoice{}, ErrRegistrationNotInvoiced
	}

	quantities := make(map[uint]int, len(registration.EquipmentQuantities))
	for _, q := range registration.EquipmentQuantities {
		quantities[q.EquipmentID] = q.Quantity
	}

	var items []domain.InvoiceItem
	subtotal := 0.0

	for _, stand := range registration.Stands {
		items = append(items, domain.InvoiceItem{
			Type:      domain.InvoiceItemTypeStand,
			Name:      fmt.Sprintf("Stand %s", stand.Number),
			Quantity:  1,
			UnitPrice: stand.BasePrice,
			Amount:    stand.BasePrice,
		})
		subtotal += stand.BasePrice
	}

	for _, equipment := range registration.Equipment {
		quantity := quantities[equipment.ID]
		if quantity < 1 {
			quantity = 1
		}
		amount := equipment.Price * float64(quantity)
		items = append(items, domain.InvoiceItem{
			Type:      domain.InvoiceItemTypeEquipment,
			Name:      equipment.Name,
			Quantity:  quantity,
			UnitPrice: equipment.Price,
			Amount:    round2(amount),
		})
		subtotal += amount
	}

	subtotal = round2(subtotal)
	taxAmount := round2(subtotal * s.taxRate)

	invoice := domain.Invoice{
		Number:         newInvoiceNumber(),
		RegistrationID: registrationID,
		Items:          items,
		Subtotal:       subtotal,
		TaxRate:        s.taxRate,
		TaxAmount:      taxAmount,
		Total:          round2(subtotal + taxAmount),
		Status:         domain.InvoiceStatusPending,
		IssuedAt:       time.Now(),
	}

	created, err := s.repo.Create(ctx, invoice)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceExists) {
			existing, findErr := s.repo.FindByRegistrationID(ctx, registrationID)
			if findErr != nil {
				return domain.Invoice{}, fmt.Errorf("s.repo.FindByRegistrationID -> %w", findErr)
			}

			return existing, nil
		}

		return domain.Invoice{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	if err := s.regRepo.SetInvoiceID(ctx, registrationID, created.ID); err != nil {
		return domain.Invoice{}, fmt.Errorf("s.regRepo.SetInvoiceID -> %w", err)
	}

	return created, nil
}

func (s *InvoiceService) GetInvoice(ctx context.Context, id uint) (domain.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return invoice, nil
}

func (s *InvoiceService) PayInvoice(ctx context.Context, id uint) (domain.Invoice, error) {
	if err := s.repo.MarkPaid(ctx, id, time.Now()); err != nil {
		return domain.Invoice{}, fmt.Errorf("s.repo.MarkPaid -> %w", err)
	}

	return s.GetInvoice(ctx, id)
}
