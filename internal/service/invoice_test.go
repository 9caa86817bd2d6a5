package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

type fakeInvoiceRepo struct {
	invoices map[uint]domain.Invoice
	byReg    map[uint]uint
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: map[uint]domain.Invoice{},
		byReg:    map[uint]uint{},
	}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	if _, exists := f.byReg[invoice.RegistrationID]; exists {
		return domain.Invoice{}, repository.ErrInvoiceExists
	}

	invoice.ID = uint(len(f.invoices) + 1)
	f.invoices[invoice.ID] = invoice
	f.byReg[invoice.RegistrationID] = invoice.ID
	return invoice, nil
}

func (f *fakeInvoiceRepo) FindByID(_ context.Context, id uint) (domain.Invoice, error) {
	invoice, ok := f.invoices[id]
	if !ok {
		return domain.Invoice{}, repository.ErrInvoiceNotFound
	}
	return invoice, nil
}

func (f *fakeInvoiceRepo) FindByRegistrationID(_ context.Context, registrationID uint) (domain.Invoice, error) {
	id, ok := f.byReg[registrationID]
	if !ok {
		return domain.Invoice{}, repository.ErrInvoiceNotFound
	}
	return f.invoices[id], nil
}

func (f *fakeInvoiceRepo) MarkPaid(_ context.Context, id uint, paidAt time.Time) error {
	invoice, ok := f.invoices[id]
	if !ok {
		return repository.ErrInvoiceNotFound
	}
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &paidAt
	f.invoices[id] = invoice
	return nil
}

func newInvoiceFixture(t *testing.T) (*InvoiceService, *fakeInvoiceRepo, *fakeRegistrationRepo) {
	t.Helper()

	events := newFakeEventRepo()
	regs := newFakeRegistrationRepo(events)
	invoices := newFakeInvoiceRepo()

	regs.add(domain.Registration{
		ID:          1,
		EventID:     1,
		ExhibitorID: 7,
		Status:      domain.RegistrationStatusCompleted,
		Stands: []domain.Stand{
			{ID: 10, Number: "A-10", BasePrice: 100},
		},
		Equipment: []domain.Equipment{
			{ID: 20, Name: "Spotlight", Price: 25},
		},
		EquipmentQuantities: []domain.EquipmentQuantity{
			{EquipmentID: 20, Quantity: 2},
		},
	})

	return NewInvoiceService(invoices, regs, 0.20), invoices, regs
}

func (f *fakeRegistrationRepo) SetInvoiceID(_ context.Context, registrationID, invoiceID uint) error {
	registration := f.registrations[registrationID]
	registration.InvoiceID = &invoiceID
	f.registrations[registrationID] = registration
	return nil
}

func TestGenerateInvoiceComputesTotals(t *testing.T) {
	svc, _, regs := newInvoiceFixture(t)

	invoice, err := svc.Generate(context.Background(), 1)
	require.NoError(t, err)

	// Stand 100 + 2 x 25 equipment, 20% tax.
	assert.Equal(t, 150.0, invoice.Subtotal)
	assert.Equal(t, 30.0, invoice.TaxAmount)
	assert.Equal(t, 180.0, invoice.Total)
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, invoice.Number)

	require.Len(t, invoice.Items, 2)
	assert.Equal(t, domain.InvoiceItemTypeStand, invoice.Items[0].Type)
	assert.Equal(t, "Stand A-10", invoice.Items[0].Name)
	assert.Equal(t, domain.InvoiceItemTypeEquipment, invoice.Items[1].Type)
	assert.Equal(t, 2, invoice.Items[1].Quantity)
	assert.Equal(t, 50.0, invoice.Items[1].Amount)

	require.NotNil(t, regs.registrations[1].InvoiceID)
	assert.Equal(t, invoice.ID, *regs.registrations[1].InvoiceID)
}

func TestGenerateInvoiceRequiresCompletedRegistration(t *testing.T) {
	svc, _, regs := newInvoiceFixture(t)

	regs.add(domain.Registration{ID: 2, EventID: 1, ExhibitorID: 8, Status: domain.RegistrationStatusApproved})

	_, err := svc.Generate(context.Background(), 2)
	assert.ErrorIs(t, err, ErrRegistrationNotInvoiced)
}

func TestGenerateInvoiceIsIdempotent(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)
	ctx := context.Background()

	first, err := svc.Generate(ctx, 1)
	require.NoError(t, err)

	second, err := svc.Generate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Number, second.Number)
}

func TestPayInvoice(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)
	ctx := context.Background()

	invoice, err := svc.Generate(ctx, 1)
	require.NoError(t, err)

	paid, err := svc.PayInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, paid.Status)
	assert.NotNil(t, paid.PaidAt)
}

func TestGetInvoiceNotFound(t *testing.T) {
	svc, _, _ := newInvoiceFixture(t)

	_, err := svc.GetInvoice(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)
}
