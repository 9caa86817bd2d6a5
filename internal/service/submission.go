package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/exposuite/exposuite/internal/domain"
)

var (
	ErrRegistrationNotEligible = errors.New("registration no longer eligible for submission")
	ErrEmptyStandSelection     = errors.New("draft has no stands selected")
)

type SubmissionRegistrationService interface {
	GetRegistration(ctx context.Context, id uint) (domain.Registration, error)
	SelectStands(ctx context.Context, id uint, standIDs []uint, completed bool) (domain.Registration, error)
	SelectEquipment(ctx context.Context, id uint, quantities []domain.EquipmentQuantity, completed bool) (domain.Registration, error)
}

type SubmissionInvoiceService interface {
	Generate(ctx context.Context, registrationID uint) (domain.Invoice, error)
}

type SubmissionService struct {
	registrations SubmissionRegistrationService
	invoices      SubmissionInvoiceService
	drafts        DraftStore
}

func NewSubmissionService(registrations SubmissionRegistrationService, invoices SubmissionInvoiceService, drafts DraftStore) *SubmissionService {
	return &SubmissionService{
		registrations: registrations,
		invoices:      invoices,
		drafts:        drafts,
	}
}

// Submit finalizes the draft selection. The steps run strictly in sequence:
// re-verify eligibility, persist stands as completed, persist equipment as
// completed (which also completes the registration), clear the draft, then
// generate the invoice. Earlier steps are not rolled back when a later one
// fails; the draft survives any failure so the exhibitor can retry.
func (s *SubmissionService) Submit(ctx context.Context, registrationID uint) (domain.Registration, error) {
	registration, err := s.registrations.GetRegistration(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.registrations.GetRegistration -> %w", err)
	}
	if registration.Status != domain.RegistrationStatusApproved {
		return domain.Registration{}, ErrRegistrationNotEligible
	}

	draft := s.drafts.Load(registrationID)
	// The wizard blocks leaving the stands step without a stand; the same
	// rule holds when the endpoint is called directly.
	if len(draft.StandIDs) == 0 {
		return domain.Registration{}, ErrEmptyStandSelection
	}

	if _, err := s.registrations.SelectStands(ctx, registrationID, draft.StandIDs, true); err != nil {
		return domain.Registration{}, fmt.Errorf("s.registrations.SelectStands -> %w", err)
	}

	quantities := make([]domain.EquipmentQuantity, 0, len(draft.EquipmentIDs))
	for _, equipmentID := range draft.EquipmentIDs {
		quantity := draft.Quantities[equipmentID]
		if quantity < 1 {
			quantity = 1
		}
		quantities = append(quantities, domain.EquipmentQuantity{
			EquipmentID: equipmentID,
			Quantity:    quantity,
		})
	}

	completed, err := s.registrations.SelectEquipment(ctx, registrationID, quantities, true)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.registrations.SelectEquipment -> %w", err)
	}

	s.drafts.Clear(registrationID)

	// Invoice generation is best-effort: the registration already completed,
	// so a failure here is logged and never surfaced.
	if _, err := s.invoices.Generate(ctx, registrationID); err != nil {
		zap.L().Error("invoice generation failed after registration completion",
			zap.Uint("registration_id", registrationID),
			zap.Error(err))
	}

	return completed, nil
}
