package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

var (
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrStandAlreadyReserved = repository.ErrStandAlreadyReserved
	ErrStandNotInEvent      = repository.ErrStandNotInEvent
	ErrEquipmentNotInEvent  = repository.ErrEquipmentNotInEvent

	ErrInvalidTransition    = errors.New("registration status does not permit this transition")
	ErrSelectionClosed      = errors.New("stand/equipment selection is not open for this registration")
	ErrInvalidReviewState   = errors.New("review status must be approved or rejected")
	ErrQuantityExceedsStock = errors.New("selected quantity exceeds available quantity")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByExhibitorID(ctx context.Context, exhibitorID uint) ([]domain.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]domain.Registration, error)
	MarkApproved(ctx context.Context, id uint, approvedAt time.Time) error
	MarkRejected(ctx context.Context, id uint, rejectedAt time.Time, reason string) error
	MarkCancelled(ctx context.Context, id uint, cancelledAt time.Time) error
	MarkCompleted(ctx context.Context, id uint, completedAt time.Time) error
	ReplaceStands(ctx context.Context, registrationID, eventID uint, standIDs []uint, completed bool) error
	ReplaceEquipment(ctx context.Context, registrationID, eventID uint, quantities []domain.EquipmentQuantity, completed bool) error
}

type RegistrationService struct {
	repo      RegistrationRepository
	eventRepo EventRepository
}

func NewRegistrationService(repo RegistrationRepository, eventRepo EventRepository) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// Register creates a pending registration for an exhibitor on an event.
func (s *RegistrationService) Register(ctx context.Context, eventID, exhibitorID uint) (domain.Registration, error) {
	if _, err := s.eventRepo.FindEventByID(ctx, eventID); err != nil {
		return domain.Registration{}, fmt.Errorf("s.eventRepo.FindEventByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		EventID:     eventID,
		ExhibitorID: exhibitorID,
		Status:      domain.RegistrationStatusPending,
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RegistrationService) GetRegistration(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) GetRegistrationsByExhibitor(ctx context.Context, exhibitorID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByExhibitorID(ctx, exhibitorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByExhibitorID -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) GetRegistrationsByEvent(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	registrations, err := s.repo.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEventID -> %w", err)
	}

	return registrations, nil
}

// Review resolves a pending registration to approved or rejected.
func (s *RegistrationService) Review(ctx context.Context, id uint, status, reason string) (domain.Registration, error) {
	if status != domain.RegistrationStatusApproved && status != domain.RegistrationStatusRejected {
		return domain.Registration{}, ErrInvalidReviewState
	}

	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !domain.CanTransition(registration.Status, status) {
		return domain.Registration{}, ErrInvalidTransition
	}

	now := time.Now()
	switch status {
	case domain.RegistrationStatusApproved:
		err = s.repo.MarkApproved(ctx, id, now)
	case domain.RegistrationStatusRejected:
		err = s.repo.MarkRejected(ctx, id, now, reason)
	}
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkReviewed -> %w", err)
	}

	return s.GetRegistration(ctx, id)
}

// Cancel moves an approved registration to cancelled and releases its stands.
func (s *RegistrationService) Cancel(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !domain.CanTransition(registration.Status, domain.RegistrationStatusCancelled) {
		return domain.Registration{}, ErrInvalidTransition
	}

	if err := s.repo.MarkCancelled(ctx, id, time.Now()); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.MarkCancelled -> %w", err)
	}

	return s.GetRegistration(ctx, id)
}

// SelectStands replaces the registration's stand set. The registration must be
// approved and not yet completed; when the call leaves both completion flags
// true the registration is completed in the same pass.
func (s *RegistrationService) SelectStands(ctx context.Context, id uint, standIDs []uint, completed bool) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !registration.SelectionOpen() {
		return domain.Registration{}, ErrSelectionClosed
	}

	if err := s.repo.ReplaceStands(ctx, id, registration.EventID, standIDs, completed); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.ReplaceStands -> %w", err)
	}

	return s.finishSelection(ctx, id)
}

// SelectEquipment replaces the registration's equipment allocation. Quantities
// are validated against per-event availability; the server is authoritative.
func (s *RegistrationService) SelectEquipment(ctx context.Context, id uint, quantities []domain.EquipmentQuantity, completed bool) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !registration.SelectionOpen() {
		return domain.Registration{}, ErrSelectionClosed
	}

	for _, q := range quantities {
		equipment, err := s.eventRepo.FindEquipmentByID(ctx, q.EquipmentID)
		if err != nil {
			return domain.Registration{}, fmt.Errorf("s.eventRepo.FindEquipmentByID -> %w", err)
		}

		allocated, err := s.eventRepo.SumEquipmentAllocations(ctx, q.EquipmentID, registration.EventID, id)
		if err != nil {
			return domain.Registration{}, fmt.Errorf("s.eventRepo.SumEquipmentAllocations -> %w", err)
		}

		if q.Quantity < 1 || q.Quantity > equipment.Stock-allocated {
			return domain.Registration{}, ErrQuantityExceedsStock
		}
	}

	if err := s.repo.ReplaceEquipment(ctx, id, registration.EventID, quantities, completed); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.ReplaceEquipment -> %w", err)
	}

	return s.finishSelection(ctx, id)
}

// finishSelection re-reads the registration and completes it once both
// selection categories are finalized. Completion is inferred here, not
// triggered by a dedicated endpoint.
func (s *RegistrationService) finishSelection(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if registration.Status == domain.RegistrationStatusApproved && registration.ReadyToComplete() {
		if err := s.repo.MarkCompleted(ctx, id, time.Now()); err != nil {
			return domain.Registration{}, fmt.Errorf("s.repo.MarkCompleted -> %w", err)
		}

		return s.GetRegistration(ctx, id)
	}

	return registration, nil
}
