package repository

import (
	"context"
	"time"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository/dao"
)

var (
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
	ErrStandAlreadyReserved = dao.ErrStandAlreadyReserved
	ErrStandNotInEvent      = dao.ErrStandNotInEvent
	ErrEquipmentNotInEvent  = dao.ErrEquipmentNotInEvent
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByExhibitorID(ctx context.Context, exhibitorID uint) ([]dao.Registration, error)
	FindByEventID(ctx context.Context, eventID uint) ([]dao.Registration, error)
	UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error
	ReplaceStands(ctx context.Context, registrationID uint, eventID uint, standIDs []uint, completed bool) error
	ReplaceEquipment(ctx context.Context, registrationID uint, eventID uint, quantities []dao.RegistrationEquipment, completed bool) error
	ReleaseStands(ctx context.Context, registrationID uint) error
	SetInvoiceID(ctx context.Context, registrationID, invoiceID uint) error
}

type RegistrationRepository struct {
	dao   RegistrationDAO
	eRepo *EventRepository
}

func NewRegistrationRepository(dao RegistrationDAO, eRepo *EventRepository) *RegistrationRepository {
	return &RegistrationRepository{
		dao:   dao,
		eRepo: eRepo,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	quantities := make([]domain.EquipmentQuantity, len(reg.EquipmentQuantities))
	equipment := make([]domain.Equipment, 0, len(reg.EquipmentQuantities))
	for i, q := range reg.EquipmentQuantities {
		quantities[i] = domain.EquipmentQuantity{
			EquipmentID: q.EquipmentID,
			Quantity:    q.Quantity,
		}
		if q.Equipment.ID != 0 {
			equipment = append(equipment, r.eRepo.equipmentDaoToDomainOne(q.Equipment))
		}
	}

	return domain.Registration{
		ID:                          reg.ID,
		EventID:                     reg.EventID,
		ExhibitorID:                 reg.ExhibitorID,
		Status:                      reg.Status,
		Stands:                      r.eRepo.standsDaoToDomain(reg.Stands),
		StandSelectionCompleted:     reg.StandSelectionCompleted,
		Equipment:                   equipment,
		EquipmentQuantities:         quantities,
		EquipmentSelectionCompleted: reg.EquipmentSelectionCompleted,
		ApprovalDate:                reg.ApprovalDate,
		RejectionDate:               reg.RejectionDate,
		RejectionReason:             reg.RejectionReason,
		CancellationDate:            reg.CancellationDate,
		CompletionDate:              reg.CompletionDate,
		InvoiceID:                   reg.InvoiceID,
		CreatedAt:                   reg.CreatedAt,
		UpdatedAt:                   reg.UpdatedAt,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		EventID:     registration.EventID,
		ExhibitorID: registration.ExhibitorID,
		Status:      registration.Status,
	})
	if err != nil {
		return domain.Registration{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	registration, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, err
	}

	return r.daoToDomain(registration), nil
}

func (r *RegistrationRepository) FindByExhibitorID(ctx context.Context, exhibitorID uint) ([]domain.Registration, error) {
	registrations, err := r.dao.FindByExhibitorID(ctx, exhibitorID)
	if err != nil {
		return nil, err
	}

	return r.daosToDomain(registrations), nil
}

func (r *RegistrationRepository) FindByEventID(ctx context.Context, eventID uint) ([]domain.Registration, error) {
	registrations, err := r.dao.FindByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return r.daosToDomain(registrations), nil
}

func (r *RegistrationRepository) daosToDomain(registrations []dao.Registration) []domain.Registration {
	domainRegistrations := make([]domain.Registration, len(registrations))
	for i, registration := range registrations {
		domainRegistrations[i] = r.daoToDomain(registration)
	}

	return domainRegistrations
}

func (r *RegistrationRepository) MarkApproved(ctx context.Context, id uint, approvedAt time.Time) error {
	return r.dao.UpdateStatus(ctx, id, map[string]interface{}{
		"status":        domain.RegistrationStatusApproved,
		"approval_date": approvedAt,
	})
}

func (r *RegistrationRepository) MarkRejected(ctx context.Context, id uint, rejectedAt time.Time, reason string) error {
	return r.dao.UpdateStatus(ctx, id, map[string]interface{}{
		"status":           domain.RegistrationStatusRejected,
		"rejection_date":   rejectedAt,
		"rejection_reason": reason,
	})
}

// MarkCancelled flips the status and frees every stand the registration held.
func (r *RegistrationRepository) MarkCancelled(ctx context.Context, id uint, cancelledAt time.Time) error {
	if err := r.dao.UpdateStatus(ctx, id, map[string]interface{}{
		"status":            domain.RegistrationStatusCancelled,
		"cancellation_date": cancelledAt,
	}); err != nil {
		return err
	}

	return r.dao.ReleaseStands(ctx, id)
}

func (r *RegistrationRepository) MarkCompleted(ctx context.Context, id uint, completedAt time.Time) error {
	return r.dao.UpdateStatus(ctx, id, map[string]interface{}{
		"status":          domain.RegistrationStatusCompleted,
		"completion_date": completedAt,
	})
}

func (r *RegistrationRepository) ReplaceStands(ctx context.Context, registrationID, eventID uint, standIDs []uint, completed bool) error {
	return r.dao.ReplaceStands(ctx, registrationID, eventID, standIDs, completed)
}

func (r *RegistrationRepository) ReplaceEquipment(ctx context.Context, registrationID, eventID uint, quantities []domain.EquipmentQuantity, completed bool) error {
	daoQuantities := make([]dao.RegistrationEquipment, len(quantities))
	for i, q := range quantities {
		daoQuantities[i] = dao.RegistrationEquipment{
			EquipmentID: q.EquipmentID,
			Quantity:    q.Quantity,
		}
	}

	return r.dao.ReplaceEquipment(ctx, registrationID, eventID, daoQuantities, completed)
}

func (r *RegistrationRepository) SetInvoiceID(ctx context.Context, registrationID, invoiceID uint) error {
	return r.dao.SetInvoiceID(ctx, registrationID, invoiceID)
}
