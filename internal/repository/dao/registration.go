package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("exhibitor already registered for this event")
	ErrStandAlreadyReserved = errors.New("stand already reserved by another registration")
	ErrStandNotInEvent      = errors.New("stand does not belong to the event")
	ErrEquipmentNotInEvent  = errors.New("equipment does not belong to the event")
)

type Registration struct {
	ID          uint   `gorm:"primaryKey"`
	EventID     uint   `gorm:"not null;index;uniqueIndex:uni_registrations_event_exhibitor"`
	ExhibitorID uint   `gorm:"not null;index;uniqueIndex:uni_registrations_event_exhibitor"`
	Status      string `gorm:"not null;default:pending"`

	Stands                  []Stand `gorm:"foreignKey:RegistrationID"`
	StandSelectionCompleted bool    `gorm:"not null;default:false"`

	EquipmentQuantities         []RegistrationEquipment `gorm:"foreignKey:RegistrationID"`
	EquipmentSelectionCompleted bool                    `gorm:"not null;default:false"`

	ApprovalDate     *time.Time
	RejectionDate    *time.Time
	RejectionReason  string
	CancellationDate *time.Time
	CompletionDate   *time.Time

	InvoiceID *uint

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationEquipment struct {
	ID             uint      `gorm:"primaryKey"`
	RegistrationID uint      `gorm:"not null;index;uniqueIndex:uni_registration_equipment"`
	EquipmentID    uint      `gorm:"not null;uniqueIndex:uni_registration_equipment"`
	Equipment      Equipment `gorm:"foreignKey:EquipmentID"`
	Quantity       int       `gorm:"not null"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_registrations_event_exhibitor"`) {
			return Registration{}, ErrAlreadyRegistered
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		Preload("Stands").
		Preload("EquipmentQuantities").
		Preload("EquipmentQuantities.Equipment").
		First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByExhibitorID(ctx context.Context, exhibitorID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Stands").
		Preload("EquipmentQuantities").
		Where("exhibitor_id = ?", exhibitorID).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) FindByEventID(ctx context.Context, eventID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("Stands").
		Preload("EquipmentQuantities").
		Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) UpdateStatus(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// ReplaceStands atomically swaps the set of stands held by a registration.
// Requested stands are locked for the duration of the transaction; a stand
// held by another registration fails the whole call with no partial writes.
func (d *RegistrationDAO) ReplaceStands(ctx context.Context, registrationID uint, eventID uint, standIDs []uint, completed bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stands []Stand
		if len(standIDs) > 0 {
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ?", standIDs).
				Find(&stands).Error; err != nil {
				return err
			}
			if len(stands) != len(standIDs) {
				return ErrStandNotFound
			}

			for _, stand := range stands {
				if stand.EventID != eventID {
					return ErrStandNotInEvent
				}
				if stand.Status == StandStatusReserved &&
					(stand.RegistrationID == nil || *stand.RegistrationID != registrationID) {
					return ErrStandAlreadyReserved
				}
			}
		}

		// Release stands currently held but absent from the new set.
		release := tx.Model(&Stand{}).Where("registration_id = ?", registrationID)
		if len(standIDs) > 0 {
			release = release.Where("id NOT IN ?", standIDs)
		}
		if err := release.Updates(map[string]interface{}{
			"status":          StandStatusAvailable,
			"registration_id": nil,
		}).Error; err != nil {
			return err
		}

		if len(standIDs) > 0 {
			if err := tx.Model(&Stand{}).
				Where("id IN ?", standIDs).
				Updates(map[string]interface{}{
					"status":          StandStatusReserved,
					"registration_id": registrationID,
				}).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Registration{}).
			Where("id = ?", registrationID).
			Update("stand_selection_completed", completed).Error
	})
}

// ReplaceEquipment swaps the registration's equipment allocation in one
// transaction. Quantities carry the Equipment row's event for membership checks.
func (d *RegistrationDAO) ReplaceEquipment(ctx context.Context, registrationID uint, eventID uint, quantities []RegistrationEquipment, completed bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(quantities) > 0 {
			ids := make([]uint, len(quantities))
			for i, q := range quantities {
				ids[i] = q.EquipmentID
			}

			var count int64
			if err := tx.Model(&Equipment{}).
				Where("id IN ? AND event_id = ?", ids, eventID).
				Count(&count).Error; err != nil {
				return err
			}
			if count != int64(len(ids)) {
				return ErrEquipmentNotInEvent
			}
		}

		if err := tx.Where("registration_id = ?", registrationID).
			Delete(&RegistrationEquipment{}).Error; err != nil {
			return err
		}

		for i := range quantities {
			quantities[i].ID = 0
			quantities[i].RegistrationID = registrationID
		}
		if len(quantities) > 0 {
			if err := tx.Create(&quantities).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Registration{}).
			Where("id = ?", registrationID).
			Update("equipment_selection_completed", completed).Error
	})
}

// ReleaseStands frees every stand held by the registration. Used on cancel.
func (d *RegistrationDAO) ReleaseStands(ctx context.Context, registrationID uint) error {
	return d.db.WithContext(ctx).
		Model(&Stand{}).
		Where("registration_id = ?", registrationID).
		Updates(map[string]interface{}{
			"status":          StandStatusAvailable,
			"registration_id": nil,
		}).Error
}

func (d *RegistrationDAO) SetInvoiceID(ctx context.Context, registrationID, invoiceID uint) error {
	return d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ?", registrationID).
		Update("invoice_id", invoiceID).Error
}
