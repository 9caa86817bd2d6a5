package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrStandNotFound     = errors.New("stand not found")
	ErrEquipmentNotFound = errors.New("equipment not found")
)

type Event struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Location    string `gorm:"not null"`
	Description string
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`

	OrganizerID uint `gorm:"not null;index"`
	FloorPlanID *uint
	FloorPlan   *FloorPlan `gorm:"foreignKey:FloorPlanID"`

	Stands    []Stand     `gorm:"foreignKey:EventID"`
	Equipment []Equipment `gorm:"foreignKey:EventID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FloorPlan struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	ImageURL string
}

// Stand status values. The repository layer maps them onto the domain
// constants of the same name.
const (
	StandStatusAvailable = "available"
	StandStatusReserved  = "reserved"
)

type Stand struct {
	ID        uint    `gorm:"primaryKey"`
	EventID   uint    `gorm:"not null;index"`
	Number    string  `gorm:"not null"`
	Type      string  `gorm:"not null"` // "standard", "corner", or "island"
	Area      float64 `gorm:"not null"`
	BasePrice float64 `gorm:"not null"`
	Status    string  `gorm:"not null;default:available"`
	Features  string  // JSON-encoded list

	RegistrationID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Equipment struct {
	ID      uint    `gorm:"primaryKey"`
	EventID uint    `gorm:"not null;index"`
	Name    string  `gorm:"not null"`
	Type    string  `gorm:"not null"`
	Price   float64 `gorm:"not null"`
	Unit    string  `gorm:"not null"`
	Stock   int     `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("FloorPlan").
		Preload("Stands").
		Preload("Equipment").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindAll(ctx context.Context) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).Preload("FloorPlan").Order("start_date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) InsertStand(ctx context.Context, stand Stand) (Stand, error) {
	result := d.db.WithContext(ctx).Create(&stand)
	if result.Error != nil {
		return Stand{}, result.Error
	}

	return stand, nil
}

func (d *EventDAO) FindStandByID(ctx context.Context, id uint) (Stand, error) {
	var stand Stand

	result := d.db.WithContext(ctx).First(&stand, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Stand{}, ErrStandNotFound
		}

		return Stand{}, result.Error
	}

	return stand, nil
}

func (d *EventDAO) FindStandsByEventID(ctx context.Context, eventID uint) ([]Stand, error) {
	var stands []Stand

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("number").
		Find(&stands)
	if result.Error != nil {
		return nil, result.Error
	}

	return stands, nil
}

func (d *EventDAO) FindAvailableStandsByEventID(ctx context.Context, eventID uint) ([]Stand, error) {
	var stands []Stand

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, StandStatusAvailable).
		Order("number").
		Find(&stands)
	if result.Error != nil {
		return nil, result.Error
	}

	return stands, nil
}

func (d *EventDAO) InsertEquipment(ctx context.Context, equipment Equipment) (Equipment, error) {
	result := d.db.WithContext(ctx).Create(&equipment)
	if result.Error != nil {
		return Equipment{}, result.Error
	}

	return equipment, nil
}

func (d *EventDAO) FindEquipmentByID(ctx context.Context, id uint) (Equipment, error) {
	var equipment Equipment

	result := d.db.WithContext(ctx).First(&equipment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Equipment{}, ErrEquipmentNotFound
		}

		return Equipment{}, result.Error
	}

	return equipment, nil
}

func (d *EventDAO) FindEquipmentByEventID(ctx context.Context, eventID uint) ([]Equipment, error) {
	var equipment []Equipment

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("name").
		Find(&equipment)
	if result.Error != nil {
		return nil, result.Error
	}

	return equipment, nil
}

// SumEquipmentAllocations returns the quantity of one equipment item currently
// allocated to approved or completed registrations of the event, excluding the
// given registration's own allocation.
func (d *EventDAO) SumEquipmentAllocations(ctx context.Context, equipmentID, eventID, excludeRegistrationID uint) (int, error) {
	var total int64

	result := d.db.WithContext(ctx).
		Table("registration_equipments").
		Joins("JOIN registrations ON registrations.id = registration_equipments.registration_id").
		Where("registration_equipments.equipment_id = ?", equipmentID).
		Where("registrations.event_id = ?", eventID).
		Where("registrations.status IN ?", []string{"approved", "completed"}).
		Where("registrations.id <> ?", excludeRegistrationID).
		Select("COALESCE(SUM(registration_equipments.quantity), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return int(total), nil
}
