package repository

import (
	"context"
	"encoding/json"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository/dao"
)

var (
	ErrEventNotFound     = dao.ErrEventNotFound
	ErrStandNotFound     = dao.ErrStandNotFound
	ErrEquipmentNotFound = dao.ErrEquipmentNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindAll(ctx context.Context) ([]dao.Event, error)
	InsertStand(ctx context.Context, stand dao.Stand) (dao.Stand, error)
	FindStandByID(ctx context.Context, id uint) (dao.Stand, error)
	FindStandsByEventID(ctx context.Context, eventID uint) ([]dao.Stand, error)
	FindAvailableStandsByEventID(ctx context.Context, eventID uint) ([]dao.Stand, error)
	InsertEquipment(ctx context.Context, equipment dao.Equipment) (dao.Equipment, error)
	FindEquipmentByID(ctx context.Context, id uint) (dao.Equipment, error)
	FindEquipmentByEventID(ctx context.Context, eventID uint) ([]dao.Equipment, error)
	SumEquipmentAllocations(ctx context.Context, equipmentID, eventID, excludeRegistrationID uint) (int, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) eventDomainToDao(e domain.Event) dao.Event {
	event := dao.Event{
		ID:          e.ID,
		Name:        e.Name,
		Location:    e.Location,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		OrganizerID: e.OrganizerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.FloorPlan != nil {
		event.FloorPlan = &dao.FloorPlan{
			ID:       e.FloorPlan.ID,
			Name:     e.FloorPlan.Name,
			ImageURL: e.FloorPlan.ImageURL,
		}
	}

	return event
}

func (r *EventRepository) eventDaoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:          e.ID,
		Name:        e.Name,
		Location:    e.Location,
		Description: e.Description,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		OrganizerID: e.OrganizerID,
		Stands:      r.standsDaoToDomain(e.Stands),
		Equipment:   r.equipmentDaoToDomain(e.Equipment),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.FloorPlan != nil {
		event.FloorPlan = &domain.FloorPlan{
			ID:       e.FloorPlan.ID,
			Name:     e.FloorPlan.Name,
			ImageURL: e.FloorPlan.ImageURL,
		}
	}

	return event
}

func (r *EventRepository) standDomainToDao(s domain.Stand) dao.Stand {
	features := ""
	if len(s.Features) > 0 {
		if encoded, err := json.Marshal(s.Features); err == nil {
			features = string(encoded)
		}
	}

	return dao.Stand{
		ID:             s.ID,
		EventID:        s.EventID,
		Number:         s.Number,
		Type:           s.Type,
		Area:           s.Area,
		BasePrice:      s.BasePrice,
		Status:         s.Status,
		Features:       features,
		RegistrationID: s.RegistrationID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r *EventRepository) standDaoToDomain(s dao.Stand) domain.Stand {
	var features []string
	if s.Features != "" {
		// A malformed features blob degrades to an empty list.
		_ = json.Unmarshal([]byte(s.Features), &features)
	}

	return domain.Stand{
		ID:             s.ID,
		EventID:        s.EventID,
		Number:         s.Number,
		Type:           s.Type,
		Area:           s.Area,
		BasePrice:      s.BasePrice,
		Status:         s.Status,
		Features:       features,
		RegistrationID: s.RegistrationID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (r *EventRepository) standsDaoToDomain(stands []dao.Stand) []domain.Stand {
	domainStands := make([]domain.Stand, len(stands))
	for i, stand := range stands {
		domainStands[i] = r.standDaoToDomain(stand)
	}

	return domainStands
}

func (r *EventRepository) equipmentDomainToDao(e domain.Equipment) dao.Equipment {
	return dao.Equipment{
		ID:        e.ID,
		EventID:   e.EventID,
		Name:      e.Name,
		Type:      e.Type,
		Price:     e.Price,
		Unit:      e.Unit,
		Stock:     e.Stock,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *EventRepository) equipmentDaoToDomainOne(e dao.Equipment) domain.Equipment {
	return domain.Equipment{
		ID:        e.ID,
		EventID:   e.EventID,
		Name:      e.Name,
		Type:      e.Type,
		Price:     e.Price,
		Unit:      e.Unit,
		Stock:     e.Stock,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (r *EventRepository) equipmentDaoToDomain(equipment []dao.Equipment) []domain.Equipment {
	domainEquipment := make([]domain.Equipment, len(equipment))
	for i, item := range equipment {
		domainEquipment[i] = r.equipmentDaoToDomainOne(item)
	}

	return domainEquipment
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.eventDomainToDao(event))
	if err != nil {
		return domain.Event{}, err
	}

	return r.eventDaoToDomain(created), nil
}

func (r *EventRepository) FindEventByID(ctx context.Context, id uint) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	return r.eventDaoToDomain(event), nil
}

func (r *EventRepository) FindAllEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	domainEvents := make([]domain.Event, len(events))
	for i, event := range events {
		domainEvents[i] = r.eventDaoToDomain(event)
	}

	return domainEvents, nil
}

func (r *EventRepository) CreateStand(ctx context.Context, stand domain.Stand) (domain.Stand, error) {
	created, err := r.dao.InsertStand(ctx, r.standDomainToDao(stand))
	if err != nil {
		return domain.Stand{}, err
	}

	return r.standDaoToDomain(created), nil
}

func (r *EventRepository) FindStandByID(ctx context.Context, id uint) (domain.Stand, error) {
	stand, err := r.dao.FindStandByID(ctx, id)
	if err != nil {
		return domain.Stand{}, err
	}

	return r.standDaoToDomain(stand), nil
}

func (r *EventRepository) FindStandsByEventID(ctx context.Context, eventID uint) ([]domain.Stand, error) {
	stands, err := r.dao.FindStandsByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return r.standsDaoToDomain(stands), nil
}

func (r *EventRepository) FindAvailableStandsByEventID(ctx context.Context, eventID uint) ([]domain.Stand, error) {
	stands, err := r.dao.FindAvailableStandsByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return r.standsDaoToDomain(stands), nil
}

func (r *EventRepository) CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	created, err := r.dao.InsertEquipment(ctx, r.equipmentDomainToDao(equipment))
	if err != nil {
		return domain.Equipment{}, err
	}

	return r.equipmentDaoToDomainOne(created), nil
}

func (r *EventRepository) FindEquipmentByID(ctx context.Context, id uint) (domain.Equipment, error) {
	equipment, err := r.dao.FindEquipmentByID(ctx, id)
	if err != nil {
		return domain.Equipment{}, err
	}

	return r.equipmentDaoToDomainOne(equipment), nil
}

func (r *EventRepository) FindEquipmentByEventID(ctx context.Context, eventID uint) ([]domain.Equipment, error) {
	equipment, err := r.dao.FindEquipmentByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	return r.equipmentDaoToDomain(equipment), nil
}

func (r *EventRepository) SumEquipmentAllocations(ctx context.Context, equipmentID, eventID, excludeRegistrationID uint) (int, error) {
	return r.dao.SumEquipmentAllocations(ctx, equipmentID, eventID, excludeRegistrationID)
}
