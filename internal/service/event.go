package service

import (
	"context"
	"fmt"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrStandNotFound     = repository.ErrStandNotFound
	ErrEquipmentNotFound = repository.ErrEquipmentNotFound
)

type EventRepository interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	FindEventByID(ctx context.Context, id uint) (domain.Event, error)
	FindAllEvents(ctx context.Context) ([]domain.Event, error)
	CreateStand(ctx context.Context, stand domain.Stand) (domain.Stand, error)
	FindStandByID(ctx context.Context, id uint) (domain.Stand, error)
	FindStandsByEventID(ctx context.Context, eventID uint) ([]domain.Stand, error)
	FindAvailableStandsByEventID(ctx context.Context, eventID uint) ([]domain.Stand, error)
	CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error)
	FindEquipmentByID(ctx context.Context, id uint) (domain.Equipment, error)
	FindEquipmentByEventID(ctx context.Context, eventID uint) ([]domain.Equipment, error)
	SumEquipmentAllocations(ctx context.Context, equipmentID, eventID, excludeRegistrationID uint) (int, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.CreateEvent -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	return event, nil
}

func (s *EventService) GetEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repo.FindAllEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllEvents -> %w", err)
	}

	return events, nil
}

func (s *EventService) CreateStand(ctx context.Context, stand domain.Stand) (domain.Stand, error) {
	if _, err := s.repo.FindEventByID(ctx, stand.EventID); err != nil {
		return domain.Stand{}, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	stand.Status = domain.StandStatusAvailable
	created, err := s.repo.CreateStand(ctx, stand)
	if err != nil {
		return domain.Stand{}, fmt.Errorf("s.repo.CreateStand -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetStands(ctx context.Context, eventID uint) ([]domain.Stand, error) {
	if _, err := s.repo.FindEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	stands, err := s.repo.FindStandsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindStandsByEventID -> %w", err)
	}

	return stands, nil
}

func (s *EventService) GetAvailableStands(ctx context.Context, eventID uint) ([]domain.Stand, error) {
	if _, err := s.repo.FindEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	stands, err := s.repo.FindAvailableStandsByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAvailableStandsByEventID -> %w", err)
	}

	return stands, nil
}

func (s *EventService) CreateEquipment(ctx context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	if _, err := s.repo.FindEventByID(ctx, equipment.EventID); err != nil {
		return domain.Equipment{}, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	created, err := s.repo.CreateEquipment(ctx, equipment)
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("s.repo.CreateEquipment -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEventEquipment(ctx context.Context, eventID uint) ([]domain.Equipment, error) {
	if _, err := s.repo.FindEventByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.repo.FindEventByID -> %w", err)
	}

	equipment, err := s.repo.FindEquipmentByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindEquipmentByEventID -> %w", err)
	}

	return equipment, nil
}

// GetAvailableQuantity returns the quantity of one equipment item still free
// for an event: total stock minus what other registrations have allocated.
func (s *EventService) GetAvailableQuantity(ctx context.Context, equipmentID, eventID uint) (int, error) {
	equipment, err := s.repo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.FindEquipmentByID -> %w", err)
	}

	allocated, err := s.repo.SumEquipmentAllocations(ctx, equipmentID, eventID, 0)
	if err != nil {
		return 0, fmt.Errorf("s.repo.SumEquipmentAllocations -> %w", err)
	}

	available := equipment.Stock - allocated
	if available < 0 {
		available = 0
	}

	return available, nil
}
