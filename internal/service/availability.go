package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/exposuite/exposuite/internal/domain"
)

var ErrEventPlanMissing = errors.New("event has no floor plan assigned")

// StandAvailability is a stand annotated with its selectability for one
// registration. A stand held by another registration is listed but not
// selectable; the registration's own stands always stay selectable so they
// can be deselected.
type StandAvailability struct {
	domain.Stand
	Selectable bool `json:"selectable"`
	Selected   bool `json:"selected"`
}

type EquipmentAvailability struct {
	domain.Equipment
	Available int `json:"available"`
}

type EventContext struct {
	Stands                    []StandAvailability     `json:"stands"`
	Equipment                 []EquipmentAvailability `json:"equipment"`
	AvailabilityByEquipmentID map[uint]int            `json:"availability_by_equipment_id"`
}

type AvailabilityService struct {
	eventRepo EventRepository
}

func NewAvailabilityService(eventRepo EventRepository) *AvailabilityService {
	return &AvailabilityService{
		eventRepo: eventRepo,
	}
}

// LoadEventContext resolves the full stand and equipment picture for one
// registration's wizard. An event without a floor plan blocks the whole load;
// a failed availability lookup for a single equipment item degrades that item
// to zero without aborting the rest.
func (s *AvailabilityService) LoadEventContext(ctx context.Context, registration domain.Registration, draft domain.Draft) (EventContext, error) {
	event, err := s.eventRepo.FindEventByID(ctx, registration.EventID)
	if err != nil {
		return EventContext{}, fmt.Errorf("s.eventRepo.FindEventByID -> %w", err)
	}
	if event.FloorPlan == nil {
		return EventContext{}, ErrEventPlanMissing
	}

	stands, err := s.eventRepo.FindStandsByEventID(ctx, registration.EventID)
	if err != nil {
		return EventContext{}, fmt.Errorf("s.eventRepo.FindStandsByEventID -> %w", err)
	}

	standContext := make([]StandAvailability, len(stands))
	for i, stand := range stands {
		standContext[i] = StandAvailability{
			Stand:      stand,
			Selectable: !stand.ReservedByOther(registration.ID),
			Selected:   draft.HasStand(stand.ID),
		}
	}

	equipment, err := s.eventRepo.FindEquipmentByEventID(ctx, registration.EventID)
	if err != nil {
		return EventContext{}, fmt.Errorf("s.eventRepo.FindEquipmentByEventID -> %w", err)
	}

	availability := make(map[uint]int, len(equipment))
	equipmentContext := make([]EquipmentAvailability, len(equipment))
	for i, item := range equipment {
		available := 0

		allocated, err := s.eventRepo.SumEquipmentAllocations(ctx, item.ID, registration.EventID, registration.ID)
		if err != nil {
			// Fail-safe: an unreadable allocation count means zero availability
			// for this item only.
			zap.L().Warn("failed to resolve equipment availability",
				zap.Uint("equipment_id", item.ID),
				zap.Uint("event_id", registration.EventID),
				zap.Error(err))
		} else {
			available = item.Stock - allocated
			if available < 0 {
				available = 0
			}
		}

		availability[item.ID] = available
		equipmentContext[i] = EquipmentAvailability{
			Equipment: item,
			Available: available,
		}
	}

	return EventContext{
		Stands:                    standContext,
		Equipment:                 equipmentContext,
		AvailabilityByEquipmentID: availability,
	}, nil
}
