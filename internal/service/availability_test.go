package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposuite/exposuite/internal/domain"
)

func TestLoadEventContextRequiresFloorPlan(t *testing.T) {
	events := newFakeEventRepo()
	events.events[1] = domain.Event{ID: 1, Name: "No Plan Expo"}

	svc := NewAvailabilityService(events)

	registration := domain.Registration{ID: 1, EventID: 1, Status: domain.RegistrationStatusApproved}
	_, err := svc.LoadEventContext(context.Background(), registration, domain.NewDraft(1))
	assert.ErrorIs(t, err, ErrEventPlanMissing)
}

func TestLoadEventContextMarksReservedStands(t *testing.T) {
	events := newFakeEventRepo()
	events.events[1] = domain.Event{ID: 1, FloorPlan: &domain.FloorPlan{ID: 1}}

	own, other := uint(1), uint(99)
	events.stands[10] = domain.Stand{ID: 10, EventID: 1, Status: domain.StandStatusAvailable}
	events.stands[11] = domain.Stand{ID: 11, EventID: 1, Status: domain.StandStatusReserved, RegistrationID: &other}
	events.stands[12] = domain.Stand{ID: 12, EventID: 1, Status: domain.StandStatusReserved, RegistrationID: &own}

	svc := NewAvailabilityService(events)

	registration := domain.Registration{ID: 1, EventID: 1, Status: domain.RegistrationStatusApproved}
	draft := domain.NewDraft(1)
	draft.StandIDs = []uint{12}

	eventContext, err := svc.LoadEventContext(context.Background(), registration, draft)
	require.NoError(t, err)
	require.Len(t, eventContext.Stands, 3)

	byID := map[uint]StandAvailability{}
	for _, stand := range eventContext.Stands {
		byID[stand.ID] = stand
	}

	assert.True(t, byID[10].Selectable)
	assert.False(t, byID[11].Selectable, "stand held by another registration is not selectable")
	assert.True(t, byID[12].Selectable, "own reserved stand stays selectable for deselection")
	assert.True(t, byID[12].Selected)
}

func TestLoadEventContextComputesEquipmentAvailability(t *testing.T) {
	events := newFakeEventRepo()
	events.events[1] = domain.Event{ID: 1, FloorPlan: &domain.FloorPlan{ID: 1}}
	events.equipment[20] = domain.Equipment{ID: 20, EventID: 1, Stock: 5}
	events.equipment[21] = domain.Equipment{ID: 21, EventID: 1, Stock: 2}
	events.allocations[20] = 2
	events.allocations[21] = 4 // over-allocated, floors at zero

	svc := NewAvailabilityService(events)

	registration := domain.Registration{ID: 1, EventID: 1, Status: domain.RegistrationStatusApproved}
	eventContext, err := svc.LoadEventContext(context.Background(), registration, domain.NewDraft(1))
	require.NoError(t, err)

	assert.Equal(t, 3, eventContext.AvailabilityByEquipmentID[20])
	assert.Equal(t, 0, eventContext.AvailabilityByEquipmentID[21])
}

func TestLoadEventContextDegradesFailedItemToZero(t *testing.T) {
	events := newFakeEventRepo()
	events.events[1] = domain.Event{ID: 1, FloorPlan: &domain.FloorPlan{ID: 1}}
	events.equipment[20] = domain.Equipment{ID: 20, EventID: 1, Stock: 5}
	events.equipment[21] = domain.Equipment{ID: 21, EventID: 1, Stock: 4}
	events.allocationErrs[21] = errors.New("query timeout")

	svc := NewAvailabilityService(events)

	registration := domain.Registration{ID: 1, EventID: 1, Status: domain.RegistrationStatusApproved}
	eventContext, err := svc.LoadEventContext(context.Background(), registration, domain.NewDraft(1))
	require.NoError(t, err, "a single item failure must not abort the load")

	assert.Equal(t, 5, eventContext.AvailabilityByEquipmentID[20])
	assert.Equal(t, 0, eventContext.AvailabilityByEquipmentID[21])
}
