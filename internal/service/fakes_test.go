package service

import (
	"context"
	"time"

	"github.com/exposuite/exposuite/internal/domain"
	"github.com/exposuite/exposuite/internal/repository"
)

// fakeEventRepo is an in-memory EventRepository. Allocations are keyed by
// equipment ID and stand for what other registrations hold.
type fakeEventRepo struct {
	events    map[uint]domain.Event
	stands    map[uint]domain.Stand
	equipment map[uint]domain.Equipment

	allocations    map[uint]int
	allocationErrs map[uint]error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:         map[uint]domain.Event{},
		stands:         map[uint]domain.Stand{},
		equipment:      map[uint]domain.Equipment{},
		allocations:    map[uint]int{},
		allocationErrs: map[uint]error{},
	}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = uint(len(f.events) + 1)
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) FindEventByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) FindAllEvents(_ context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(f.events))
	for _, event := range f.events {
		events = append(events, event)
	}
	return events, nil
}

func (f *fakeEventRepo) CreateStand(_ context.Context, stand domain.Stand) (domain.Stand, error) {
	stand.ID = uint(len(f.stands) + 1)
	f.stands[stand.ID] = stand
	return stand, nil
}

func (f *fakeEventRepo) FindStandByID(_ context.Context, id uint) (domain.Stand, error) {
	stand, ok := f.stands[id]
	if !ok {
		return domain.Stand{}, repository.ErrStandNotFound
	}
	return stand, nil
}

func (f *fakeEventRepo) FindStandsByEventID(_ context.Context, eventID uint) ([]domain.Stand, error) {
	var stands []domain.Stand
	for _, stand := range f.stands {
		if stand.EventID == eventID {
			stands = append(stands, stand)
		}
	}
	return stands, nil
}

func (f *fakeEventRepo) FindAvailableStandsByEventID(_ context.Context, eventID uint) ([]domain.Stand, error) {
	var stands []domain.Stand
	for _, stand := range f.stands {
		if stand.EventID == eventID && stand.Status == domain.StandStatusAvailable {
			stands = append(stands, stand)
		}
	}
	return stands, nil
}

func (f *fakeEventRepo) CreateEquipment(_ context.Context, equipment domain.Equipment) (domain.Equipment, error) {
	equipment.ID = uint(len(f.equipment) + 1)
	f.equipment[equipment.ID] = equipment
	return equipment, nil
}

func (f *fakeEventRepo) FindEquipmentByID(_ context.Context, id uint) (domain.Equipment, error) {
	equipment, ok := f.equipment[id]
	if !ok {
		return domain.Equipment{}, repository.ErrEquipmentNotFound
	}
	return equipment, nil
}

func (f *fakeEventRepo) FindEquipmentByEventID(_ context.Context, eventID uint) ([]domain.Equipment, error) {
	var equipment []domain.Equipment
	for _, item := range f.equipment {
		if item.EventID == eventID {
			equipment = append(equipment, item)
		}
	}
	return equipment, nil
}

func (f *fakeEventRepo) SumEquipmentAllocations(_ context.Context, equipmentID, _, _ uint) (int, error) {
	if err, ok := f.allocationErrs[equipmentID]; ok {
		return 0, err
	}
	return f.allocations[equipmentID], nil
}

// fakeRegistrationRepo keeps registrations in memory and mirrors the stand
// conflict check the real repository enforces.
type fakeRegistrationRepo struct {
	registrations map[uint]domain.Registration
	events        *fakeEventRepo

	replaceStandsErr    error
	replaceEquipmentErr error
}

func newFakeRegistrationRepo(events *fakeEventRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: map[uint]domain.Registration{},
		events:        events,
	}
}

func (f *fakeRegistrationRepo) add(registration domain.Registration) domain.Registration {
	if registration.ID == 0 {
		registration.ID = uint(len(f.registrations) + 1)
	}
	f.registrations[registration.ID] = registration
	return registration
}

func (f *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	for _, existing := range f.registrations {
		if existing.EventID == registration.EventID && existing.ExhibitorID == registration.ExhibitorID {
			return domain.Registration{}, repository.ErrAlreadyRegistered
		}
	}
	return f.add(registration), nil
}

func (f *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	registration, ok := f.registrations[id]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	return registration, nil
}

func (f *fakeRegistrationRepo) FindByExhibitorID(_ context.Context, exhibitorID uint) ([]domain.Registration, error) {
	var registrations []domain.Registration
	for _, registration := range f.registrations {
		if registration.ExhibitorID == exhibitorID {
			registrations = append(registrations, registration)
		}
	}
	return registrations, nil
}

func (f *fakeRegistrationRepo) FindByEventID(_ context.Context, eventID uint) ([]domain.Registration, error) {
	var registrations []domain.Registration
	for _, registration := range f.registrations {
		if registration.EventID == eventID {
			registrations = append(registrations, registration)
		}
	}
	return registrations, nil
}

func (f *fakeRegistrationRepo) MarkApproved(_ context.Context, id uint, approvedAt time.Time) error {
	registration := f.registrations[id]
	registration.Status = domain.RegistrationStatusApproved
	registration.ApprovalDate = &approvedAt
	f.registrations[id] = registration
	return nil
}

func (f *fakeRegistrationRepo) MarkRejected(_ context.Context, id uint, rejectedAt time.Time, reason string) error {
	registration := f.registrations[id]
	registration.Status = domain.RegistrationStatusRejected
	registration.RejectionDate = &rejectedAt
	registration.RejectionReason = reason
	f.registrations[id] = registration
	return nil
}

func (f *fakeRegistrationRepo) MarkCancelled(_ context.Context, id uint, cancelledAt time.Time) error {
	registration := f.registrations[id]
	registration.Status = domain.RegistrationStatusCancelled
	registration.CancellationDate = &cancelledAt
	registration.Stands = nil
	f.registrations[id] = registration
	return nil
}

func (f *fakeRegistrationRepo) MarkCompleted(_ context.Context, id uint, completedAt time.Time) error {
	registration := f.registrations[id]
	registration.Status = domain.RegistrationStatusCompleted
	registration.CompletionDate = &completedAt
	f.registrations[id] = registration
	return nil
}

func (f *fakeRegistrationRepo) ReplaceStands(_ context.Context, registrationID, _ uint, standIDs []uint, completed bool) error {
	if f.replaceStandsErr != nil {
		return f.replaceStandsErr
	}

	registration := f.registrations[registrationID]
	registration.Stands = nil
	for _, standID := range standIDs {
		stand, ok := f.events.stands[standID]
		if !ok {
			return repository.ErrStandNotInEvent
		}
		if stand.ReservedByOther(registrationID) {
			return repository.ErrStandAlreadyReserved
		}
		registration.Stands = append(registration.Stands, stand)
	}
	registration.StandSelectionCompleted = completed
	f.registrations[registrationID] = registration
	return nil
}

func (f *fakeRegistrationRepo) ReplaceEquipment(_ context.Context, registrationID, _ uint, quantities []domain.EquipmentQuantity, completed bool) error {
	if f.replaceEquipmentErr != nil {
		return f.replaceEquipmentErr
	}

	registration := f.registrations[registrationID]
	registration.Equipment = nil
	registration.EquipmentQuantities = quantities
	for _, q := range quantities {
		registration.Equipment = append(registration.Equipment, f.events.equipment[q.EquipmentID])
	}
	registration.EquipmentSelectionCompleted = completed
	f.registrations[registrationID] = registration
	return nil
}

// fakeDraftStore is a map-backed DraftStore.
type fakeDraftStore struct {
	drafts map[uint]domain.Draft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: map[uint]domain.Draft{}}
}

func (f *fakeDraftStore) Save(draft domain.Draft) error {
	f.drafts[draft.RegistrationID] = draft
	return nil
}

func (f *fakeDraftStore) Load(registrationID uint) domain.Draft {
	draft, ok := f.drafts[registrationID]
	if !ok {
		return domain.NewDraft(registrationID)
	}
	return draft
}

func (f *fakeDraftStore) Clear(registrationID uint) {
	delete(f.drafts, registrationID)
}
