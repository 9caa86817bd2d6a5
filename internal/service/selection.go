package service

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/exposuite/exposuite/internal/domain"
)

// DraftStore is the session-scoped persistence behind the selection wizard.
// Load never fails; corrupt or missing entries come back as an empty draft.
type DraftStore interface {
	Save(draft domain.Draft) error
	Load(registrationID uint) domain.Draft
	Clear(registrationID uint)
}

// SelectionSession is the wizard state presented to the exhibitor. Totals are
// recomputed from current prices on every read, never cached.
type SelectionSession struct {
	RegistrationID uint         `json:"registration_id"`
	Step           int          `json:"step"`
	StandIDs       []uint       `json:"stand_ids"`
	EquipmentIDs   []uint       `json:"equipment_ids"`
	Quantities     map[uint]int `json:"quantities"`
	StandsTotal    float64      `json:"stands_total"`
	EquipmentTotal float64      `json:"equipment_total"`
	Total          float64      `json:"total"`
	Warning        string       `json:"warning,omitempty"`
}

// SelectionView bundles the session with the availability context it was
// computed against.
type SelectionView struct {
	Session SelectionSession `json:"session"`
	Context EventContext     `json:"context"`
}

type SelectionRegistrationRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
}

type SelectionService struct {
	regRepo      SelectionRegistrationRepository
	eventRepo    EventRepository
	availability *AvailabilityService
	drafts       DraftStore
}

func NewSelectionService(regRepo SelectionRegistrationRepository, eventRepo EventRepository, availability *AvailabilityService, drafts DraftStore) *SelectionService {
	return &SelectionService{
		regRepo:      regRepo,
		eventRepo:    eventRepo,
		availability: availability,
		drafts:       drafts,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *SelectionService) openRegistration(ctx context.Context, registrationID uint) (domain.Registration, error) {
	registration, err := s.regRepo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.regRepo.FindByID -> %w", err)
	}
	if !registration.SelectionOpen() {
		return domain.Registration{}, ErrSelectionClosed
	}

	return registration, nil
}

// buildSession assembles the session from a draft, recomputing both totals
// from the catalog.
func (s *SelectionService) buildSession(ctx context.Context, draft domain.Draft) (SelectionSession, error) {
	standsTotal := 0.0
	for _, standID := range draft.StandIDs {
		stand, err := s.eventRepo.FindStandByID(ctx, standID)
		if err != nil {
			return SelectionSession{}, fmt.Errorf("s.eventRepo.FindStandByID -> %w", err)
		}
		standsTotal += stand.BasePrice
	}

	equipmentTotal := 0.0
	for _, equipmentID := range draft.EquipmentIDs {
		equipment, err := s.eventRepo.FindEquipmentByID(ctx, equipmentID)
		if err != nil {
			return SelectionSession{}, fmt.Errorf("s.eventRepo.FindEquipmentByID -> %w", err)
		}
		equipmentTotal += equipment.Price * float64(draft.Quantities[equipmentID])
	}

	return SelectionSession{
		RegistrationID: draft.RegistrationID,
		Step:           draft.Step,
		StandIDs:       draft.StandIDs,
		EquipmentIDs:   draft.EquipmentIDs,
		Quantities:     draft.Quantities,
		StandsTotal:    round2(standsTotal),
		EquipmentTotal: round2(equipmentTotal),
		Total:          round2(standsTotal + equipmentTotal),
	}, nil
}

// Get returns the wizard state plus the availability context of its event.
func (s *SelectionService) Get(ctx context.Context, registrationID uint) (SelectionView, error) {
	registration, err := s.openRegistration(ctx, registrationID)
	if err != nil {
		return SelectionView{}, err
	}

	draft := s.drafts.Load(registrationID)

	eventContext, err := s.availability.LoadEventContext(ctx, registration, draft)
	if err != nil {
		return SelectionView{}, fmt.Errorf("s.availability.LoadEventContext -> %w", err)
	}

	session, err := s.buildSession(ctx, draft)
	if err != nil {
		return SelectionView{}, err
	}

	return SelectionView{Session: session, Context: eventContext}, nil
}

// ToggleStand adds or removes a stand from the draft. Toggling a stand
// reserved by another registration is a no-op.
func (s *SelectionService) ToggleStand(ctx context.Context, registrationID, standID uint) (SelectionSession, error) {
	registration, err := s.openRegistration(ctx, registrationID)
	if err != nil {
		return SelectionSession{}, err
	}

	stand, err := s.eventRepo.FindStandByID(ctx, standID)
	if err != nil {
		return SelectionSession{}, fmt.Errorf("s.eventRepo.FindStandByID -> %w", err)
	}
	if stand.EventID != registration.EventID {
		return SelectionSession{}, ErrStandNotInEvent
	}

	draft := s.drafts.Load(registrationID)

	if draft.HasStand(standID) {
		kept := make([]uint, 0, len(draft.StandIDs)-1)
		for _, id := range draft.StandIDs {
			if id != standID {
				kept = append(kept, id)
			}
		}
		draft.StandIDs = kept
	} else {
		if stand.ReservedByOther(registrationID) {
			return s.buildSession(ctx, draft)
		}
		draft.StandIDs = append(draft.StandIDs, standID)
	}

	if err := s.drafts.Save(draft); err != nil {
		return SelectionSession{}, fmt.Errorf("s.drafts.Save -> %w", err)
	}

	return s.buildSession(ctx, draft)
}

// ToggleEquipment adds or removes an equipment item. Adding defaults the
// quantity to 1; removing drops its quantity entry.
func (s *SelectionService) ToggleEquipment(ctx context.Context, registrationID, equipmentID uint) (SelectionSession, error) {
	registration, err := s.openRegistration(ctx, registrationID)
	if err != nil {
		return SelectionSession{}, err
	}

	equipment, err := s.eventRepo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return SelectionSession{}, fmt.Errorf("s.eventRepo.FindEquipmentByID -> %w", err)
	}
	if equipment.EventID != registration.EventID {
		return SelectionSession{}, ErrEquipmentNotInEvent
	}

	draft := s.drafts.Load(registrationID)

	if draft.HasEquipment(equipmentID) {
		kept := make([]uint, 0, len(draft.EquipmentIDs)-1)
		for _, id := range draft.EquipmentIDs {
			if id != equipmentID {
				kept = append(kept, id)
			}
		}
		draft.EquipmentIDs = kept
		delete(draft.Quantities, equipmentID)
	} else {
		draft.EquipmentIDs = append(draft.EquipmentIDs, equipmentID)
		draft.Quantities[equipmentID] = 1
	}

	if err := s.drafts.Save(draft); err != nil {
		return SelectionSession{}, fmt.Errorf("s.drafts.Save -> %w", err)
	}

	return s.buildSession(ctx, draft)
}

// SetQuantity clamps the requested quantity to the item's current availability
// rather than erroring; fully allocated items clamp to zero. An unreadable
// allocation count counts as zero availability, same as the event context
// resolver. Setting a quantity for an unselected item is a no-op.
func (s *SelectionService) SetQuantity(ctx context.Context, registrationID, equipmentID uint, quantity int) (SelectionSession, error) {
	registration, err := s.openRegistration(ctx, registrationID)
	if err != nil {
		return SelectionSession{}, err
	}

	draft := s.drafts.Load(registrationID)
	if !draft.HasEquipment(equipmentID) {
		return s.buildSession(ctx, draft)
	}

	equipment, err := s.eventRepo.FindEquipmentByID(ctx, equipmentID)
	if err != nil {
		return SelectionSession{}, fmt.Errorf("s.eventRepo.FindEquipmentByID -> %w", err)
	}

	available := 0
	allocated, err := s.eventRepo.SumEquipmentAllocations(ctx, equipmentID, registration.EventID, registrationID)
	if err != nil {
		zap.L().Warn("failed to resolve equipment availability",
			zap.Uint("equipment_id", equipmentID),
			zap.Uint("event_id", registration.EventID),
			zap.Error(err))
	} else {
		available = equipment.Stock - allocated
		if available < 0 {
			available = 0
		}
	}

	if quantity < 1 {
		quantity = 1
	}
	if quantity > available {
		quantity = available
	}
	draft.Quantities[equipmentID] = quantity

	if err := s.drafts.Save(draft); err != nil {
		return SelectionSession{}, fmt.Errorf("s.drafts.Save -> %w", err)
	}

	return s.buildSession(ctx, draft)
}

// Advance moves the wizard one step forward. Leaving the stands step requires
// at least one stand; the violation is a warning on the session, not an error,
// and the step does not change. The draft is persisted on every advance.
func (s *SelectionService) Advance(ctx context.Context, registrationID uint) (SelectionSession, error) {
	if _, err := s.openRegistration(ctx, registrationID); err != nil {
		return SelectionSession{}, err
	}

	draft := s.drafts.Load(registrationID)

	warning := ""
	switch draft.Step {
	case domain.StepStands:
		if len(draft.StandIDs) == 0 {
			warning = "select at least one stand before continuing"
		} else {
			draft.Step = domain.StepEquipment
		}
	case domain.StepEquipment:
		// Equipment is optional.
		draft.Step = domain.StepReview
	}

	if err := s.drafts.Save(draft); err != nil {
		return SelectionSession{}, fmt.Errorf("s.drafts.Save -> %w", err)
	}

	session, err := s.buildSession(ctx, draft)
	if err != nil {
		return SelectionSession{}, err
	}
	session.Warning = warning

	return session, nil
}

// Retreat moves back to the given step, or one step back when none is given.
// The draft is persisted either way.
func (s *SelectionService) Retreat(ctx context.Context, registrationID uint, toStep *int) (SelectionSession, error) {
	if _, err := s.openRegistration(ctx, registrationID); err != nil {
		return SelectionSession{}, err
	}

	draft := s.drafts.Load(registrationID)

	target := draft.Step - 1
	if toStep != nil {
		target = *toStep
	}
	if target >= domain.StepStands && target < draft.Step {
		draft.Step = target
	}

	if err := s.drafts.Save(draft); err != nil {
		return SelectionSession{}, fmt.Errorf("s.drafts.Save -> %w", err)
	}

	return s.buildSession(ctx, draft)
}

// Discard drops the registration's draft entirely.
func (s *SelectionService) Discard(ctx context.Context, registrationID uint) error {
	if _, err := s.regRepo.FindByID(ctx, registrationID); err != nil {
		return fmt.Errorf("s.regRepo.FindByID -> %w", err)
	}

	s.drafts.Clear(registrationID)

	return nil
}
