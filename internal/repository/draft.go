package repository

import (
	"encoding/json"
	"fmt"

	"github.com/patrickmn/go-cache"

	"github.com/exposuite/exposuite/internal/domain"
)

// DraftRepository is the session-scoped store for in-progress selections.
// Entries never expire; they are removed only on successful submission or an
// explicit discard. Every key is registration-scoped so concurrent drafts for
// different registrations cannot interfere.
type DraftRepository struct {
	store *cache.Cache
}

func NewDraftRepository() *DraftRepository {
	return &DraftRepository{
		store: cache.New(cache.NoExpiration, 0),
	}
}

func standKey(registrationID uint) string {
	return fmt.Sprintf("standSelection_%d", registrationID)
}

func equipmentKey(registrationID uint) string {
	return fmt.Sprintf("equipmentSelection_%d", registrationID)
}

func quantitiesKey(registrationID uint) string {
	return fmt.Sprintf("equipmentQuantities_%d", registrationID)
}

func stepKey(registrationID uint) string {
	return fmt.Sprintf("selectionStep_%d", registrationID)
}

// Save persists the draft under its registration-scoped keys. Each slice and
// the quantity map are stored as separate JSON entries.
func (r *DraftRepository) Save(draft domain.Draft) error {
	stands, err := json.Marshal(draft.StandIDs)
	if err != nil {
		return fmt.Errorf("marshal stand selection -> %w", err)
	}
	equipment, err := json.Marshal(draft.EquipmentIDs)
	if err != nil {
		return fmt.Errorf("marshal equipment selection -> %w", err)
	}
	quantities, err := json.Marshal(draft.Quantities)
	if err != nil {
		return fmt.Errorf("marshal equipment quantities -> %w", err)
	}

	r.store.Set(standKey(draft.RegistrationID), stands, cache.NoExpiration)
	r.store.Set(equipmentKey(draft.RegistrationID), equipment, cache.NoExpiration)
	r.store.Set(quantitiesKey(draft.RegistrationID), quantities, cache.NoExpiration)
	r.store.Set(stepKey(draft.RegistrationID), draft.Step, cache.NoExpiration)

	return nil
}

// Load returns the stored draft, or an empty one when entries are missing or
// corrupt. It never fails.
func (r *DraftRepository) Load(registrationID uint) domain.Draft {
	draft := domain.NewDraft(registrationID)

	if raw, found := r.store.Get(standKey(registrationID)); found {
		if encoded, ok := raw.([]byte); ok {
			var standIDs []uint
			if err := json.Unmarshal(encoded, &standIDs); err == nil && standIDs != nil {
				draft.StandIDs = standIDs
			}
		}
	}

	if raw, found := r.store.Get(equipmentKey(registrationID)); found {
		if encoded, ok := raw.([]byte); ok {
			var equipmentIDs []uint
			if err := json.Unmarshal(encoded, &equipmentIDs); err == nil && equipmentIDs != nil {
				draft.EquipmentIDs = equipmentIDs
			}
		}
	}

	if raw, found := r.store.Get(quantitiesKey(registrationID)); found {
		if encoded, ok := raw.([]byte); ok {
			var quantities map[uint]int
			if err := json.Unmarshal(encoded, &quantities); err == nil && quantities != nil {
				draft.Quantities = quantities
			}
		}
	}

	if raw, found := r.store.Get(stepKey(registrationID)); found {
		if step, ok := raw.(int); ok && step >= domain.StepStands && step <= domain.StepReview {
			draft.Step = step
		}
	}

	return draft
}

// Clear removes every entry of the registration's draft.
func (r *DraftRepository) Clear(registrationID uint) {
	r.store.Delete(standKey(registrationID))
	r.store.Delete(equipmentKey(registrationID))
	r.store.Delete(quantitiesKey(registrationID))
	r.store.Delete(stepKey(registrationID))
}
