package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exposuite/exposuite/internal/domain"
)

func TestDraftRepositoryRoundTrip(t *testing.T) {
	repo := NewDraftRepository()

	draft := domain.Draft{
		RegistrationID: 1,
		Step:           domain.StepEquipment,
		StandIDs:       []uint{10, 11},
		EquipmentIDs:   []uint{20},
		Quantities:     map[uint]int{20: 3},
	}
	require.NoError(t, repo.Save(draft))

	loaded := repo.Load(1)
	assert.Equal(t, draft, loaded)
}

func TestDraftRepositoryMissingEntriesYieldEmptyDraft(t *testing.T) {
	repo := NewDraftRepository()

	loaded := repo.Load(42)
	assert.Equal(t, domain.NewDraft(42), loaded)
	assert.Empty(t, loaded.StandIDs)
	assert.Equal(t, domain.StepStands, loaded.Step)
}

func TestDraftRepositoryIsolatesRegistrations(t *testing.T) {
	repo := NewDraftRepository()

	require.NoError(t, repo.Save(domain.Draft{
		RegistrationID: 1,
		StandIDs:       []uint{10},
		EquipmentIDs:   []uint{},
		Quantities:     map[uint]int{},
	}))
	require.NoError(t, repo.Save(domain.Draft{
		RegistrationID: 2,
		StandIDs:       []uint{11},
		EquipmentIDs:   []uint{},
		Quantities:     map[uint]int{},
	}))

	assert.Equal(t, []uint{10}, repo.Load(1).StandIDs)
	assert.Equal(t, []uint{11}, repo.Load(2).StandIDs)

	repo.Clear(1)
	assert.Empty(t, repo.Load(1).StandIDs)
	assert.Equal(t, []uint{11}, repo.Load(2).StandIDs)
}

func TestDraftRepositoryCorruptEntriesFallBackToDefaults(t *testing.T) {
	repo := NewDraftRepository()

	repo.store.Set(standKey(1), []byte("{not json"), 0)
	repo.store.Set(equipmentKey(1), "wrong type entirely", 0)
	repo.store.Set(quantitiesKey(1), []byte(`"scalar"`), 0)
	repo.store.Set(stepKey(1), 99, 0)

	loaded := repo.Load(1)
	assert.Empty(t, loaded.StandIDs)
	assert.Empty(t, loaded.EquipmentIDs)
	assert.Empty(t, loaded.Quantities)
	assert.Equal(t, domain.StepStands, loaded.Step)
}

func TestDraftRepositoryClearRemovesEveryKey(t *testing.T) {
	repo := NewDraftRepository()

	require.NoError(t, repo.Save(domain.Draft{
		RegistrationID: 1,
		Step:           domain.StepReview,
		StandIDs:       []uint{10},
		EquipmentIDs:   []uint{20},
		Quantities:     map[uint]int{20: 2},
	}))

	repo.Clear(1)

	loaded := repo.Load(1)
	assert.Equal(t, domain.NewDraft(1), loaded)
}
