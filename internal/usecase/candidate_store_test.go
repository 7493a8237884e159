package usecase_test

import (
	"testing"

	"talentlens-backend/internal/domain"
	"talentlens-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySlot is an in-memory stand-in for the file slot.
type memorySlot struct {
	seed    []domain.RawCandidate
	saved   [][]domain.CandidateProfile
	outcome domain.SaveOutcome
}

func newMemorySlot(seed ...domain.RawCandidate) *memorySlot {
	return &memorySlot{seed: seed, outcome: domain.SaveOutcome{Persisted: true}}
}

func (m *memorySlot) Load() []domain.RawCandidate {
	return m.seed
}

func (m *memorySlot) Save(list []domain.CandidateProfile) domain.SaveOutcome {
	m.saved = append(m.saved, list)
	return m.outcome
}

func (m *memorySlot) lastSaved() []domain.CandidateProfile {
	if len(m.saved) == 0 {
		return nil
	}
	return m.saved[len(m.saved)-1]
}

func TestStoreSeedsFromSlot(t *testing.T) {
	slot := newMemorySlot(
		domain.RawCandidate{ID: "c1", FullName: "Jane Doe"},
		domain.RawCandidate{ID: "c2", Name: "John Roe"},
	)
	store := usecase.NewCandidateStore(slot)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "c1", list[0].ID, "seed order is slot order")
	assert.Equal(t, "John Roe", list[1].FullName, "seed entries are normalized")
	assert.Equal(t, domain.StatusNew, list[0].Status)
}

func TestAddOrUpdateInsertsAtFront(t *testing.T) {
	slot := newMemorySlot(domain.RawCandidate{ID: "c1"})
	store := usecase.NewCandidateStore(slot)

	profile, outcome := store.AddOrUpdate(domain.RawCandidate{ID: "c2", FullName: "Jane Doe"})

	assert.True(t, outcome.Persisted)
	assert.Equal(t, "c2", profile.ID)

	list := store.List()
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID, "new candidates go to the front")
	assert.Equal(t, "c1", list[1].ID)
}

func TestAddOrUpdateReplacesInPlace(t *testing.T) {
	slot := newMemorySlot(
		domain.RawCandidate{ID: "c1", FullName: "First"},
		domain.RawCandidate{ID: "c2", FullName: "Second"},
		domain.RawCandidate{ID: "c3", FullName: "Third"},
	)
	store := usecase.NewCandidateStore(slot)

	store.AddOrUpdate(domain.RawCandidate{ID: "c2", FullName: "Second v2"})

	list := store.List()
	require.Len(t, list, 3, "at most one entry per id")
	assert.Equal(t, "c2", list[1].ID, "updated entry keeps its position")
	assert.Equal(t, "Second v2", list[1].FullName)
}

func TestAddOrUpdatePersistsSynchronously(t *testing.T) {
	slot := newMemorySlot()
	store := usecase.NewCandidateStore(slot)

	store.AddOrUpdate(domain.RawCandidate{ID: "c1"})

	require.Len(t, slot.saved, 1, "save runs before AddOrUpdate returns")
	require.Len(t, slot.lastSaved(), 1)
	assert.Equal(t, "c1", slot.lastSaved()[0].ID)
}

func TestAddOrUpdateSurvivesSkippedSave(t *testing.T) {
	slot := newMemorySlot()
	slot.outcome = domain.Skipped("disk full")
	store := usecase.NewCandidateStore(slot)

	profile, outcome := store.AddOrUpdate(domain.RawCandidate{ID: "c1"})

	assert.False(t, outcome.Persisted)
	assert.Equal(t, "disk full", outcome.Reason)

	// In-memory list stays authoritative for the session.
	got, ok := store.GetByID(profile.ID)
	assert.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestGetByID(t *testing.T) {
	store := usecase.NewCandidateStore(newMemorySlot(domain.RawCandidate{ID: "c1", FullName: "Jane"}))

	t.Run("Should return the exact stored profile", func(t *testing.T) {
		got, ok := store.GetByID("c1")
		require.True(t, ok)
		assert.Equal(t, "Jane", got.FullName)
	})

	t.Run("Should report absence without error", func(t *testing.T) {
		_, ok := store.GetByID("missing")
		assert.False(t, ok)
	})

	t.Run("Should report absence on an empty store", func(t *testing.T) {
		empty := usecase.NewCandidateStore(newMemorySlot())
		_, ok := empty.GetByID("missing")
		assert.False(t, ok)
	})
}

func TestListReturnsSnapshot(t *testing.T) {
	store := usecase.NewCandidateStore(newMemorySlot(domain.RawCandidate{ID: "c1", FullName: "Jane"}))

	snapshot := store.List()
	snapshot[0].FullName = "mutated"

	got, ok := store.GetByID("c1")
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FullName, "callers must not be able to mutate the store through List")
}
