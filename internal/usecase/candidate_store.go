package usecase

import (
	"sync"

	"talentlens-backend/internal/domain"
)

// CandidateStore is the single source of truth for the candidate list during
// a process lifetime. It is constructed once at startup and injected into the
// delivery layer. Every profile inside has passed through Normalize exactly
// once, and ids are unique (upsert-by-id, never append-always).
//
// The RWMutex stands in for the original single-threaded event loop: no
// reader can observe a mutation in progress.
type CandidateStore struct {
	mu   sync.RWMutex
	slot domain.CandidateSlot
	list []domain.CandidateProfile
}

// NewCandidateStore seeds the in-memory list from the persistent slot,
// normalizing every entry in the order the slot returned.
func NewCandidateStore(slot domain.CandidateSlot) *CandidateStore {
	s := &CandidateStore{slot: slot}
	for _, raw := range slot.Load() {
		s.list = append(s.list, domain.Normalize(raw))
	}
	return s
}

// AddOrUpdate normalizes the input and upserts it: same id replaces in place
// keeping its position, a new id goes to the front. The full list is persisted
// synchronously before returning; the outcome reports best-effort persistence.
func (s *CandidateStore) AddOrUpdate(raw domain.RawCandidate) (domain.CandidateProfile, domain.SaveOutcome) {
	profile := domain.Normalize(raw)

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := false
	for i := range s.list {
		if s.list[i].ID == profile.ID {
			s.list[i] = profile
			replaced = true
			break
		}
	}
	if !replaced {
		s.list = append([]domain.CandidateProfile{profile}, s.list...)
	}

	return profile, s.slot.Save(s.snapshotLocked())
}

// GetByID returns the stored profile for id, or ok=false when absent.
// Absence is a valid outcome, not an error.
func (s *CandidateStore) GetByID(id string) (domain.CandidateProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.list {
		if c.ID == id {
			return c, true
		}
	}
	return domain.CandidateProfile{}, false
}

// List returns a snapshot of the current list. Callers may filter and
// paginate it freely; mutation goes through AddOrUpdate only.
func (s *CandidateStore) List() []domain.CandidateProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *CandidateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

func (s *CandidateStore) snapshotLocked() []domain.CandidateProfile {
	out := make([]domain.CandidateProfile, len(s.list))
	copy(out, s.list)
	return out
}
