package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"talentlens-backend/internal/domain"
)

// Store persists the candidate list as a JSON array in a single file slot.
// It deliberately mirrors a browser localStorage slot: missing or corrupt
// data means "no prior data", and write failures are swallowed so the
// in-memory list stays authoritative for the session.
type Store struct {
	path string
}

func NewStore(path string) domain.CandidateSlot {
	return &Store{path: path}
}

// Load returns the previously persisted list, or an empty list when the slot
// is absent, unreadable, or holds anything that does not parse as a JSON
// array of candidates. Corruption is discarded, never surfaced.
func (s *Store) Load() []domain.RawCandidate {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []domain.RawCandidate{}
	}

	var list []domain.RawCandidate
	if err := json.Unmarshal(data, &list); err != nil {
		return []domain.RawCandidate{}
	}
	if list == nil {
		return []domain.RawCandidate{}
	}
	return list
}

// Save writes the full list to the slot, best-effort. The write goes through
// a temp file and rename so a crash mid-write cannot corrupt the slot.
func (s *Store) Save(list []domain.CandidateProfile) domain.SaveOutcome {
	data, err := json.Marshal(list)
	if err != nil {
		return domain.Skipped(fmt.Sprintf("encode candidate list: %v", err))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Skipped(fmt.Sprintf("create slot directory: %v", err))
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return domain.Skipped(fmt.Sprintf("create temp slot: %v", err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.Skipped(fmt.Sprintf("write slot: %v", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.Skipped(fmt.Sprintf("close slot: %v", err))
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.Skipped(fmt.Sprintf("replace slot: %v", err))
	}
	return domain.SaveOutcome{Persisted: true}
}
