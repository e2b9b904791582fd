package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Anuragt1104/solmentor/internal/app"
	"github.com/Anuragt1104/solmentor/internal/domain"
)

// RecordStore is an in-memory implementation of app.RecordStore. Records are
// kept as serialized JSON so reads never alias storage.
type RecordStore struct {
	mu      sync.RWMutex
	records map[domain.Address]storedRecord
}

type storedRecord struct {
	kind domain.RecordKind
	data []byte
}

func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[domain.Address]storedRecord),
	}
}

func (s *RecordStore) LoadProfile(_ context.Context, addr domain.Address) (domain.Profile, error) {
	var profile domain.Profile
	if err := s.load(addr, domain.KindProfile, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *RecordStore) LoadQuizResult(_ context.Context, addr domain.Address) (domain.QuizResult, error) {
	var result domain.QuizResult
	if err := s.load(addr, domain.KindQuizResult, &result); err != nil {
		return domain.QuizResult{}, err
	}
	return result, nil
}

func (s *RecordStore) LoadAchievement(_ context.Context, addr domain.Address) (domain.Achievement, error) {
	var achievement domain.Achievement
	if err := s.load(addr, domain.KindAchievement, &achievement); err != nil {
		return domain.Achievement{}, err
	}
	return achievement, nil
}

func (s *RecordStore) Exists(_ context.Context, addr domain.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[addr]
	return ok, nil
}

// Commit applies a mutation all-or-nothing: collisions and serialization
// errors are detected before the first write.
func (s *RecordStore) Commit(_ context.Context, mut app.Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[domain.Address]storedRecord, len(mut.Creates)+len(mut.Updates))
	for _, rec := range mut.Creates {
		if _, ok := s.records[rec.Address]; ok {
			return fmt.Errorf("%w: address %s", domain.ErrAlreadyExists, rec.Address)
		}
		data, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		staged[rec.Address] = storedRecord{kind: rec.Kind, data: data}
	}
	for _, rec := range mut.Updates {
		if _, ok := s.records[rec.Address]; !ok {
			return fmt.Errorf("%w: update target %s", domain.ErrNotFound, rec.Address)
		}
		data, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		staged[rec.Address] = storedRecord{kind: rec.Kind, data: data}
	}

	for addr, rec := range staged {
		s.records[addr] = rec
	}
	return nil
}

func (s *RecordStore) load(addr domain.Address, kind domain.RecordKind, out any) error {
	s.mu.RLock()
	rec, ok := s.records[addr]
	s.mu.RUnlock()
	if !ok || rec.kind != kind {
		return fmt.Errorf("%w: address %s", domain.ErrNotFound, addr)
	}
	if err := json.Unmarshal(rec.data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
