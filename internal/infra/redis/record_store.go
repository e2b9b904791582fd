package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Anuragt1104/solmentor/internal/app"
	"github.com/Anuragt1104/solmentor/internal/domain"
	"github.com/redis/go-redis/v9"
)

const commitRetries = 3

// RecordStore keeps ledger records as JSON values keyed by their derived
// address: SET ledger:record:{address} {kind, owner, data}.
// Commits run under WATCH on every touched key so a mutation applies
// all-or-nothing even against concurrent writers.
type RecordStore struct {
	client *redis.Client
}

func NewRecordStore(client *redis.Client) *RecordStore {
	return &RecordStore{client: client}
}

type envelope struct {
	Kind  domain.RecordKind `json:"kind"`
	Owner string            `json:"owner"`
	Data  json.RawMessage   `json:"data"`
}

func (s *RecordStore) LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error) {
	var profile domain.Profile
	if err := s.load(ctx, addr, domain.KindProfile, &profile); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (s *RecordStore) LoadQuizResult(ctx context.Context, addr domain.Address) (domain.QuizResult, error) {
	var result domain.QuizResult
	if err := s.load(ctx, addr, domain.KindQuizResult, &result); err != nil {
		return domain.QuizResult{}, err
	}
	return result, nil
}

func (s *RecordStore) LoadAchievement(ctx context.Context, addr domain.Address) (domain.Achievement, error) {
	var achievement domain.Achievement
	if err := s.load(ctx, addr, domain.KindAchievement, &achievement); err != nil {
		return domain.Achievement{}, err
	}
	return achievement, nil
}

func (s *RecordStore) Exists(ctx context.Context, addr domain.Address) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(addr)).Result()
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return n > 0, nil
}

func (s *RecordStore) Commit(ctx context.Context, mut app.Mutation) error {
	payloads := make(map[string][]byte, len(mut.Creates)+len(mut.Updates))
	createKeys := make([]string, 0, len(mut.Creates))
	updateKeys := make([]string, 0, len(mut.Updates))
	watched := make([]string, 0, len(mut.Creates)+len(mut.Updates))

	for _, rec := range mut.Creates {
		data, err := s.encode(rec)
		if err != nil {
			return err
		}
		key := s.key(rec.Address)
		payloads[key] = data
		createKeys = append(createKeys, key)
		watched = append(watched, key)
	}
	for _, rec := range mut.Updates {
		data, err := s.encode(rec)
		if err != nil {
			return err
		}
		key := s.key(rec.Address)
		payloads[key] = data
		updateKeys = append(updateKeys, key)
		watched = append(watched, key)
	}

	txn := func(tx *redis.Tx) error {
		for _, key := range createKeys {
			n, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: key %s", domain.ErrAlreadyExists, key)
			}
		}
		for _, key := range updateKeys {
			n, err := tx.Exists(ctx, key).Result()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: update target %s", domain.ErrNotFound, key)
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, data := range payloads {
				pipe.Set(ctx, key, data, 0)
			}
			return nil
		})
		return err
	}

	var err error
	for attempt := 0; attempt < commitRetries; attempt++ {
		err = s.client.Watch(ctx, txn, watched...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("commit contention: %w", err)
}

func (s *RecordStore) encode(rec app.Record) ([]byte, error) {
	data, err := json.Marshal(rec.Data)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return json.Marshal(envelope{Kind: rec.Kind, Owner: rec.Owner, Data: data})
}

func (s *RecordStore) load(ctx context.Context, addr domain.Address, kind domain.RecordKind, out any) error {
	raw, err := s.client.Get(ctx, s.key(addr)).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: address %s", domain.ErrNotFound, addr)
	}
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if env.Kind != kind {
		return fmt.Errorf("%w: address %s", domain.ErrNotFound, addr)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}

func (s *RecordStore) key(addr domain.Address) string {
	return "ledger:record:" + string(addr)
}
