package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Anuragt1104/solmentor/internal/app"
	"github.com/Anuragt1104/solmentor/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// RecordStore persists ledger records in a single address-keyed table with a
// JSONB payload. Commits run in one transaction; a create colliding on the
// address primary key rolls the whole mutation back.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
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
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ledger_records WHERE address=$1)`, string(addr)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return exists, nil
}

func (s *RecordStore) Commit(ctx context.Context, mut app.Mutation) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin commit: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range mut.Creates {
		data, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		ct, err := tx.Exec(ctx,
			`INSERT INTO ledger_records (address, kind, owner, data)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (address) DO NOTHING`,
			string(rec.Address), string(rec.Kind), rec.Owner, data)
		if err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: address %s", domain.ErrAlreadyExists, rec.Address)
		}
	}
	for _, rec := range mut.Updates {
		data, err := json.Marshal(rec.Data)
		if err != nil {
			return fmt.Errorf("encode record: %w", err)
		}
		ct, err := tx.Exec(ctx,
			`UPDATE ledger_records SET data=$2, updated_at=now() WHERE address=$1`,
			string(rec.Address), data)
		if err != nil {
			return fmt.Errorf("update record: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return fmt.Errorf("%w: update target %s", domain.ErrNotFound, rec.Address)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *RecordStore) load(ctx context.Context, addr domain.Address, kind domain.RecordKind, out any) error {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM ledger_records WHERE address=$1 AND kind=$2`,
		string(addr), string(kind)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: address %s", domain.ErrNotFound, addr)
	}
	if err != nil {
		return fmt.Errorf("load record: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	return nil
}
