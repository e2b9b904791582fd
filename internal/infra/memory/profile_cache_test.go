package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Anuragt1104/solmentor/internal/app"
	"github.com/Anuragt1104/solmentor/internal/domain"
)

func TestProfileCacheServesRepeatReadsFromCache(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	inner := &countingLoader{ProfileLoader: store}
	cache := NewProfileCache(inner, time.Minute)

	profile := sampleProfile("u1")
	if err := store.Commit(ctx, app.Mutation{Creates: []app.Record{app.ProfileRecord(profile)}}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	addr := domain.ProfileAddress("u1")
	if _, err := cache.LoadProfile(ctx, addr); err != nil {
		t.Fatalf("load: %v", err)
	}
	if inner.loads != 1 {
		t.Fatalf("expected one inner load, got %d", inner.loads)
	}

	if _, err := cache.LoadProfile(ctx, addr); err != nil {
		t.Fatalf("load 2: %v", err)
	}
	if inner.loads != 1 {
		t.Fatalf("expected cache hit, inner loads %d", inner.loads)
	}
}

func TestProfileCacheReloadsAfterTTL(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore()
	inner := &countingLoader{ProfileLoader: store}
	cache := NewProfileCache(inner, time.Minute)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	profile := sampleProfile("u1")
	if err := store.Commit(ctx, app.Mutation{Creates: []app.Record{app.ProfileRecord(profile)}}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	addr := domain.ProfileAddress("u1")
	if _, err := cache.LoadProfile(ctx, addr); err != nil {
		t.Fatalf("load: %v", err)
	}

	profile.XP = 150
	profile.Level = 2
	if err := store.Commit(ctx, app.Mutation{Updates: []app.Record{app.ProfileRecord(profile)}}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Past the TTL (plus its up-to-10% jitter) the entry expires.
	now = now.Add(2 * time.Minute)
	got, err := cache.LoadProfile(ctx, addr)
	if err != nil {
		t.Fatalf("load after expiry: %v", err)
	}
	if got.XP != 150 || got.Level != 2 {
		t.Fatalf("expired entry not reloaded: %+v", got)
	}
	if inner.loads != 2 {
		t.Fatalf("expected reload after expiry, inner loads %d", inner.loads)
	}
}

type countingLoader struct {
	ProfileLoader
	loads int
}

func (l *countingLoader) LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error) {
	l.loads++
	return l.ProfileLoader.LoadProfile(ctx, addr)
}
