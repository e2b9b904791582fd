package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Anuragt1104/solmentor/internal/domain"
	"golang.org/x/sync/singleflight"
)

// ProfileLoader fetches profiles from a backing record store.
type ProfileLoader interface {
	LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error)
}

// ProfileCache is a read-side app.ProfileReader: it caches profile loads
// with a TTL and collapses concurrent loads of the same address. It serves
// the read path only; wire the ledger's mutations against the backing
// store, never against this cache (app.NewLedgerWithReader).
type ProfileCache struct {
	inner ProfileLoader
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[domain.Address]cachedProfile
}

type cachedProfile struct {
	profile   domain.Profile
	expiresAt time.Time
}

func NewProfileCache(inner ProfileLoader, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		inner: inner,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[domain.Address]cachedProfile),
	}
}

func (c *ProfileCache) LoadProfile(ctx context.Context, addr domain.Address) (domain.Profile, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[addr]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.profile, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(string(addr), func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[addr]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.profile, nil
		}
		c.mu.RUnlock()

		profile, err := c.inner.LoadProfile(ctx, addr)
		if err != nil {
			return domain.Profile{}, err
		}

		c.mu.Lock()
		c.cache[addr] = cachedProfile{
			profile:   profile,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return profile, nil
	})
	if err != nil {
		return domain.Profile{}, err
	}
	return result.(domain.Profile), nil
}

func (c *ProfileCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
