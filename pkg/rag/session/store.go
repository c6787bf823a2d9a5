package session

import (
	"os"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store maps session IDs to live session records. It is safe for concurrent
// use. A TTL of zero keeps sessions until explicit deletion, matching the
// behavior of the service this one replaced; a positive TTL adds age-based
// eviction, with the persisted index directory removed alongside the entry.
// Expired sessions stop being retrievable immediately; the eviction hook
// that removes the directory runs on the purge cycle, so cleanup lags
// expiry by at most one TTL period.
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl time.Duration) *Store {
	expiration := cache.NoExpiration
	purgeInterval := 10 * time.Minute
	if ttl > 0 {
		expiration = ttl
		if ttl < purgeInterval {
			purgeInterval = ttl
		}
	}

	c := cache.New(expiration, purgeInterval)
	c.OnEvicted(func(id string, value interface{}) {
		if s, ok := value.(*Session); ok && s.StorageDir != "" {
			_ = os.RemoveAll(s.StorageDir)
		}
	})

	return &Store{cache: c}
}

// Put registers a fully-built session. Called once per ingestion, after the
// index has been persisted, so a failed ingestion never leaves a partial
// record behind.
func (st *Store) Put(s *Session) {
	st.cache.Set(s.ID, s, cache.DefaultExpiration)
}

func (st *Store) Get(sessionID string) (*Session, bool) {
	if x, found := st.cache.Get(sessionID); found {
		return x.(*Session), true
	}
	return nil, false
}

// Delete tears a session down, removing its persisted storage directory via
// the eviction hook. Deleting an unknown ID is a no-op.
func (st *Store) Delete(sessionID string) {
	st.cache.Delete(sessionID)
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	return st.cache.ItemCount()
}
