package transaction

import (
	"sort"
	"sync"
	"time"

	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
)

// ledgerCache keeps a per user copy of the ledger. Writes are applied here before the
// store confirms them; each optimistic call returns what a rollback needs.
// Records are cloned on the way in and on the way out.
//
// Every write bumps the user's generation, whether or not an entry is cached.
// A snapshot read from the store outside the user's mutation queue is only kept
// when no write happened since the read started.
type ledgerCache struct {
	mu           sync.Mutex
	ttl          time.Duration
	timeProvider coreport.TimeProvider
	entries      map[string]*cacheEntry
	generations  map[string]uint64
}

type cacheEntry struct {
	records  map[string]*entity.Transaction
	loadedAt time.Time
}

// rollback restores the records replaced or removed by an optimistic write and
// drops the ones it added
type rollback struct {
	userID   string
	previous map[string]*entity.Transaction // nil value: the id did not exist before
}

func newLedgerCache(ttl time.Duration, timeProvider coreport.TimeProvider) *ledgerCache {
	return &ledgerCache{
		ttl:          ttl,
		timeProvider: timeProvider,
		entries:      make(map[string]*cacheEntry),
		generations:  make(map[string]uint64),
	}
}

// generation returns the user's write generation, taken before reading the store
func (c *ledgerCache) generation(userID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

// get returns the cached ledger ordered by date, or false when absent or expired
func (c *ledgerCache) get(userID string) ([]*entity.Transaction, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.timeProvider.Now().Sub(entry.loadedAt) > c.ttl {
		delete(c.entries, userID)
		return nil, false
	}

	out := make([]*entity.Transaction, 0, len(entry.records))
	for _, r := range entry.records {
		out = append(out, r.Clone())
	}
	sortByDate(out)
	return out, true
}

// load replaces the user's ledger with records read from the store
func (c *ledgerCache) load(userID string, records []*entity.Transaction) {
	entry := c.newEntry(records)

	c.mu.Lock()
	c.entries[userID] = entry
	c.mu.Unlock()
}

// fill caches records read from the store when no write happened since
// generation since. It reports whether the snapshot was kept.
func (c *ledgerCache) fill(userID string, records []*entity.Transaction, since uint64) bool {
	entry := c.newEntry(records)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != since {
		return false
	}
	c.entries[userID] = entry
	return true
}

func (c *ledgerCache) newEntry(records []*entity.Transaction) *cacheEntry {
	entry := &cacheEntry{
		records:  make(map[string]*entity.Transaction, len(records)),
		loadedAt: c.timeProvider.Now(),
	}
	for _, r := range records {
		entry.records[r.ID] = r.Clone()
	}
	return entry
}

// put inserts or replaces records and returns how to undo it
func (c *ledgerCache) put(userID string, records ...*entity.Transaction) rollback {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[userID]++
	rb := rollback{userID: userID, previous: make(map[string]*entity.Transaction, len(records))}
	entry, ok := c.entries[userID]
	if !ok {
		return rb
	}
	for _, r := range records {
		rb.previous[r.ID] = entry.records[r.ID]
		entry.records[r.ID] = r.Clone()
	}
	return rb
}

// remove drops records by id and returns how to undo it
func (c *ledgerCache) remove(userID string, ids ...string) rollback {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[userID]++
	rb := rollback{userID: userID, previous: make(map[string]*entity.Transaction, len(ids))}
	entry, ok := c.entries[userID]
	if !ok {
		return rb
	}
	for _, id := range ids {
		if prev, exists := entry.records[id]; exists {
			rb.previous[id] = prev
			delete(entry.records, id)
		}
	}
	return rb
}

// restore undoes an optimistic put or remove
func (c *ledgerCache) restore(rb rollback) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[rb.userID]++
	entry, ok := c.entries[rb.userID]
	if !ok {
		return
	}
	for id, prev := range rb.previous {
		if prev == nil {
			delete(entry.records, id)
			continue
		}
		entry.records[id] = prev
	}
}

// invalidate forgets the user's ledger so the next read goes to the store
func (c *ledgerCache) invalidate(userID string) {
	c.mu.Lock()
	c.generations[userID]++
	delete(c.entries, userID)
	c.mu.Unlock()
}

func sortByDate(records []*entity.Transaction) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})
}
