// Package repo provides the auction backing stores: the meta sidecar, the
// self-contained mock store, and the live REST adapter
package repo

import (
	"encoding/json"
	"sync"

	"poketrade/internal/core/auction"
	"poketrade/internal/platform/kv"
	"poketrade/internal/platform/logger"
	"poketrade/internal/services/auctions/domain"
)

// metaKey is the stable storage key for the whole id -> meta mapping
const metaKey = "auction_meta"

// Meta is the sidecar store for per-auction attributes the upstream schema
// does not carry. The whole mapping is read and rewritten as one unit per
// mutation; fine while the mapping stays session-sized, never a model for
// anything bigger
type Meta struct {
	kv  kv.Store
	mu  sync.Mutex
	log logger.Logger
}

var _ domain.MetaPort = (*Meta)(nil)

// NewMeta creates a meta sidecar over the given store
func NewMeta(s kv.Store) *Meta {
	if s == nil {
		panic("repo.Meta requires a non nil kv store")
	}
	return &Meta{kv: s, log: *logger.Named("auction-meta")}
}

// load reads the whole mapping; a corrupted blob degrades to empty
func (m *Meta) load() (map[string]auction.Meta, error) {
	b, ok, err := m.kv.Get(metaKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return map[string]auction.Meta{}, nil
	}
	out := map[string]auction.Meta{}
	if err := json.Unmarshal(b, &out); err != nil {
		m.log.Warn().Err(err).Msg("meta blob corrupted, starting empty")
		return map[string]auction.Meta{}, nil
	}
	return out, nil
}

func (m *Meta) save(all map[string]auction.Meta) error {
	b, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return m.kv.Put(metaKey, b)
}

// Get returns the meta for id, zero value when absent
func (m *Meta) Get(id string) (auction.Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all, err := m.load()
	if err != nil {
		return auction.Meta{}, err
	}
	return all[id], nil
}

// Set merges partial onto any existing entry, last write wins per field
func (m *Meta) Set(id string, partial auction.Meta) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all, err := m.load()
	if err != nil {
		return err
	}
	merged := all[id].Merge(partial)
	if merged.IsZero() {
		delete(all, id)
	} else {
		all[id] = merged
	}
	return m.save(all)
}

// Delete removes the entry entirely; absent ids are fine
func (m *Meta) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	all, err := m.load()
	if err != nil {
		return err
	}
	if _, ok := all[id]; !ok {
		return nil
	}
	delete(all, id)
	return m.save(all)
}

// All returns the full id -> meta mapping
func (m *Meta) All() (map[string]auction.Meta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load()
}
