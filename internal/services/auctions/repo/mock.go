package repo

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"poketrade/internal/core/auction"
	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/kv"
	"poketrade/internal/platform/logger"
	"poketrade/internal/services/auctions/domain"
)

// collectionKey is the stable storage key for the whole mock collection
const collectionKey = "mock_auctions"

// Mock is a self-contained CRUD store standing in for the upstream backend
// during development and demos. The whole collection lives under one key
type Mock struct {
	kv   kv.Store
	meta *Meta
	mu   sync.Mutex
	log  logger.Logger

	// seams for deterministic tests
	now   func() time.Time
	newID func() string
}

var _ domain.StorePort = (*Mock)(nil)

// NewMock creates a mock store over the given kv store and meta sidecar
func NewMock(s kv.Store, meta *Meta) *Mock {
	if s == nil {
		panic("repo.Mock requires a non nil kv store")
	}
	if meta == nil {
		panic("repo.Mock requires a non nil meta sidecar")
	}
	return &Mock{
		kv:    s,
		meta:  meta,
		log:   *logger.Named("auction-mock"),
		now:   time.Now,
		newID: func() string { return "mock-" + uuid.NewString() },
	}
}

// seed builds the starter collection written on first use and persists its
// card attributes to the sidecar, so rarity and condition filters work on a
// fresh store
func (m *Mock) seed() ([]auction.Record, error) {
	now := m.now().UTC()
	items := []auction.Record{
		{
			ID:           m.newID(),
			Title:        "Charizard Base Set Holo",
			Description:  "Carta clássica em ótimo estado, leilão de demonstração",
			Status:       auction.StatusOpen,
			InitialPrice: decimal.NewFromInt(500),
			CurrentPrice: decimal.NewFromInt(500),
			Increment:    decimal.NewFromInt(25),
			EndsAt:       now.Add(7 * 24 * time.Hour),
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
			Bids:         []auction.Bid{},
		},
		{
			ID:           m.newID(),
			Title:        "Eevee Promo 1a Edição",
			Description:  "Promo rara, leilão de demonstração",
			Status:       auction.StatusOpen,
			InitialPrice: decimal.NewFromInt(80),
			CurrentPrice: decimal.NewFromInt(80),
			Increment:    decimal.NewFromInt(5),
			EndsAt:       now.Add(3 * 24 * time.Hour),
			Active:       true,
			CreatedAt:    now.Add(-time.Minute),
			UpdatedAt:    now.Add(-time.Minute),
			Bids:         []auction.Bid{},
		},
	}

	metas := map[string]auction.Meta{
		items[0].ID: {Rarity: "Rara", CardCondition: "Usada"},
		items[1].ID: {Rarity: "Ultra Rara", CardCondition: "Seminova"},
	}
	for id, mt := range metas {
		if err := m.meta.Set(id, mt); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// load reads the collection, seeding it on first use. A corrupted blob is
// treated as first use rather than surfaced
func (m *Mock) load() ([]auction.Record, error) {
	b, ok, err := m.kv.Get(collectionKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var items []auction.Record
		if err := json.Unmarshal(b, &items); err == nil {
			return items, nil
		}
		m.log.Warn().Msg("mock collection corrupted, reseeding")
	}
	items, err := m.seed()
	if err != nil {
		return nil, err
	}
	if err := m.save(items); err != nil {
		return nil, err
	}
	return items, nil
}

func (m *Mock) save(items []auction.Record) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return m.kv.Put(collectionKey, b)
}

// enrich fills sidecar attributes on every record
func (m *Mock) enrich(items []auction.Record) ([]auction.Record, error) {
	all, err := m.meta.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ApplyMeta(all[items[i].ID])
	}
	return items, nil
}

// List pages through the collection with the shared query pipeline
func (m *Mock) List(ctx context.Context, q auction.ListQuery) ([]auction.Record, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return nil, 0, err
	}
	items, err = m.enrich(items)
	if err != nil {
		return nil, 0, err
	}
	page, total := auction.Apply(items, q)
	return page, total, nil
}

// Get returns the record for id or NotFound
func (m *Mock) Get(ctx context.Context, id string) (auction.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return auction.Record{}, err
	}
	for _, r := range items {
		if r.ID == id {
			meta, err := m.meta.Get(id)
			if err != nil {
				return auction.Record{}, err
			}
			r.ApplyMeta(meta)
			return r, nil
		}
	}
	return auction.Record{}, perr.NotFoundf("auction %s not found", id)
}

// Create stores a fresh record at the head of the collection
func (m *Mock) Create(ctx context.Context, in domain.CreateInput) (auction.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return auction.Record{}, err
	}

	now := m.now().UTC()
	initial := auction.ParsePrice(in.InitialPrice)
	increment := decimal.NewFromInt(1)
	if in.Increment != "" {
		increment = auction.ParsePrice(in.Increment)
	}
	status := in.Status
	if status == "" {
		status = auction.StatusActive
	}

	r := auction.Record{
		ID:           m.newID(),
		Title:        in.Title,
		Description:  in.Description,
		Status:       status,
		InitialPrice: initial,
		CurrentPrice: initial,
		Increment:    increment,
		EndsAt:       auction.ParseTime(in.EndsAt),
		Active:       true,
		SellerID:     in.SellerID,
		OwnerRef:     in.OwnerRef,
		OwnerName:    in.OwnerName,
		CreatedAt:    now,
		UpdatedAt:    now,
		Bids:         []auction.Bid{},
	}

	// newest first even before the sort kicks in
	items = append([]auction.Record{r}, items...)
	if err := m.save(items); err != nil {
		return auction.Record{}, err
	}

	meta := auction.Meta{Rarity: in.Rarity, CardCondition: in.CardCondition}
	if !meta.IsZero() {
		if err := m.meta.Set(r.ID, meta); err != nil {
			return auction.Record{}, err
		}
	}
	r.ApplyMeta(meta)
	return r, nil
}

// Update merges the patch onto the stored record and bumps updatedAt
func (m *Mock) Update(ctx context.Context, id string, in domain.UpdateInput) (auction.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return auction.Record{}, err
	}

	idx := -1
	for i, r := range items {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return auction.Record{}, perr.NotFoundf("auction %s not found", id)
	}

	r := items[idx]
	applyPatch(&r, in)
	r.UpdatedAt = m.now().UTC()
	items[idx] = r
	if err := m.save(items); err != nil {
		return auction.Record{}, err
	}

	if meta, ok := in.Meta(); ok {
		if err := m.meta.Set(id, meta); err != nil {
			return auction.Record{}, err
		}
	}
	meta, err := m.meta.Get(id)
	if err != nil {
		return auction.Record{}, err
	}
	r.ApplyMeta(meta)
	return r, nil
}

// Delete removes the record and its meta entry; absent ids are a no-op
func (m *Mock) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, r := range items {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	if err := m.save(kept); err != nil {
		return err
	}
	return m.meta.Delete(id)
}

// ToggleActive flips the active flag, read-then-write
func (m *Mock) ToggleActive(ctx context.Context, id string) (auction.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items, err := m.load()
	if err != nil {
		return auction.Record{}, err
	}
	for i, r := range items {
		if r.ID == id {
			r.Active = !r.Active
			r.UpdatedAt = m.now().UTC()
			items[i] = r
			if err := m.save(items); err != nil {
				return auction.Record{}, err
			}
			return r, nil
		}
	}
	return auction.Record{}, perr.NotFoundf("auction %s not found", id)
}

// applyPatch merges non-nil patch fields onto r. Meta fields are handled by
// the sidecar, not here
func applyPatch(r *auction.Record, in domain.UpdateInput) {
	if in.Title != nil {
		r.Title = *in.Title
	}
	if in.Description != nil {
		r.Description = *in.Description
	}
	if in.InitialPrice != nil {
		r.InitialPrice = auction.ParsePrice(*in.InitialPrice)
	}
	if in.CurrentPrice != nil {
		r.CurrentPrice = auction.ParsePrice(*in.CurrentPrice)
	}
	if in.Increment != nil {
		r.Increment = auction.ParsePrice(*in.Increment)
	}
	if in.Status != nil {
		r.Status = *in.Status
	}
	if in.EndsAt != nil {
		r.EndsAt = auction.ParseTime(*in.EndsAt)
	}
	if in.Active != nil {
		r.Active = *in.Active
	}
	if in.SellerID != nil {
		r.SellerID = in.SellerID
	}
	if in.OwnerName != nil {
		r.OwnerName = *in.OwnerName
	}
}
