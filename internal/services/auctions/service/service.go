// Package service contains the auctions workflows: input shaping, closed-set
// checks, and dispatch to whichever backing store the selector picks
package service

import (
	"context"
	"time"

	"poketrade/internal/core/auction"
	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/logger"
	"poketrade/internal/services/auctions/domain"
)

// Service defines the service contract for auctions
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	mock domain.StorePort
	live domain.StorePort
	sel  *Selector
	log  logger.Logger
}

// New creates a new auctions service
func New(mock, live domain.StorePort, sel *Selector) *Svc {
	if mock == nil {
		panic("auctions.Service requires a non nil mock store")
	}
	if live == nil {
		panic("auctions.Service requires a non nil live adapter")
	}
	if sel == nil {
		panic("auctions.Service requires a non nil selector")
	}
	return &Svc{mock: mock, live: live, sel: sel, log: *logger.Named("auctions")}
}

// store resolves the backing store for this one call
func (s *Svc) store() domain.StorePort {
	if s.sel.UseMock() {
		return s.mock
	}
	return s.live
}

// queryOf shapes a ListInput into the core query. Query-side dates must
// parse; record-side dates are the tolerant ones
func queryOf(in domain.ListInput) (auction.ListQuery, error) {
	q := auction.ListQuery{
		Page:      in.Page,
		Limit:     in.Limit,
		Search:    in.Search,
		Status:    in.Status,
		Rarity:    in.Rarity,
		Condition: in.Condition,
		Scope:     in.Scope,
		OwnerID:   in.OwnerID,
		OwnerRef:  in.OwnerRef,
	}
	var err error
	if q.DateFrom, err = queryDate(in.DateFrom, false); err != nil {
		return q, perr.WithField(err, "date_from")
	}
	if q.DateTo, err = queryDate(in.DateTo, true); err != nil {
		return q, perr.WithField(err, "date_to")
	}
	return q.Normalized(), nil
}

// queryDate parses a query bound; a bare date used as the upper bound is
// widened to the end of that day so the range stays inclusive
func queryDate(s string, upper bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t := auction.ParseTime(s)
	if t.IsZero() {
		return time.Time{}, perr.Validationf("unparsable date %q", s)
	}
	if upper && t.Equal(t.Truncate(24*time.Hour)) {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// List resolves one page of auctions through the selected store
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListOutput, error) {
	q, err := queryOf(in)
	if err != nil {
		return domain.ListOutput{}, err
	}
	items, total, err := s.store().List(ctx, q)
	if err != nil {
		return domain.ListOutput{}, err
	}
	return domain.ListOutput{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// Get returns one auction by id
func (s *Svc) Get(ctx context.Context, id string) (auction.Record, error) {
	if id == "" {
		return auction.Record{}, perr.InvalidArgf("missing auction id")
	}
	return s.store().Get(ctx, id)
}

// checkMeta rejects values outside the closed rarity/condition sets
func checkMeta(rarity, condition string) error {
	if !auction.ValidRarity(rarity) {
		return perr.WithField(perr.Validationf("unknown rarity %q", rarity), "rarity")
	}
	if !auction.ValidCondition(condition) {
		return perr.WithField(perr.Validationf("unknown condition %q", condition), "card_condition")
	}
	return nil
}

// Create validates sidecar fields and dispatches
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (auction.Record, error) {
	if err := checkMeta(in.Rarity, in.CardCondition); err != nil {
		return auction.Record{}, err
	}
	return s.store().Create(ctx, in)
}

// Update validates sidecar fields and dispatches
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (auction.Record, error) {
	if id == "" {
		return auction.Record{}, perr.InvalidArgf("missing auction id")
	}
	var rarity, condition string
	if in.Rarity != nil {
		rarity = *in.Rarity
	}
	if in.CardCondition != nil {
		condition = *in.CardCondition
	}
	if err := checkMeta(rarity, condition); err != nil {
		return auction.Record{}, err
	}
	return s.store().Update(ctx, id, in)
}

// Delete removes one auction; idempotent on the mock side
func (s *Svc) Delete(ctx context.Context, id string) error {
	if id == "" {
		return perr.InvalidArgf("missing auction id")
	}
	return s.store().Delete(ctx, id)
}

// ToggleActive flips the active flag through the selected store
func (s *Svc) ToggleActive(ctx context.Context, id string) (auction.Record, error) {
	if id == "" {
		return auction.Record{}, perr.InvalidArgf("missing auction id")
	}
	return s.store().ToggleActive(ctx, id)
}

// Source reports the currently selected data source
func (s *Svc) Source(ctx context.Context) (domain.SourceState, error) {
	if s.sel.UseMock() {
		return domain.SourceState{Source: domain.SourceMock}, nil
	}
	return domain.SourceState{Source: domain.SourceLive}, nil
}

// SetSource switches the data source and persists the choice
func (s *Svc) SetSource(ctx context.Context, in domain.SourceInput) (domain.SourceState, error) {
	useMock := in.Source == domain.SourceMock
	if err := s.sel.SetMock(useMock); err != nil {
		return domain.SourceState{}, err
	}
	s.log.Info().Str("source", in.Source).Msg("data source switched")
	return domain.SourceState{Source: in.Source}, nil
}
