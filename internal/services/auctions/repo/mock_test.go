package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"poketrade/internal/core/auction"
	perr "poketrade/internal/platform/errors"
	"poketrade/internal/platform/kv"
	pstrings "poketrade/internal/platform/strings"
	"poketrade/internal/services/auctions/domain"
)

func newTestMock(t *testing.T) *Mock {
	t.Helper()
	s := kv.NewMemory()
	m := NewMock(s, NewMeta(s))

	// deterministic seams
	var n int
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	m.newID = func() string {
		n++
		return fmt.Sprintf("mock-%d", n)
	}
	m.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return m
}

func TestMockSeedsOnFirstUse(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	items, total, err := m.List(ctx, auction.ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("seed: total=%d len=%d, want 2/2", total, len(items))
	}
	for _, r := range items {
		if !r.Active || r.Status != auction.StatusOpen {
			t.Fatalf("seed record %q = active=%v status=%q", r.ID, r.Active, r.Status)
		}
		if r.Rarity == "" || r.CardCondition == "" {
			t.Fatalf("seed record %q has no card attributes: %+v", r.ID, r)
		}
	}

	// rarity and condition filters must match something on a fresh store
	_, total, err = m.List(ctx, auction.ListQuery{Rarity: "Rara"})
	if err != nil || total != 1 {
		t.Fatalf("rarity filter over seeds: total=%d err=%v", total, err)
	}
	_, total, err = m.List(ctx, auction.ListQuery{Condition: "Seminova"})
	if err != nil || total != 1 {
		t.Fatalf("condition filter over seeds: total=%d err=%v", total, err)
	}

	// a second list must not reseed
	_, total, _ = m.List(ctx, auction.ListQuery{})
	if total != 2 {
		t.Fatalf("reseeded: total=%d", total)
	}
}

func TestMockCreateRoundTrip(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	rec, err := m.Create(ctx, domain.CreateInput{
		Title:         "Pikachu Illustrator",
		Description:   "grail",
		InitialPrice:  "1.000",
		EndsAt:        "2026-12-24T18:00:00Z",
		Rarity:        "Secreta",
		CardCondition: "Nova",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("Create assigned no id")
	}
	if !rec.CurrentPrice.Equal(rec.InitialPrice) {
		t.Fatalf("current %s != initial %s", rec.CurrentPrice, rec.InitialPrice)
	}
	if !rec.Active || rec.Status != auction.StatusActive {
		t.Fatalf("defaults: active=%v status=%q", rec.Active, rec.Status)
	}

	got, err := m.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Pikachu Illustrator" || got.Description != "grail" {
		t.Fatalf("round trip lost fields: %+v", got)
	}
	if !got.InitialPrice.Equal(rec.InitialPrice) || !got.EndsAt.Equal(rec.EndsAt) {
		t.Fatalf("round trip price/date: %+v", got)
	}
	if got.Rarity != "Secreta" || got.CardCondition != "Nova" {
		t.Fatalf("meta not enriched: %+v", got)
	}
}

func TestMockCreateListsFirst(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	rec, err := m.Create(ctx, domain.CreateInput{Title: "newest", InitialPrice: "1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, _, err := m.List(ctx, auction.ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) == 0 || items[0].ID != rec.ID {
		t.Fatalf("new record not first: %v", items)
	}
}

func TestMockGetNotFound(t *testing.T) {
	m := newTestMock(t)
	_, err := m.Get(context.Background(), "nope")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Get(absent) err = %v, want not found", err)
	}
}

func TestMockUpdate(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	rec, _ := m.Create(ctx, domain.CreateInput{Title: "before", InitialPrice: "10"})

	got, err := m.Update(ctx, rec.ID, domain.UpdateInput{
		Title:  pstrings.Ptr("after"),
		Status: pstrings.Ptr(auction.StatusClosed),
		Rarity: pstrings.Ptr("Rara"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "after" || got.Status != auction.StatusClosed {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Rarity != "Rara" {
		t.Fatalf("meta patch not applied: %+v", got)
	}
	if !got.UpdatedAt.After(rec.UpdatedAt) {
		t.Fatalf("updatedAt not bumped: %v <= %v", got.UpdatedAt, rec.UpdatedAt)
	}
	// untouched fields survive
	if !got.InitialPrice.Equal(rec.InitialPrice) {
		t.Fatalf("initial price changed: %s", got.InitialPrice)
	}

	if _, err := m.Update(ctx, "nope", domain.UpdateInput{Title: pstrings.Ptr("x")}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Update(absent) err = %v, want not found", err)
	}
}

func TestMockDeleteIdempotent(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	rec, _ := m.Create(ctx, domain.CreateInput{Title: "bye", InitialPrice: "1", Rarity: "Comum"})

	if err := m.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, rec.ID); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Get after delete err = %v", err)
	}
	// meta goes with the record
	meta, _ := m.meta.Get(rec.ID)
	if !meta.IsZero() {
		t.Fatalf("meta survived delete: %+v", meta)
	}

	_, before, _ := m.List(ctx, auction.ListQuery{})
	if err := m.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete(absent): %v", err)
	}
	_, after, _ := m.List(ctx, auction.ListQuery{})
	if before != after {
		t.Fatalf("idempotent delete changed the collection: %d -> %d", before, after)
	}
}

func TestMockToggleActive(t *testing.T) {
	m := newTestMock(t)
	ctx := context.Background()

	rec, _ := m.Create(ctx, domain.CreateInput{Title: "switch", InitialPrice: "1"})

	got, err := m.ToggleActive(ctx, rec.ID)
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if got.Active {
		t.Fatalf("first toggle should deactivate")
	}
	got, _ = m.ToggleActive(ctx, rec.ID)
	if !got.Active {
		t.Fatalf("second toggle should restore active")
	}

	if _, err := m.ToggleActive(ctx, "nope"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("ToggleActive(absent) err = %v", err)
	}
}
