// Package module wires the auctions vertical: stores, selector, service,
// and the routes they hang off
package module

import (
	"poketrade/internal/platform/kv"
	phttp "poketrade/internal/platform/net/http"
	aucthttp "poketrade/internal/services/auctions/http"
	"poketrade/internal/services/auctions/repo"
	"poketrade/internal/services/auctions/service"
)

// Options configure the vertical
type Options struct {
	// KV backs the mock collection, the meta sidecar, and the source flag
	KV kv.Store
	// UpstreamURL is the live backend base URL, no trailing slash
	UpstreamURL string
	// DefaultMock selects the mock store when no flag has been persisted
	DefaultMock bool
}

// Module owns the assembled auctions service
type Module struct {
	svc service.Service
}

// New constructs the vertical from its options
func New(opt Options) *Module {
	meta := repo.NewMeta(opt.KV)
	mock := repo.NewMock(opt.KV, meta)
	live := repo.NewLive(opt.UpstreamURL, meta)
	sel := service.NewSelector(opt.KV, opt.DefaultMock)
	return &Module{svc: service.New(mock, live, sel)}
}

// Service exposes the assembled service for cross-module use
func (m *Module) Service() service.Service { return m.svc }

// MountRoutes mounts the vertical's endpoints on r
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route("/auctions", func(rr phttp.Router) { aucthttp.Register(rr, m.svc) })
	r.Route("/datasource", func(rr phttp.Router) { aucthttp.RegisterSource(rr, m.svc) })
}
