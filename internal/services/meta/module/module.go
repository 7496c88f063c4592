// Package module wires the meta endpoints
package module

import (
	"time"

	"poketrade/internal/platform/kv"
	phttp "poketrade/internal/platform/net/http"
	metahttp "poketrade/internal/services/meta/http"
)

// Module serves health, readiness, and build info
type Module struct {
	kv        kv.Store
	startedAt time.Time
}

// New constructs the meta module
func New(store kv.Store) *Module {
	return &Module{kv: store, startedAt: time.Now()}
}

// MountRoutes mounts the meta endpoints under /meta
func (m *Module) MountRoutes(r phttp.Router) {
	r.Route("/meta", func(rr phttp.Router) {
		metahttp.Register(rr, metahttp.Deps{
			ServiceName: "poketrade-api",
			StartedAt:   m.startedAt,
			KV:          m.kv,
		})
	})
}
