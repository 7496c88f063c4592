// Package api assembles the HTTP API for the catalog gateway
package api

import (
	"time"

	"poketrade/internal/platform/config"
	"poketrade/internal/platform/kv"
	phttp "poketrade/internal/platform/net/http"
	"poketrade/internal/platform/net/middleware"

	auctionsmod "poketrade/internal/services/auctions/module"
	metamod "poketrade/internal/services/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	KV     kv.Store
}

// Mount mounts the API onto the given router
func Mount(r phttp.Router, opt Options) {
	auctions := auctionsmod.New(auctionsmod.Options{
		KV:          opt.KV,
		UpstreamURL: opt.Config.MayBaseURL("UPSTREAM_URL", "http://localhost:3000"),
		DefaultMock: opt.Config.MayBool("USE_MOCK", false),
	})
	meta := metamod.New(opt.KV)

	r.Use(middleware.Defaults()...)
	r.Use(middleware.Heartbeat("/healthz"))
	r.Use(middleware.CORS(middleware.CORSOptions{
		AllowedOrigins: []string{"*"},
		MaxAge:         300,
	}))
	r.Use(middleware.RecoverJSON)
	r.Use(middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}))

	r.Route("/v1", func(v1 phttp.Router) {
		auctions.MountRoutes(v1)
		meta.MountRoutes(v1)
	})
}
