package domain

import (
	"context"

	"poketrade/internal/core/auction"
)

// StorePort is the shared capability set both backing stores implement.
// Callers never branch on which one answered
type StorePort interface {
	List(ctx context.Context, q auction.ListQuery) ([]auction.Record, int, error)
	Get(ctx context.Context, id string) (auction.Record, error)
	Create(ctx context.Context, in CreateInput) (auction.Record, error)
	Update(ctx context.Context, id string, in UpdateInput) (auction.Record, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (auction.Record, error)
}

// ServicePort defines the service contract for auctions
type ServicePort interface {
	List(ctx context.Context, in ListInput) (ListOutput, error)
	Get(ctx context.Context, id string) (auction.Record, error)
	Create(ctx context.Context, in CreateInput) (auction.Record, error)
	Update(ctx context.Context, id string, in UpdateInput) (auction.Record, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (auction.Record, error)

	Source(ctx context.Context) (SourceState, error)
	SetSource(ctx context.Context, in SourceInput) (SourceState, error)
}

// MetaPort is the sidecar for attributes the upstream schema does not model
type MetaPort interface {
	Get(id string) (auction.Meta, error)
	Set(id string, partial auction.Meta) error
	Delete(id string) error
	All() (map[string]auction.Meta, error)
}
