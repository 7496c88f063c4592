// Package domain holds DTOs for auctions http and service contracts
package domain

import (
	"poketrade/internal/core/auction"
)

// ListInput carries one page request as it arrives from the query string.
// Dates stay strings here; the service parses them tolerantly
type ListInput struct {
	Page      int    `json:"page" validate:"omitempty,min=0"`
	Limit     int    `json:"limit" validate:"omitempty,min=0"`
	Search    string `json:"q" validate:"omitempty,max=200"`
	Status    string `json:"status" validate:"omitempty,max=40"`
	Rarity    string `json:"rarity" validate:"omitempty,max=40"`
	Condition string `json:"condition" validate:"omitempty,max=40"`
	DateFrom  string `json:"date_from" validate:"omitempty,max=40"`
	DateTo    string `json:"date_to" validate:"omitempty,max=40"`
	Scope     string `json:"scope" validate:"omitempty,oneof=all mine todos"`
	OwnerID   *int64 `json:"owner_id" validate:"omitempty,min=1"`
	OwnerRef  string `json:"owner_ref" validate:"omitempty,max=100"`
}

// ListOutput is one resolved page plus the pagination facts the UI needs
type ListOutput struct {
	Items []auction.Record `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// CreateInput is the payload for creating an auction. Prices arrive as
// strings so comma decimal separators survive the trip
type CreateInput struct {
	Title         string `json:"title" validate:"required,min=1,max=200"`
	Description   string `json:"description" validate:"omitempty,max=2000"`
	InitialPrice  string `json:"initial_price" validate:"required,max=40"`
	Increment     string `json:"increment_amount" validate:"omitempty,max=40"`
	Status        string `json:"status" validate:"omitempty,max=40"`
	EndsAt        string `json:"ends_at" validate:"omitempty,max=40"`
	SellerID      *int64 `json:"seller_id" validate:"omitempty,min=1"`
	OwnerRef      string `json:"owner_ref" validate:"omitempty,max=100"`
	OwnerName     string `json:"owner_name" validate:"omitempty,max=200"`
	Rarity        string `json:"rarity" validate:"omitempty,max=40"`
	CardCondition string `json:"card_condition" validate:"omitempty,max=40"`
}

// UpdateInput is a partial patch; nil means "leave the field alone"
type UpdateInput struct {
	Title         *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string `json:"description" validate:"omitempty,max=2000"`
	InitialPrice  *string `json:"initial_price" validate:"omitempty,max=40"`
	CurrentPrice  *string `json:"current_price" validate:"omitempty,max=40"`
	Increment     *string `json:"increment_amount" validate:"omitempty,max=40"`
	Status        *string `json:"status" validate:"omitempty,max=40"`
	EndsAt        *string `json:"ends_at" validate:"omitempty,max=40"`
	Active        *bool   `json:"active"`
	SellerID      *int64  `json:"seller_id" validate:"omitempty,min=1"`
	OwnerName     *string `json:"owner_name" validate:"omitempty,max=200"`
	Rarity        *string `json:"rarity" validate:"omitempty,max=40"`
	CardCondition *string `json:"card_condition" validate:"omitempty,max=40"`
}

// Meta reports whether the patch carries any sidecar-owned fields
func (in UpdateInput) Meta() (auction.Meta, bool) {
	var m auction.Meta
	var set bool
	if in.Rarity != nil {
		m.Rarity = *in.Rarity
		set = true
	}
	if in.CardCondition != nil {
		m.CardCondition = *in.CardCondition
		set = true
	}
	return m, set
}

// Sources the selector can dispatch to
const (
	SourceMock = "mock"
	SourceLive = "live"
)

// SourceInput selects the backing data source
type SourceInput struct {
	Source string `json:"source" validate:"required,oneof=mock live"`
}

// SourceState reports the currently selected data source
type SourceState struct {
	Source string `json:"source"`
}
