// Package auction holds the canonical auction record shape plus the pure
// logic shared by every backing store: tolerant normalization of upstream
// payloads and the client-side list query engine (filter, sort, paginate)
package auction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Well-known status tags. The set is open: the upstream backend may coin new
// values at any time, so Status stays a plain string everywhere
const (
	StatusOpen      = "aberto"
	StatusClosed    = "encerrado"
	StatusCancelled = "cancelado"
	StatusActive    = "ativo"
	StatusInactive  = "inativo"
)

// Rarities is the closed set of card rarities carried by the meta sidecar
var Rarities = []string{"Comum", "Incomum", "Rara", "Ultra Rara", "Secreta"}

// Conditions is the closed set of card conditions carried by the meta sidecar
var Conditions = []string{"Nova", "Seminova", "Usada", "Danificada"}

// Record is the canonical in-memory representation of one auction
type Record struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	InitialPrice decimal.Decimal `json:"initial_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Increment    decimal.Decimal `json:"increment_amount"`
	EndsAt       time.Time       `json:"ends_at"`
	Active       bool            `json:"active"`
	SellerID     *int64          `json:"seller_id,omitempty"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	WinnerID     *int64          `json:"winner_id,omitempty"`
	OwnerRef     string          `json:"owner_ref,omitempty"`
	OwnerName    string          `json:"owner_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Bids         []Bid           `json:"bids"`

	// enriched from the meta sidecar, never authoritative upstream
	Rarity        string `json:"rarity,omitempty"`
	CardCondition string `json:"card_condition,omitempty"`
}

// Bid is one stated price increase against an auction. Bids are owned by
// their Record and never persisted independently
type Bid struct {
	ID        string          `json:"id"`
	Bidder    string          `json:"bidder"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Meta carries the supplemental per-auction attributes the upstream schema
// does not model. Zero-valued fields mean "not set"
type Meta struct {
	Rarity        string `json:"rarity,omitempty"`
	CardCondition string `json:"card_condition,omitempty"`
}

// IsZero reports whether no meta attribute is set
func (m Meta) IsZero() bool { return m.Rarity == "" && m.CardCondition == "" }

// Merge overlays o on m, last write wins per field
func (m Meta) Merge(o Meta) Meta {
	if o.Rarity != "" {
		m.Rarity = o.Rarity
	}
	if o.CardCondition != "" {
		m.CardCondition = o.CardCondition
	}
	return m
}

// ApplyMeta fills rarity and condition from the sidecar. Explicit values
// already on the record always win over sidecar values
func (r *Record) ApplyMeta(m Meta) {
	if r.Rarity == "" {
		r.Rarity = m.Rarity
	}
	if r.CardCondition == "" {
		r.CardCondition = m.CardCondition
	}
}

// MetaOf extracts the sidecar-owned attributes from a record
func MetaOf(r Record) Meta {
	return Meta{Rarity: r.Rarity, CardCondition: r.CardCondition}
}

// ValidRarity reports whether s names a known rarity ("" is allowed: unset)
func ValidRarity(s string) bool { return s == "" || contains(Rarities, s) }

// ValidCondition reports whether s names a known condition ("" is allowed: unset)
func ValidCondition(s string) bool { return s == "" || contains(Conditions, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
