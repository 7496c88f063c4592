package auction

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// The upstream backend has gone through several field-naming conventions for
// the same concepts. Each canonical field resolves through an ordered alias
// list: our own snake_case key first (so normalizing an already-normalized
// record is the identity), then the historical upstream names. Do not add
// aliases speculatively; every entry below is attested in upstream payloads
var (
	aliasTitle       = []string{"title", "titulo"}
	aliasDescription = []string{"description", "descricao"}
	aliasInitial     = []string{"initial_price", "precoInicial", "preco_inicial", "valor_inicial", "preco"}
	aliasCurrent     = []string{"current_price", "precoAtual", "preco_atual"}
	aliasIncrement   = []string{"increment_amount", "valor_incremento"}
	aliasEndsAt      = []string{"ends_at", "terminaEm"}
	aliasActive      = []string{"active", "ativo"}
	aliasSeller      = []string{"seller_id", "vendedorId"}
	aliasCategory    = []string{"category_id", "categoriaLeilaoId"}
	aliasWinner      = []string{"winner_id", "ganhadorId"}
	aliasOwnerRef    = []string{"owner_ref", "ownerId"}
	aliasOwnerName   = []string{"owner_name", "ownerNome"}
	aliasCreatedAt   = []string{"created_at", "createdAt"}
	aliasUpdatedAt   = []string{"updated_at", "updatedAt"}
	aliasBids        = []string{"bids", "lances"}
	aliasRarity      = []string{"rarity", "raridade"}
	aliasCondition   = []string{"card_condition", "estadoCarta"}

	aliasBidBidder = []string{"bidder", "usuario"}
	aliasBidAmount = []string{"amount", "valor"}
)

// Normalize coerces an arbitrary loosely-typed payload into exactly one
// Record with every field populated to a safe default. It never fails:
// malformed numbers degrade to zero, malformed timestamps to the zero time.
// Pure function of its input; sidecar enrichment is the caller's job
// (see Record.ApplyMeta)
func Normalize(raw map[string]any) Record {
	id := asString(raw["id"])

	r := Record{
		ID:           id,
		Title:        asString(lookup(raw, aliasTitle)),
		Description:  asString(lookup(raw, aliasDescription)),
		Status:       asString(raw["status"]),
		InitialPrice: asDecimal(lookup(raw, aliasInitial)),
		EndsAt:       asTime(lookup(raw, aliasEndsAt)),
		Active:       asBool(lookup(raw, aliasActive), true),
		SellerID:     asIntRef(lookup(raw, aliasSeller)),
		CategoryID:   asIntRef(lookup(raw, aliasCategory)),
		WinnerID:     asIntRef(lookup(raw, aliasWinner)),
		OwnerRef:     asString(lookup(raw, aliasOwnerRef)),
		OwnerName:    asString(lookup(raw, aliasOwnerName)),
		CreatedAt:    asTime(lookup(raw, aliasCreatedAt)),
		UpdatedAt:    asTime(lookup(raw, aliasUpdatedAt)),
		Bids:         normalizeBids(lookup(raw, aliasBids)),

		Rarity:        asString(lookup(raw, aliasRarity)),
		CardCondition: asString(lookup(raw, aliasCondition)),
	}

	if r.Title == "" {
		r.Title = "Auction #" + r.ID
	}
	if r.Status == "" {
		r.Status = StatusOpen
	}
	if cur, ok := lookupOK(raw, aliasCurrent); ok {
		r.CurrentPrice = asDecimal(cur)
	} else {
		r.CurrentPrice = r.InitialPrice
	}
	if _, ok := lookupOK(raw, aliasIncrement); !ok {
		r.Increment = decimal.NewFromInt(1)
	} else {
		r.Increment = asDecimal(lookup(raw, aliasIncrement))
	}
	return r
}

// NormalizeJSON is Normalize over a raw JSON object
func NormalizeJSON(b []byte) Record {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return Normalize(nil)
	}
	return Normalize(m)
}

func normalizeBids(v any) []Bid {
	list, ok := v.([]any)
	if !ok {
		return []Bid{}
	}
	out := make([]Bid, 0, len(list))
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Bid{
			ID:        asString(m["id"]),
			Bidder:    asString(lookup(m, aliasBidBidder)),
			Amount:    asDecimal(lookup(m, aliasBidAmount)),
			CreatedAt: asTime(lookup(m, aliasCreatedAt)),
		})
	}
	return out
}

// lookup resolves the first alias present in raw, nil when none is
func lookup(raw map[string]any, aliases []string) any {
	v, _ := lookupOK(raw, aliases)
	return v
}

// lookupOK also reports presence so callers can tell absent from null
func lookupOK(raw map[string]any, aliases []string) (any, bool) {
	for _, k := range aliases {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// asString renders strings as-is and numbers without a decimal tail,
// everything else (nil included) as ""
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// asDecimal accepts numbers or numeric strings; strings may use a comma as
// the decimal separator. Anything unusable degrades to zero, never an error
func asDecimal(v any) decimal.Decimal {
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case json.Number:
		return parseDecimal(t.String())
	case string:
		return parseDecimal(t)
	default:
		return decimal.Zero
	}
}

func parseDecimal(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// asIntRef returns a numeric identifier or nil when unusable
func asIntRef(v any) *int64 {
	switch t := v.(type) {
	case float64:
		n := int64(t)
		return &n
	case int:
		n := int64(t)
		return &n
	case int64:
		return &t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return &n
		}
		return nil
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
			return &n
		}
		return nil
	default:
		return nil
	}
}

func asBool(v any, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
		return def
	default:
		return def
	}
}

// timeLayouts are tried in order; upstream emits RFC3339, date pickers
// hand us bare dates
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// asTime parses ISO-8601-ish inputs, zero time when unusable
func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
		return time.Time{}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseTime exposes the tolerant timestamp parser to the service layer
func ParseTime(s string) time.Time { return asTime(s) }

// ParsePrice exposes the tolerant decimal parser to the service layer
func ParsePrice(s string) decimal.Decimal { return parseDecimal(s) }
