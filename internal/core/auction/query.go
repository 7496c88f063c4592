package auction

import (
	"sort"
	"strings"
	"time"
)

// Pagination bounds
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ScopeMine restricts a listing to the requesting owner's auctions; any other
// value (including "") means the whole collection
const ScopeMine = "mine"

// Filter sentinels that mean "do not filter"
var filterSentinels = map[string]struct{}{"": {}, "todos": {}, "all": {}}

// ListQuery captures one page request. The zero value lists everything,
// first page, default limit
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Status    string
	Rarity    string
	Condition string
	DateFrom  time.Time
	DateTo    time.Time
	Scope     string
	OwnerID   *int64
	OwnerRef  string
}

// Normalized returns q with page and limit clamped into range
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// skippable reports whether a tag filter is absent or a sentinel
func skippable(v string) bool {
	_, ok := filterSentinels[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// Matches applies every filter predicate of q to r, in the fixed order
// scope, free text, status, rarity, condition, date range
func (q ListQuery) Matches(r Record) bool {
	// without an owner identifier the scope cannot narrow anything, so the
	// whole collection is listed
	if q.Scope == ScopeMine && (q.OwnerID != nil || q.OwnerRef != "") {
		if !ownedBy(r, q.OwnerID, q.OwnerRef) {
			return false
		}
	}
	if !matchesSearch(r, q.Search) {
		return false
	}
	if !skippable(q.Status) && !equalsFold(r.Status, q.Status) {
		return false
	}
	if !skippable(q.Rarity) && !equalsFold(r.Rarity, q.Rarity) {
		return false
	}
	if !skippable(q.Condition) && !equalsFold(r.CardCondition, q.Condition) {
		return false
	}
	return q.matchesDateRange(r.EndsAt)
}

// matchesDateRange checks the inclusive [DateFrom, DateTo] window. A record
// without a usable EndsAt is excluded as soon as either bound is set
func (q ListQuery) matchesDateRange(endsAt time.Time) bool {
	if q.DateFrom.IsZero() && q.DateTo.IsZero() {
		return true
	}
	if endsAt.IsZero() {
		return false
	}
	if !q.DateFrom.IsZero() && endsAt.Before(q.DateFrom) {
		return false
	}
	if !q.DateTo.IsZero() && endsAt.After(q.DateTo) {
		return false
	}
	return true
}

func ownedBy(r Record, ownerID *int64, ownerRef string) bool {
	if ownerID != nil && r.SellerID != nil && *r.SellerID == *ownerID {
		return true
	}
	if ownerRef != "" && r.OwnerRef == ownerRef {
		return true
	}
	return false
}

// SortByCreatedDesc orders items newest first, in place. Records without a
// createdAt sort to the end. The sort is stable so repeated listings of the
// same data paginate consistently
func SortByCreatedDesc(items []Record) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt, items[j].CreatedAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
}

// Apply runs the full query pipeline over items: filter, sort, then slice
// out the requested page. total is the filtered count before pagination
func Apply(items []Record, q ListQuery) (page []Record, total int) {
	q = q.Normalized()

	kept := make([]Record, 0, len(items))
	for _, r := range items {
		if q.Matches(r) {
			kept = append(kept, r)
		}
	}
	SortByCreatedDesc(kept)

	total = len(kept)
	start := (q.Page - 1) * q.Limit
	if start >= total {
		return []Record{}, total
	}
	end := start + q.Limit
	if end > total {
		end = total
	}
	return kept[start:end], total
}
