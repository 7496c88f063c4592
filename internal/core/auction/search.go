package auction

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Card titles are Portuguese, so free-text matching folds case AND accents:
// NFKD decomposition, strip combining marks, unicode case fold. ASCII input
// passes through unchanged except for lowering

// pool of fresh transformer chains
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			cases.Fold(),                       // unicode case folding
		)
	},
}

// FoldSearch returns the search-normalized form of s
func FoldSearch(s string) string {
	if s == "" {
		return ""
	}
	tr := foldPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		// fall back to a plain lowering rather than dropping the filter
		return strings.ToLower(s)
	}
	return ns
}

// matchesSearch reports whether the folded needle occurs in title+description
func matchesSearch(r Record, needle string) bool {
	q := strings.TrimSpace(needle)
	if q == "" {
		return true
	}
	hay := FoldSearch(r.Title + " " + r.Description)
	return strings.Contains(hay, FoldSearch(q))
}

// equalsFold compares two tags ignoring case and accents
func equalsFold(a, b string) bool {
	return FoldSearch(strings.TrimSpace(a)) == FoldSearch(strings.TrimSpace(b))
}
