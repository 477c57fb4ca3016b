// Package frontdesk holds the pure decision and pricing rules shared by the
// desk pages: search routing, stale-result gating, invoice pricing and room
// status aggregation. Nothing here performs I/O.
package frontdesk

import "strings"

// LookupMode selects which backend search a query is routed to.
type LookupMode int

const (
	LookupByName LookupMode = iota
	LookupByDocument
)

// minDocumentDigits is the shortest all-digit query treated as a national ID.
const minDocumentDigits = 6

func (m LookupMode) String() string {
	if m == LookupByDocument {
		return "document"
	}
	return "name"
}

// Classify routes a trimmed, non-empty query: all decimal digits with at
// least six characters is a document lookup, anything else a name lookup.
func Classify(query string) LookupMode {
	if len(query) < minDocumentDigits {
		return LookupByName
	}
	for i := 0; i < len(query); i++ {
		if query[i] < '0' || query[i] > '9' {
			return LookupByName
		}
	}
	return LookupByDocument
}

// ClassifyInput trims raw input and classifies it. ok is false when nothing
// is left after trimming, in which case the caller must skip the search.
func ClassifyInput(raw string) (mode LookupMode, query string, ok bool) {
	query = strings.TrimSpace(raw)
	if query == "" {
		return LookupByName, "", false
	}
	return Classify(query), query, true
}
