package database

import "strings"

// Search modes for catalog lookups.
const (
	SearchFast     = "fast"
	SearchAccurate = "accurate"
)

const (
	productSearchLimit = 100
	partySearchLimit   = 50
)

// ProductSearch builds the catalog query for a search box. Fast mode
// matches name or batch anywhere; accurate mode matches name by prefix or
// HSN, barcode or category exactly. An empty term lists by name.
func ProductSearch(term, mode string) Query {
	term = strings.ToLower(strings.TrimSpace(term))
	q := Query{Order: "name", Limit: productSearchLimit}
	if term == "" {
		return q
	}
	if mode == SearchAccurate {
		q.Where = "LOWER(name) LIKE ? OR LOWER(hsn) = ? OR LOWER(barcode) = ? OR LOWER(category) = ?"
		q.Args = []any{term + "%", term, term, term}
		return q
	}
	like := "%" + term + "%"
	q.Where = "LOWER(name) LIKE ? OR LOWER(batch) LIKE ?"
	q.Args = []any{like, like}
	return q
}

// PartySearch matches name, phone or GSTIN; favorites sort first.
func PartySearch(term string) Query {
	term = strings.ToLower(strings.TrimSpace(term))
	q := Query{Order: "is_favorite DESC, name", Limit: partySearchLimit}
	if term == "" {
		return q
	}
	like := "%" + term + "%"
	q.Where = "LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(gstin) LIKE ?"
	q.Args = []any{like, like, like}
	return q
}
