// Package listing implements the generic list-query controls shared by every
// collection endpoint: filter compilation, field projection, sorting and
// pagination. It does no I/O of its own, so the same behaviour is reused
// by the bootcamp, course, review and user repositories.
package listing

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	defaultSort  = "name"
)

// reserved query keys are list controls, never field filters.
var reserved = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
}

// Params captures everything a list request can control.
type Params struct {
	Filter bson.M
	Select []string
	Sort   bson.D
	Page   int
	Limit  int
}

// Parse builds Params from a raw query string mapping. The input values are
// never mutated. Absent or non-numeric page/limit fall back to their defaults.
func Parse(values url.Values) Params {
	p := Params{
		Filter: Compile(values),
		Page:   intOrDefault(values.Get("page"), defaultPage),
		Limit:  intOrDefault(values.Get("limit"), defaultLimit),
		Sort:   parseSort(values.Get("sort")),
	}
	if sel := values.Get("select"); sel != "" {
		p.Select = splitFields(sel)
	}
	return p
}

// parseSort turns "field1,-field2" into a sort document; a leading '-' means
// descending. Empty input sorts by name ascending.
func parseSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: defaultSort, Value: 1}}
	}
	var sort bson.D
	for _, f := range splitFields(raw) {
		if strings.HasPrefix(f, "-") {
			sort = append(sort, bson.E{Key: f[1:], Value: -1})
			continue
		}
		sort = append(sort, bson.E{Key: f, Value: 1})
	}
	if len(sort) == 0 {
		return bson.D{{Key: defaultSort, Value: 1}}
	}
	return sort
}

func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intOrDefault(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
