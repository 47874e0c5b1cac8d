package listing

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// comparison operator tokens rewritten to their Mongo counterparts.
var operators = map[string]string{
	"gt":  "$gt",
	"gte": "$gte",
	"lt":  "$lt",
	"lte": "$lte",
	"in":  "$in",
}

// Compile translates a flat query mapping into a Mongo filter document.
//
//	tuition[lte]=10000  → {"tuition": {"$lte": 10000}}
//	careers[in]=UI/UX   → {"careers": {"$in": ["UI/UX"]}}
//	housing=true        → {"housing": true}
//
// Reserved control keys (select, sort, page, limit) are stripped. Operator
// tokens outside the recognized set are kept as-is under the field; the
// repository decides whether to reject them. The input is never mutated and
// no structural validation is performed here.
func Compile(values url.Values) bson.M {
	filter := bson.M{}
	for key, vals := range values {
		if _, ok := reserved[key]; ok {
			continue
		}
		if len(vals) == 0 {
			continue
		}

		field, op, bracketed := splitOperator(key)
		if !bracketed {
			if len(vals) > 1 {
				filter[field] = coerceAll(vals)
				continue
			}
			filter[field] = coerce(vals[0])
			continue
		}

		mongoOp, known := operators[op]
		if !known {
			// Unrecognized token: pass through unmodified.
			mongoOp = op
		}

		var value interface{}
		if mongoOp == "$in" {
			// A repeated field[in] key contributes every occurrence, not
			// just the first.
			value = coerceAll(strings.Split(strings.Join(vals, ","), ","))
		} else {
			value = coerce(vals[0])
		}

		if existing, ok := filter[field].(bson.M); ok {
			existing[mongoOp] = value
			continue
		}
		filter[field] = bson.M{mongoOp: value}
	}
	return filter
}

// splitOperator decomposes "field[op]" keys produced by the bracket query
// convention. Keys without brackets are plain equality filters.
func splitOperator(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// coerce interprets a query literal the way a JSON body would: integer,
// float, boolean, then string.
func coerce(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func coerceAll(raw []string) []interface{} {
	out := make([]interface{}, 0, len(raw))
	for _, r := range raw {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, coerce(r))
		}
	}
	return out
}
