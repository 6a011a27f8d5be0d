// Package backend talks to the managed backend's row API. Queries are
// described by an explicit QuerySpec value handed to a single execute
// function; there is no fluent mutable builder.
package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Op is a filter operator.
type Op string

// Filter operators. The row API only needs equality, inclusion, and null
// checks; everything richer is a pre-computed server-side view.
const (
	OpEq    Op = "eq"
	OpIn    Op = "in"
	OpIs    Op = "is"
	OpILike Op = "ilike"
)

// Filter is one predicate on a column.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Eq builds an equality filter.
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// In builds an inclusion filter.
func In(column string, values ...string) Filter {
	return Filter{Column: column, Op: OpIn, Value: values}
}

// IsNull builds a null check filter.
func IsNull(column string) Filter {
	return Filter{Column: column, Op: OpIs, Value: nil}
}

// ILike builds a case-insensitive pattern filter. The pattern uses * as
// the wildcard.
func ILike(column, pattern string) Filter {
	return Filter{Column: column, Op: OpILike, Value: pattern}
}

// OrderBy describes the result ordering.
type OrderBy struct {
	Column    string
	Desc      bool
	NullsLast bool
}

// QuerySpec describes one query against a named collection: which columns
// (with optional nested sub-selections), which rows, in which order, and
// which offset window.
type QuerySpec struct {
	Collection string
	Select     []string // empty means all columns
	Filters    []Filter
	Order      *OrderBy
	Offset     int
	Limit      int // zero means no limit
}

// Values encodes the spec as row-API query parameters.
func (q QuerySpec) Values() (url.Values, error) {
	v := url.Values{}

	if len(q.Select) > 0 {
		v.Set("select", strings.Join(q.Select, ","))
	}

	for _, f := range q.Filters {
		switch f.Op {
		case OpEq:
			v.Add(f.Column, fmt.Sprintf("eq.%v", f.Value))
		case OpIn:
			vals, ok := f.Value.([]string)
			if !ok {
				return nil, fmt.Errorf("in filter on %q needs []string, got %T", f.Column, f.Value)
			}
			v.Add(f.Column, "in.("+strings.Join(vals, ",")+")")
		case OpIs:
			v.Add(f.Column, "is.null")
		case OpILike:
			v.Add(f.Column, fmt.Sprintf("ilike.%v", f.Value))
		default:
			return nil, fmt.Errorf("unknown filter op %q", f.Op)
		}
	}

	if q.Order != nil {
		order := q.Order.Column
		if q.Order.Desc {
			order += ".desc"
		} else {
			order += ".asc"
		}
		if q.Order.NullsLast {
			order += ".nullslast"
		}
		v.Set("order", order)
	}

	if q.Limit > 0 {
		v.Set("limit", fmt.Sprintf("%d", q.Limit))
		v.Set("offset", fmt.Sprintf("%d", q.Offset))
	}

	return v, nil
}
