package algolia

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// Filter grammar tokens. Separators are matched literally, including the
// surrounding single spaces, so "price:>1 AND  x:2" yields a field " x".
const (
	orSeparator    = " OR "
	andSeparator   = " AND "
	fieldSeparator = ":"
	nullLiteral    = "null"
	wildcard       = "*"
)

// ErrMalformedClause reports a clause that is not of the form field:value.
var ErrMalformedClause = errors.New("malformed filter clause")

// FilterStatus tells callers what ParseFilters made of its input.
type FilterStatus int

const (
	// FilterAbsent means the expression was empty; no filter applies.
	FilterAbsent FilterStatus = iota
	// FilterApplied means the expression translated into FilterResult.Filter.
	FilterApplied
	// FilterRejected means the expression was malformed; the search runs
	// unfiltered and FilterResult.Err says why.
	FilterRejected
)

func (s FilterStatus) String() string {
	switch s {
	case FilterAbsent:
		return "absent"
	case FilterApplied:
		return "applied"
	case FilterRejected:
		return "rejected"
	}
	return "unknown"
}

// FilterResult is the outcome of translating one filter expression.
// Filter is non-nil only when Status is FilterApplied.
type FilterResult struct {
	Filter *vectordb.Predicate
	Status FilterStatus
	Err    error
}

// ParseFilters translates an Algolia filter expression into a predicate tree.
//
// The grammar is a flat OR-of-ANDs: the expression is split on " OR ", each
// segment on " AND ", and each clause on its first ":". There are no
// parentheses. A single clause becomes a bare leaf, several clauses of one
// segment an And node, and several segments an Or node.
//
// Clause values are decoded by prefix, first match wins:
//
//	>=v   GreaterThanEqual, numeric
//	<=v   LessThanEqual, numeric
//	>v    GreaterThan, numeric
//	<v    LessThan, numeric
//	null  IsNull
//	*v*   Like (any "*" in the value), kept verbatim
//	v     Equal, kept verbatim as a string
//
// A numeric value that does not parse becomes NaN and is passed on; the
// store rejects it. ParseFilters never fails the search: malformed input
// yields FilterRejected and no filter.
//
// Example:
//
//	res := algolia.ParseFilters("price:>=800 AND title:*Samsung* OR price:<700")
//	// res.Filter: Or(And(price >= 800, title Like "*Samsung*"), price < 700)
func ParseFilters(expr string) FilterResult {
	if expr == "" {
		return FilterResult{Status: FilterAbsent}
	}

	root, err := parseOrGroups(expr)
	if err != nil {
		return FilterResult{Status: FilterRejected, Err: err}
	}
	return FilterResult{Filter: root, Status: FilterApplied}
}

func parseOrGroups(expr string) (*vectordb.Predicate, error) {
	groups := strings.Split(expr, orSeparator)
	if len(groups) == 1 {
		return parseAndGroup(groups[0])
	}

	operands := make([]*vectordb.Predicate, 0, len(groups))
	for _, group := range groups {
		p, err := parseAndGroup(group)
		if err != nil {
			return nil, err
		}
		operands = append(operands, p)
	}
	return vectordb.NewOr(operands...), nil
}

// parseAndGroup returns a bare leaf for a single clause; only several
// clauses get an And wrapper.
func parseAndGroup(group string) (*vectordb.Predicate, error) {
	clauses := strings.Split(group, andSeparator)
	if len(clauses) == 1 {
		return parseClause(clauses[0])
	}

	operands := make([]*vectordb.Predicate, 0, len(clauses))
	for _, clause := range clauses {
		p, err := parseClause(clause)
		if err != nil {
			return nil, err
		}
		operands = append(operands, p)
	}
	return vectordb.NewAnd(operands...), nil
}

func parseClause(clause string) (*vectordb.Predicate, error) {
	field, raw, ok := strings.Cut(clause, fieldSeparator)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no %q", ErrMalformedClause, clause, fieldSeparator)
	}
	if field == "" {
		return nil, fmt.Errorf("%w: %q has no field", ErrMalformedClause, clause)
	}

	switch {
	case strings.HasPrefix(raw, ">="):
		return vectordb.NewNumberCondition(field, vectordb.GreaterThanEqual, parseNumber(raw[2:])), nil
	case strings.HasPrefix(raw, "<="):
		return vectordb.NewNumberCondition(field, vectordb.LessThanEqual, parseNumber(raw[2:])), nil
	case strings.HasPrefix(raw, ">"):
		return vectordb.NewNumberCondition(field, vectordb.GreaterThan, parseNumber(raw[1:])), nil
	case strings.HasPrefix(raw, "<"):
		return vectordb.NewNumberCondition(field, vectordb.LessThan, parseNumber(raw[1:])), nil
	case raw == nullLiteral:
		return vectordb.NewIsNull(field), nil
	case strings.Contains(raw, wildcard):
		return vectordb.NewStringCondition(field, vectordb.Like, raw), nil
	default:
		return vectordb.NewStringCondition(field, vectordb.Equal, raw), nil
	}
}

// parseNumber returns NaN for input that is not a number.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// hasNaN reports whether any leaf of p carries a NaN number.
func hasNaN(p *vectordb.Predicate) bool {
	if p == nil {
		return false
	}
	if p.ValueNumber != nil && math.IsNaN(*p.ValueNumber) {
		return true
	}
	for _, op := range p.Operands {
		if hasNaN(op) {
			return true
		}
	}
	return false
}
