package qdrant

import (
	"fmt"
	"math"
	"strings"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertPredicate maps a predicate tree onto a Qdrant filter.
//
//	And      -> Must
//	Or       -> Should
//	NotEqual -> MustNot(match)
//
// Nested logical nodes become filter conditions. A bare leaf is wrapped in
// Must. Qdrant has no glob matching, so Like strips the "*" wildcards and
// uses full-text matching on the remainder.
func convertPredicate(p *vectordb.Predicate) (*qdrant.Filter, error) {
	if p == nil {
		return nil, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch p.Operator {
	case vectordb.And, vectordb.Or:
		return convertLogical(p)
	case vectordb.NotEqual:
		cond, err := convertMatch(p)
		if err != nil {
			return nil, err
		}
		return &qdrant.Filter{MustNot: []*qdrant.Condition{cond}}, nil
	}

	cond, err := convertLeaf(p)
	if err != nil {
		return nil, err
	}
	return &qdrant.Filter{Must: []*qdrant.Condition{cond}}, nil
}

func convertLogical(p *vectordb.Predicate) (*qdrant.Filter, error) {
	conditions := make([]*qdrant.Condition, 0, len(p.Operands))
	for _, op := range p.Operands {
		cond, err := convertOperand(op)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, cond)
	}

	if p.Operator == vectordb.Or {
		return &qdrant.Filter{Should: conditions}, nil
	}
	return &qdrant.Filter{Must: conditions}, nil
}

// convertOperand turns a child node into a single condition. Leaves map
// directly; everything needing its own Must/Should/MustNot becomes a nested
// filter.
func convertOperand(p *vectordb.Predicate) (*qdrant.Condition, error) {
	if p.IsLeaf() && p.Operator != vectordb.NotEqual {
		return convertLeaf(p)
	}
	nested, err := convertPredicate(p)
	if err != nil {
		return nil, err
	}
	return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_Filter{Filter: nested}}, nil
}

func convertLeaf(p *vectordb.Predicate) (*qdrant.Condition, error) {
	key := strings.Join(p.Path, ".")

	switch p.Operator {
	case vectordb.GreaterThan, vectordb.GreaterThanEqual, vectordb.LessThan, vectordb.LessThanEqual:
		v := *p.ValueNumber
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: %s on %q is not a number", vectordb.ErrInvalidPredicate, p.Operator, key)
		}
		r := &qdrant.Range{}
		switch p.Operator {
		case vectordb.GreaterThan:
			r.Gt = &v
		case vectordb.GreaterThanEqual:
			r.Gte = &v
		case vectordb.LessThan:
			r.Lt = &v
		case vectordb.LessThanEqual:
			r.Lte = &v
		}
		return qdrant.NewRange(key, r), nil

	case vectordb.Equal:
		return convertMatch(p)

	case vectordb.Like:
		text := strings.Trim(*p.ValueString, "*")
		if text == "" {
			return nil, fmt.Errorf("%w: Like on %q has no text besides wildcards", vectordb.ErrUnsupportedQuery, key)
		}
		return qdrant.NewMatchText(key, text), nil

	case vectordb.IsNull:
		return qdrant.NewIsNull(key), nil
	}

	return nil, fmt.Errorf("%w: operator %s", vectordb.ErrUnsupportedQuery, p.Operator)
}

// convertMatch builds an exact match. Numbers use a closed range because
// Qdrant only matches integers exactly.
func convertMatch(p *vectordb.Predicate) (*qdrant.Condition, error) {
	key := strings.Join(p.Path, ".")

	switch {
	case p.ValueString != nil:
		return qdrant.NewMatch(key, *p.ValueString), nil
	case p.ValueBoolean != nil:
		return qdrant.NewMatchBool(key, *p.ValueBoolean), nil
	case p.ValueNumber != nil:
		v := *p.ValueNumber
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: %s on %q is not a number", vectordb.ErrInvalidPredicate, p.Operator, key)
		}
		return qdrant.NewRange(key, &qdrant.Range{Gte: &v, Lte: &v}), nil
	}
	return nil, fmt.Errorf("%w: %s on %q has no value", vectordb.ErrInvalidPredicate, p.Operator, key)
}

// ── Query Conversion ─────────────────────────────────────────────────────────

// checkSupported rejects directives Qdrant cannot execute. embedded reports
// whether a nearText vector is available.
func checkSupported(q vectordb.GetQuery, embedded bool) error {
	switch {
	case q.BM25 != nil:
		return fmt.Errorf("%w: bm25", vectordb.ErrUnsupportedQuery)
	case q.Hybrid != nil:
		return fmt.Errorf("%w: hybrid", vectordb.ErrUnsupportedQuery)
	case q.NearText != nil && !embedded:
		return fmt.Errorf("%w: nearText requires an embedder", vectordb.ErrUnsupportedQuery)
	case q.NearText != nil && len(q.Sort) > 0:
		return fmt.Errorf("%w: sorting a nearText search", vectordb.ErrUnsupportedQuery)
	case len(q.Sort) > 1:
		return fmt.Errorf("%w: sorting by more than one property", vectordb.ErrUnsupportedQuery)
	case len(q.Sort) == 1 && q.NearObject != nil:
		return fmt.Errorf("%w: sorting a nearObject search", vectordb.ErrUnsupportedQuery)
	}
	return nil
}

// convertQuery picks the Qdrant query of a GetQuery: nearest to vector for
// nearText, recommend-by-id for nearObject, order_by for a single sort key,
// or nil for a plain scroll.
func convertQuery(q vectordb.GetQuery, vector []float32) *qdrant.Query {
	if vector != nil {
		return qdrant.NewQueryDense(vector)
	}
	if q.NearObject != nil {
		return qdrant.NewQueryID(qdrant.NewID(q.NearObject.ID))
	}
	if len(q.Sort) == 1 {
		direction := qdrant.Direction_Asc
		if q.Sort[0].Order == vectordb.Desc {
			direction = qdrant.Direction_Desc
		}
		return qdrant.NewQueryOrderBy(&qdrant.OrderBy{
			Key:       strings.Join(q.Sort[0].Path, "."),
			Direction: direction.Enum(),
		})
	}
	return nil
}

// payloadSelector requests only the plain property names of fields. The
// "_additional { ... }" selection is always synthesized from the point.
func payloadSelector(fields []string) *qdrant.WithPayloadSelector {
	include := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || strings.HasPrefix(f, vectordb.AdditionalKey) || strings.ContainsAny(f, "{ ") {
			continue
		}
		include = append(include, f)
	}
	if len(include) == 0 {
		return qdrant.NewWithPayload(true)
	}
	return qdrant.NewWithPayloadInclude(include...)
}

// ── Result Conversion ────────────────────────────────────────────────────────

// toRows converts scored points into rows. withDistance reports whether the
// scores are similarities; distance is then 1 - score, matching cosine
// distance in Weaviate.
func toRows(points []*qdrant.ScoredPoint, withDistance bool) ([]vectordb.Row, error) {
	rows := make([]vectordb.Row, 0, len(points))
	for _, p := range points {
		id, err := extractPointID(p.GetId())
		if err != nil {
			return nil, err
		}

		row := convertPayload(p.GetPayload())
		if row == nil {
			row = make(vectordb.Row, 1)
		}

		additional := map[string]any{"id": id, "distance": nil}
		if withDistance {
			additional["distance"] = 1 - float64(p.GetScore())
		}
		row[vectordb.AdditionalKey] = additional
		rows = append(rows, row)
	}
	return rows, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a row.
func convertPayload(payload map[string]*qdrant.Value) vectordb.Row {
	if payload == nil {
		return nil
	}
	result := make(vectordb.Row, len(payload)+1)
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return map[string]any(convertPayload(val.StructValue.Fields))
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
