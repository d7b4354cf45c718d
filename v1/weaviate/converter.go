package weaviate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weaviate/weaviate-go-client/v5/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v5/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

// GraphQLError carries the errors Weaviate reports inside a 200 response,
// e.g. an unknown class or a NaN where a number is expected.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

var operators = map[vectordb.FilterOperator]filters.WhereOperator{
	vectordb.Equal:            filters.Equal,
	vectordb.NotEqual:         filters.NotEqual,
	vectordb.GreaterThan:      filters.GreaterThan,
	vectordb.GreaterThanEqual: filters.GreaterThanEqual,
	vectordb.LessThan:         filters.LessThan,
	vectordb.LessThanEqual:    filters.LessThanEqual,
	vectordb.Like:             filters.Like,
	vectordb.IsNull:           filters.IsNull,
	vectordb.And:              filters.And,
	vectordb.Or:               filters.Or,
	vectordb.ContainsAll:      filters.ContainsAll,
	vectordb.ContainsAny:      filters.ContainsAny,
	vectordb.WithinGeoRange:   filters.WithinGeoRange,
}

// ── Filter Conversion ────────────────────────────────────────────────────────

// convertPredicate converts a predicate tree into a where builder.
// A nil predicate yields nil. Numbers are passed as-is, NaN included;
// Weaviate rejects those at query time.
func convertPredicate(p *vectordb.Predicate) (*filters.WhereBuilder, error) {
	if p == nil {
		return nil, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return convertNode(p)
}

func convertNode(p *vectordb.Predicate) (*filters.WhereBuilder, error) {
	op, ok := operators[p.Operator]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operator %q", vectordb.ErrInvalidPredicate, p.Operator)
	}

	if p.Operator.IsLogical() {
		operands := make([]*filters.WhereBuilder, 0, len(p.Operands))
		for _, child := range p.Operands {
			w, err := convertNode(child)
			if err != nil {
				return nil, err
			}
			operands = append(operands, w)
		}
		return filters.Where().WithOperator(op).WithOperands(operands), nil
	}

	where := filters.Where().WithPath(p.Path).WithOperator(op)
	switch {
	case p.ValueNumber != nil:
		where = where.WithValueNumber(*p.ValueNumber)
	case p.ValueString != nil:
		where = where.WithValueText(*p.ValueString)
	case p.ValueBoolean != nil:
		where = where.WithValueBoolean(*p.ValueBoolean)
	}
	return where, nil
}

// ── Query Conversion ─────────────────────────────────────────────────────────

func convertSort(sorts []vectordb.Sort) []graphql.Sort {
	out := make([]graphql.Sort, 0, len(sorts))
	for _, s := range sorts {
		order := graphql.Asc
		if s.Order == vectordb.Desc {
			order = graphql.Desc
		}
		out = append(out, graphql.Sort{Path: s.Path, Order: order})
	}
	return out
}

func convertMove(m *vectordb.MoveParameters) *graphql.MoveParameters {
	move := &graphql.MoveParameters{Concepts: m.Concepts}
	if m.Force != nil {
		move.Force = *m.Force
	}
	return move
}

// selection joins the field list into one raw GraphQL selection set, so
// nested selections such as "_additional { id distance }" pass through.
func selection(fields []string) graphql.Field {
	return graphql.Field{Name: strings.Join(fields, " ")}
}

// countSelection selects "meta { count }".
func countSelection() graphql.Field {
	return graphql.Field{Name: "meta", Fields: []graphql.Field{{Name: "count"}}}
}

// ── Response Parsing ─────────────────────────────────────────────────────────

func responseError(resp *models.GraphQLResponse) error {
	if resp == nil {
		return fmt.Errorf("empty response")
	}
	if len(resp.Errors) == 0 {
		return nil
	}

	messages := make([]string, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		if e != nil {
			messages = append(messages, e.Message)
		}
	}
	return &GraphQLError{Messages: messages}
}

// parseGetResponse extracts data.Get.<class> as rows. A missing class
// entry yields no rows.
func parseGetResponse(resp *models.GraphQLResponse, className string) ([]vectordb.Row, error) {
	get, ok := resp.Data["Get"].(map[string]interface{})
	if !ok {
		return []vectordb.Row{}, nil
	}
	objects, ok := get[className].([]interface{})
	if !ok {
		return []vectordb.Row{}, nil
	}

	rows := make([]vectordb.Row, 0, len(objects))
	for i, obj := range objects {
		props, ok := obj.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("unexpected object at %s[%d]: %T", className, i, obj)
		}
		rows = append(rows, vectordb.Row(props))
	}
	return rows, nil
}

// parseCountResponse extracts data.Aggregate.<class>[0].meta.count.
// A missing entry counts as 0.
func parseCountResponse(resp *models.GraphQLResponse, className string) (int, error) {
	aggregate, ok := resp.Data["Aggregate"].(map[string]interface{})
	if !ok {
		return 0, nil
	}
	groups, ok := aggregate[className].([]interface{})
	if !ok || len(groups) == 0 {
		return 0, nil
	}
	group, ok := groups[0].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("unexpected aggregate group: %T", groups[0])
	}
	meta, ok := group["meta"].(map[string]interface{})
	if !ok {
		return 0, nil
	}

	switch n := meta["count"].(type) {
	case float64:
		return int(n), nil
	case json.Number:
		v, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("invalid count %q: %w", n, err)
		}
		return int(v), nil
	case nil:
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected count type %T", n)
	}
}
