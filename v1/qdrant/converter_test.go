package qdrant

import (
	"errors"
	"math"
	"testing"

	qdrant "github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/algolia-weaviate/v1/vectordb"
)

func TestConvertPredicate_Nil(t *testing.T) {
	filter, err := convertPredicate(nil)
	assert.NoError(t, err)
	assert.Nil(t, filter)
}

func TestConvertPredicate_Range(t *testing.T) {
	bound := func(r *qdrant.Range, op vectordb.FilterOperator) *float64 {
		switch op {
		case vectordb.GreaterThan:
			return r.Gt
		case vectordb.GreaterThanEqual:
			return r.Gte
		case vectordb.LessThan:
			return r.Lt
		}
		return r.Lte
	}

	ops := []vectordb.FilterOperator{
		vectordb.GreaterThan,
		vectordb.GreaterThanEqual,
		vectordb.LessThan,
		vectordb.LessThanEqual,
	}

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			filter, err := convertPredicate(vectordb.NewNumberCondition("price", op, 800))
			require.NoError(t, err)
			require.Len(t, filter.Must, 1)

			field := filter.Must[0].GetField()
			require.NotNil(t, field)
			assert.Equal(t, "price", field.GetKey())

			got := bound(field.GetRange(), op)
			require.NotNil(t, got)
			assert.Equal(t, 800.0, *got)
		})
	}
}

func TestConvertPredicate_Leaves(t *testing.T) {
	t.Run("equal string", func(t *testing.T) {
		filter, err := convertPredicate(vectordb.NewStringCondition("brand", vectordb.Equal, "Apple"))
		require.NoError(t, err)
		require.Len(t, filter.Must, 1)
		assert.Equal(t, "Apple", filter.Must[0].GetField().GetMatch().GetKeyword())
	})

	t.Run("equal number", func(t *testing.T) {
		filter, err := convertPredicate(vectordb.NewNumberCondition("price", vectordb.Equal, 799))
		require.NoError(t, err)
		r := filter.Must[0].GetField().GetRange()
		require.NotNil(t, r.Gte)
		require.NotNil(t, r.Lte)
		assert.Equal(t, 799.0, *r.Gte)
		assert.Equal(t, 799.0, *r.Lte)
	})

	t.Run("like strips wildcards", func(t *testing.T) {
		filter, err := convertPredicate(vectordb.NewStringCondition("title", vectordb.Like, "*Samsung*"))
		require.NoError(t, err)
		assert.Equal(t, "Samsung", filter.Must[0].GetField().GetMatch().GetText())
	})

	t.Run("is null", func(t *testing.T) {
		filter, err := convertPredicate(vectordb.NewIsNull("status"))
		require.NoError(t, err)
		assert.Equal(t, "status", filter.Must[0].GetIsNull().GetKey())
	})

	t.Run("not equal", func(t *testing.T) {
		filter, err := convertPredicate(vectordb.NewStringCondition("brand", vectordb.NotEqual, "Apple"))
		require.NoError(t, err)
		assert.Empty(t, filter.Must)
		require.Len(t, filter.MustNot, 1)
		assert.Equal(t, "Apple", filter.MustNot[0].GetField().GetMatch().GetKeyword())
	})
}

func TestConvertPredicate_Logical(t *testing.T) {
	// (price >= 800 AND title LIKE *Samsung*) OR price < 700
	p := vectordb.NewOr(
		vectordb.NewAnd(
			vectordb.NewNumberCondition("price", vectordb.GreaterThanEqual, 800),
			vectordb.NewStringCondition("title", vectordb.Like, "*Samsung*"),
		),
		vectordb.NewNumberCondition("price", vectordb.LessThan, 700),
	)

	filter, err := convertPredicate(p)
	require.NoError(t, err)
	assert.Empty(t, filter.Must)
	require.Len(t, filter.Should, 2)

	nested := filter.Should[0].GetFilter()
	require.NotNil(t, nested)
	require.Len(t, nested.Must, 2)
	assert.Equal(t, "price", nested.Must[0].GetField().GetKey())
	assert.Equal(t, "Samsung", nested.Must[1].GetField().GetMatch().GetText())

	leaf := filter.Should[1].GetField()
	require.NotNil(t, leaf)
	require.NotNil(t, leaf.GetRange().Lt)
	assert.Equal(t, 700.0, *leaf.GetRange().Lt)
}

func TestConvertPredicate_NestedNotEqual(t *testing.T) {
	p := vectordb.NewAnd(
		vectordb.NewNumberCondition("price", vectordb.GreaterThan, 1),
		vectordb.NewStringCondition("brand", vectordb.NotEqual, "Apple"),
	)

	filter, err := convertPredicate(p)
	require.NoError(t, err)
	require.Len(t, filter.Must, 2)
	nested := filter.Must[1].GetFilter()
	require.NotNil(t, nested)
	assert.Len(t, nested.MustNot, 1)
}

func TestConvertPredicate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		p       *vectordb.Predicate
		wantErr error
	}{
		{"nan", vectordb.NewNumberCondition("price", vectordb.GreaterThan, math.NaN()), vectordb.ErrInvalidPredicate},
		{"nested nan", vectordb.NewAnd(vectordb.NewIsNull("a"), vectordb.NewNumberCondition("p", vectordb.LessThan, math.NaN())), vectordb.ErrInvalidPredicate},
		{"invalid tree", &vectordb.Predicate{Operator: vectordb.And}, vectordb.ErrInvalidPredicate},
		{"only wildcards", vectordb.NewStringCondition("title", vectordb.Like, "**"), vectordb.ErrUnsupportedQuery},
		{"geo", &vectordb.Predicate{Path: []string{"loc"}, Operator: vectordb.WithinGeoRange}, vectordb.ErrUnsupportedQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := convertPredicate(tt.p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestBuildQuery(t *testing.T) {
	t.Run("scroll with paging", func(t *testing.T) {
		req, err := buildQuery(vectordb.GetQuery{
			ClassName: "products",
			Fields:    []string{"title", "price", "_additional { id distance }"},
			Limit:     2,
			Offset:    4,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "products", req.CollectionName)
		assert.Nil(t, req.Query)
		require.NotNil(t, req.Limit)
		require.NotNil(t, req.Offset)
		assert.Equal(t, uint64(2), *req.Limit)
		assert.Equal(t, uint64(4), *req.Offset)

		include := req.WithPayload.GetInclude()
		require.NotNil(t, include)
		assert.Equal(t, []string{"title", "price"}, include.GetFields())
	})

	t.Run("zero paging omitted", func(t *testing.T) {
		req, err := buildQuery(vectordb.GetQuery{ClassName: "products"}, nil)
		require.NoError(t, err)
		assert.Nil(t, req.Limit)
		assert.Nil(t, req.Offset)
		assert.True(t, req.WithPayload.GetEnable())
	})

	t.Run("order by", func(t *testing.T) {
		req, err := buildQuery(vectordb.GetQuery{
			ClassName: "products",
			Sort:      []vectordb.Sort{{Path: []string{"price"}, Order: vectordb.Desc}},
		}, nil)
		require.NoError(t, err)
		orderBy := req.Query.GetOrderBy()
		require.NotNil(t, orderBy)
		assert.Equal(t, "price", orderBy.GetKey())
		assert.Equal(t, qdrant.Direction_Desc, orderBy.GetDirection())
	})

	t.Run("near object", func(t *testing.T) {
		distance := float32(0.25)
		req, err := buildQuery(vectordb.GetQuery{
			ClassName:  "products",
			NearObject: &vectordb.NearObject{ID: "00000000-0000-0000-0000-000000000001", Distance: &distance},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "00000000-0000-0000-0000-000000000001", req.Query.GetNearest().GetId().GetUuid())
		require.NotNil(t, req.ScoreThreshold)
		assert.InDelta(t, 0.75, *req.ScoreThreshold, 1e-6)
	})

	t.Run("near text", func(t *testing.T) {
		distance := float32(0.4)
		req, err := buildQuery(vectordb.GetQuery{
			ClassName: "products",
			NearText:  &vectordb.NearText{Concepts: []string{"shoes"}, Distance: &distance},
		}, []float32{0.1, 0.2})
		require.NoError(t, err)
		assert.Equal(t, []float32{0.1, 0.2}, req.Query.GetNearest().GetDense().GetData())
		require.NotNil(t, req.ScoreThreshold)
		assert.InDelta(t, 0.6, *req.ScoreThreshold, 1e-6)
	})

	t.Run("sorted near text", func(t *testing.T) {
		_, err := buildQuery(vectordb.GetQuery{
			ClassName: "products",
			NearText:  &vectordb.NearText{Concepts: []string{"shoes"}},
			Sort:      []vectordb.Sort{{Path: []string{"price"}}},
		}, []float32{0.1})
		assert.ErrorIs(t, err, vectordb.ErrUnsupportedQuery)
	})

	t.Run("unsupported", func(t *testing.T) {
		queries := []vectordb.GetQuery{
			{ClassName: "p", BM25: &vectordb.BM25{Query: "x"}},
			{ClassName: "p", Hybrid: &vectordb.Hybrid{Query: "x", Alpha: 0.5}},
			{ClassName: "p", NearText: &vectordb.NearText{Concepts: []string{"x"}}},
			{ClassName: "p", Sort: []vectordb.Sort{{Path: []string{"a"}}, {Path: []string{"b"}}}},
		}
		for _, q := range queries {
			_, err := buildQuery(q, nil)
			assert.ErrorIs(t, err, vectordb.ErrUnsupportedQuery)
		}
	})

	t.Run("missing collection", func(t *testing.T) {
		_, err := buildQuery(vectordb.GetQuery{}, nil)
		assert.Error(t, err)
	})
}

func TestToRows(t *testing.T) {
	points := []*qdrant.ScoredPoint{
		{
			Id:    qdrant.NewID("00000000-0000-0000-0000-000000000002"),
			Score: 0.75,
			Payload: qdrant.NewValueMap(map[string]any{
				"title": "Samsung Galaxy S21",
				"price": 899,
				"tags":  []any{"android"},
			}),
		},
		{Id: qdrant.NewIDNum(7)},
	}

	rows, err := toRows(points, true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Samsung Galaxy S21", rows[0]["title"])
	assert.Equal(t, int64(899), rows[0]["price"])
	assert.Equal(t, []any{"android"}, rows[0]["tags"])
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", rows[0].ID())
	distance, ok := rows[0].Distance()
	assert.True(t, ok)
	assert.InDelta(t, 0.25, distance, 1e-6)

	assert.Equal(t, "7", rows[1].ID())

	rows, err = toRows(points, false)
	require.NoError(t, err)
	_, ok = rows[0].Distance()
	assert.False(t, ok, "scroll scores are not similarities")
}
