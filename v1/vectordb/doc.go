// Package vectordb defines the database-agnostic query model shared by the
// search adapter and the store implementations.
//
// The adapter translates Algolia-shaped requests into a [GetQuery] and an
// [AggregateQuery]; a [Store] implementation (see the weaviate and qdrant
// packages) executes them and returns plain [Row] maps plus a count.
//
// # Filters
//
// Filters are expressed as a [Predicate] tree. Leaves compare one property
// with a typed value; internal nodes combine operands with And or Or:
//
//	// (price >= 800 AND title LIKE *Samsung*) OR price < 700
//	where := vectordb.NewOr(
//	    vectordb.NewAnd(
//	        vectordb.NewNumberCondition("price", vectordb.GreaterThanEqual, 800),
//	        vectordb.NewStringCondition("title", vectordb.Like, "*Samsung*"),
//	    ),
//	    vectordb.NewNumberCondition("price", vectordb.LessThan, 700),
//	)
//
// IsNull leaves keep their flag in ValueBoolean, never in ValueString, so a
// store never mistakes them for a comparison with the text "null".
//
// # Testing
//
// [MockStore] is a gomock implementation of [Store]:
//
//	ctrl := gomock.NewController(t)
//	store := vectordb.NewMockStore(ctrl)
//	store.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
//
// # Thread Safety
//
// All types in this package are plain values. Store implementations must be
// safe for concurrent use.
package vectordb
