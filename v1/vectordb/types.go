package vectordb

// FilterOperator names the operator of a where-filter node.
// Values match the operator names of Weaviate's GraphQL where filter.
type FilterOperator string

const (
	Equal            FilterOperator = "Equal"
	NotEqual         FilterOperator = "NotEqual"
	GreaterThan      FilterOperator = "GreaterThan"
	GreaterThanEqual FilterOperator = "GreaterThanEqual"
	LessThan         FilterOperator = "LessThan"
	LessThanEqual    FilterOperator = "LessThanEqual"
	Like             FilterOperator = "Like"
	IsNull           FilterOperator = "IsNull"
	And              FilterOperator = "And"
	Or               FilterOperator = "Or"
	ContainsAll      FilterOperator = "ContainsAll"
	ContainsAny      FilterOperator = "ContainsAny"
	WithinGeoRange   FilterOperator = "WithinGeoRange"
)

// Predicate is one node of a structured where filter.
//
// A leaf carries Path, Operator and exactly one value slot. An internal node
// carries Operator And or Or plus its Operands. The JSON form matches
// Weaviate's WhereFilter so a tree can be logged or shipped as-is.
//
// Example:
//
//	// price > 600 AND price < 800
//	p := vectordb.NewAnd(
//	    vectordb.NewNumberCondition("price", vectordb.GreaterThan, 600),
//	    vectordb.NewNumberCondition("price", vectordb.LessThan, 800),
//	)
type Predicate struct {
	// Path is the property path of a leaf, e.g. ["price"]
	Path []string `json:"path,omitempty"`

	// Operator is the comparison or logical operator of this node
	Operator FilterOperator `json:"operator"`

	// ValueNumber is set for numeric comparisons
	ValueNumber *float64 `json:"valueNumber,omitempty"`

	// ValueString is set for Equal and Like
	ValueString *string `json:"valueString,omitempty"`

	// ValueBoolean is set for IsNull; true matches null values
	ValueBoolean *bool `json:"valueBoolean,omitempty"`

	// Operands are the children of an And/Or node
	Operands []*Predicate `json:"operands,omitempty"`
}

// Row is a single object returned by a store, keyed by property name.
// Store metadata such as id and distance lives under the "_additional" key.
type Row map[string]any

// SortOrder is the direction of a sort directive.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Sort orders results by the property at Path.
type Sort struct {
	Path  []string  `json:"path"`
	Order SortOrder `json:"order"`
}

// BM25 is a lexical (keyword) search directive.
type BM25 struct {
	Query string `json:"query"`

	// Properties restricts scoring to these properties; empty means all
	Properties []string `json:"properties,omitempty"`
}

// Hybrid blends lexical and vector scoring. Alpha 0 is pure BM25,
// Alpha 1 is pure vector search.
type Hybrid struct {
	Query string  `json:"query"`
	Alpha float32 `json:"alpha"`
}

// MoveParameters shifts a nearText query towards or away from concepts.
type MoveParameters struct {
	Concepts []string `json:"concepts"`
	Force    *float32 `json:"force,omitempty"`
}

// NearText is a vector search seeded by concept text.
type NearText struct {
	Concepts     []string        `json:"concepts"`
	Distance     *float32        `json:"distance,omitempty"`
	MoveAwayFrom *MoveParameters `json:"moveAwayFrom,omitempty"`
	MoveTo       *MoveParameters `json:"moveTo,omitempty"`
}

// NearObject is a vector search seeded by the vector of a stored object.
type NearObject struct {
	ID       string   `json:"id"`
	Distance *float32 `json:"distance,omitempty"`
}

// GetQuery fetches a page of objects from one class.
type GetQuery struct {
	// ClassName is the target class (collection)
	ClassName string

	// Fields are the selections to retrieve, e.g. "title" or "_additional { id distance }"
	Fields []string

	BM25       *BM25
	Hybrid     *Hybrid
	NearText   *NearText
	NearObject *NearObject

	// Where is the optional filter; nil means unfiltered
	Where *Predicate

	// Sort directives, primary key first
	Sort []Sort

	Limit  int
	Offset int
}

// AggregateQuery counts the objects of one class matching Where.
type AggregateQuery struct {
	ClassName string
	Where     *Predicate
}
