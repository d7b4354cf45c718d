package vectordb

import (
	"errors"
	"fmt"
)

// ErrInvalidPredicate reports a predicate tree that violates the leaf/value invariants.
var ErrInvalidPredicate = errors.New("vectordb: invalid predicate")

// ── Leaf Constructors ────────────────────────────────────────────────────────

// NewNumberCondition creates a numeric comparison leaf
// (GreaterThan, GreaterThanEqual, LessThan, LessThanEqual, Equal, NotEqual).
func NewNumberCondition(field string, op FilterOperator, value float64) *Predicate {
	return &Predicate{Path: []string{field}, Operator: op, ValueNumber: &value}
}

// NewStringCondition creates a string comparison leaf (Equal, NotEqual, Like).
func NewStringCondition(field string, op FilterOperator, value string) *Predicate {
	return &Predicate{Path: []string{field}, Operator: op, ValueString: &value}
}

// NewIsNull creates a leaf matching objects whose field is null.
func NewIsNull(field string) *Predicate {
	isNull := true
	return &Predicate{Path: []string{field}, Operator: IsNull, ValueBoolean: &isNull}
}

// ── Logical Constructors ─────────────────────────────────────────────────────

// NewAnd combines operands so that all must match.
func NewAnd(operands ...*Predicate) *Predicate {
	return &Predicate{Operator: And, Operands: operands}
}

// NewOr combines operands so that at least one must match.
func NewOr(operands ...*Predicate) *Predicate {
	return &Predicate{Operator: Or, Operands: operands}
}

// ── Inspection ───────────────────────────────────────────────────────────────

// IsLogical reports whether the operator combines operands.
func (op FilterOperator) IsLogical() bool {
	return op == And || op == Or
}

// IsRange reports whether the operator is an ordered numeric comparison.
func (op FilterOperator) IsRange() bool {
	switch op {
	case GreaterThan, GreaterThanEqual, LessThan, LessThanEqual:
		return true
	}
	return false
}

// IsLeaf reports whether p is a comparison rather than an And/Or node.
func (p *Predicate) IsLeaf() bool {
	return p != nil && !p.Operator.IsLogical()
}

// Field returns the first path element of a leaf, or "" for logical nodes.
func (p *Predicate) Field() string {
	if p == nil || len(p.Path) == 0 {
		return ""
	}
	return p.Path[0]
}

// Validate checks that every leaf carries the value slot its operator expects
// and every logical node has operands.
func (p *Predicate) Validate() error {
	if p == nil {
		return nil
	}

	if p.Operator.IsLogical() {
		if len(p.Operands) == 0 {
			return fmt.Errorf("%w: %s without operands", ErrInvalidPredicate, p.Operator)
		}
		for i, op := range p.Operands {
			if op == nil {
				return fmt.Errorf("%w: %s operand [%d] is nil", ErrInvalidPredicate, p.Operator, i)
			}
			if err := op.Validate(); err != nil {
				return err
			}
		}
		return nil
	}

	if len(p.Path) == 0 {
		return fmt.Errorf("%w: %s leaf without path", ErrInvalidPredicate, p.Operator)
	}

	switch {
	case p.Operator.IsRange():
		if p.ValueNumber == nil {
			return fmt.Errorf("%w: %s on %q requires a number", ErrInvalidPredicate, p.Operator, p.Field())
		}
	case p.Operator == Like:
		if p.ValueString == nil {
			return fmt.Errorf("%w: Like on %q requires a string", ErrInvalidPredicate, p.Field())
		}
	case p.Operator == IsNull:
		if p.ValueBoolean == nil {
			return fmt.Errorf("%w: IsNull on %q requires a boolean", ErrInvalidPredicate, p.Field())
		}
	case p.Operator == Equal, p.Operator == NotEqual:
		if p.ValueString == nil && p.ValueNumber == nil && p.ValueBoolean == nil {
			return fmt.Errorf("%w: %s on %q has no value", ErrInvalidPredicate, p.Operator, p.Field())
		}
	}
	return nil
}
