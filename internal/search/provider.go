// Package search builds composable catalog query filters out of an open set
// of optional per-field predicates. One provider is registered per searchable
// field; adding a field means registering one more provider, the builder
// never changes.
package search

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Provider builds the predicate fragment for one searchable field.
type Provider interface {
	// Key is the field name clients use, case-sensitive.
	Key() string

	// Predicate turns the raw values for the field into one expression.
	// Semantics within a field are OR: a row matches if its column equals any
	// of the values, by exact, case-sensitive comparison.
	Predicate(values []string) exp.Expression
}

type columnProvider struct {
	key    string
	column string
}

// NewFieldProvider returns a Provider matching a single column against the
// given values with IN semantics.
func NewFieldProvider(key, column string) Provider {
	return columnProvider{key: key, column: column}
}

func (p columnProvider) Key() string {
	return p.key
}

func (p columnProvider) Predicate(values []string) exp.Expression {
	return goqu.C(p.column).In(values)
}
