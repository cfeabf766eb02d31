package search

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// Field is one named search field with its raw values.
type Field struct {
	Key    string
	Values []string
}

// Params is the ordered set of fields a search request carries. Fields with
// no values contribute no constraint.
type Params []Field

// Specification is the fully composed filter. It is opaque to callers and
// reusable: Apply narrows any select statement the store evaluates.
type Specification struct {
	exprs []exp.Expression
}

// Apply adds the composed predicate to the statement. An empty specification
// leaves it unchanged, matching the whole collection.
func (s Specification) Apply(ds *goqu.SelectDataset) *goqu.SelectDataset {
	if len(s.exprs) == 0 {
		return ds
	}
	return ds.Where(goqu.And(s.exprs...))
}

// Builder composes per-field predicates into one specification.
type Builder struct {
	registry *Registry
}

func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// Build resolves a provider for every field present with at least one value
// and combines the resulting fragments with AND. Absent or empty fields are
// skipped. A field key without a registered provider fails with
// domain.ErrConfiguration.
func (b *Builder) Build(params Params) (Specification, error) {
	var spec Specification
	for _, field := range params {
		if len(field.Values) == 0 {
			continue
		}
		provider, err := b.registry.Resolve(field.Key)
		if err != nil {
			return Specification{}, err
		}
		spec.exprs = append(spec.exprs, provider.Predicate(field.Values))
	}
	return spec, nil
}
