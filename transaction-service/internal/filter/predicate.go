// Package filter turns transaction list parameters into a storage-neutral
// query: a predicate tree, sort keys and page offsets.
package filter

import (
	"strings"

	"github.com/salesdesk/txbrowser/shared/models"
)

// Predicate is a boolean condition over a TransactionRecord. The concrete
// types below are the only implementations; stores switch on them.
type Predicate interface {
	Match(r *models.TransactionRecord) bool
}

// And matches when every child matches. An empty And matches everything.
type And []Predicate

// Or matches when at least one child matches. An empty Or matches nothing.
type Or []Predicate

// Eq is field = Value.
type Eq struct {
	Field Field
	Value any
}

// In is field ∈ Values.
type In struct {
	Field  Field
	Values []string
}

// Range bounds a field inclusively. A nil bound is open.
type Range struct {
	Field Field
	Min   any
	Max   any
}

// Contains is a case-insensitive substring match on a string field.
type Contains struct {
	Field     Field
	Substring string
}

// MatchAll is the predicate of a query with no constraints.
func MatchAll() Predicate { return And{} }

// IsMatchAll reports whether p places no constraint on records.
func IsMatchAll(p Predicate) bool {
	and, ok := p.(And)
	return ok && len(and) == 0
}

func (p And) Match(r *models.TransactionRecord) bool {
	for _, child := range p {
		if !child.Match(r) {
			return false
		}
	}
	return true
}

func (p Or) Match(r *models.TransactionRecord) bool {
	for _, child := range p {
		if child.Match(r) {
			return true
		}
	}
	return false
}

func (p Eq) Match(r *models.TransactionRecord) bool {
	c, ok := compare(p.Field.Value(r), p.Value)
	return ok && c == 0
}

func (p In) Match(r *models.TransactionRecord) bool {
	v, ok := p.Field.Value(r).(string)
	if !ok {
		return false
	}
	for _, candidate := range p.Values {
		if v == candidate {
			return true
		}
	}
	return false
}

func (p Range) Match(r *models.TransactionRecord) bool {
	v := p.Field.Value(r)
	if p.Min != nil {
		c, ok := compare(v, p.Min)
		if !ok || c < 0 {
			return false
		}
	}
	if p.Max != nil {
		c, ok := compare(v, p.Max)
		if !ok || c > 0 {
			return false
		}
	}
	return true
}

func (p Contains) Match(r *models.TransactionRecord) bool {
	v, ok := p.Field.Value(r).(string)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(p.Substring))
}
