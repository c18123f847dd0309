// Package plan turns a normalized filter clause list into work the storage
// engine can actually do.
//
// The engine accepts any number of equality filters but at most one
// inequality filter per query, and when it takes one it must also sort on
// that field. With zero or one pushable inequality clause the whole filter
// set is pushed down and storage does everything. Otherwise the first
// pushable inequality in client-submission order goes to storage together
// with all equality clauses; every remaining inequality becomes a residual
// filter evaluated lazily against the result stream, in submission order.
// Picking the first rather than the most selective clause is a deliberate
// simplicity-over-optimality tie-break.
//
// Inequality clauses on list-valued fields are never pushable: they carry
// not-a-member semantics, and a list field cannot drive the storage sort
// the pushed inequality requires. They always evaluate as residual
// filters, even when they are the only inequality in the set.
package plan

import (
	"iter"

	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/storage"
)

// listFields holds the fields carrying repeated values. Equality on them
// is a storage-evaluable membership test, but an inequality cannot be
// pushed or ordered on.
var listFields = map[string]bool{
	entity.FieldTypeOfSession: true,
	entity.FieldHighlights:    true,
}

// Build partitions the clauses into a single storage query plus the
// residual inequality clauses that must be filtered in memory. The clauses
// are assumed valid (produced by filter.Normalize); Build itself cannot
// fail. Zero clauses yields an unfiltered query over all sessions ordered
// by name.
func Build(clauses []filter.Clause) (storage.Query, []filter.Clause) {
	var q storage.Query
	var residual []filter.Clause

	for _, c := range clauses {
		switch {
		case !c.Op.Inequality():
			q.Equality = append(q.Equality, c)
		case listFields[c.Field]:
			residual = append(residual, c)
		case q.Inequality == nil:
			ineq := c
			q.Inequality = &ineq
		default:
			residual = append(residual, c)
		}
	}

	if q.Inequality != nil {
		q.OrderBy = q.Inequality.Field
	} else {
		q.OrderBy = entity.FieldName
	}
	return q, residual
}

// Residual lazily applies the residual clauses to a result stream, in the
// order given. Each clause wraps the stream in one more filter stage, so
// chaining n clauses is equivalent to chaining n single-clause evaluators;
// nothing is materialized ahead of the consumer. Errors yielded by the
// upstream sequence pass through unfiltered and end iteration.
func Residual(seq iter.Seq2[entity.Session, error], clauses []filter.Clause) iter.Seq2[entity.Session, error] {
	for _, c := range clauses {
		seq = applyOne(seq, c)
	}
	return seq
}

// applyOne yields the sub-sequence of seq satisfying a single clause.
func applyOne(seq iter.Seq2[entity.Session, error], c filter.Clause) iter.Seq2[entity.Session, error] {
	return func(yield func(entity.Session, error) bool) {
		for s, err := range seq {
			if err != nil {
				yield(s, err)
				return
			}
			if !filter.Matches(s, c) {
				continue
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}
