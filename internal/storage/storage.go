// Package storage defines the entity storage engine boundary.
//
// The engine is deliberately narrow, matching the capabilities the query
// planner is allowed to assume: exact-match filters, at most one inequality
// filter per query, and ordering on a single field. The single-inequality
// restriction is structural (Query holds a *Clause, not a slice), so a
// query with two pushed-down inequalities cannot even be constructed.
package storage

import (
	"context"
	"errors"
	"iter"

	"confhall/internal/entity"
	"confhall/internal/filter"
)

// ErrNotFound is returned when a requested key does not resolve.
var ErrNotFound = errors.New("not found")

// ErrUnavailable is returned when the engine cannot serve the request at
// all, as opposed to serving an empty result. Callers must keep the two
// distinguishable.
var ErrUnavailable = errors.New("storage unavailable")

// Query describes a single session query the engine can execute directly.
type Query struct {
	// Equality clauses, all applied conjunctively.
	Equality []filter.Clause

	// Inequality is the at-most-one inequality clause the engine accepts.
	// When set, OrderBy must name the same field.
	Inequality *filter.Clause

	// OrderBy is the canonical field name results are sorted on, ascending.
	// Ties break on name, then key, so result order is stable.
	OrderBy string
}

// Engine is the entity storage engine the core runs against.
//
// RunQuery returns a finite, ordered sequence of matching sessions. Errors
// are yielded in-band as the second element; iteration stops after the
// first error.
type Engine interface {
	RunQuery(ctx context.Context, q Query) iter.Seq2[entity.Session, error]

	GetConference(ctx context.Context, key string) (entity.Conference, error)
	PutConference(ctx context.Context, conf entity.Conference) error

	GetSession(ctx context.Context, key string) (entity.Session, error)
	PutSession(ctx context.Context, sess entity.Session) error

	// AllocateSessionKey reserves a fresh session identity parented under
	// the given conference key.
	AllocateSessionKey(ctx context.Context, confKey string) (string, error)
}
