// Package memory provides an in-memory storage.Engine implementation.
//
// Intended for tests and the local CLI harness. Nothing is persisted across
// restarts. The engine enforces the same query restrictions a production
// engine would: one inequality per query, ordered on the inequality field.
package memory

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/logging"
	"confhall/internal/storage"
)

// Engine is an in-memory storage.Engine.
type Engine struct {
	logger *slog.Logger

	mu          sync.RWMutex
	conferences map[string]entity.Conference
	sessions    map[string]entity.Session
}

// NewEngine creates an empty in-memory engine.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		logger:      logging.Default(logger).With("component", "storage"),
		conferences: make(map[string]entity.Conference),
		sessions:    make(map[string]entity.Session),
	}
}

// RunQuery evaluates the query against a snapshot of the stored sessions.
// The snapshot is taken under lock; iteration happens outside it.
func (e *Engine) RunQuery(ctx context.Context, q storage.Query) iter.Seq2[entity.Session, error] {
	return func(yield func(entity.Session, error) bool) {
		if err := validate(q); err != nil {
			yield(entity.Session{}, err)
			return
		}

		e.mu.RLock()
		matched := make([]entity.Session, 0, len(e.sessions))
		for _, s := range e.sessions {
			if matchesAll(s, q) {
				matched = append(matched, copySession(s))
			}
		}
		e.mu.RUnlock()

		orderBy := q.OrderBy
		if orderBy == "" {
			orderBy = entity.FieldName
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], orderBy)
		})

		for _, s := range matched {
			if ctx.Err() != nil {
				yield(entity.Session{}, fmt.Errorf("run query: %w", ctx.Err()))
				return
			}
			if !yield(s, nil) {
				return
			}
		}
	}
}

// validate rejects query shapes the engine does not support.
func validate(q storage.Query) error {
	for _, c := range q.Equality {
		if c.Op != filter.OpEq {
			return fmt.Errorf("non-equality clause %v in equality set: %w", c, storage.ErrUnavailable)
		}
	}
	if q.Inequality != nil {
		if !q.Inequality.Op.Inequality() {
			return fmt.Errorf("equality clause %v in inequality slot: %w", q.Inequality, storage.ErrUnavailable)
		}
		if q.OrderBy != q.Inequality.Field {
			return fmt.Errorf("inequality on %q requires ordering on it, got %q: %w",
				q.Inequality.Field, q.OrderBy, storage.ErrUnavailable)
		}
	}
	switch q.OrderBy {
	case "", entity.FieldName, entity.FieldSpeaker, entity.FieldConferenceKey,
		entity.FieldStartTime, entity.FieldDate:
	default:
		return fmt.Errorf("cannot order by %q: %w", q.OrderBy, storage.ErrUnavailable)
	}
	return nil
}

func matchesAll(s entity.Session, q storage.Query) bool {
	for _, c := range q.Equality {
		if !filter.Matches(s, c) {
			return false
		}
	}
	if q.Inequality != nil && !filter.Matches(s, *q.Inequality) {
		return false
	}
	return true
}

// less orders sessions by the given field ascending, breaking ties on name
// and then key so result order is deterministic.
func less(a, b entity.Session, field string) bool {
	switch field {
	case entity.FieldSpeaker:
		if a.Speaker != b.Speaker {
			return a.Speaker < b.Speaker
		}
	case entity.FieldConferenceKey:
		if a.ConferenceKey != b.ConferenceKey {
			return a.ConferenceKey < b.ConferenceKey
		}
	case entity.FieldStartTime:
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
	case entity.FieldDate:
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Key < b.Key
}

// GetConference returns the conference stored under key.
func (e *Engine) GetConference(ctx context.Context, key string) (entity.Conference, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.conferences[key]
	if !ok {
		return entity.Conference{}, fmt.Errorf("conference %q: %w", key, storage.ErrNotFound)
	}
	return copyConference(c), nil
}

// PutConference stores a conference, assigning a key if it has none.
func (e *Engine) PutConference(ctx context.Context, conf entity.Conference) error {
	if conf.Key == "" {
		return fmt.Errorf("put conference: empty key: %w", storage.ErrUnavailable)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.conferences[conf.Key] = copyConference(conf)
	return nil
}

// GetSession returns the session stored under key.
func (e *Engine) GetSession(ctx context.Context, key string) (entity.Session, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s, ok := e.sessions[key]
	if !ok {
		return entity.Session{}, fmt.Errorf("session %q: %w", key, storage.ErrNotFound)
	}
	return copySession(s), nil
}

// PutSession stores a session under its key.
func (e *Engine) PutSession(ctx context.Context, sess entity.Session) error {
	if sess.Key == "" {
		return fmt.Errorf("put session: empty key: %w", storage.ErrUnavailable)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessions[sess.Key] = copySession(sess)
	e.logger.Debug("session stored", "key", sess.Key, "name", sess.Name)
	return nil
}

// AllocateSessionKey reserves a fresh session key under the conference.
func (e *Engine) AllocateSessionKey(ctx context.Context, confKey string) (string, error) {
	if confKey == "" {
		return "", fmt.Errorf("allocate key: empty parent: %w", storage.ErrUnavailable)
	}
	return confKey + "/" + uuid.NewString(), nil
}

func copySession(s entity.Session) entity.Session {
	out := s
	out.Highlights = append([]string(nil), s.Highlights...)
	out.TypeOfSession = append([]entity.SessionType(nil), s.TypeOfSession...)
	return out
}

func copyConference(c entity.Conference) entity.Conference {
	out := c
	out.Topics = append([]string(nil), c.Topics...)
	return out
}
