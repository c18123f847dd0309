// Package session implements the conference session core: session creation
// with organizer authorization, the generic filter query path, and the
// derived featured-speaker index.
//
// The query path is where the engineering lives. Storage evaluates at most
// one inequality constraint per query, so a filter set with several
// inequality clauses is split: one goes to storage together with every
// equality clause, the rest are applied lazily to the result stream (see
// the plan package).
package session

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"confhall/internal/auth"
	"confhall/internal/cache"
	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/logging"
	"confhall/internal/plan"
	"confhall/internal/storage"
	"confhall/internal/timecode"
)

// Service is the session core. All storage and cache access goes through
// the injected collaborators; the service holds no state of its own beyond
// the featured-index write guard.
type Service struct {
	store  storage.Engine
	cache  cache.Cache
	logger *slog.Logger

	// featuredMu serializes the read-merge-write of the featured-speaker
	// cache blob within this process; featured dedupes concurrent
	// recomputes of the same speaker/conference pair. Across processes the
	// whole-blob write is still last-writer-wins.
	featuredMu sync.Mutex
	featured   singleflight.Group
}

// NewService creates a session service backed by the given collaborators.
func NewService(store storage.Engine, c cache.Cache, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  c,
		logger: logging.Default(logger).With("component", "session"),
	}
}

// Draft carries client-supplied session fields before coercion. Date and
// StartTime arrive as wire strings and are converted to their stored forms
// on create; TypeOfSession tags are canonicalized.
type Draft struct {
	Name          string
	Speaker       string
	Highlights    []string
	Duration      string
	TypeOfSession []string
	Date          string // "2006-01-02", optional
	StartTime     string // 12-hour clock "H MM AM/PM", optional
}

// CreateSession creates a session under the given conference. The acting
// user is taken from the context claims and must be the conference
// organizer. Existence and authorization are checked before any mutation;
// field coercion errors surface before the session is persisted. When the
// new session names a speaker, the featured-speaker index is updated
// synchronously after the put.
func (s *Service) CreateSession(ctx context.Context, confKey string, draft Draft) (entity.Session, error) {
	claims := auth.ClaimsFromContext(ctx)
	if claims == nil {
		return entity.Session{}, fmt.Errorf("create session: authorization required: %w", ErrUnauthorized)
	}

	conf, err := s.store.GetConference(ctx, confKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return entity.Session{}, fmt.Errorf("create session: conference %q: %w", confKey, ErrNotFound)
		}
		return entity.Session{}, fmt.Errorf("create session: load conference %q: %w", confKey, err)
	}
	if conf.OrganizerUserID != claims.UserID() {
		return entity.Session{}, fmt.Errorf("create session: user %q does not own conference %q: %w",
			claims.UserID(), confKey, ErrUnauthorized)
	}

	sess, err := coerceDraft(draft)
	if err != nil {
		return entity.Session{}, fmt.Errorf("create session: %w", err)
	}

	key, err := s.store.AllocateSessionKey(ctx, confKey)
	if err != nil {
		return entity.Session{}, fmt.Errorf("create session: allocate key under %q: %w", confKey, err)
	}
	sess.Key = key
	sess.ConferenceKey = confKey
	sess.OrganizerUserID = claims.UserID()

	if err := s.store.PutSession(ctx, sess); err != nil {
		return entity.Session{}, fmt.Errorf("create session %q: %w", sess.Name, err)
	}
	s.logger.Info("session created",
		"key", sess.Key, "conference", confKey, "speaker", sess.Speaker)

	if sess.Speaker != "" {
		if err := s.updateFeaturedSpeakers(ctx, sess.Speaker, confKey); err != nil {
			return entity.Session{}, fmt.Errorf("create session %q: featured index: %w", sess.Name, err)
		}
	}
	return sess, nil
}

// coerceDraft validates and converts client field values to stored form.
func coerceDraft(draft Draft) (entity.Session, error) {
	if draft.Name == "" {
		return entity.Session{}, fmt.Errorf("session name is required: %w", filter.ErrInvalidFilter)
	}

	sess := entity.Session{
		Name:       draft.Name,
		Speaker:    draft.Speaker,
		Highlights: append([]string(nil), draft.Highlights...),
		Duration:   draft.Duration,
		StartTime:  entity.NoStartTime,
	}

	for _, tag := range draft.TypeOfSession {
		t, err := entity.ParseSessionType(tag)
		if err != nil {
			return entity.Session{}, fmt.Errorf("%w: %w", err, filter.ErrInvalidFilter)
		}
		sess.TypeOfSession = append(sess.TypeOfSession, t)
	}

	if draft.Date != "" {
		d, err := time.Parse(filter.DateLayout, draft.Date)
		if err != nil {
			return entity.Session{}, fmt.Errorf("session date %q: %w", draft.Date, filter.ErrInvalidFilter)
		}
		sess.Date = d
	}

	if draft.StartTime != "" {
		minutes, err := timecode.ParseClock(draft.StartTime)
		if err != nil {
			return entity.Session{}, fmt.Errorf("session start time: %w", err)
		}
		sess.StartTime = minutes
	}
	return sess, nil
}

// QuerySessions runs a generic filter query. The clause list is validated
// and normalized in full before any storage call, then split into one
// storage query plus lazily-evaluated residual filters.
func (s *Service) QuerySessions(ctx context.Context, inputs []filter.Input) ([]entity.Session, error) {
	clauses, err := filter.NormalizeAll(inputs)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}

	q, residual := plan.Build(clauses)
	seq := plan.Residual(s.store.RunQuery(ctx, q), residual)

	out, err := collect(seq)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return out, nil
}

// ConferenceSessions returns all sessions in the given conference,
// ordered by name.
func (s *Service) ConferenceSessions(ctx context.Context, confKey string) ([]entity.Session, error) {
	q := storage.Query{
		Equality: []filter.Clause{
			{Field: entity.FieldConferenceKey, Op: filter.OpEq, Value: confKey},
		},
		OrderBy: entity.FieldName,
	}
	out, err := collect(s.store.RunQuery(ctx, q))
	if err != nil {
		return nil, fmt.Errorf("conference %q sessions: %w", confKey, err)
	}
	return out, nil
}

// ConferenceSessionsByType returns the sessions in a conference carrying
// the given category tag.
func (s *Service) ConferenceSessionsByType(ctx context.Context, confKey string, t entity.SessionType) ([]entity.Session, error) {
	q := storage.Query{
		Equality: []filter.Clause{
			{Field: entity.FieldConferenceKey, Op: filter.OpEq, Value: confKey},
			{Field: entity.FieldTypeOfSession, Op: filter.OpEq, Value: string(t)},
		},
		OrderBy: entity.FieldName,
	}
	out, err := collect(s.store.RunQuery(ctx, q))
	if err != nil {
		return nil, fmt.Errorf("conference %q sessions by type %s: %w", confKey, t, err)
	}
	return out, nil
}

// SessionsBySpeaker returns the sessions the given speaker holds, across
// all conferences.
func (s *Service) SessionsBySpeaker(ctx context.Context, speaker string) ([]entity.Session, error) {
	q := storage.Query{
		Equality: []filter.Clause{
			{Field: entity.FieldSpeaker, Op: filter.OpEq, Value: speaker},
		},
		OrderBy: entity.FieldName,
	}
	out, err := collect(s.store.RunQuery(ctx, q))
	if err != nil {
		return nil, fmt.Errorf("sessions by speaker %q: %w", speaker, err)
	}
	return out, nil
}

// collect drains a result stream, returning the first error encountered.
func collect(seq iter.Seq2[entity.Session, error]) ([]entity.Session, error) {
	var out []entity.Session
	for sess, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}
