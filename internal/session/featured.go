package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"confhall/internal/entity"
	"confhall/internal/filter"
	"confhall/internal/storage"
)

// FeaturedSpeakersKey is the fixed cache key the derived featured-speaker
// index lives under.
const FeaturedSpeakersKey = "featured_speakers"

// FeaturedSpeaker is one entry of the derived index: a speaker holding more
// than one session within the same conference, with that conference's
// session names.
type FeaturedSpeaker struct {
	Speaker      string
	SessionNames []string
}

// GetFeaturedSpeakers returns the current featured-speaker index, ordered
// by speaker name. An absent index yields an empty result, not an error; an
// index that has never been written and one where no speaker qualifies are
// indistinguishable. Cache transport failures do propagate.
func (s *Service) GetFeaturedSpeakers(ctx context.Context) ([]FeaturedSpeaker, error) {
	blob, ok, err := s.cache.Get(ctx, FeaturedSpeakersKey)
	if err != nil {
		return nil, fmt.Errorf("featured speakers: %w", err)
	}
	if !ok {
		return nil, nil
	}

	index, err := decodeIndex(blob)
	if err != nil {
		return nil, fmt.Errorf("featured speakers: %w", err)
	}

	speakers := make([]string, 0, len(index))
	for speaker := range index {
		speakers = append(speakers, speaker)
	}
	sort.Strings(speakers)

	out := make([]FeaturedSpeaker, 0, len(speakers))
	for _, speaker := range speakers {
		out = append(out, FeaturedSpeaker{Speaker: speaker, SessionNames: index[speaker]})
	}
	return out, nil
}

// updateFeaturedSpeakers recomputes one speaker's featured status within a
// conference and merges the result into the shared index blob.
//
// The index only grows: a speaker is written once they hold more than one
// session in the conference, and an existing entry is replaced, never
// removed. A speaker whose session count later drops back to one keeps the
// stale entry (inherited asymmetry, kept deliberately; the index is a
// derived convenience, not a system of record).
func (s *Service) updateFeaturedSpeakers(ctx context.Context, speaker, confKey string) error {
	key := confKey + "\x00" + speaker
	_, err, _ := s.featured.Do(key, func() (any, error) {
		return nil, s.recomputeFeatured(ctx, speaker, confKey)
	})
	return err
}

func (s *Service) recomputeFeatured(ctx context.Context, speaker, confKey string) error {
	q := storage.Query{
		Equality: []filter.Clause{
			{Field: entity.FieldSpeaker, Op: filter.OpEq, Value: speaker},
			{Field: entity.FieldConferenceKey, Op: filter.OpEq, Value: confKey},
		},
		OrderBy: entity.FieldName,
	}
	sessions, err := collect(s.store.RunQuery(ctx, q))
	if err != nil {
		return fmt.Errorf("count sessions for speaker %q: %w", speaker, err)
	}
	if len(sessions) <= 1 {
		return nil
	}

	names := make([]string, 0, len(sessions))
	for _, sess := range sessions {
		names = append(names, sess.Name)
	}

	s.featuredMu.Lock()
	defer s.featuredMu.Unlock()

	blob, ok, err := s.cache.Get(ctx, FeaturedSpeakersKey)
	if err != nil {
		return fmt.Errorf("read featured index: %w", err)
	}
	index := map[string][]string{}
	if ok {
		index, err = decodeIndex(blob)
		if err != nil {
			// A corrupt blob only loses derived data; start over rather
			// than wedging session creation forever.
			s.logger.Warn("featured index blob corrupt, rebuilding", "error", err)
			index = map[string][]string{}
		}
	}
	index[speaker] = names

	out, err := msgpack.Marshal(index)
	if err != nil {
		return fmt.Errorf("encode featured index: %w", err)
	}
	if err := s.cache.Set(ctx, FeaturedSpeakersKey, out); err != nil {
		return fmt.Errorf("write featured index: %w", err)
	}

	s.logger.Info("featured speaker indexed",
		"speaker", speaker, "conference", confKey, "sessions", len(names))
	return nil
}

func decodeIndex(blob []byte) (map[string][]string, error) {
	var index map[string][]string
	if err := msgpack.Unmarshal(blob, &index); err != nil {
		return nil, fmt.Errorf("decode featured index: %w", err)
	}
	if index == nil {
		index = map[string][]string{}
	}
	return index, nil
}
