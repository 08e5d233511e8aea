package bookmark

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/meteo/internal/logger"
)

// StorageKey is the key the collection is persisted under.
const StorageKey = "savedCities"

// KV is the persisted key-value mechanism the store serializes into.
// ReadRaw reports ok=false when the key is absent.
type KV interface {
	ReadRaw(ctx context.Context, key string) (value string, ok bool, err error)
	WriteRaw(ctx context.Context, key, value string) error
}

// Store keeps an insertion-ordered, de-duplicated list of saved cities.
//
// Nothing is cached: every call reads the blob, and every mutation writes the
// whole collection back. Save and Remove are read-modify-write and are not
// atomic against each other; concurrent callers can lose updates.
type Store struct {
	kv     KV
	key    string
	logger logger.Logger
}

// NewStore creates a bookmark store over kv.
func NewStore(kv KV, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		kv:     kv,
		key:    StorageKey,
		logger: log,
	}
}

// List returns the saved cities in insertion order. Read or parse problems
// yield an empty list.
func (s *Store) List(ctx context.Context) []Entry {
	raw, ok, err := s.kv.ReadRaw(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read bookmarks", logger.Error(err))
		return []Entry{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Entry{}
	}

	entries, err := decodeEntries(raw)
	if err != nil {
		s.logger.Warn("discarding unreadable bookmarks blob", logger.Error(err))
		return []Entry{}
	}
	return entries
}

// Save appends e unless an equivalent entry already exists. Entries with an
// id match on id; entries without one match null-id entries by
// case-insensitive trimmed label. The first saved entry wins.
func (s *Store) Save(ctx context.Context, e Entry) {
	e.Label = strings.TrimSpace(e.Label)
	all := s.List(ctx)

	if exists(all, e) {
		s.logger.Debug("bookmark already saved", logger.String("label", e.Label))
		return
	}

	all = append(all, e)
	s.persist(ctx, all)
}

// Remove deletes every entry matched by ref and persists the rest.
func (s *Store) Remove(ctx context.Context, ref Ref) {
	all := s.List(ctx)
	kept := make([]Entry, 0, len(all))
	for _, e := range all {
		if !ref.matches(e) {
			kept = append(kept, e)
		}
	}

	if removed := len(all) - len(kept); removed > 0 {
		s.logger.Debug("removed bookmarks",
			logger.String("ref", ref.String()),
			logger.Int("count", removed))
	}
	s.persist(ctx, kept)
}

func exists(all []Entry, e Entry) bool {
	want := normalizeLabel(e.Label)
	for _, c := range all {
		if e.ID != nil {
			if c.sameID(*e.ID) {
				return true
			}
			continue
		}
		if c.ID == nil && normalizeLabel(c.Label) == want {
			return true
		}
	}
	return false
}

// persist writes the collection; failures are logged, never returned.
func (s *Store) persist(ctx context.Context, entries []Entry) {
	raw, err := encodeEntries(entries)
	if err != nil {
		s.logger.Warn("failed to encode bookmarks", logger.Error(err))
		return
	}
	if err := s.kv.WriteRaw(ctx, s.key, raw); err != nil {
		s.logger.Warn("failed to persist bookmarks", logger.Error(err))
	}
}
