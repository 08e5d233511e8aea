package bookmark

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Entry is a saved city reference.
//
// ID is the weather provider's city id when the city was saved from a
// provider payload; it is nil when only a free-text label is known.
type Entry struct {
	ID    *int64 `json:"id"`
	Label string `json:"label"`
}

// NewEntry builds an entry with an id.
func NewEntry(id int64, label string) Entry {
	return Entry{ID: &id, Label: label}
}

// LabelOnly builds an entry without an id.
func LabelOnly(label string) Entry {
	return Entry{Label: label}
}

// HasID reports whether the entry carries a provider id.
func (e Entry) HasID() bool { return e.ID != nil }

func (e Entry) sameID(id int64) bool { return e.ID != nil && *e.ID == id }

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Ref selects entries for removal, either by id or by exact label.
type Ref struct {
	id    *int64
	label *string
}

// ByID matches entries whose id equals id.
func ByID(id int64) Ref { return Ref{id: &id} }

// ByLabel matches entries whose label equals label exactly.
func ByLabel(label string) Ref { return Ref{label: &label} }

func (r Ref) matches(e Entry) bool {
	if r.id != nil && e.sameID(*r.id) {
		return true
	}
	return r.label != nil && e.Label == *r.label
}

func (r Ref) String() string {
	switch {
	case r.id != nil:
		b, _ := json.Marshal(*r.id)
		return "id:" + string(b)
	case r.label != nil:
		return "label:" + *r.label
	default:
		return "none"
	}
}

var errMalformedEntry = errors.New("malformed bookmark entry")

// decodeEntries parses the persisted blob. Elements stored as bare strings
// (the old format) come back as label-only entries.
func decodeEntries(raw string) ([]Entry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		trimmed := bytes.TrimSpace(item)
		if len(trimmed) == 0 {
			return nil, errMalformedEntry
		}

		switch trimmed[0] {
		case '"':
			var label string
			if err := json.Unmarshal(trimmed, &label); err != nil {
				return nil, err
			}
			entries = append(entries, LabelOnly(label))
		case '{':
			var e Entry
			if err := json.Unmarshal(trimmed, &e); err != nil {
				return nil, err
			}
			entries = append(entries, e)
		default:
			return nil, errMalformedEntry
		}
	}
	return entries, nil
}

func encodeEntries(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
