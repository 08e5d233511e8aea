package bookmark

import (
	"context"
	"errors"
	"testing"
)

// mapKV is a minimal KV for tests.
type mapKV struct {
	data     map[string]string
	readErr  error
	writeErr error
	writes   int
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) ReadRaw(_ context.Context, key string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) WriteRaw(_ context.Context, key, value string) error {
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data[key] = value
	return nil
}

func labels(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Label
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListEmptyOrCorrupted(t *testing.T) {
	tests := []struct {
		name string
		raw  *string
	}{
		{name: "absent", raw: nil},
		{name: "empty string", raw: strPtr("")},
		{name: "corrupted json", raw: strPtr("{not json")},
		{name: "object instead of array", raw: strPtr(`{"id":1,"label":"X"}`)},
		{name: "number element", raw: strPtr(`[1, "Kyiv"]`)},
		{name: "wrong id type", raw: strPtr(`[{"id":"abc","label":"X"}]`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMapKV()
			if tt.raw != nil {
				kv.data[StorageKey] = *tt.raw
			}
			got := NewStore(kv, nil).List(context.Background())
			if got == nil || len(got) != 0 {
				t.Errorf("List() = %v, want empty non-nil slice", got)
			}
		})
	}
}

func TestListReadErrorIsEmpty(t *testing.T) {
	kv := newMapKV()
	kv.readErr = errors.New("connection refused")
	if got := NewStore(kv, nil).List(context.Background()); len(got) != 0 {
		t.Errorf("List() = %v, want empty", got)
	}
}

func TestListUpgradesLegacyStrings(t *testing.T) {
	kv := newMapKV()
	kv.data[StorageKey] = `["London", {"id": 703448, "label": "Kyiv, UA"}]`

	got := NewStore(kv, nil).List(context.Background())
	if len(got) != 2 {
		t.Fatalf("List() returned %d entries, want 2", len(got))
	}
	if got[0].ID != nil || got[0].Label != "London" {
		t.Errorf("legacy entry = %+v, want {ID:nil Label:London}", got[0])
	}
	if got[1].ID == nil || *got[1].ID != 703448 || got[1].Label != "Kyiv, UA" {
		t.Errorf("object entry = %+v, want {ID:703448 Label:Kyiv, UA}", got[1])
	}
}

func TestSaveAppendsAndTrims(t *testing.T) {
	kv := newMapKV()
	s := NewStore(kv, nil)
	ctx := context.Background()

	s.Save(ctx, LabelOnly("  Paris  "))

	want := `[{"id":null,"label":"Paris"}]`
	if kv.data[StorageKey] != want {
		t.Errorf("persisted = %s, want %s", kv.data[StorageKey], want)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	entries := []Entry{NewEntry(2643743, "London, GB"), LabelOnly("Lviv")}

	for _, e := range entries {
		t.Run(e.Label, func(t *testing.T) {
			kv := newMapKV()
			s := NewStore(kv, nil)
			ctx := context.Background()

			s.Save(ctx, e)
			once := kv.data[StorageKey]
			s.Save(ctx, e)

			if kv.data[StorageKey] != once {
				t.Errorf("second save changed blob: %s -> %s", once, kv.data[StorageKey])
			}
		})
	}
}

func TestSaveDedupByIDFirstWins(t *testing.T) {
	s := NewStore(newMapKV(), nil)
	ctx := context.Background()

	s.Save(ctx, NewEntry(1, "A"))
	s.Save(ctx, NewEntry(1, "B"))

	got := s.List(ctx)
	if !equalStrings(labels(got), []string{"A"}) {
		t.Errorf("List() labels = %v, want [A]", labels(got))
	}
}

func TestSaveDedupByLabelCaseInsensitive(t *testing.T) {
	s := NewStore(newMapKV(), nil)
	ctx := context.Background()

	s.Save(ctx, LabelOnly("London"))
	s.Save(ctx, LabelOnly("LONDON"))
	s.Save(ctx, LabelOnly(" london "))

	if got := s.List(ctx); len(got) != 1 || got[0].Label != "London" {
		t.Errorf("List() = %+v, want single London", got)
	}
}

func TestSaveLabelOnlyIgnoresEntriesWithID(t *testing.T) {
	s := NewStore(newMapKV(), nil)
	ctx := context.Background()

	s.Save(ctx, NewEntry(7, "Oslo"))
	s.Save(ctx, LabelOnly("oslo"))

	if got := s.List(ctx); len(got) != 2 {
		t.Errorf("List() = %+v, want 2 entries (id and label identities are separate)", got)
	}
}

func TestSaveKeepsInsertionOrder(t *testing.T) {
	s := NewStore(newMapKV(), nil)
	ctx := context.Background()

	for _, l := range []string{"Rome", "Oslo", "Lima"} {
		s.Save(ctx, LabelOnly(l))
	}
	if got := labels(s.List(ctx)); !equalStrings(got, []string{"Rome", "Oslo", "Lima"}) {
		t.Errorf("List() labels = %v", got)
	}
}

func TestSaveSwallowsWriteFailure(t *testing.T) {
	kv := newMapKV()
	kv.writeErr = errors.New("quota exceeded")
	s := NewStore(kv, nil)

	s.Save(context.Background(), LabelOnly("Berlin"))

	if kv.writes != 1 {
		t.Errorf("writes = %d, want 1 attempted write", kv.writes)
	}
	if got := s.List(context.Background()); len(got) != 0 {
		t.Errorf("List() = %v, want empty after failed write", got)
	}
}

func TestRemove(t *testing.T) {
	seed := `[{"id":1,"label":"X"},{"id":null,"label":"Y"}]`

	tests := []struct {
		name string
		ref  Ref
		want []string
	}{
		{name: "by id", ref: ByID(1), want: []string{"Y"}},
		{name: "by label", ref: ByLabel("Y"), want: []string{"X"}},
		{name: "by label of entry with id", ref: ByLabel("X"), want: []string{"Y"}},
		{name: "label is exact match", ref: ByLabel("y"), want: []string{"X", "Y"}},
		{name: "missing id is a no-op", ref: ByID(42), want: []string{"X", "Y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMapKV()
			kv.data[StorageKey] = seed
			s := NewStore(kv, nil)

			s.Remove(context.Background(), tt.ref)

			if got := labels(s.List(context.Background())); !equalStrings(got, tt.want) {
				t.Errorf("after Remove(%s) labels = %v, want %v", tt.ref, got, tt.want)
			}
		})
	}
}

func TestRemoveDropsAllMatches(t *testing.T) {
	kv := newMapKV()
	kv.data[StorageKey] = `["Kyiv", {"id":5,"label":"Kyiv"}, {"id":6,"label":"Odesa"}]`
	s := NewStore(kv, nil)

	s.Remove(context.Background(), ByLabel("Kyiv"))

	if got := labels(s.List(context.Background())); !equalStrings(got, []string{"Odesa"}) {
		t.Errorf("labels = %v, want [Odesa]", got)
	}
	if kv.data[StorageKey] != `[{"id":6,"label":"Odesa"}]` {
		t.Errorf("legacy entries should be rewritten as objects, got %s", kv.data[StorageKey])
	}
}

func TestRemoveOnEmptyStorePersistsEmptyArray(t *testing.T) {
	kv := newMapKV()
	NewStore(kv, nil).Remove(context.Background(), ByLabel("nothing"))
	if kv.data[StorageKey] != "[]" {
		t.Errorf("persisted = %q, want []", kv.data[StorageKey])
	}
}

func strPtr(s string) *string { return &s }
