package index

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/MrSnakeDoc/meteo/internal/bookmark"
	"github.com/MrSnakeDoc/meteo/internal/logger"
)

func TestNewMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	if index == nil {
		t.Fatal("NewMemoryIndex() returned nil")
	}
	if index.Count() != 0 {
		t.Errorf("NewMemoryIndex() should start empty, got %v keys", index.Count())
	}
	if !index.GetLastWrite().IsZero() {
		t.Error("GetLastWrite() should be zero before any write")
	}
}

func TestReadWrite(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()

	if _, ok, _ := index.ReadRaw(ctx, "savedCities"); ok {
		t.Error("ReadRaw() on empty index reported ok")
	}

	if err := index.WriteRaw(ctx, "savedCities", `["Paris"]`); err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}
	if err := index.WriteRaw(ctx, "savedCities", `["Lyon"]`); err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}

	v, ok, err := index.ReadRaw(ctx, "savedCities")
	if err != nil || !ok || v != `["Lyon"]` {
		t.Errorf("ReadRaw() = (%q, %v, %v), want overwritten value", v, ok, err)
	}
	if index.Count() != 1 {
		t.Errorf("Count() = %v, want 1", index.Count())
	}
	if index.GetLastWrite().IsZero() {
		t.Error("GetLastWrite() should be set after a write")
	}
}

func TestConcurrentAccess(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = index.WriteRaw(ctx, fmt.Sprintf("k%d", i%10), "v")
		}(i)
		go func() {
			defer wg.Done()
			_, _, _ = index.ReadRaw(ctx, "k1")
		}()
	}
	wg.Wait()

	if index.Count() != 10 {
		t.Errorf("Count() = %v, want 10", index.Count())
	}
}

func TestBookmarkStoreOnMemoryIndex(t *testing.T) {
	index := NewMemoryIndex()
	ctx := context.Background()
	store := bookmark.NewStore(index, logger.Nop())

	store.Save(ctx, bookmark.LabelOnly("Paris"))
	store.Save(ctx, bookmark.LabelOnly("paris "))
	store.Save(ctx, bookmark.NewEntry(703448, "Kyiv, UA"))
	store.Remove(ctx, bookmark.ByLabel("Paris"))

	got := store.List(ctx)
	if len(got) != 1 || got[0].Label != "Kyiv, UA" {
		t.Errorf("List() = %+v, want only Kyiv", got)
	}

	raw, _, _ := index.ReadRaw(ctx, bookmark.StorageKey)
	if raw != `[{"id":703448,"label":"Kyiv, UA"}]` {
		t.Errorf("persisted blob = %s", raw)
	}
}

func TestMemoryNames(t *testing.T) {
	c := NewMemoryNames()
	ctx := context.Background()

	if got, _ := c.GetName(ctx, "uk:1:2"); got != "" {
		t.Errorf("GetName() on miss = %q, want empty", got)
	}
	_ = c.SetName(ctx, "uk:1:2", "Київ")
	if got, _ := c.GetName(ctx, "uk:1:2"); got != "Київ" {
		t.Errorf("GetName() = %q, want Київ", got)
	}
}
