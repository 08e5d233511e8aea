package owm

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
)

type mapNameCache struct {
	data map[string]string
}

func (m *mapNameCache) GetName(_ context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *mapNameCache) SetName(_ context.Context, key, name string) error {
	m.data[key] = name
	return nil
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		name   string
		lang   string
		body   string
		want   string
		wantOK bool
	}{
		{name: "localized", lang: "ua", body: `[{"name":"Kyiv","local_names":{"uk":"Київ","en":"Kyiv"}}]`, want: "Київ", wantOK: true},
		{name: "fallback to default name", lang: "cs", body: `[{"name":"Kyiv","local_names":{"uk":"Київ"}}]`, want: "Kyiv", wantOK: true},
		{name: "no place", lang: "en", body: `[]`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/geo/1.0/reverse" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.URL.Query().Get("limit") != "1" {
					t.Errorf("limit = %s, want 1", r.URL.Query().Get("limit"))
				}
				writeJSON(w, http.StatusOK, tt.body)
			})

			got, ok, err := c.LocalName(context.Background(), 50.45, 30.52, tt.lang)
			if err != nil {
				t.Fatalf("LocalName() error = %v", err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("LocalName() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLocalNameUsesCache(t *testing.T) {
	var calls int32
	cache := &mapNameCache{data: map[string]string{}}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusOK, `[{"name":"Prague","local_names":{"cs":"Praha"}}]`)
	}, func(o *Options) { o.NameCache = cache })

	for i := 0; i < 3; i++ {
		got, ok, err := c.LocalName(context.Background(), 50.08, 14.42, "cs")
		if err != nil || !ok || got != "Praha" {
			t.Fatalf("LocalName() = (%q, %v, %v)", got, ok, err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}
	if cache.data[nameCacheKey(50.08, 14.42, "cs")] != "Praha" {
		t.Errorf("cache = %v", cache.data)
	}
}
