package seed

import "testing"

func int64Ptr(v int64) *int64 { return &v }

func TestMapCities(t *testing.T) {
	file := &File{Cities: []City{
		{ID: int64Ptr(2643743), Label: "London, GB"},
		{Label: " Lviv "},
		{Label: "   "},
		{ID: int64Ptr(1), Label: ""},
	}}

	entries, err := MapCities(file)
	if err != nil {
		t.Fatalf("MapCities() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("MapCities() returned %d entries, want 2", len(entries))
	}
	if e := entries[0]; !e.HasID() || *e.ID != 2643743 || e.Label != "London, GB" {
		t.Errorf("entries[0] = %+v", e)
	}
	if e := entries[1]; e.HasID() || e.Label != "Lviv" {
		t.Errorf("entries[1] = %+v, want trimmed label only", e)
	}
}

func TestMapCitiesEmpty(t *testing.T) {
	tests := []struct {
		name string
		file *File
	}{
		{name: "nil file", file: nil},
		{name: "no cities", file: &File{}},
		{name: "only blank labels", file: &File{Cities: []City{{Label: ""}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := MapCities(tt.file); err == nil {
				t.Error("MapCities() should return an error")
			}
		})
	}
}
