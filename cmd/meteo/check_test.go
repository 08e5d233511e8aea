package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestCheckCommand(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{args: []string{"check", "New", "York"}},
		{args: []string{"check", "12345"}, wantErr: "numeric"},
		{args: []string{"check", "Европа"}, wantErr: "too_general"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(tt.args)

		err := rootCmd.Execute()
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("%v: unexpected error %v", tt.args, err)
			}
			if !strings.Contains(out.String(), `"New York" looks like a city name`) {
				t.Errorf("%v: output = %q", tt.args, out.String())
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("%v: error = %v, want %s", tt.args, err, tt.wantErr)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out.String(), "meteo ") {
		t.Errorf("output = %q", out.String())
	}
}
