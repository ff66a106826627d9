// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("  Alice  \nlast line without newline"), &out)

	got, err := s.Ask("Name")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if got != "Alice" {
		t.Errorf("Ask() = %q, want Alice", got)
	}
	if !strings.Contains(out.String(), "Name: ") {
		t.Errorf("prompt not printed: %q", out.String())
	}

	got, err = s.Ask("Next")
	if err != nil || got != "last line without newline" {
		t.Errorf("Ask() = %q, %v", got, err)
	}

	if _, err := s.Ask("More"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed at end of input, got %v", err)
	}
}

func TestChoose(t *testing.T) {
	options := []string{"Male", "Female", "Other"}

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"by number", "2\n", 1},
		{"by text", "other\n", 2},
		{"blank", "\n", -1},
		{"retry after invalid", "7\nx\n1\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := New(strings.NewReader(tt.input), &out)

			got, err := s.Choose("Sex", options)
			if err != nil {
				t.Fatalf("Choose() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Choose() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMenu_SkipsBlank(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader("\n\n3\n"), &out)

	got, err := s.Menu("Choice", []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Menu() error = %v", err)
	}
	if got != 2 {
		t.Errorf("Menu() = %d, want 2", got)
	}
}

func TestMenu_Closed(t *testing.T) {
	s := New(strings.NewReader(""), &bytes.Buffer{})

	if _, err := s.Menu("Choice", []string{"a"}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestNotify(t *testing.T) {
	var out bytes.Buffer
	s := New(strings.NewReader(""), &out)

	s.Notify(LevelError, "JSON Error", "viewers_data.json is malformed")
	if got := out.String(); got != "[ERROR] JSON Error: viewers_data.json is malformed\n" {
		t.Errorf("Notify() wrote %q", got)
	}
}
