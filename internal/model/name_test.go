package model

import (
	"strings"
	"testing"
)

func TestParseSubscriberName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", "Sanju Baba", false},
		{"empty", "", true},
		{"whitespace_only", "   \t  ", true},
		{"256_graphemes", strings.Repeat("ते", 256), false},
		{"257_graphemes", strings.Repeat("ते", 257), true},
		{"256_ascii", strings.Repeat("a", 256), false},
		{"257_ascii", strings.Repeat("a", 257), true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseSubscriberName(test.raw)
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseSubscriberName(%q) error = %v, wantErr %v", test.raw, err, test.wantErr)
			}
		})
	}
}

func TestParseSubscriberNameForbiddenChars(t *testing.T) {
	for _, c := range forbiddenNameChars {
		raw := "Sanju " + string(c) + " Baba"
		if _, err := ParseSubscriberName(raw); err == nil {
			t.Errorf("ParseSubscriberName(%q) succeeded, want error", raw)
		}
	}
}

func TestParseSubscriberNameKeepsValue(t *testing.T) {
	name, err := ParseSubscriberName("Sanjay Sharma")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name.String() != "Sanjay Sharma" {
		t.Errorf("got %q, want %q", name.String(), "Sanjay Sharma")
	}
}

func TestParseSubscriberNameErrorType(t *testing.T) {
	_, err := ParseSubscriberName("")
	vErr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if vErr.Field != "name" {
		t.Errorf("expected field name, got %q", vErr.Field)
	}
}
