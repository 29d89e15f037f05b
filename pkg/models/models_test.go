package models

import (
	"testing"

	"blogdl/pkg/errors"
)

func TestPaddedID(t *testing.T) {
	post := Post{ID: "post-42", Href: "https://example.org/2023/10/some-post/"}

	id, err := post.PaddedID()
	if err != nil {
		t.Fatalf("Failed to derive padded ID: %v", err)
	}
	if id != "0000000042" {
		t.Errorf("Expected padded ID 0000000042, got %s", id)
	}
}

func TestPaddedIDLargeNumber(t *testing.T) {
	post := Post{ID: "post-1234567890"}

	id, err := post.PaddedID()
	if err != nil {
		t.Fatalf("Failed to derive padded ID: %v", err)
	}
	if id != "1234567890" {
		t.Errorf("Expected padded ID 1234567890, got %s", id)
	}
}

func TestPaddedIDMalformed(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"no separator", "post42"},
		{"too many tokens", "post-extra-42"},
		{"non-numeric", "post-abc"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := Post{ID: tt.id}
			if _, err := post.PaddedID(); err == nil {
				t.Errorf("Expected error for post ID %q", tt.id)
			} else if !errors.IsStructure(err) {
				t.Errorf("Expected structure error for post ID %q, got %v", tt.id, err)
			}
		})
	}
}
