package errors

import (
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := NewHTTPStatus(503, "https://example.org/")
	want := "http_status error: unexpected status code 503 (url: https://example.org/)"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	err = NewStructure("archive widget not found", "")
	want = "structure error: archive widget not found"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}
}

func TestClassification(t *testing.T) {
	if !IsStructure(NewStructure("missing id", "")) {
		t.Error("Expected structure error to be classified as structure")
	}
	if IsStructure(NewNetwork("timeout", "")) {
		t.Error("Expected network error not to be classified as structure")
	}

	if !IsFetch(NewNetwork("timeout", "")) {
		t.Error("Expected network error to be classified as fetch")
	}
	if !IsFetch(NewHTTPStatus(404, "")) {
		t.Error("Expected HTTP status error to be classified as fetch")
	}
	if IsFetch(NewStructure("missing id", "")) {
		t.Error("Expected structure error not to be classified as fetch")
	}
}

func TestClassificationWrapped(t *testing.T) {
	wrapped := fmt.Errorf("crawl failed: %w", NewHTTPStatus(500, "https://example.org/"))
	if !IsFetch(wrapped) {
		t.Error("Expected wrapped fetch error to be classified as fetch")
	}

	if IsFetch(fmt.Errorf("plain error")) {
		t.Error("Expected plain error not to be classified as fetch")
	}
}
