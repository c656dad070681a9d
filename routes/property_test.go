package routes

import (
	"reflect"
	"testing"
)

func TestPropertyImageURLs(t *testing.T) {
	urls := propertyImageURLs(`["https://img.example/a.jpg","https://img.example/b.jpg"]`)
	want := []string{"https://img.example/a.jpg", "https://img.example/b.jpg"}
	if !reflect.DeepEqual(urls, want) {
		t.Fatalf("unexpected urls: %v", urls)
	}

	if got := propertyImageURLs(""); got != nil {
		t.Fatalf("empty column should decode to nil, got %v", got)
	}
	if got := propertyImageURLs("not json"); got != nil {
		t.Fatalf("malformed column should decode to nil, got %v", got)
	}
}

func TestRemovedImages(t *testing.T) {
	old := []string{"a", "b", "c"}

	removed := removedImages(old, []string{"b"})
	if !reflect.DeepEqual(removed, []string{"a", "c"}) {
		t.Fatalf("expected a and c removed, got %v", removed)
	}

	if got := removedImages(old, old); got != nil {
		t.Fatalf("identical sets remove nothing, got %v", got)
	}
	if got := removedImages(nil, []string{"a"}); got != nil {
		t.Fatalf("nothing to remove from an empty set, got %v", got)
	}

	// a full replacement drops every old image
	removed = removedImages(old, []string{"x", "y"})
	if !reflect.DeepEqual(removed, old) {
		t.Fatalf("expected all old images removed, got %v", removed)
	}
}
