package memory

import (
	"strings"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := New()

	content := []byte("pdf bytes")
	handle, err := store.Materialize("https://example.com/pattern.pdf", content)
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if !strings.HasPrefix(handle, "mem://") {
		t.Fatalf("handle = %q, want mem:// prefix", handle)
	}

	// The store keeps its own copy.
	content[0] = 'X'
	got, ok := store.Bytes(handle)
	if !ok {
		t.Fatal("Bytes() should find a live handle")
	}
	if string(got) != "pdf bytes" {
		t.Fatalf("content = %q, want %q", got, "pdf bytes")
	}

	if store.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", store.Len())
	}
	if err := store.Release(handle); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, ok := store.Bytes(handle); ok {
		t.Fatal("Bytes() should miss after Release")
	}
	if store.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", store.Len())
	}

	// Releasing an unknown handle is a no-op.
	if err := store.Release("mem://nope-1"); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
}

func TestStoreHandlesAreUnique(t *testing.T) {
	t.Parallel()

	store := New()
	key := "https://example.com/pattern.pdf"

	first, err := store.Materialize(key, []byte("one"))
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	second, err := store.Materialize(key, []byte("two"))
	if err != nil {
		t.Fatalf("Materialize() error = %v", err)
	}
	if first == second {
		t.Fatalf("same handle %q returned twice", first)
	}
}
