package prefs

import "testing"

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	if value, err := store.Load(1); err != nil || value != nil {
		t.Errorf("Load() on empty store = (%v, %v), want (nil, nil)", value, err)
	}

	if err := store.Save(1, []byte{1, 2, 3}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.Load(1)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Load() = %v, want [1 2 3]", got)
	}

	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}

	if err := store.Delete(1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len() after Delete = %d, want 0", store.Len())
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	store := NewMemoryStore()

	original := []byte{1, 2, 3}
	if err := store.Save(1, original); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Mutating the caller's slice after Save must not change the
	// stored value, and mutating a loaded slice must not either.
	original[0] = 9
	loaded, _ := store.Load(1)
	if loaded[0] != 1 {
		t.Error("Save() did not copy the value")
	}

	loaded[1] = 9
	again, _ := store.Load(1)
	if again[1] != 2 {
		t.Error("Load() did not copy the value")
	}
}
