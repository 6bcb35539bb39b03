package prefs

// MemoryStore is an in-process preference store. Nothing survives a
// restart; it serves tests and entities that opt out of persistence.
type MemoryStore struct {
	values map[uint32][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[uint32][]byte)}
}

// Load reads the blob stored under key; nil when absent.
func (s *MemoryStore) Load(key uint32) ([]byte, error) {
	value, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	cpy := make([]byte, len(value))
	copy(cpy, value)
	return cpy, nil
}

// Save writes the blob under key, replacing any previous value.
func (s *MemoryStore) Save(key uint32, value []byte) error {
	cpy := make([]byte, len(value))
	copy(cpy, value)
	s.values[key] = cpy
	return nil
}

// Delete removes the blob stored under key.
func (s *MemoryStore) Delete(key uint32) error {
	delete(s.values, key)
	return nil
}

// Len returns the number of stored preferences.
func (s *MemoryStore) Len() int {
	return len(s.values)
}
