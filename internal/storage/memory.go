package storage

import "sync"

// MemoryStore - хранилище в памяти для тестов
type MemoryStore struct {
	mu     sync.Mutex
	tables map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tables: make(map[string][]byte),
	}
}

func (s *MemoryStore) Load(table string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[table]
	if !ok {
		return []byte("[]"), nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Save(table string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tables[table] = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStore) Update(table string, fn func(data []byte) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.tables[table]
	if !ok {
		data = []byte("[]")
	}

	updated, err := fn(data)
	if err != nil {
		return err
	}

	s.tables[table] = append([]byte(nil), updated...)
	return nil
}
