package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore хранит каждую таблицу как один JSON файл <table>.json.
// Мьютекс на таблицу сериализует циклы read-modify-write, иначе
// два конкурентных писателя затирают записи друг друга.
type JSONStore struct {
	dir string

	mu     sync.Mutex
	tables map[string]*sync.Mutex
}

// NewJSONStore создает файловое хранилище в каталоге dir
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}

	return &JSONStore{
		dir:    dir,
		tables: make(map[string]*sync.Mutex),
	}, nil
}

// tableLock возвращает мьютекс таблицы, создавая его при первом обращении
func (s *JSONStore) tableLock(table string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.tables[table]
	if !ok {
		lock = &sync.Mutex{}
		s.tables[table] = lock
	}
	return lock
}

func (s *JSONStore) path(table string) string {
	return filepath.Join(s.dir, table+".json")
}

// Load читает таблицу целиком; отсутствующий файл - пустая таблица
func (s *JSONStore) Load(table string) ([]byte, error) {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	return s.read(table)
}

// Save перезаписывает таблицу целиком
func (s *JSONStore) Save(table string, data []byte) error {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	return s.write(table, data)
}

// Update выполняет read-modify-write под блокировкой таблицы
func (s *JSONStore) Update(table string, fn func(data []byte) ([]byte, error)) error {
	lock := s.tableLock(table)
	lock.Lock()
	defer lock.Unlock()

	data, err := s.read(table)
	if err != nil {
		return err
	}

	updated, err := fn(data)
	if err != nil {
		return err
	}

	return s.write(table, updated)
}

func (s *JSONStore) read(table string) ([]byte, error) {
	data, err := os.ReadFile(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("[]"), nil
		}
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	if len(data) == 0 {
		return []byte("[]"), nil
	}
	return data, nil
}

func (s *JSONStore) write(table string, data []byte) error {
	// Запись через временный файл, чтобы упавший процесс
	// не оставил таблицу записанной наполовину
	tmp := s.path(table) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write table %s: %w", table, err)
	}
	if err := os.Rename(tmp, s.path(table)); err != nil {
		return fmt.Errorf("failed to replace table %s: %w", table, err)
	}
	return nil
}
