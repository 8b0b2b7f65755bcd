package storage

import "fmt"

// Имена логических таблиц
const (
	TableUsers = "users"
	TableCars  = "cars"
)

// Store defines the interface for whole-table record storage.
// Каждая таблица хранится целиком: чтение и запись всегда полные.
type Store interface {
	// Load возвращает содержимое таблицы как JSON массив.
	// Отсутствующая таблица читается как пустой массив.
	Load(table string) ([]byte, error)

	// Save перезаписывает таблицу целиком
	Save(table string, data []byte) error

	// Update выполняет атомарный цикл read-modify-write над таблицей.
	// Блокировка таблицы удерживается на весь цикл, поэтому два
	// конкурентных Update не могут потерять записи друг друга.
	Update(table string, fn func(data []byte) ([]byte, error)) error
}

// Config holds storage configuration
type Config struct {
	Type    string // jsonfile, memory
	DataDir string // каталог с <table>.json файлами
}

// NewStore creates a new store instance based on configuration
func NewStore(cfg Config) (Store, error) {
	switch cfg.Type {
	case "jsonfile":
		return NewJSONStore(cfg.DataDir)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
