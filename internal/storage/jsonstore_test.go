package storage

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONStore_LoadMissingTable(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	assert.NoError(t, err)

	data, err := store.Load("users")
	assert.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestJSONStore_SaveLoadRoundtrip(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	assert.NoError(t, err)

	payload := []byte(`[{"id":1,"category":"sedan"}]`)
	assert.NoError(t, store.Save("cars", payload))

	data, err := store.Load("cars")
	assert.NoError(t, err)
	assert.JSONEq(t, string(payload), string(data))
}

// Два конкурентных Update не должны терять записи друг друга
func TestJSONStore_UpdateIsSerialized(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	assert.NoError(t, err)

	const writers = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := store.Update("counters", func(data []byte) ([]byte, error) {
				var values []int
				if err := json.Unmarshal(data, &values); err != nil {
					return nil, err
				}
				values = append(values, n)
				return json.Marshal(values)
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	data, err := store.Load("counters")
	assert.NoError(t, err)

	var values []int
	assert.NoError(t, json.Unmarshal(data, &values))
	assert.Len(t, values, writers)
}

func TestJSONStore_UpdateErrorKeepsTable(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	assert.NoError(t, err)

	assert.NoError(t, store.Save("cars", []byte(`[{"id":1}]`)))

	err = store.Update("cars", func(data []byte) ([]byte, error) {
		return nil, assert.AnError
	})
	assert.Error(t, err)

	data, err := store.Load("cars")
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))
}

func TestNewStore_UnsupportedType(t *testing.T) {
	_, err := NewStore(Config{Type: "postgres"})
	assert.Error(t, err)
}

func TestMemoryStore_Update(t *testing.T) {
	store := NewMemoryStore()

	err := store.Update("users", func(data []byte) ([]byte, error) {
		assert.JSONEq(t, "[]", string(data))
		return []byte(`[{"id":1}]`), nil
	})
	assert.NoError(t, err)

	data, err := store.Load("users")
	assert.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(data))
}
