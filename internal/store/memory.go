package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hazadus/go-calltune/internal/sound"
)

// MemStore хранит коллекцию как один блоб в памяти.
// Повторяет контракт key-value хранилища без понятия каталога:
// операции с файлами ничего не делают, URI считаются непрозрачными.
type MemStore struct {
	blob []byte
}

// NewMemStore создает пустое хранилище в памяти
func NewMemStore() *MemStore {
	return &MemStore{}
}

// ReadAll читает коллекцию из сохраненного блоба
func (s *MemStore) ReadAll() ([]sound.Record, error) {
	if len(s.blob) == 0 {
		return []sound.Record{}, nil
	}
	var records []sound.Record
	if err := json.Unmarshal(s.blob, &records); err != nil {
		return nil, fmt.Errorf("ошибка разбора данных: %w", err)
	}
	return records, nil
}

// WriteAll перезаписывает блоб коллекции целиком
func (s *MemStore) WriteAll(records []sound.Record) error {
	if records == nil {
		records = []sound.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	s.blob = data
	return nil
}

// CopyAsset ничего не копирует: URI остается прежним
func (s *MemStore) CopyAsset(_ context.Context, sourceURI string) (string, error) {
	return sourceURI, nil
}

// DeleteAsset ничего не удаляет
func (s *MemStore) DeleteAsset(_ context.Context, _ string) error {
	return nil
}

// Owns всегда false: хранилище не владеет файлами
func (s *MemStore) Owns(_ string) bool {
	return false
}
