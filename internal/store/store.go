// Package store содержит адаптеры постоянного хранения звуковой библиотеки
package store

import (
	"context"

	"github.com/hazadus/go-calltune/internal/sound"
)

// Store описывает хранилище коллекции записей и аудиофайлов.
// Коллекция всегда записывается целиком, без слияния и транзакций.
type Store interface {
	// ReadAll читает всю коллекцию; пустая коллекция, если ничего не сохранено
	ReadAll() ([]sound.Record, error)
	// WriteAll перезаписывает всю коллекцию
	WriteAll(records []sound.Record) error
	// CopyAsset копирует аудиофайл в управляемое хранилище и возвращает новый URI
	CopyAsset(ctx context.Context, sourceURI string) (string, error)
	// DeleteAsset удаляет аудиофайл из хранилища
	DeleteAsset(ctx context.Context, uri string) error
	// Owns сообщает, принадлежит ли файл по данному URI управляемому хранилищу
	Owns(uri string) bool
}
