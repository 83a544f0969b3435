// Package audio определяет контракт платформенного аудиодекодера
package audio

import (
	"context"
	"time"
)

// Options задает начальные параметры создаваемого хэндла
type Options struct {
	AutoPlay     bool    // Начать воспроизведение сразу после загрузки
	Looping      bool    // Зациклить воспроизведение
	CorrectPitch bool    // Коррекция высоты тона (поддерживается не всеми бэкендами)
	Volume       float64 // Громкость, 1.0 - без изменений; 0 трактуется как 1.0
}

// Status описывает моментальное состояние загруженного хэндла
type Status struct {
	Position     time.Duration
	Duration     time.Duration
	IsPlaying    bool
	IsLooping    bool
	JustFinished bool // Трек только что доиграл до конца (сбрасывается при чтении)
}

// Handle - загруженный декодированный аудиоресурс.
// Все операции асинхронны с точки зрения вызывающего и могут вернуть ошибку.
type Handle interface {
	Status() (Status, error)
	Play() error
	Pause() error
	Stop() error
	Seek(position time.Duration) error
	SetLooping(looping bool) error
	Unload() error
}

// Opener создает хэндлы из URI (локальный путь, file:// или http(s)://)
type Opener interface {
	Open(ctx context.Context, uri string, opts Options) (Handle, error)
}
