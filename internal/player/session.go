// Package player содержит аудиосессию - управление единственным загруженным звуком
package player

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hazadus/go-calltune/internal/audio"
	"github.com/hazadus/go-calltune/internal/sound"
)

// DefaultPollInterval - период опроса состояния декодера
const DefaultPollInterval = 500 * time.Millisecond

// State описывает состояние аудиосессии
type State int

// Состояния сессии
const (
	// StateIdle - хэндл не загружен
	StateIdle State = iota
	// StateLoading - идет загрузка хэндла
	StateLoading
	// StatePlaying - хэндл загружен, позиция продвигается
	StatePlaying
	// StatePaused - хэндл загружен, позиция заморожена
	StatePaused
)

// Status - снимок состояния воспроизведения для потребителей
type Status struct {
	SoundID   string
	Position  time.Duration
	Duration  time.Duration
	IsPlaying bool
	IsLooping bool
}

// Session владеет не более чем одним загруженным хэндлом декодера.
// Пока хэндл загружен, периодическая задача опрашивает его состояние
// и публикует снимки в канал обновлений.
type Session struct {
	opener       audio.Opener
	pollInterval time.Duration

	statusChan chan Status

	mutex    sync.RWMutex
	state    State
	handle   audio.Handle
	current  *sound.Record
	looping  bool
	pollStop context.CancelFunc
	closed   bool
}

// NewSession создает новую сессию. Зацикливание по умолчанию включено,
// как в исходном поведении библиотеки манковых звуков.
func NewSession(opener audio.Opener) *Session {
	return &Session{
		opener:       opener,
		pollInterval: DefaultPollInterval,
		statusChan:   make(chan Status, 1),
		state:        StateIdle,
		looping:      true,
	}
}

// SetPollInterval меняет период опроса (до загрузки хэндла)
func (s *Session) SetPollInterval(interval time.Duration) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if interval > 0 {
		s.pollInterval = interval
	}
}

// Updates возвращает канал снимков состояния воспроизведения
func (s *Session) Updates() <-chan Status {
	return s.statusChan
}

// Load выгружает текущий хэндл (если есть) и загружает новый звук.
// Загруженный звук сразу начинает воспроизводиться. При ошибке загрузки
// сессия остается в состоянии Idle, ошибка возвращается вызывающему.
func (s *Session) Load(ctx context.Context, rec sound.Record) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Всегда не более одного хэндла: сначала выгружаем предыдущий
	s.unloadLocked()

	s.state = StateLoading
	handle, err := s.opener.Open(ctx, rec.URI, audio.Options{
		AutoPlay: true,
		Looping:  s.looping,
	})
	if err != nil {
		s.state = StateIdle
		return fmt.Errorf("ошибка загрузки звука %q: %w", rec.Name, err)
	}

	current := rec
	s.handle = handle
	s.current = &current
	s.state = StatePlaying

	s.startPollingLocked()
	s.publishLocked()
	return nil
}

// Play возобновляет воспроизведение. Ничего не делает без загруженного хэндла.
func (s *Session) Play() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.handle == nil {
		return nil
	}
	if err := s.handle.Play(); err != nil {
		return fmt.Errorf("ошибка воспроизведения: %w", err)
	}
	s.state = StatePlaying
	s.publishLocked()
	return nil
}

// Pause приостанавливает воспроизведение. Ничего не делает без загруженного хэндла.
func (s *Session) Pause() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.handle == nil {
		return nil
	}
	if err := s.handle.Pause(); err != nil {
		return fmt.Errorf("ошибка паузы: %w", err)
	}
	s.state = StatePaused
	s.publishLocked()
	return nil
}

// Stop останавливает воспроизведение и сбрасывает позицию в 0.
// Хэндл остается загруженным.
func (s *Session) Stop() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.handle == nil {
		return nil
	}
	if err := s.handle.Stop(); err != nil {
		return fmt.Errorf("ошибка остановки: %w", err)
	}
	s.state = StatePaused
	s.publishLocked()
	return nil
}

// Seek перематывает на указанную позицию, ограничивая ее
// диапазоном [0, длительность]. Ничего не делает без загруженного хэндла.
func (s *Session) Seek(position time.Duration) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.handle == nil {
		return nil
	}

	if position < 0 {
		position = 0
	}
	if st, err := s.handle.Status(); err == nil && st.Duration > 0 && position > st.Duration {
		position = st.Duration
	}

	if err := s.handle.Seek(position); err != nil {
		return fmt.Errorf("ошибка перемотки: %w", err)
	}
	s.publishLocked()
	return nil
}

// ToggleLooping переключает зацикливание на активном хэндле независимо
// от паузы. Ничего не делает без загруженного хэндла.
func (s *Session) ToggleLooping() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.handle == nil {
		return nil
	}
	next := !s.looping
	if err := s.handle.SetLooping(next); err != nil {
		return fmt.Errorf("ошибка переключения зацикливания: %w", err)
	}
	s.looping = next
	s.publishLocked()
	return nil
}

// Unload выгружает текущий хэндл и переводит сессию в Idle
func (s *Session) Unload() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.unloadLocked()
}

// UnloadIf выгружает хэндл, только если сейчас загружен звук с данным id.
// Возвращает true, если выгрузка произошла.
func (s *Session) UnloadIf(id string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current == nil || s.current.ID != id {
		return false
	}
	s.unloadLocked()
	return true
}

// RefreshCurrent обновляет метаданные текущего звука, не прерывая
// воспроизведение. Ничего не делает, если загружен другой звук.
func (s *Session) RefreshCurrent(rec sound.Record) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.current == nil || s.current.ID != rec.ID {
		return
	}
	current := rec
	s.current = &current
}

// CurrentSound возвращает копию метаданных текущего звука или nil
func (s *Session) CurrentSound() *sound.Record {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

// CurrentID возвращает id текущего звука; пустая строка в состоянии Idle
func (s *Session) CurrentID() string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// State возвращает текущее состояние сессии
func (s *Session) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.state
}

// IsPlaying возвращает true, если звук воспроизводится
func (s *Session) IsPlaying() bool {
	return s.State() == StatePlaying
}

// IsLooping возвращает текущее значение флага зацикливания
func (s *Session) IsLooping() bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.looping
}

// Status возвращает моментальный снимок состояния воспроизведения
func (s *Session) Status() Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.snapshotLocked()
}

// Close выгружает хэндл и закрывает канал обновлений
func (s *Session) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.closed {
		return nil
	}
	s.unloadLocked()
	s.closed = true
	close(s.statusChan)
	return nil
}

// unloadLocked останавливает опрос и выгружает хэндл (вызывается под мьютексом)
func (s *Session) unloadLocked() {
	if s.pollStop != nil {
		s.pollStop()
		s.pollStop = nil
	}
	if s.handle != nil {
		if err := s.handle.Unload(); err != nil {
			log.Printf("Ошибка выгрузки хэндла: %v", err)
		}
		s.handle = nil
	}
	s.current = nil
	s.state = StateIdle
}

// startPollingLocked запускает периодический опрос декодера.
// Задача живет, только пока загружен хэндл, и отменяется при выгрузке.
func (s *Session) startPollingLocked() {
	ctx, cancel := context.WithCancel(context.Background())
	s.pollStop = cancel
	// Интервал снимается под мьютексом: SetPollInterval может изменить
	// его параллельно с работающим опросом
	go s.poll(ctx, s.handle, s.pollInterval)
}

func (s *Session) poll(ctx context.Context, handle audio.Handle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st, err := handle.Status()
			if err != nil {
				// Хэндл выгружен - опрос больше не нужен
				return
			}

			s.mutex.Lock()
			if s.handle != handle {
				s.mutex.Unlock()
				return
			}

			// Естественное завершение без зацикливания: пауза на позиции 0,
			// звук остается загруженным для повторного запуска
			if st.JustFinished && !st.IsLooping {
				if err := handle.Stop(); err != nil {
					log.Printf("Ошибка остановки после завершения: %v", err)
				}
				s.state = StatePaused
			} else if st.IsPlaying {
				s.state = StatePlaying
			} else if s.state == StatePlaying {
				s.state = StatePaused
			}

			s.publishLocked()
			s.mutex.Unlock()
		}
	}
}

// snapshotLocked строит снимок состояния (вызывается под мьютексом)
func (s *Session) snapshotLocked() Status {
	st := Status{IsLooping: s.looping}
	if s.current != nil {
		st.SoundID = s.current.ID
	}
	if s.handle != nil {
		if hs, err := s.handle.Status(); err == nil {
			st.Position = hs.Position
			st.Duration = hs.Duration
			st.IsPlaying = hs.IsPlaying
			st.IsLooping = hs.IsLooping
		}
	}
	return st
}

// publishLocked отправляет снимок в канал обновлений без блокировки.
// Если потребитель не успевает, обновление пропускается.
func (s *Session) publishLocked() {
	if s.closed {
		return
	}
	select {
	case s.statusChan <- s.snapshotLocked():
	default:
	}
}
