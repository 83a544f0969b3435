// Package library содержит логику управления коллекцией звуков
package library

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/store"
)

// Session описывает операции аудиосессии, нужные менеджеру библиотеки
type Session interface {
	// UnloadIf выгружает воспроизведение звука с данным id, если он загружен
	UnloadIf(id string) bool
	// RefreshCurrent обновляет метаданные текущего звука без прерывания воспроизведения
	RefreshCurrent(rec sound.Record)
}

// Manager владеет коллекцией записей в памяти и зеркалирует ее в хранилище.
// Каждая мутация перезаписывает сохраненную коллекцию целиком.
// Модель однопоточная: предполагается единственный пишущий.
type Manager struct {
	store   store.Store
	session Session
	sounds  []sound.Record
}

// NewManager создает менеджер, читая сохраненную коллекцию из хранилища
func NewManager(st store.Store, session Session) (*Manager, error) {
	records, err := st.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения библиотеки: %w", err)
	}
	return &Manager{
		store:   st,
		session: session,
		sounds:  records,
	}, nil
}

// List возвращает все звуки в порядке добавления
func (m *Manager) List() []sound.Record {
	return m.sounds
}

// ByID возвращает звук по id
func (m *Manager) ByID(id string) (*sound.Record, error) {
	for i := range m.sounds {
		if m.sounds[i].ID == id {
			return &m.sounds[i], nil
		}
	}
	return nil, fmt.Errorf("звука с id %q не найдено", id)
}

// Add добавляет звук в коллекцию. Аудиофайл должен существовать; если он
// лежит вне управляемого хранилища, он копируется туда, и URI записи
// переписывается до вставки. Удаленные http(s) URI остаются как есть.
func (m *Manager) Add(ctx context.Context, rec sound.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("у записи отсутствует id")
	}
	if _, err := m.ByID(rec.ID); err == nil {
		return fmt.Errorf("звук с id %q уже есть в библиотеке", rec.ID)
	}

	if !m.store.Owns(rec.URI) && !isRemote(rec.URI) {
		newURI, err := m.store.CopyAsset(ctx, rec.URI)
		if err != nil {
			return fmt.Errorf("ошибка копирования аудиофайла: %w", err)
		}
		rec.URI = newURI
	}

	m.sounds = append(m.sounds, rec)
	return m.save()
}

// Delete удаляет звук по id. Отсутствующий id не является ошибкой.
// Если звук сейчас загружен в сессию, воспроизведение сначала
// останавливается и хэндл выгружается. Аудиофайл удаляется, только если
// принадлежит управляемому хранилищу; ошибка удаления файла логируется,
// но не мешает удалению метаданных.
func (m *Manager) Delete(ctx context.Context, id string) error {
	index := -1
	for i := range m.sounds {
		if m.sounds[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil
	}
	rec := m.sounds[index]

	// Сначала гасим воспроизведение, чтобы не осталось хэндла на удаленный файл
	if m.session != nil {
		m.session.UnloadIf(id)
	}

	if m.store.Owns(rec.URI) {
		if err := m.store.DeleteAsset(ctx, rec.URI); err != nil {
			log.Printf("Не удалось удалить аудиофайл %s: %v", rec.URI, err)
		}
	}

	m.sounds = append(m.sounds[:index], m.sounds[index+1:]...)
	return m.save()
}

// ToggleFavorite переключает флаг избранного. Отсутствующий id - no-op.
func (m *Manager) ToggleFavorite(id string) error {
	for i := range m.sounds {
		if m.sounds[i].ID == id {
			m.sounds[i].Favorite = !m.sounds[i].Favorite
			return m.save()
		}
	}
	return nil
}

// Update целиком заменяет запись с совпадающим id. Если звук сейчас
// воспроизводится, метаданные в сессии обновляются без прерывания.
func (m *Manager) Update(rec sound.Record) error {
	for i := range m.sounds {
		if m.sounds[i].ID == rec.ID {
			m.sounds[i] = rec
			if m.session != nil {
				m.session.RefreshCurrent(rec)
			}
			return m.save()
		}
	}
	return fmt.Errorf("звука с id %q не найдено", rec.ID)
}

// save перезаписывает сохраненную коллекцию целиком
func (m *Manager) save() error {
	if err := m.store.WriteAll(m.sounds); err != nil {
		return fmt.Errorf("ошибка сохранения библиотеки: %w", err)
	}
	return nil
}

func isRemote(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}
