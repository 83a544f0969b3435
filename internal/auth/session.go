package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// StoredSession - сессия, сохраненная локально вместе со статусом
// подтверждения для офлайн-доступа
type StoredSession struct {
	Session      Session `json:"session"`
	LastVerified string  `json:"lastVerified"`
	IsVerified   bool    `json:"isVerified"`
}

// SessionStore хранит сессию пользователя в локальном JSON-файле
type SessionStore struct {
	path string
}

// NewSessionStore создает хранилище сессии по указанному пути
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Store сохраняет сессию вместе со статусом подтверждения
func (s *SessionStore) Store(session Session, isVerified bool) error {
	stored := StoredSession{
		Session:      session,
		LastVerified: time.Now().UTC().Format(time.RFC3339),
		IsVerified:   isVerified,
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("ошибка сериализации сессии: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("ошибка создания каталога сессии: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("ошибка записи сессии: %w", err)
	}
	return nil
}

// Load читает сохраненную сессию; nil без ошибки, если сессии нет
func (s *SessionStore) Load() (*StoredSession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка чтения сессии: %w", err)
	}

	var stored StoredSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("ошибка разбора сессии: %w", err)
	}
	return &stored, nil
}

// Clear удаляет сохраненную сессию
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления сессии: %w", err)
	}
	return nil
}

// CheckAuth сверяет локальную и удаленную сессии. Подтвержденная локальная
// сессия принимается без обращения к бэкенду; иначе статус подтверждения
// запрашивается удаленно и кэшируется. При недоступности бэкенда
// используются сохраненные данные.
func CheckAuth(ctx context.Context, store *SessionStore, client *Client) (bool, *Session) {
	stored, err := store.Load()
	if err != nil {
		log.Printf("Ошибка чтения локальной сессии: %v", err)
		stored = nil
	}

	// Подтвержденная локальная сессия - достаточно для офлайн-доступа
	if stored != nil && stored.IsVerified {
		session := stored.Session
		return true, &session
	}

	if stored == nil {
		return false, nil
	}

	// Проверяем статус подтверждения удаленно
	verified, err := client.IsVerified(ctx, stored.Session.AccessToken, stored.Session.UserID)
	if err != nil {
		// Бэкенд недоступен - используем сохраненные данные
		log.Printf("Ошибка удаленной проверки сессии: %v", err)
		session := stored.Session
		return stored.IsVerified, &session
	}

	if verified {
		// Кэшируем подтверждение для офлайн-доступа
		if err := store.Store(stored.Session, true); err != nil {
			log.Printf("Ошибка сохранения сессии: %v", err)
		}
		session := stored.Session
		return true, &session
	}

	return false, nil
}
