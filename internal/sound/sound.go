// Package sound содержит модель данных звуковой библиотеки
package sound

import (
	"fmt"
	"time"
)

// Category определяет категорию манкового звука
type Category string

// Допустимые категории звуков
const (
	CategoryDistress Category = "Distress"
	CategoryPredator Category = "Predator"
	CategoryPrey     Category = "Prey"
	CategoryOther    Category = "Other"
)

// Categories возвращает список всех допустимых категорий
func Categories() []Category {
	return []Category{CategoryDistress, CategoryPredator, CategoryPrey, CategoryOther}
}

// ParseCategory разбирает строку в категорию
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("неизвестная категория: %q (допустимые: Distress, Predator, Prey, Other)", s)
}

// Record хранит метаданные одного звука библиотеки.
// Имена JSON-полей фиксированы форматом файла sounds.json.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    float64  `json:"duration"` // Длительность в секундах
	URI         string   `json:"uri"`      // Расположение аудиофайла
	Size        int64    `json:"size"`     // Размер файла в байтах
	DateAdded   string   `json:"dateAdded"`
	Category    Category `json:"category"`
	Favorite    bool     `json:"favorite"`
	Tags        []string `json:"tags"`
}

// NewID генерирует идентификатор записи на основе текущего времени
func NewID() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}

// Now возвращает текущий момент в формате ISO для поля DateAdded
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
