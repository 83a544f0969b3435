// Package tui содержит тесты для TUI компонентов
package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-calltune/internal/audio"
	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/store"
	"github.com/hazadus/go-calltune/internal/tui/app"
	tuiPlayer "github.com/hazadus/go-calltune/internal/tui/player"
	"github.com/hazadus/go-calltune/internal/tui/soundlist"
)

// newTestLibrary создает библиотеку в памяти с одним звуком
func newTestLibrary(t *testing.T, session *player.Session) *library.Manager {
	t.Helper()

	memStore := store.NewMemStore()
	if err := memStore.WriteAll([]sound.Record{
		{
			ID:       "1",
			Name:     "Test Sound",
			Category: sound.CategoryDistress,
			Duration: 30,
			URI:      "https://example.com/test.mp3",
		},
	}); err != nil {
		t.Fatalf("Ошибка записи тестовых данных: %v", err)
	}

	lib, err := library.NewManager(memStore, session)
	if err != nil {
		t.Fatalf("Ошибка создания менеджера библиотеки: %v", err)
	}
	return lib
}

func TestMainModelRouting(t *testing.T) {
	session := player.NewSession(audio.NewBeepOpener())
	lib := newTestLibrary(t, session)

	model := app.NewMainModel(context.Background(), lib, session)

	// Проверяем начальное состояние
	view := model.View()
	if view == "" {
		t.Error("Ожидалось непустое отображение списка звуков")
	}

	// Тестируем переключение на экран плеера
	rec := lib.List()[0]
	soundSelectedMsg := soundlist.SoundSelectedMsg{Sound: rec}

	updatedModel, _ := model.Update(soundSelectedMsg)
	model = updatedModel.(*app.MainModel)

	view = model.View()
	if view == "" {
		t.Error("Ожидалось непустое отображение экрана плеера")
	}

	// Тестируем возврат к списку звуков
	goBackMsg := tuiPlayer.GoBackMsg{}
	updatedModel, _ = model.Update(goBackMsg)
	model = updatedModel.(*app.MainModel)

	view = model.View()
	if view == "" {
		t.Error("Ожидалось непустое отображение списка после возврата")
	}

	// Тестируем глобальные горячие клавиши
	ctrlCMsg := tea.KeyMsg{Type: tea.KeyCtrlC}
	_, cmd := model.Update(ctrlCMsg)

	if cmd == nil {
		t.Error("Ожидалась команда tea.Quit после Ctrl+C")
	}
}

func TestMainModelEditorRouting(t *testing.T) {
	session := player.NewSession(audio.NewBeepOpener())
	lib := newTestLibrary(t, session)

	model := app.NewMainModel(context.Background(), lib, session)

	// Переключаемся на экран редактирования
	rec := lib.List()[0]
	editMsg := soundlist.SoundEditMsg{Sound: rec}

	updatedModel, _ := model.Update(editMsg)
	model = updatedModel.(*app.MainModel)

	view := model.View()
	if view == "" {
		t.Error("Ожидалось непустое отображение редактора")
	}
}
