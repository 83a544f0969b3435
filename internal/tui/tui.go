// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	library *library.Manager
	session *player.Session
}

// NewApp создает новый экземпляр TUI приложения
func NewApp(lib *library.Manager, session *player.Session) *App {
	return &App{
		library: lib,
		session: session,
	}
}

// Run запускает TUI приложение
func (tuiApp *App) Run(ctx context.Context) error {
	model := app.NewMainModel(ctx, tuiApp.library, tuiApp.session)

	p := tea.NewProgram(model, tea.WithAltScreen())

	_, err := p.Run()

	// Выгружаем звук после завершения программы
	tuiApp.session.Unload()

	return err
}
