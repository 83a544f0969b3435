// Package app содержит основную логику TUI приложения
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/tui/editor"
	tuiPlayer "github.com/hazadus/go-calltune/internal/tui/player"
	"github.com/hazadus/go-calltune/internal/tui/soundlist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

// Константы для типов экранов
const (
	// SoundlistScreen - экран списка звуков
	SoundlistScreen ScreenType = iota
	// PlayerScreen - экран плеера
	PlayerScreen
	// EditorScreen - экран редактирования
	EditorScreen
)

// MainModel представляет главную модель TUI
type MainModel struct {
	ctx            context.Context
	library        *library.Manager
	session        *player.Session
	currentScreen  ScreenType
	soundlistModel *soundlist.Model
	playerModel    *tuiPlayer.Model
	editorModel    *editor.Model
}

// NewMainModel создает новую главную модель
func NewMainModel(ctx context.Context, lib *library.Manager, session *player.Session) *MainModel {
	return &MainModel{
		ctx:            ctx,
		library:        lib,
		session:        session,
		currentScreen:  SoundlistScreen,
		soundlistModel: soundlist.NewModel(ctx, lib),
		playerModel:    nil, // Будет создана при выборе звука
		editorModel:    nil, // Будет создана при редактировании звука
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.soundlistModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Глобальные горячие клавиши
		switch msg.String() {
		case "ctrl+c":
			// Выгружаем звук перед выходом
			m.session.Unload()
			return m, tea.Quit
		}

	case soundlist.SoundSelectedMsg:
		// Переключаемся на экран плеера с выбранным звуком
		m.currentScreen = PlayerScreen
		m.playerModel = tuiPlayer.NewModel(m.ctx, msg.Sound, m.session)
		return m, m.playerModel.Init()

	case soundlist.SoundEditMsg:
		// Переключаемся на экран редактирования с выбранным звуком
		m.currentScreen = EditorScreen
		m.editorModel = editor.NewModel(m.library, msg.Sound)
		return m, m.editorModel.Init()

	case tuiPlayer.GoBackMsg:
		// Возвращаемся к списку звуков
		m.currentScreen = SoundlistScreen
		m.playerModel = nil
		return m, nil

	case editor.GoBackMsg:
		// Возвращаемся к списку звуков из редактора
		m.currentScreen = SoundlistScreen
		m.editorModel = nil
		// Обновляем данные в существующей модели списка
		m.soundlistModel.RefreshData()
		return m, nil

	case editor.SoundSavedMsg:
		// Звук сохранен - остаемся в редакторе
		return m, nil

	case tea.WindowSizeMsg:
		// Передаем размеры окна активной модели
		switch m.currentScreen {
		case SoundlistScreen:
			var soundlistCmd tea.Cmd
			m.soundlistModel, soundlistCmd = m.soundlistModel.Update(msg)
			return m, soundlistCmd
		case PlayerScreen:
			if m.playerModel != nil {
				updatedModel, playerCmd := m.playerModel.Update(msg)
				if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
					m.playerModel = playerModel
				}
				return m, playerCmd
			}
		case EditorScreen:
			if m.editorModel != nil {
				var editorCmd tea.Cmd
				m.editorModel, editorCmd = m.editorModel.Update(msg)
				return m, editorCmd
			}
		}
		return m, nil
	}

	// Передаем сообщение активной модели
	switch m.currentScreen {
	case SoundlistScreen:
		var soundlistCmd tea.Cmd
		m.soundlistModel, soundlistCmd = m.soundlistModel.Update(msg)
		cmd = soundlistCmd

	case PlayerScreen:
		if m.playerModel != nil {
			updatedModel, playerCmd := m.playerModel.Update(msg)
			if playerModel, ok := updatedModel.(*tuiPlayer.Model); ok {
				m.playerModel = playerModel
			}
			cmd = playerCmd
		}

	case EditorScreen:
		if m.editorModel != nil {
			var editorCmd tea.Cmd
			m.editorModel, editorCmd = m.editorModel.Update(msg)
			cmd = editorCmd
		}
	}

	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case SoundlistScreen:
		return m.soundlistModel.View()

	case PlayerScreen:
		if m.playerModel != nil {
			return m.playerModel.View()
		}
		return "Ошибка: модель плеера не инициализирована"

	case EditorScreen:
		if m.editorModel != nil {
			return m.editorModel.View()
		}
		return "Ошибка: модель редактора не инициализирована"

	default:
		return "Неизвестный экран"
	}
}
