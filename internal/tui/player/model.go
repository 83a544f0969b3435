// Package player содержит модель экрана воспроизведения для TUI
package player

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0000ff")).
			MarginBottom(1)

	soundInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)

const seekStep = 10 * time.Second

// GoBackMsg отправляется для возврата к списку звуков
type GoBackMsg struct{}

// ProgressMsg содержит обновления статуса воспроизведения
type ProgressMsg struct {
	Status player.Status
}

// SessionClosedMsg отправляется при закрытии аудиосессии
type SessionClosedMsg struct{}

// PlaybackErrorMsg отправляется при ошибке воспроизведения
type PlaybackErrorMsg struct {
	Error error
}

// Model представляет модель экрана воспроизведения
type Model struct {
	ctx         context.Context
	sound       sound.Record
	session     *player.Session
	progressBar progress.Model
	status      player.Status
	error       error
	width       int
	height      int
}

// NewModel создает новую модель плеера поверх общей аудиосессии
func NewModel(ctx context.Context, rec sound.Record, session *player.Session) *Model {
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return &Model{
		ctx:         ctx,
		sound:       rec,
		session:     session,
		progressBar: prog,
	}
}

// Init инициализирует модель и запускает воспроизведение
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.startPlayback(),
		m.listenForUpdates(),
	)
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Обновляем ширину прогресс-бара
		m.progressBar.Width = min(60, msg.Width-10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			// Выгружаем звук и возвращаемся к списку
			m.session.Unload()
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case " ":
			// Пауза/воспроизведение
			if m.session.IsPlaying() {
				_ = m.session.Pause()
			} else {
				_ = m.session.Play()
			}
			return m, nil

		case "s":
			// Стоп - пауза и перемотка в начало
			_ = m.session.Stop()
			return m, nil

		case "l":
			// Переключаем повтор
			_ = m.session.ToggleLooping()
			return m, nil

		case "right":
			_ = m.session.Seek(m.status.Position + seekStep)
			return m, nil

		case "left":
			_ = m.session.Seek(m.status.Position - seekStep)
			return m, nil
		}

	case ProgressMsg:
		// Обновляем статус и прогресс-бар
		m.status = msg.Status

		var percent float64
		if msg.Status.Duration > 0 {
			percent = float64(msg.Status.Position) / float64(msg.Status.Duration)
		}

		return m, tea.Batch(
			m.progressBar.SetPercent(percent),
			m.listenForUpdates(),
		)

	case SessionClosedMsg:
		// Аудиосессия закрыта, возвращаемся к списку
		return m, func() tea.Msg {
			return GoBackMsg{}
		}

	case PlaybackErrorMsg:
		m.error = msg.Error
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// View отображает модель
func (m *Model) View() string {
	if m.error != nil {
		return fmt.Sprintf(
			"%s\n\n%s\n\n%s",
			titleStyle.Render("❌ Ошибка воспроизведения"),
			errorStyle.Render(m.error.Error()),
			controlsStyle.Render("Нажмите 'q' или 'esc' для возврата"),
		)
	}

	// Заголовок
	title := titleStyle.Render("🎵 Воспроизведение")

	// Информация о звуке
	soundInfo := soundInfoStyle.Render(fmt.Sprintf(
		"🔊 %s\n📂 %s\n🏷️  %s",
		m.sound.Name,
		m.sound.Category,
		tagsLine(m.sound.Tags),
	))

	// Статус воспроизведения
	var statusIcon string
	if m.status.IsPlaying {
		statusIcon = "▶️"
	} else {
		statusIcon = "⏸️"
	}

	statusText := statusStyle.Render(fmt.Sprintf("%s %s | %s",
		statusIcon, formatStatus(m.status.IsPlaying), formatLooping(m.status.IsLooping)))

	// Прогресс-бар
	progressView := m.progressBar.View()

	// Время
	timeText := fmt.Sprintf(
		"%s / %s",
		utils.FormatDuration(m.status.Position),
		utils.FormatDuration(m.status.Duration),
	)

	// Элементы управления
	controls := controlsStyle.Render(
		"Пробел: пауза • s: стоп • l: повтор • ←/→: перемотка • q/esc: назад к списку",
	)

	return fmt.Sprintf(
		"%s\n\n%s\n\n%s\n\n%s\n%s\n\n%s",
		title,
		soundInfo,
		statusText,
		progressView,
		timeText,
		controls,
	)
}

// startPlayback загружает звук в аудиосессию
func (m *Model) startPlayback() tea.Cmd {
	return func() tea.Msg {
		// Загрузка сразу начинает воспроизведение
		if err := m.session.Load(m.ctx, m.sound); err != nil {
			return PlaybackErrorMsg{Error: err}
		}
		return nil
	}
}

// listenForUpdates слушает обновления статуса от аудиосессии
func (m *Model) listenForUpdates() tea.Cmd {
	return func() tea.Msg {
		status, ok := <-m.session.Updates()
		if !ok {
			return SessionClosedMsg{}
		}
		return ProgressMsg{Status: status}
	}
}

// Вспомогательные функции

func formatStatus(isPlaying bool) string {
	if isPlaying {
		return "Воспроизведение"
	}
	return "Пауза"
}

func formatLooping(isLooping bool) string {
	if isLooping {
		return "повтор вкл"
	}
	return "повтор выкл"
}

func tagsLine(tags []string) string {
	if len(tags) == 0 {
		return "без тегов"
	}
	result := tags[0]
	for _, tag := range tags[1:] {
		result += ", " + tag
	}
	return result
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
