// Package soundlist содержит модель экрана списка звуков для TUI
package soundlist

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// SoundSelectedMsg отправляется при выборе звука для воспроизведения
type SoundSelectedMsg struct {
	Sound sound.Record
}

// SoundEditMsg отправляется при выборе звука для редактирования
type SoundEditMsg struct {
	Sound sound.Record
}

// soundItem реализует интерфейс list.Item для звука
type soundItem struct {
	sound sound.Record
}

func (i soundItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.sound.Name, strings.Join(i.sound.Tags, " "))
}

// soundItemDelegate реализует отображение элементов списка
type soundItemDelegate struct{}

func (d soundItemDelegate) Height() int                             { return 1 }
func (d soundItemDelegate) Spacing() int                            { return 0 }
func (d soundItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d soundItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(soundItem)
	if !ok {
		return
	}

	favorite := " "
	if i.sound.Favorite {
		favorite = "⭐"
	}

	// Форматируем строку в виде таблицы: ⭐ | Название | Категория | Длительность
	str := fmt.Sprintf("%s %-40s %-10s %s",
		favorite,
		utils.TruncateString(i.sound.Name, 40),
		i.sound.Category,
		utils.FormatSeconds(i.sound.Duration))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка звуков
type Model struct {
	ctx      context.Context
	list     list.Model
	library  *library.Manager
	err      string
	quitting bool
}

// NewModel создает новую модель списка звуков
func NewModel(ctx context.Context, lib *library.Manager) *Model {
	sounds := lib.List()

	// Преобразуем звуки в элементы списка
	items := make([]list.Item, len(sounds))
	for i, rec := range sounds {
		items[i] = soundItem{sound: rec}
	}

	l := list.New(items, soundItemDelegate{}, 0, 0)
	l.Title = "Звуки"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		ctx:     ctx,
		list:    l,
		library: lib,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// RefreshData обновляет данные модели без пересоздания
func (m *Model) RefreshData() {
	sounds := m.library.List()

	items := make([]list.Item, len(sounds))
	for i, rec := range sounds {
		items[i] = soundItem{sound: rec}
	}

	m.list.SetItems(items)
}

// selectedSound возвращает звук под курсором, если он есть
func (m *Model) selectedSound() (sound.Record, bool) {
	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return sound.Record{}, false
	}
	item, ok := selectedItem.(soundItem)
	return item.sound, ok
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4) // Оставляем место для заголовка и справки
		return m, nil

	case tea.KeyMsg:
		// Во время фильтрации клавиши уходят в строку поиска
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if rec, ok := m.selectedSound(); ok {
				return m, func() tea.Msg {
					return SoundSelectedMsg{Sound: rec}
				}
			}

		case "e":
			if rec, ok := m.selectedSound(); ok {
				return m, func() tea.Msg {
					return SoundEditMsg{Sound: rec}
				}
			}

		case "f":
			// Переключаем избранное для звука под курсором
			if rec, ok := m.selectedSound(); ok {
				if err := m.library.ToggleFavorite(rec.ID); err != nil {
					m.err = fmt.Sprintf("Ошибка изменения статуса: %v", err)
				} else {
					m.err = ""
				}
				m.RefreshData()
			}
			return m, nil

		case "d":
			// Удаляем звук под курсором
			if rec, ok := m.selectedSound(); ok {
				if err := m.library.Delete(m.ctx, rec.ID); err != nil {
					m.err = fmt.Sprintf("Ошибка удаления: %v", err)
				} else {
					m.err = ""
				}
				m.RefreshData()
			}
			return m, nil
		}
	}

	// Обновляем список
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	view := m.list.View()

	if m.err != "" {
		view += "\n" + helpStyle.Render(m.err)
	}

	extraHelp := helpStyle.Render("Enter: воспроизвести • e: редактировать • f: избранное • d: удалить • q: выход")
	return view + "\n" + extraHelp
}
