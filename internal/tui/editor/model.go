// Package editor содержит модель экрана редактирования метаданных звука для TUI
package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/sound"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(15)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Margin(1, 0)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// SoundSavedMsg отправляется когда звук успешно сохранен
type SoundSavedMsg struct{}

// GoBackMsg отправляется при отмене редактирования
type GoBackMsg struct{}

// fieldType определяет тип поля для редактирования
type fieldType int

const (
	nameField fieldType = iota
	descriptionField
	categoryField
	tagsField
	numFields
)

// Model представляет модель экрана редактирования звука
type Model struct {
	library       *library.Manager
	originalSound sound.Record
	inputs        []textinput.Model
	focusIndex    int
	err           string
	success       string
	quitting      bool
}

// NewModel создает новую модель редактора звука
func NewModel(lib *library.Manager, soundToEdit sound.Record) *Model {
	// Создаем поля ввода
	inputs := make([]textinput.Model, numFields)

	// Поле Name
	inputs[nameField] = textinput.New()
	inputs[nameField].Placeholder = "Введите название звука"
	inputs[nameField].SetValue(soundToEdit.Name)
	inputs[nameField].Focus()
	inputs[nameField].PromptStyle = focusedStyle
	inputs[nameField].TextStyle = focusedStyle

	// Поле Description
	inputs[descriptionField] = textinput.New()
	inputs[descriptionField].Placeholder = "Введите описание"
	inputs[descriptionField].SetValue(soundToEdit.Description)

	// Поле Category
	inputs[categoryField] = textinput.New()
	inputs[categoryField].Placeholder = "Distress, Predator, Prey или Other"
	inputs[categoryField].SetValue(string(soundToEdit.Category))

	// Поле Tags (через запятую)
	inputs[tagsField] = textinput.New()
	inputs[tagsField].Placeholder = "Теги через запятую"
	inputs[tagsField].SetValue(strings.Join(soundToEdit.Tags, ", "))

	return &Model{
		library:       lib,
		originalSound: soundToEdit,
		inputs:        inputs,
		focusIndex:    0,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			// Отменяем редактирование
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case "ctrl+s":
			// Сохраняем изменения
			return m, m.saveSound()

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter на кнопке Save
			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveSound()
			}

			// Перемещение фокуса
			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			cmds := make([]tea.Cmd, len(m.inputs))
			for i := 0; i < len(m.inputs); i++ {
				if i == m.focusIndex {
					cmds[i] = m.inputs[i].Focus()
					m.inputs[i].PromptStyle = focusedStyle
					m.inputs[i].TextStyle = focusedStyle
				} else {
					m.inputs[i].Blur()
					m.inputs[i].PromptStyle = blurredStyle
					m.inputs[i].TextStyle = blurredStyle
				}
			}

			return m, tea.Batch(cmds...)
		}

	case tea.WindowSizeMsg:
		// Обновляем ширину полей ввода
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
		return m, nil
	}

	// Обновляем активное поле ввода
	if m.focusIndex < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		return m, cmd
	}

	return m, nil
}

// saveSound сохраняет изменения звука
func (m *Model) saveSound() tea.Cmd {
	return func() tea.Msg {
		name := strings.TrimSpace(m.inputs[nameField].Value())
		description := strings.TrimSpace(m.inputs[descriptionField].Value())
		categoryStr := strings.TrimSpace(m.inputs[categoryField].Value())
		tagsStr := strings.TrimSpace(m.inputs[tagsField].Value())

		if name == "" {
			m.err = "Поле 'Название' не может быть пустым"
			m.success = ""
			return nil
		}

		category, err := sound.ParseCategory(categoryStr)
		if err != nil {
			m.err = fmt.Sprintf("Ошибка: %v", err)
			m.success = ""
			return nil
		}

		// Создаем обновленный звук
		updatedSound := m.originalSound
		updatedSound.Name = name
		updatedSound.Description = description
		updatedSound.Category = category
		updatedSound.Tags = parseTags(tagsStr)

		if err := m.library.Update(updatedSound); err != nil {
			m.err = fmt.Sprintf("Ошибка обновления звука: %v", err)
			m.success = ""
			return nil
		}

		m.err = ""
		m.success = "Звук успешно сохранен!"

		// Возвращаемся к списку звуков через небольшую задержку
		return tea.Tick(time.Second, func(time.Time) tea.Msg {
			return GoBackMsg{}
		})()
	}
}

// parseTags разбирает строку тегов через запятую, убирая пробелы и дубликаты
func parseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	seen := make(map[string]bool)
	var tags []string
	for _, tag := range strings.Split(tagsStr, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return "Отмена редактирования...\n"
	}

	var b strings.Builder

	// Заголовок
	b.WriteString(titleStyle.Render(fmt.Sprintf("Редактирование звука '%s'", m.originalSound.Name)))
	b.WriteString("\n\n")

	// Поля ввода
	labels := []string{"Название:", "Описание:", "Категория:", "Теги:"}

	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	// Кнопка сохранения
	saveButton := "[ Сохранить ]"
	if m.focusIndex == len(m.inputs) {
		saveButton = focusedStyle.Render("[ Сохранить ]")
	} else {
		saveButton = blurredStyle.Render(saveButton)
	}
	b.WriteString(saveButton)
	b.WriteString("\n\n")

	// Сообщения об ошибках или успехе
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}

	if m.success != "" {
		b.WriteString(successStyle.Render(m.success))
		b.WriteString("\n")
	}

	// Справка
	b.WriteString(helpStyle.Render("Tab/Enter: следующее поле • Shift+Tab: предыдущее поле"))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Ctrl+S: сохранить • Esc: отмена"))

	return b.String()
}
