package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/utils"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	var favoritesOnly bool
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all sounds from the library",
		Long:  `Display a list of all sounds stored in the library, with optional filters.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.listSounds(favoritesOnly, category)
		},
	}

	cmd.Flags().BoolVarP(&favoritesOnly, "favorites", "f", false, "show only favorite sounds")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category: Distress, Predator, Prey or Other")

	return cmd
}

func (app *Application) listSounds(favoritesOnly bool, category string) error {
	var categoryFilter sound.Category
	if category != "" {
		parsed, err := sound.ParseCategory(category)
		if err != nil {
			return err
		}
		categoryFilter = parsed
	}

	sounds := app.Library.List()
	filtered := make([]sound.Record, 0, len(sounds))
	for _, rec := range sounds {
		if favoritesOnly && !rec.Favorite {
			continue
		}
		if categoryFilter != "" && rec.Category != categoryFilter {
			continue
		}
		filtered = append(filtered, rec)
	}

	if len(filtered) == 0 {
		fmt.Println("📚 Библиотека пуста. Добавьте звуки с помощью команды 'add'.")
		return nil
	}

	fmt.Printf("📚 Найдено звуков: %d\n\n", len(filtered))

	// Выводим заголовок таблицы
	fmt.Printf("%-15s %-2s %-30s %-10s %-10s %-10s %-24s\n",
		"ID", "⭐", "Название", "Категория", "Длит.", "Размер", "Теги")
	fmt.Println(strings.Repeat("-", 110))

	// Выводим каждый звук
	for _, rec := range filtered {
		favorite := " "
		if rec.Favorite {
			favorite = "⭐"
		}

		name := utils.TruncateString(rec.Name, 28)
		tags := utils.TruncateString(strings.Join(rec.Tags, ", "), 22)

		fmt.Printf("%-15s %-2s %-30s %-10s %-10s %-10s %-24s\n",
			rec.ID, favorite, name, rec.Category,
			utils.FormatSeconds(rec.Duration),
			utils.FormatFileSize(rec.Size), tags)
	}

	fmt.Println()
	fmt.Println("💡 Используйте 'calltune play [ID]' для воспроизведения звука")
	return nil
}
