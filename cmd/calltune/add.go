package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/metadata"
	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/utils"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand(ctx context.Context) *cobra.Command {
	var name string
	var description string
	var category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add [file path]",
		Short: "Add an mp3 file to the sound library",
		Long:  `Copy an mp3 file into the library directory and register it with metadata.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.addSound(ctx, args[0], name, description, category, tags)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "sound name (defaults to mp3 title or file name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "sound description")
	cmd.Flags().StringVarP(&category, "category", "c", string(sound.CategoryOther), "sound category: Distress, Predator, Prey or Other")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "comma-separated tags")

	return cmd
}

func (app *Application) addSound(ctx context.Context, filePath, name, description, category string, tags []string) error {
	parsedCategory, err := sound.ParseCategory(category)
	if err != nil {
		return err
	}

	// Читаем метаданные файла
	extractor := metadata.NewExtractor()
	fileInfo, err := extractor.GetFileInfo(filePath)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}

	if name == "" {
		name = extractor.SuggestName(filePath)
	}

	rec := sound.Record{
		ID:          sound.NewID(),
		Name:        name,
		Description: description,
		Duration:    fileInfo.Duration.Seconds(),
		URI:         filePath,
		Size:        fileInfo.Size,
		DateAdded:   sound.Now(),
		Category:    parsedCategory,
		Tags:        normalizeTags(tags),
	}

	if err := app.Library.Add(ctx, rec); err != nil {
		return fmt.Errorf("ошибка добавления звука: %w", err)
	}

	// Запись могла получить новый URI после копирования в библиотеку
	added, err := app.Library.ByID(rec.ID)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Звук добавлен в библиотеку:\n")
	fmt.Printf("   ID: %s\n", added.ID)
	fmt.Printf("   Название: %s\n", added.Name)
	fmt.Printf("   Категория: %s\n", added.Category)
	fmt.Printf("   Длительность: %s\n", utils.FormatSeconds(added.Duration))
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(added.Size))
	fmt.Printf("   Файл: %s\n", added.URI)
	return nil
}

// normalizeTags убирает пробелы и дубликаты, сохраняя порядок
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	return result
}
