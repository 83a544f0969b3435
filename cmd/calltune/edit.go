package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/sound"
)

// createEditCommand создает команду edit с привязкой к экземпляру приложения
func (app *Application) createEditCommand() *cobra.Command {
	var name string
	var description string
	var category string
	var tags []string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit sound metadata",
		Long:  `Update name, description, category or tags of a sound by its ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.editSound(cmd, args[0], name, description, category, tags)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "new sound name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new sound description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category: Distress, Predator, Prey or Other")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "new comma-separated tags (replaces existing)")

	return cmd
}

func (app *Application) editSound(cmd *cobra.Command, id, name, description, category string, tags []string) error {
	rec, err := app.Library.ByID(id)
	if err != nil {
		return err
	}

	updated := *rec
	if cmd.Flags().Changed("name") {
		updated.Name = name
	}
	if cmd.Flags().Changed("description") {
		updated.Description = description
	}
	if cmd.Flags().Changed("category") {
		parsed, err := sound.ParseCategory(category)
		if err != nil {
			return err
		}
		updated.Category = parsed
	}
	if cmd.Flags().Changed("tags") {
		updated.Tags = normalizeTags(tags)
	}

	if err := app.Library.Update(updated); err != nil {
		return fmt.Errorf("ошибка обновления звука: %w", err)
	}

	fmt.Printf("✅ Звук обновлен:\n")
	fmt.Printf("   Название: %s\n", updated.Name)
	fmt.Printf("   Категория: %s\n", updated.Category)
	if updated.Description != "" {
		fmt.Printf("   Описание: %s\n", updated.Description)
	}
	if len(updated.Tags) > 0 {
		fmt.Printf("   Теги: %v\n", updated.Tags)
	}
	return nil
}
