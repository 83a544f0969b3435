package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createFavoriteCommand создает команду favorite с привязкой к экземпляру приложения
func (app *Application) createFavoriteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "favorite [id]",
		Short: "Toggle favorite status of a sound",
		Long:  `Toggle the favorite flag of a sound by its ID.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.toggleFavorite(args[0])
		},
	}
}

func (app *Application) toggleFavorite(id string) error {
	if err := app.Library.ToggleFavorite(id); err != nil {
		return fmt.Errorf("ошибка изменения статуса: %w", err)
	}

	rec, err := app.Library.ByID(id)
	if err != nil {
		return err
	}

	if rec.Favorite {
		fmt.Printf("⭐ Звук '%s' добавлен в избранное\n", rec.Name)
	} else {
		fmt.Printf("✅ Звук '%s' убран из избранного\n", rec.Name)
	}
	return nil
}
