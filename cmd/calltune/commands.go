package main

import (
	"context"

	"github.com/spf13/cobra"
)

// createRootCommand создает корневую команду с настроенными подкомандами
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "calltune",
		Short: "A command line tool to manage and play a library of predator call sounds",
		Long:  `A command line tool to manage a library of hunting call sounds: add, play, edit, share and download them.`,
	}

	// Добавляем команды, передавая в них экземпляр приложения и контекст
	rootCmd.AddCommand(app.createAddCommand(ctx))
	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createPlayCommand(ctx))
	rootCmd.AddCommand(app.createEditCommand())
	rootCmd.AddCommand(app.createFavoriteCommand())
	rootCmd.AddCommand(app.createDeleteCommand(ctx))
	rootCmd.AddCommand(app.createShareCommand(ctx))
	rootCmd.AddCommand(app.createDownloadCommand(ctx))
	rootCmd.AddCommand(app.createAuthCommands(ctx)...)
	rootCmd.AddCommand(app.createTUICommand(ctx))

	return rootCmd
}
