package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hazadus/go-calltune/internal/audio"
	"github.com/hazadus/go-calltune/internal/auth"
	"github.com/hazadus/go-calltune/internal/config"
	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/store"
)

const (
	defaultConfigPath = "~/.calltune.yaml"
)

// Application хранит зависимости приложения и передается в команды явно
type Application struct {
	Config   *config.Config
	Store    *store.FileStore
	Session  *player.Session
	Library  *library.Manager
	Auth     *auth.Client
	Sessions *auth.SessionStore
}

// NewApplication создает экземпляр приложения с загруженной конфигурацией
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig(defaultConfigPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	fileStore, err := store.NewFileStore(cfg.SoundsDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации хранилища: %w", err)
	}

	session := player.NewSession(audio.NewBeepOpener())
	if cfg.PollIntervalMs > 0 {
		session.SetPollInterval(time.Duration(cfg.PollIntervalMs) * time.Millisecond)
	}

	lib, err := library.NewManager(fileStore, session)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки библиотеки: %w", err)
	}

	return &Application{
		Config:   cfg,
		Store:    fileStore,
		Session:  session,
		Library:  lib,
		Auth:     auth.NewClient(cfg.BackendURL, cfg.BackendAnonKey),
		Sessions: auth.NewSessionStore(cfg.SessionFile),
	}, nil
}

// Close освобождает ресурсы приложения
func (app *Application) Close() {
	if err := app.Session.Close(); err != nil {
		log.Printf("Ошибка завершения аудиосессии: %v", err)
	}
}

func main() {
	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Ошибка инициализации приложения: %v", err)
	}
	defer app.Close()

	// Контекст отменяется по Ctrl+C или SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := app.createRootCommand(ctx)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
