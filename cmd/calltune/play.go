package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/utils"
)

const seekStep = 10 * time.Second

// createPlayCommand создает команду play с привязкой к экземпляру приложения
func (app *Application) createPlayCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "play [id]",
		Short: "Play a sound by its ID",
		Long:  `Play a sound from the library by its ID with interactive transport controls.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.playByID(ctx, args[0])
		},
	}
}

// enableRawMode включает режим raw для терминала (без буферизации и echo)
func enableRawMode() {
	cmd := exec.Command("stty", "-echo", "-icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run() // Игнорируем ошибку, так как это не критично для работы плеера
}

// disableRawMode восстанавливает нормальный режим терминала
func disableRawMode() {
	cmd := exec.Command("stty", "echo", "icanon")
	cmd.Stdin = os.Stdin
	_ = cmd.Run()
}

func (app *Application) playByID(ctx context.Context, id string) error {
	rec, err := app.Library.ByID(id)
	if err != nil {
		return err
	}

	fmt.Printf("🎵 Сейчас играет:\n")
	fmt.Printf("   ID: %s\n", rec.ID)
	fmt.Printf("   Название: %s\n", rec.Name)
	fmt.Printf("   Категория: %s\n", rec.Category)
	if rec.Duration > 0 {
		fmt.Printf("   Длительность: %s\n", utils.FormatSeconds(rec.Duration))
	}
	fmt.Println()

	// Загрузка сразу начинает воспроизведение с включенным повтором
	if err := app.Session.Load(ctx, *rec); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}
	defer app.Session.Unload()

	fmt.Printf("🎮 Управление:\n")
	fmt.Printf("   [Пробел] - пауза/воспроизведение\n")
	fmt.Printf("   [s] - стоп (в начало)\n")
	fmt.Printf("   [l] - повтор вкл/выкл\n")
	fmt.Printf("   [←/→] - перемотка на 10 секунд\n")
	fmt.Printf("   [q] или [Ctrl+C] - выйти\n")
	fmt.Println()

	// Включаем raw режим для чтения одиночных клавиш
	enableRawMode()
	defer disableRawMode()

	// Запускаем горутину для обработки клавиш
	quit := make(chan struct{})
	go app.handlePlayerKeys(quit)

	// Главный цикл обработки событий
	for {
		select {
		case status := <-app.Session.Updates():
			displayProgress(status)
		case <-quit:
			fmt.Println("\n⏹️  Воспроизведение остановлено пользователем")
			return nil
		case <-ctx.Done():
			fmt.Println("\n🚫 Операция отменена")
			return ctx.Err()
		}
	}
}

// handlePlayerKeys читает клавиши управления плеером в режиме raw
func (app *Application) handlePlayerKeys(quit chan<- struct{}) {
	buffer := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buffer)
		if err != nil || n == 0 {
			continue
		}

		// Стрелки приходят escape-последовательностью из трех байт
		if n == 3 && buffer[0] == 0x1b && buffer[1] == '[' {
			status := app.Session.Status()
			switch buffer[2] {
			case 'C':
				_ = app.Session.Seek(status.Position + seekStep)
			case 'D':
				_ = app.Session.Seek(status.Position - seekStep)
			}
			continue
		}

		switch buffer[0] {
		case ' ':
			if app.Session.IsPlaying() {
				_ = app.Session.Pause()
			} else {
				_ = app.Session.Play()
			}
		case 's':
			_ = app.Session.Stop()
		case 'l':
			_ = app.Session.ToggleLooping()
		case 'q', 3: // q или Ctrl+C
			close(quit)
			return
		}
	}
}

// displayProgress отображает прогресс воспроизведения
func displayProgress(status player.Status) {
	statusIcon := "▶️"
	if !status.IsPlaying {
		statusIcon = "⏸️"
	}

	loopText := "повтор выкл"
	if status.IsLooping {
		loopText = "повтор вкл"
	}

	if status.Duration > 0 {
		percent := float64(status.Position) / float64(status.Duration) * 100
		fmt.Printf("\r%s  %.1f%% | %s / %s | %s",
			statusIcon,
			percent,
			utils.FormatDuration(status.Position),
			utils.FormatDuration(status.Duration),
			loopText)
	} else {
		fmt.Printf("\r%s  %s | %s",
			statusIcon,
			utils.FormatDuration(status.Position),
			loopText)
	}
}
