package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kkdai/youtube/v2"
	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/sound"
)

// createDownloadCommand создает команду download с привязкой к экземпляру приложения
func (app *Application) createDownloadCommand(ctx context.Context) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "download [YouTube URL]",
		Short: "Download audio from YouTube video into the library",
		Long:  `Download audio from a YouTube video, save it as MP3 and add it to the sound library.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.downloadSound(ctx, args[0], category)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(sound.CategoryOther), "sound category: Distress, Predator, Prey or Other")

	return cmd
}

func (app *Application) downloadSound(ctx context.Context, url, category string) error {
	parsedCategory, err := sound.ParseCategory(category)
	if err != nil {
		return err
	}

	// Извлекаем ID видео из URL
	videoID, err := extractVideoID(url)
	if err != nil {
		return fmt.Errorf("ошибка извлечения ID видео: %w", err)
	}

	fmt.Printf("Скачиваем аудио для видео ID: %s\n", videoID)

	client := youtube.Client{}

	video, err := client.GetVideoContext(ctx, videoID)
	if err != nil {
		return fmt.Errorf("ошибка получения информации о видео: %w", err)
	}

	fmt.Printf("Название: %s\n", video.Title)
	fmt.Printf("Автор: %s\n", video.Author)

	// Находим лучший аудио формат
	audioFormat := findBestAudioFormat(video.Formats)
	if audioFormat == nil {
		return fmt.Errorf("аудио формат не найден")
	}

	fmt.Printf("Используем формат: itag=%d, качество=%s\n", audioFormat.ItagNo, audioFormat.Quality)

	stream, size, err := client.GetStreamContext(ctx, video, audioFormat)
	if err != nil {
		return fmt.Errorf("ошибка получения потока: %w", err)
	}
	defer stream.Close()

	// Сохраняем во временный каталог, библиотека скопирует файл к себе
	fileName := sanitizeFileName(video.Title) + ".mp3"
	filePath := filepath.Join(app.Config.DownloadDir, fileName)

	if err := os.MkdirAll(app.Config.DownloadDir, 0755); err != nil {
		return fmt.Errorf("ошибка создания директории: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer file.Close()

	fmt.Printf("Скачиваем в файл: %s\n", filePath)

	written, err := io.Copy(file, stream)
	if err != nil {
		return fmt.Errorf("ошибка скачивания: %w", err)
	}
	if size > 0 && written != size {
		fmt.Printf("⚠️  Предупреждение: скачано %d байт из %d\n", written, size)
	}

	rec := sound.Record{
		ID:        sound.NewID(),
		Name:      video.Title,
		Duration:  video.Duration.Seconds(),
		URI:       filePath,
		Size:      written,
		DateAdded: sound.Now(),
		Category:  parsedCategory,
	}

	if err := app.Library.Add(ctx, rec); err != nil {
		return fmt.Errorf("ошибка добавления звука: %w", err)
	}

	fmt.Printf("✅ Аудио скачано и добавлено в библиотеку с ID: %s\n", rec.ID)
	return nil
}

// extractVideoID извлекает ID видео из различных форматов YouTube URL
func extractVideoID(url string) (string, error) {
	patterns := []string{
		`(?:youtube\.com/watch\?v=|youtu\.be/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/embed/)([a-zA-Z0-9_-]{11})`,
		`(?:youtube\.com/v/)([a-zA-Z0-9_-]{11})`,
	}

	for _, pattern := range patterns {
		re := regexp.MustCompile(pattern)
		matches := re.FindStringSubmatch(url)
		if len(matches) > 1 {
			return matches[1], nil
		}
	}

	// Если это просто ID видео (11 символов)
	if len(url) == 11 && regexp.MustCompile(`^[a-zA-Z0-9_-]+$`).MatchString(url) {
		return url, nil
	}

	return "", fmt.Errorf("не удалось извлечь ID видео из URL: %s", url)
}

// findBestAudioFormat находит лучший аудио формат для скачивания
func findBestAudioFormat(formats youtube.FormatList) *youtube.Format {
	// Сначала ищем форматы только с аудио
	audioFormats := formats.WithAudioChannels()

	if len(audioFormats) == 0 {
		// Если нет только аудио форматов, ищем видео+аудио форматы
		videoAudioFormats := formats.Type("video")
		for i := range videoAudioFormats {
			if videoAudioFormats[i].AudioChannels > 0 {
				return &videoAudioFormats[i]
			}
		}
		return nil
	}

	bestFormat := &audioFormats[0]

	for i := range audioFormats {
		format := &audioFormats[i]

		// Предпочитаем форматы с более высоким битрейтом
		if format.Bitrate > bestFormat.Bitrate {
			bestFormat = format
		}

		// Предпочитаем MP4/M4A форматы для лучшей совместимости
		if strings.Contains(format.MimeType, "mp4") || strings.Contains(format.MimeType, "m4a") {
			if !strings.Contains(bestFormat.MimeType, "mp4") && !strings.Contains(bestFormat.MimeType, "m4a") {
				bestFormat = format
			}
		}
	}

	return bestFormat
}

// sanitizeFileName очищает имя файла от недопустимых символов
func sanitizeFileName(name string) string {
	re := regexp.MustCompile(`[<>:"/\\|?*]`)
	name = re.ReplaceAllString(name, "_")
	name = strings.TrimSpace(name)

	// Ограничиваем длину имени файла
	if len(name) > 200 {
		name = name[:200]
	}

	return name
}
