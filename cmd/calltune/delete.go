package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/s3"
)

// createDeleteCommand создает команду delete с привязкой к экземпляру приложения
func (app *Application) createDeleteCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a sound by ID",
		Long:  `Delete a sound from the library along with its copied audio file. Shared S3 copies are removed as well.`,
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			app.deleteSound(ctx, args[0])
		},
	}
}

func (app *Application) deleteSound(ctx context.Context, id string) {
	rec, err := app.Library.ByID(id)
	if err != nil {
		// Удаление отсутствующего звука не является ошибкой
		fmt.Printf("ℹ️  Звук с ID %s не найден, удалять нечего\n", id)
		return
	}

	fmt.Printf("🗑️  Удаляем звук: %s\n", rec.Name)

	// Удаляем файл из S3, если запись указывает на выложенную копию.
	// Ошибки не блокируют удаление метаданных.
	if isSharedURI(rec.URI) && app.Config.AwsBucketName != "" {
		if err := app.deleteFromS3(ctx, rec.URI); err != nil {
			fmt.Printf("⚠️  Предупреждение: не удалось удалить файл из S3: %v\n", err)
		} else {
			fmt.Println("✅ Файл успешно удален из S3")
		}
	}

	if err := app.Library.Delete(ctx, id); err != nil {
		fmt.Printf("❌ Ошибка удаления звука: %v\n", err)
		return
	}

	fmt.Println("✅ Звук успешно удален из библиотеки")
}

// isSharedURI определяет, указывает ли URI на удаленную копию
func isSharedURI(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

func (app *Application) deleteFromS3(ctx context.Context, fileURL string) error {
	s3Client, err := s3.NewClient(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
	if err != nil {
		return fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}

	key, err := extractKeyFromURL(fileURL)
	if err != nil {
		return fmt.Errorf("ошибка извлечения ключа из URL: %w", err)
	}

	return s3Client.DeleteSound(ctx, key)
}

// extractKeyFromURL извлекает ключ файла из URL S3
func extractKeyFromURL(fileURL string) (string, error) {
	parsedURL, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("неверный URL: %w", err)
	}

	// URL имеет формат endpoint/bucket/key - отбрасываем имя бакета
	pathSegments := strings.TrimPrefix(parsedURL.Path, "/")

	parts := strings.SplitN(pathSegments, "/", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("неверный формат URL S3")
	}

	return parts[1], nil
}
