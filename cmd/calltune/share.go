package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/s3"
	"github.com/hazadus/go-calltune/internal/store"
	"github.com/hazadus/go-calltune/internal/utils"
)

// createShareCommand создает команду share с привязкой к экземпляру приложения
func (app *Application) createShareCommand(ctx context.Context) *cobra.Command {
	var replaceURI bool

	cmd := &cobra.Command{
		Use:   "share [id]",
		Short: "Upload a sound to S3 storage for sharing",
		Long:  `Upload the audio file of a sound to S3 storage and print its public URL.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			// Создаем контекст с таймаутом для загрузки (10 минут)
			uploadCtx, cancel := context.WithTimeout(ctx, 10*time.Minute)
			defer cancel()
			return app.shareSound(uploadCtx, args[0], replaceURI)
		},
	}

	cmd.Flags().BoolVar(&replaceURI, "replace-uri", false, "point the record at the uploaded URL so it plays via streaming")

	return cmd
}

func (app *Application) shareSound(ctx context.Context, id string, replaceURI bool) error {
	rec, err := app.Library.ByID(id)
	if err != nil {
		return err
	}

	filePath := store.PathFromURI(rec.URI)
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return fmt.Errorf("ошибка получения информации о файле: %w", err)
	}
	fileSize := fileInfo.Size()

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

	fmt.Printf("📤 Загружаем звук в S3:\n")
	fmt.Printf("   Название: %s\n", rec.Name)
	fmt.Printf("   Файл: %s\n", filePath)
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(fileSize))
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
	fmt.Println()

	// Создаем канал для отслеживания прогресса
	progressChan := make(chan int64)

	// Запускаем горутину для отображения прогресса
	go func() {
		startTime := time.Now()

		for {
			select {
			case progress, ok := <-progressChan:
				if !ok {
					return
				}
				if progress > 0 {
					elapsed := time.Since(startTime)
					percentage := float64(progress) / float64(fileSize) * 100
					speed := float64(progress) / elapsed.Seconds()

					fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s",
						percentage,
						utils.FormatFileSize(int64(speed)),
						utils.FormatDuration(elapsed))
				}
			case <-ctx.Done():
				fmt.Printf("\n🚫 Загрузка отменена\n")
				return
			}
		}
	}()

	progressReader := &progressReader{
		reader:     file,
		onProgress: nonBlockingProgress(progressChan),
	}

	url, err := s3Client.UploadSound(ctx, progressReader, filepath.Base(filePath))
	close(progressChan)
	if err != nil {
		return fmt.Errorf("ошибка загрузки файла: %w", err)
	}

	fmt.Printf("\n✅ Звук успешно загружен в S3!\n")
	fmt.Printf("   URL: %s\n", url)

	if replaceURI {
		if err := app.replaceSoundURI(id, url); err != nil {
			return err
		}
		fmt.Println("🔗 Запись теперь указывает на выложенную копию")
	}
	return nil
}

// replaceSoundURI перенаправляет запись на удаленную копию; воспроизведение
// идет через потоковое чтение
func (app *Application) replaceSoundURI(id, url string) error {
	rec, err := app.Library.ByID(id)
	if err != nil {
		return err
	}

	updated := *rec
	updated.URI = url
	if err := app.Library.Update(updated); err != nil {
		return fmt.Errorf("ошибка обновления записи: %w", err)
	}
	return nil
}

// nonBlockingProgress возвращает колбэк, который не блокирует чтение,
// если прогресс некому потреблять (например, после отмены контекста)
func nonBlockingProgress(progressChan chan<- int64) func(int64) {
	return func(bytesRead int64) {
		select {
		case progressChan <- bytesRead:
		default:
		}
	}
}

// progressReader оборачивает reader, сообщая о прочитанных байтах
type progressReader struct {
	reader     io.Reader
	onProgress func(int64)
	bytesRead  int64
}

func (pr *progressReader) Read(p []byte) (n int, err error) {
	n, err = pr.reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.onProgress != nil {
		pr.onProgress(pr.bytesRead)
	}
	return n, err
}
