package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/hazadus/go-calltune/internal/audio"
	"github.com/hazadus/go-calltune/internal/auth"
	"github.com/hazadus/go-calltune/internal/config"
	"github.com/hazadus/go-calltune/internal/library"
	"github.com/hazadus/go-calltune/internal/player"
	"github.com/hazadus/go-calltune/internal/sound"
	"github.com/hazadus/go-calltune/internal/store"
)

// captureOutput перехватывает stdout и stderr во время выполнения функции
func captureOutput(t *testing.T, fn func()) string {
	// Сохраняем оригинальные stdout и stderr
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Ошибка создания pipe: %v", err)
	}

	// Перенаправляем stdout и stderr
	os.Stdout = w
	os.Stderr = w

	fn()

	// Восстанавливаем оригинальные stdout и stderr
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("Ошибка чтения результата: %v", err)
	}

	return buf.String()
}

// createTestApplication создает приложение с хранилищем во временной директории
func createTestApplication(t *testing.T, tempDir string) *Application {
	t.Helper()

	fileStore, err := store.NewFileStore(tempDir)
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	session := player.NewSession(audio.NewBeepOpener())
	t.Cleanup(func() { _ = session.Close() })

	lib, err := library.NewManager(fileStore, session)
	if err != nil {
		t.Fatalf("Ошибка создания библиотеки: %v", err)
	}

	cfg := &config.Config{
		SoundsDir:   tempDir,
		DownloadDir: tempDir,
	}

	return &Application{
		Config:   cfg,
		Store:    fileStore,
		Session:  session,
		Library:  lib,
		Auth:     auth.NewClient("http://127.0.0.1:1", "anon-key"),
		Sessions: auth.NewSessionStore(tempDir + "/session.json"),
	}
}

// addTestSound добавляет звук с удаленным URI, чтобы не копировать файлы
func addTestSound(t *testing.T, app *Application, rec sound.Record) {
	t.Helper()
	if rec.URI == "" {
		rec.URI = "https://example.com/" + rec.ID + ".mp3"
	}
	if err := app.Library.Add(context.Background(), rec); err != nil {
		t.Fatalf("Ошибка добавления тестового звука: %v", err)
	}
}

// TestCmdList проверяет, что команда `list` корректно выводит список звуков
func TestCmdList(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{
		ID:       "100",
		Name:     "Cottontail Distress",
		Category: sound.CategoryDistress,
		Duration: 30,
		Size:     1024000,
		Tags:     []string{"rabbit"},
	})

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	expectedStrings := []string{
		"📚 Найдено звуков: 1",
		"Cottontail Distress",
		"Distress",
		"rabbit",
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(output, expected) {
			t.Errorf("Вывод команды list не содержит ожидаемую строку '%s': %s", expected, output)
		}
	}
}

// TestCmdListEmpty проверяет, что команда `list` корректно обрабатывает пустую библиотеку
func TestCmdListEmpty(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "📚 Библиотека пуста") {
		t.Errorf("Команда list не отобразила сообщение о пустой библиотеке: %s", output)
	}
}

// TestCmdListFavorites проверяет фильтр избранного в команде `list`
func TestCmdListFavorites(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{ID: "1", Name: "Plain Sound", Category: sound.CategoryOther})
	addTestSound(t, app, sound.Record{ID: "2", Name: "Favorite Sound", Category: sound.CategoryOther})

	if err := app.Library.ToggleFavorite("2"); err != nil {
		t.Fatalf("Ошибка установки избранного: %v", err)
	}

	listCmd := app.createListCommand()

	output := captureOutput(t, func() {
		listCmd.SetArgs([]string{"--favorites"})
		if err := listCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды list: %v", err)
		}
	})

	if !strings.Contains(output, "Favorite Sound") {
		t.Errorf("Вывод не содержит избранный звук: %s", output)
	}
	if strings.Contains(output, "Plain Sound") {
		t.Errorf("Вывод содержит не избранный звук: %s", output)
	}
}

// TestCmdDelete проверяет, что команда `delete` удаляет указанный звук
func TestCmdDelete(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{ID: "1", Name: "Sound 1", Category: sound.CategoryOther})
	addTestSound(t, app, sound.Record{ID: "2", Name: "Sound 2", Category: sound.CategoryOther})

	if len(app.Library.List()) != 2 {
		t.Fatalf("Ожидалось 2 звука, получено %d", len(app.Library.List()))
	}

	ctx := context.Background()
	deleteCmd := app.createDeleteCommand(ctx)

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"1"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	if !strings.Contains(output, "🗑️  Удаляем звук: Sound 1") {
		t.Errorf("Команда delete не отобразила ожидаемый вывод: %s", output)
	}

	remaining := app.Library.List()
	if len(remaining) != 1 {
		t.Fatalf("Ожидался 1 звук после удаления, получено %d", len(remaining))
	}

	if remaining[0].Name != "Sound 2" {
		t.Errorf("Ожидался Sound 2, получено: %s", remaining[0].Name)
	}
}

// TestCmdDeleteMissing проверяет, что удаление отсутствующего звука не является ошибкой
func TestCmdDeleteMissing(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	ctx := context.Background()
	deleteCmd := app.createDeleteCommand(ctx)

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"nonexistent"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Команда delete завершилась с ошибкой для отсутствующего звука: %v", err)
		}
	})

	if !strings.Contains(output, "не найден") {
		t.Errorf("Команда delete не отобразила сообщение об отсутствующем звуке: %s", output)
	}
}

// TestCmdFavorite проверяет переключение избранного
func TestCmdFavorite(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{ID: "1", Name: "Sound 1", Category: sound.CategoryOther})

	favoriteCmd := app.createFavoriteCommand()

	output := captureOutput(t, func() {
		favoriteCmd.SetArgs([]string{"1"})
		if err := favoriteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды favorite: %v", err)
		}
	})

	if !strings.Contains(output, "⭐ Звук 'Sound 1' добавлен в избранное") {
		t.Errorf("Команда favorite не отобразила ожидаемый вывод: %s", output)
	}

	rec, err := app.Library.ByID("1")
	if err != nil {
		t.Fatalf("Ошибка поиска звука: %v", err)
	}
	if !rec.Favorite {
		t.Error("Звук должен быть в избранном")
	}
}

// TestCmdEdit проверяет обновление метаданных звука
func TestCmdEdit(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{ID: "1", Name: "Old Name", Category: sound.CategoryOther})

	editCmd := app.createEditCommand()

	captureOutput(t, func() {
		editCmd.SetArgs([]string{"1", "--name", "New Name", "--category", "Predator", "--tags", "coyote, coyote , night"})
		if err := editCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды edit: %v", err)
		}
	})

	rec, err := app.Library.ByID("1")
	if err != nil {
		t.Fatalf("Ошибка поиска звука: %v", err)
	}

	if rec.Name != "New Name" {
		t.Errorf("Ожидалось имя 'New Name', получено %q", rec.Name)
	}
	if rec.Category != sound.CategoryPredator {
		t.Errorf("Ожидалась категория Predator, получено %q", rec.Category)
	}
	// Теги очищаются от пробелов и дубликатов
	if len(rec.Tags) != 2 || rec.Tags[0] != "coyote" || rec.Tags[1] != "night" {
		t.Errorf("Неожиданные теги: %v", rec.Tags)
	}
}

// TestCmdDownloadInvalidURL проверяет обработку неверного URL в команде download
func TestCmdDownloadInvalidURL(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	ctx := context.Background()
	downloadCmd := app.createDownloadCommand(ctx)
	downloadCmd.SilenceUsage = true
	downloadCmd.SilenceErrors = true

	captureOutput(t, func() {
		downloadCmd.SetArgs([]string{"not-a-youtube-url"})
		err := downloadCmd.Execute()
		if err == nil {
			t.Error("Ожидалась ошибка для неверного URL")
		} else if !strings.Contains(err.Error(), "не удалось извлечь ID видео") {
			t.Errorf("Неожиданная ошибка команды download: %v", err)
		}
	})
}

// TestExtractVideoID проверяет извлечение ID видео из разных форматов URL
func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"https://example.com/video", "", true},
	}

	for _, c := range cases {
		got, err := extractVideoID(c.url)
		if c.wantErr {
			if err == nil {
				t.Errorf("extractVideoID(%q): ожидалась ошибка", c.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("extractVideoID(%q): неожиданная ошибка: %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("extractVideoID(%q) = %q, ожидалось %q", c.url, got, c.want)
		}
	}
}

// TestNormalizeTags проверяет очистку тегов от пробелов и дубликатов
func TestNormalizeTags(t *testing.T) {
	tags := normalizeTags([]string{" coyote ", "night", "coyote", "", "  "})
	if len(tags) != 2 || tags[0] != "coyote" || tags[1] != "night" {
		t.Errorf("Неожиданный результат: %v", tags)
	}
}

// TestCmdDeleteSharedWithoutBucket проверяет, что удаление записи с удаленным
// URI без настроенного S3 пропускает удаление из хранилища
func TestCmdDeleteSharedWithoutBucket(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{
		ID:       "1",
		Name:     "Shared Sound",
		Category: sound.CategoryOther,
		URI:      "https://storage.example.com/bucket/calls/shared.mp3",
	})

	ctx := context.Background()
	deleteCmd := app.createDeleteCommand(ctx)

	output := captureOutput(t, func() {
		deleteCmd.SetArgs([]string{"1"})
		if err := deleteCmd.Execute(); err != nil {
			t.Errorf("Ошибка выполнения команды delete: %v", err)
		}
	})

	// Без бакета в конфигурации обращения к S3 нет
	if strings.Contains(output, "S3") {
		t.Errorf("Без настроенного бакета вывод не должен упоминать S3: %s", output)
	}

	if !strings.Contains(output, "✅ Звук успешно удален из библиотеки") {
		t.Errorf("Запись должна удаляться из библиотеки: %s", output)
	}

	if len(app.Library.List()) != 0 {
		t.Errorf("Ожидалась пустая библиотека, получено %d записей", len(app.Library.List()))
	}
}

// TestIsSharedURI проверяет распознавание удаленных URI
func TestIsSharedURI(t *testing.T) {
	cases := []struct {
		uri  string
		want bool
	}{
		{"https://storage.example.com/bucket/calls/a.mp3", true},
		{"http://storage.example.com/bucket/calls/a.mp3", true},
		{"/home/user/.calltune/sounds/a.mp3", false},
		{"file:///home/user/.calltune/sounds/a.mp3", false},
	}

	for _, c := range cases {
		if got := isSharedURI(c.uri); got != c.want {
			t.Errorf("isSharedURI(%q) = %v, ожидалось %v", c.uri, got, c.want)
		}
	}
}

// TestExtractKeyFromURL проверяет извлечение ключа S3 из URL
func TestExtractKeyFromURL(t *testing.T) {
	cases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://storage.example.com/bucket/calls/shared.mp3", "calls/shared.mp3", false},
		{"https://storage.example.com/bucket/shared.mp3", "shared.mp3", false},
		{"https://storage.example.com/onlybucket", "", true},
	}

	for _, c := range cases {
		got, err := extractKeyFromURL(c.url)
		if c.wantErr {
			if err == nil {
				t.Errorf("extractKeyFromURL(%q): ожидалась ошибка", c.url)
			}
			continue
		}
		if err != nil {
			t.Errorf("extractKeyFromURL(%q): неожиданная ошибка: %v", c.url, err)
			continue
		}
		if got != c.want {
			t.Errorf("extractKeyFromURL(%q) = %q, ожидалось %q", c.url, got, c.want)
		}
	}
}

// TestReplaceSoundURI проверяет перенаправление записи на выложенную копию
func TestReplaceSoundURI(t *testing.T) {
	tempDir := t.TempDir()
	app := createTestApplication(t, tempDir)

	addTestSound(t, app, sound.Record{ID: "1", Name: "Sound 1", Category: sound.CategoryOther})

	sharedURL := "https://storage.example.com/bucket/calls/sound1.mp3"
	if err := app.replaceSoundURI("1", sharedURL); err != nil {
		t.Fatalf("Ошибка замены URI: %v", err)
	}

	rec, err := app.Library.ByID("1")
	if err != nil {
		t.Fatalf("Ошибка поиска звука: %v", err)
	}
	if rec.URI != sharedURL {
		t.Errorf("Ожидался URI %q, получено %q", sharedURL, rec.URI)
	}

	// Отсутствующая запись - ошибка
	if err := app.replaceSoundURI("nonexistent", sharedURL); err == nil {
		t.Error("Ожидалась ошибка для отсутствующей записи")
	}
}

// TestNonBlockingProgress проверяет, что колбэк прогресса не блокирует
// чтение, когда потребитель прогресса уже завершился
func TestNonBlockingProgress(t *testing.T) {
	progressChan := make(chan int64)
	onProgress := nonBlockingProgress(progressChan)

	done := make(chan struct{})
	go func() {
		// Никто не читает из канала - отправки должны отбрасываться
		onProgress(100)
		onProgress(200)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Колбэк прогресса заблокировался без потребителя")
	}
}
