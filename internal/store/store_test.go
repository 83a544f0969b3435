package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazadus/go-calltune/internal/sound"
)

func testRecords() []sound.Record {
	return []sound.Record{
		{
			ID:        "1",
			Name:      "Howl",
			Duration:  30,
			URI:       "file://a.mp3",
			Size:      1024,
			DateAdded: "2024-01-01T00:00:00Z",
			Category:  sound.CategoryPredator,
			Tags:      []string{"wolf", "night"},
		},
		{
			ID:       "2",
			Name:     "Rabbit Distress",
			Duration: 45.5,
			URI:      "file://b.mp3",
			Category: sound.CategoryDistress,
			Favorite: true,
			Tags:     []string{},
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	records := testRecords()
	if err := store.WriteAll(records); err != nil {
		t.Fatalf("Ошибка записи коллекции: %v", err)
	}

	loaded, err := store.ReadAll()
	if err != nil {
		t.Fatalf("Ошибка чтения коллекции: %v", err)
	}

	if len(loaded) != len(records) {
		t.Fatalf("Ожидалось %d записей, получено %d", len(records), len(loaded))
	}

	// Проверяем, что поля пережили цикл запись-чтение
	for i, rec := range records {
		got := loaded[i]
		if got.ID != rec.ID {
			t.Errorf("Запись %d: ожидался ID %q, получено %q", i, rec.ID, got.ID)
		}
		if got.Name != rec.Name {
			t.Errorf("Запись %d: ожидалось Name %q, получено %q", i, rec.Name, got.Name)
		}
		if got.Duration != rec.Duration {
			t.Errorf("Запись %d: ожидалась Duration %v, получено %v", i, rec.Duration, got.Duration)
		}
		if got.Category != rec.Category {
			t.Errorf("Запись %d: ожидалась Category %q, получено %q", i, rec.Category, got.Category)
		}
		if got.Favorite != rec.Favorite {
			t.Errorf("Запись %d: ожидалось Favorite %v, получено %v", i, rec.Favorite, got.Favorite)
		}
		if len(got.Tags) != len(rec.Tags) {
			t.Errorf("Запись %d: ожидалось %d тегов, получено %d", i, len(rec.Tags), len(got.Tags))
		}
	}
}

func TestFileStoreReadEmpty(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	// Файл данных еще не существует - коллекция должна быть пустой
	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("Чтение отсутствующего файла не должно возвращать ошибку: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Ожидалась пустая коллекция, получено %d записей", len(records))
	}
}

func TestFileStoreCopyAsset(t *testing.T) {
	tempDir := t.TempDir()
	store, err := NewFileStore(filepath.Join(tempDir, "sounds"))
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	// Создаем исходный файл вне управляемого каталога
	srcPath := filepath.Join(tempDir, "howl.mp3")
	if err := os.WriteFile(srcPath, []byte("mp3-data"), 0644); err != nil {
		t.Fatalf("Ошибка создания исходного файла: %v", err)
	}

	newURI, err := store.CopyAsset(context.Background(), srcPath)
	if err != nil {
		t.Fatalf("Ошибка копирования файла: %v", err)
	}

	// Копия должна лежать в управляемом каталоге
	if !store.Owns(newURI) {
		t.Errorf("Скопированный файл должен принадлежать хранилищу: %s", newURI)
	}

	data, err := os.ReadFile(newURI)
	if err != nil {
		t.Fatalf("Ошибка чтения копии: %v", err)
	}
	if string(data) != "mp3-data" {
		t.Errorf("Содержимое копии не совпадает с исходным")
	}
}

func TestFileStoreCopyAssetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	// Копирование несуществующего файла должно возвращать ошибку
	_, err = store.CopyAsset(context.Background(), "/nonexistent/missing.mp3")
	if err == nil {
		t.Error("Ожидалась ошибка при копировании несуществующего файла")
	}
}

func TestFileStoreDeleteAsset(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	path := filepath.Join(dir, "call.mp3")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatalf("Ошибка создания файла: %v", err)
	}

	if err := store.DeleteAsset(context.Background(), path); err != nil {
		t.Fatalf("Ошибка удаления файла: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Файл должен быть удален")
	}
}

func TestFileStoreOwns(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("Ошибка создания хранилища: %v", err)
	}

	cases := []struct {
		uri  string
		owns bool
	}{
		{filepath.Join(dir, "call.mp3"), true},
		{"file://" + filepath.Join(dir, "call.mp3"), true},
		{"/tmp/other/call.mp3", false},
		{"https://example.com/call.mp3", false},
	}

	for _, c := range cases {
		if got := store.Owns(c.uri); got != c.owns {
			t.Errorf("Owns(%q): ожидалось %v, получено %v", c.uri, c.owns, got)
		}
	}
}

func TestMemStoreRoundTrip(t *testing.T) {
	store := NewMemStore()

	// Пустое хранилище возвращает пустую коллекцию
	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("Ошибка чтения пустого хранилища: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Ожидалась пустая коллекция, получено %d записей", len(records))
	}

	if err := store.WriteAll(testRecords()); err != nil {
		t.Fatalf("Ошибка записи коллекции: %v", err)
	}

	loaded, err := store.ReadAll()
	if err != nil {
		t.Fatalf("Ошибка чтения коллекции: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Ожидалось 2 записи, получено %d", len(loaded))
	}
	if loaded[0].ID != "1" || loaded[1].ID != "2" {
		t.Error("Порядок записей должен сохраняться")
	}
}

func TestMemStoreAssetsAreNoOps(t *testing.T) {
	store := NewMemStore()
	ctx := context.Background()

	// В key-value режиме файловые операции ничего не делают
	uri, err := store.CopyAsset(ctx, "blob:abc123")
	if err != nil {
		t.Errorf("CopyAsset не должен возвращать ошибку: %v", err)
	}
	if uri != "blob:abc123" {
		t.Errorf("URI должен остаться прежним, получено %q", uri)
	}

	if err := store.DeleteAsset(ctx, "blob:abc123"); err != nil {
		t.Errorf("DeleteAsset не должен возвращать ошибку: %v", err)
	}

	if store.Owns("blob:abc123") {
		t.Error("MemStore не должен владеть файлами")
	}
}
