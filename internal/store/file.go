package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hazadus/go-calltune/internal/sound"
)

const dataFileName = "sounds.json"

// FileStore хранит коллекцию в JSON-файле внутри каталога со звуками
type FileStore struct {
	dir string
}

// NewFileStore создает файловое хранилище, при необходимости создавая каталог
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания каталога звуков: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir возвращает путь к управляемому каталогу
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) dataFilePath() string {
	return filepath.Join(s.dir, dataFileName)
}

// ReadAll читает коллекцию из sounds.json
func (s *FileStore) ReadAll() ([]sound.Record, error) {
	data, err := os.ReadFile(s.dataFilePath())
	if err != nil {
		// Если файл не найден, коллекция считается пустой
		if os.IsNotExist(err) {
			return []sound.Record{}, nil
		}
		return nil, fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	if len(data) == 0 {
		return []sound.Record{}, nil
	}

	var records []sound.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("ошибка разбора данных: %w", err)
	}
	return records, nil
}

// WriteAll перезаписывает sounds.json целиком
func (s *FileStore) WriteAll(records []sound.Record) error {
	if records == nil {
		records = []sound.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	if err := os.WriteFile(s.dataFilePath(), data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}
	return nil
}

// CopyAsset копирует аудиофайл в каталог звуков и возвращает путь к копии
func (s *FileStore) CopyAsset(ctx context.Context, sourceURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	srcPath := PathFromURI(sourceURI)
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("ошибка открытия исходного файла: %w", err)
	}
	defer src.Close()

	// Имя копии берем из исходного имени; при коллизии добавляем метку времени
	fileName := filepath.Base(srcPath)
	if fileName == "." || fileName == string(filepath.Separator) {
		fileName = fmt.Sprintf("sound-%d.mp3", time.Now().UnixMilli())
	}
	destPath := filepath.Join(s.dir, fileName)
	if _, err := os.Stat(destPath); err == nil {
		ext := filepath.Ext(fileName)
		base := strings.TrimSuffix(fileName, ext)
		destPath = filepath.Join(s.dir, fmt.Sprintf("%s-%d%s", base, time.Now().UnixMilli(), ext))
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла в хранилище: %w", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("ошибка копирования файла: %w", err)
	}

	return destPath, nil
}

// DeleteAsset удаляет аудиофайл из каталога звуков
func (s *FileStore) DeleteAsset(ctx context.Context, uri string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(PathFromURI(uri)); err != nil {
		return fmt.Errorf("ошибка удаления файла: %w", err)
	}
	return nil
}

// Owns сообщает, лежит ли файл внутри каталога звуков
func (s *FileStore) Owns(uri string) bool {
	path := PathFromURI(uri)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return false
	}
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// PathFromURI приводит URI вида file:// к обычному пути
func PathFromURI(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
