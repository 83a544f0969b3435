// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	SoundsDir      string `yaml:"sounds_dir"`       // Каталог библиотеки звуков
	DownloadDir    string `yaml:"download_dir"`     // Каталог для скачанных файлов
	PollIntervalMs int    `yaml:"poll_interval_ms"` // Период опроса плеера в миллисекундах
	BackendURL     string `yaml:"backend_url"`      // URL сервиса аутентификации
	BackendAnonKey string `yaml:"backend_anon_key"` // Публичный ключ сервиса аутентификации
	SessionFile    string `yaml:"session_file"`     // Файл локальной сессии
	AwsBucketName  string `yaml:"aws_bucket_name"`
	AwsAccessKey   string `yaml:"aws_access_key"`
	AwsSecretKey   string `yaml:"aws_secret_key"`
	AwsRegion      string `yaml:"aws_region"`
	AwsEndpoint    string `yaml:"aws_endpoint"`
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Отсутствующий файл не является ошибкой - используются значения по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := strings.Replace(filePath, "~", home, 1)

	config := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	if config.SoundsDir == "" {
		config.SoundsDir = filepath.Join("~", ".calltune", "sounds")
	}
	if config.DownloadDir == "" {
		config.DownloadDir = "~/Downloads"
	}
	if config.PollIntervalMs == 0 {
		config.PollIntervalMs = 500
	}
	if config.SessionFile == "" {
		config.SessionFile = filepath.Join("~", ".calltune", "session.json")
	}

	// Раскрываем тильду в путях
	config.SoundsDir = strings.Replace(config.SoundsDir, "~", home, 1)
	config.DownloadDir = strings.Replace(config.DownloadDir, "~", home, 1)
	config.SessionFile = strings.Replace(config.SessionFile, "~", home, 1)

	return config, nil
}
