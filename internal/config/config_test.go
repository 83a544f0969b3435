package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadConfigFromFile(t *testing.T) {
	// Создаем временный файл конфигурации
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	// Создаем тестовую конфигурацию
	testConfig := Config{
		SoundsDir:      "~/test-sounds",
		DownloadDir:    "~/test-downloads",
		PollIntervalMs: 250,
		BackendURL:     "https://backend.example.com",
		BackendAnonKey: "anon-key",
		AwsBucketName:  "test-bucket",
		AwsAccessKey:   "test-access-key",
		AwsSecretKey:   "test-secret-key",
		AwsRegion:      "us-east-1",
		AwsEndpoint:    "https://s3.amazonaws.com",
	}

	// Сериализуем конфигурацию в YAML
	data, err := yaml.Marshal(testConfig)
	if err != nil {
		t.Fatalf("Ошибка сериализации конфигурации: %v", err)
	}

	// Записываем в файл
	err = os.WriteFile(configPath, data, 0644)
	if err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	// Загружаем конфигурацию
	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	// Проверяем, что конфигурация загружена корректно
	if loadedConfig.BackendURL != testConfig.BackendURL {
		t.Errorf("Ожидался BackendURL: %s, получено: %s", testConfig.BackendURL, loadedConfig.BackendURL)
	}
	if loadedConfig.BackendAnonKey != testConfig.BackendAnonKey {
		t.Errorf("Ожидался BackendAnonKey: %s, получено: %s", testConfig.BackendAnonKey, loadedConfig.BackendAnonKey)
	}
	if loadedConfig.PollIntervalMs != testConfig.PollIntervalMs {
		t.Errorf("Ожидался PollIntervalMs: %d, получено: %d", testConfig.PollIntervalMs, loadedConfig.PollIntervalMs)
	}
	if loadedConfig.AwsBucketName != testConfig.AwsBucketName {
		t.Errorf("Ожидался AwsBucketName: %s, получено: %s", testConfig.AwsBucketName, loadedConfig.AwsBucketName)
	}
	if loadedConfig.AwsRegion != testConfig.AwsRegion {
		t.Errorf("Ожидался AwsRegion: %s, получено: %s", testConfig.AwsRegion, loadedConfig.AwsRegion)
	}

	// Проверяем, что пути раскрываются с тильдой
	home, _ := os.UserHomeDir()
	expectedSoundsDir := strings.Replace(testConfig.SoundsDir, "~", home, 1)
	if loadedConfig.SoundsDir != expectedSoundsDir {
		t.Errorf("Ожидался SoundsDir: %s, получено: %s", expectedSoundsDir, loadedConfig.SoundsDir)
	}
	expectedDownloadDir := strings.Replace(testConfig.DownloadDir, "~", home, 1)
	if loadedConfig.DownloadDir != expectedDownloadDir {
		t.Errorf("Ожидался DownloadDir: %s, получено: %s", expectedDownloadDir, loadedConfig.DownloadDir)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Отсутствующий файл конфигурации - не ошибка, работают значения по умолчанию
	loadedConfig, err := LoadConfig(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatalf("Отсутствующий файл конфигурации не должен быть ошибкой: %v", err)
	}

	home, _ := os.UserHomeDir()

	if loadedConfig.SoundsDir != filepath.Join(home, ".calltune", "sounds") {
		t.Errorf("Неожиданный SoundsDir по умолчанию: %s", loadedConfig.SoundsDir)
	}
	if loadedConfig.PollIntervalMs != 500 {
		t.Errorf("Ожидался PollIntervalMs по умолчанию 500, получено: %d", loadedConfig.PollIntervalMs)
	}
	if !strings.HasPrefix(loadedConfig.DownloadDir, home) {
		t.Errorf("DownloadDir должен раскрываться от домашнего каталога: %s", loadedConfig.DownloadDir)
	}
	if loadedConfig.SessionFile != filepath.Join(home, ".calltune", "session.json") {
		t.Errorf("Неожиданный SessionFile по умолчанию: %s", loadedConfig.SessionFile)
	}
}

func TestPartialConfig(t *testing.T) {
	// Создаем минимальную конфигурацию (только бакет)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "minimal_config.yaml")

	err := os.WriteFile(configPath, []byte("aws_bucket_name: test-bucket\n"), 0644)
	if err != nil {
		t.Fatalf("Ошибка записи файла конфигурации: %v", err)
	}

	loadedConfig, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if loadedConfig.AwsBucketName != "test-bucket" {
		t.Errorf("Ожидался AwsBucketName: test-bucket, получено: %s", loadedConfig.AwsBucketName)
	}
	// Остальные поля заполняются значениями по умолчанию
	if loadedConfig.PollIntervalMs != 500 {
		t.Errorf("Ожидался PollIntervalMs по умолчанию 500, получено: %d", loadedConfig.PollIntervalMs)
	}
}
