package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config определяет структуру конфигурации всего приложения целиком
type Config struct {
	Backend Backend `yaml:"backend"`
	Catalog Catalog `yaml:"catalog"`
	Storage Storage `yaml:"storage"`
	Logger  Logger  `yaml:"logger"`
}

// Backend содержит конфигурацию клиента бэкенда магазина
type Backend struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Catalog содержит конфигурацию клиента каталога товаров
// каталог живёт на отдельном хосте, поэтому настраивается независимо
type Catalog struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Storage содержит конфигурацию локального хранилища
type Storage struct {
	Path string `yaml:"path"`
}

// Logger содержит конфигурацию для логгера
type Logger struct {
	Level string `yaml:"level"`
}

// Default возвращает конфигурацию по умолчанию
// она рабочая сама по себе: конфиг-файл нужен только для переопределений
func Default() *Config {
	return &Config{
		Backend: Backend{
			BaseURL: "http://localhost:3000",
			Timeout: 15 * time.Second,
		},
		Catalog: Catalog{
			BaseURL: "https://fakestoreapi.com",
			Timeout: 15 * time.Second,
		},
		Storage: Storage{
			Path: "fakestore.db",
		},
		Logger: Logger{
			Level: "INFO",
		},
	}
}

// Load загружает конфигурацию из файла, накладывая её на значения по умолчанию
// отсутствующий файл — не ошибка: приложение работает на дефолтах
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		return cfg, nil
	}

	file, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(file, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal %s: %w", configPath, err)
	}

	return cfg, nil
}
