package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.yaml.in/yaml/v3"
)

const (
	DefaultGuideBaseURL   = "https://api.groq.com/openai/v1"
	DefaultGuideModel     = "llama-3.3-70b-versatile"
	DefaultWeatherBaseURL = "https://api.open-meteo.com/v1/forecast"
)

type GuideConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	APIKey         string  `yaml:"api_key"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	HistoryLimit   int     `yaml:"history_limit"`
}

func (g GuideConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type WeatherConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Disabled       bool   `yaml:"disabled"`
}

func (w WeatherConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutSeconds) * time.Second
}

type Config struct {
	DBPath        string        `yaml:"db_path"`
	LogPath       string        `yaml:"log_path"`
	LogLevel      string        `yaml:"log_level"`
	GenerateBatch int           `yaml:"generate_batch"`
	Guide         GuideConfig   `yaml:"guide"`
	Weather       WeatherConfig `yaml:"weather"`
}

func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		DBPath:        filepath.Join(dataDir, "studyviking.db"),
		LogPath:       "",
		LogLevel:      "info",
		GenerateBatch: 3,
		Guide: GuideConfig{
			BaseURL:        DefaultGuideBaseURL,
			Model:          DefaultGuideModel,
			Temperature:    0.7,
			TimeoutSeconds: 30,
			HistoryLimit:   20,
		},
		Weather: WeatherConfig{
			BaseURL:        DefaultWeatherBaseURL,
			TimeoutSeconds: 10,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadDotEnv loads .env files into the process environment. Missing files
// are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// FromEnv applies STUDYVIKING_* overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("STUDYVIKING_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("STUDYVIKING_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("STUDYVIKING_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvInt("STUDYVIKING_GENERATE_BATCH"); ok && v > 0 {
		cfg.GenerateBatch = v
	}
	if v, ok := getEnvString("STUDYVIKING_API_BASE_URL"); ok {
		cfg.Guide.BaseURL = v
	}
	if v, ok := getEnvString("STUDYVIKING_MODEL"); ok {
		cfg.Guide.Model = v
	}
	if v, ok := getEnvString("GROQ_API_KEY"); ok {
		cfg.Guide.APIKey = v
	}
	if v, ok := getEnvString("STUDYVIKING_API_KEY"); ok {
		cfg.Guide.APIKey = v
	}
	if v, ok := getEnvFloat("STUDYVIKING_TEMPERATURE"); ok && v >= 0 {
		cfg.Guide.Temperature = v
	}
	if v, ok := getEnvInt("STUDYVIKING_API_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.Guide.TimeoutSeconds = v
	}
	if v, ok := getEnvInt("STUDYVIKING_HISTORY_LIMIT"); ok && v > 0 {
		cfg.Guide.HistoryLimit = v
	}
	if v, ok := getEnvString("STUDYVIKING_WEATHER_URL"); ok {
		cfg.Weather.BaseURL = v
	}
	if v, ok := getEnvBool("STUDYVIKING_WEATHER_DISABLED"); ok {
		cfg.Weather.Disabled = v
	}
	return cfg
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "studyviking")
	}
	return ".studyviking"
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
