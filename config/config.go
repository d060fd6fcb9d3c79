package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"nodeguard/ml"
)

// Config is the root configuration.
type Config struct {
	Http   HTTPConfig   `yaml:"http"`
	Models ModelsConfig `yaml:"models"`
	Log    LogConfig    `yaml:"log"`
}

// HTTPConfig controls the web front-end.
type HTTPConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ModelsConfig locates the serialized models.
type ModelsConfig struct {
	Dir       string `yaml:"dir"`
	SVM       string `yaml:"svm_file"`
	RF        string `yaml:"rf_file"`
	ANN       string `yaml:"ann_file"`
	Linear    string `yaml:"linear_file"`
	CacheSize int    `yaml:"cache_size"`
	Watch     bool   `yaml:"watch"`
}

// Specs maps the configured files onto the four registry entries.
func (m ModelsConfig) Specs() []ml.ModelSpec {
	files := map[ml.Kind]string{
		ml.KindSVM:          m.SVM,
		ml.KindRandomForest: m.RF,
		ml.KindMLP:          m.ANN,
		ml.KindLinear:       m.Linear,
	}
	specs := ml.DefaultModelSpecs()
	for i := range specs {
		if file := files[specs[i].Kind]; file != "" {
			specs[i].File = file
		}
	}
	return specs
}

// LogConfig controls logging output.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a configuration usable without any file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Load reads a YAML config file, applies .env and NODEGUARD_* overrides
// and fills defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	ApplyDefaults(&cfg)
	// relative model dirs resolve against the config file location
	if !filepath.IsAbs(cfg.Models.Dir) {
		cfg.Models.Dir = filepath.Join(filepath.Dir(path), cfg.Models.Dir)
	}

	LoadEnv(&cfg)
	return &cfg, nil
}

// LoadEnv reads .env files (the working directory's .env by default) into
// the process environment, then applies NODEGUARD_* overrides. Variables
// already set win over .env entries.
func LoadEnv(cfg *Config, envFiles ...string) {
	// a missing .env is fine
	_ = godotenv.Load(envFiles...)
	ApplyEnv(cfg)
}

// FindConfigFile looks for the config in the given path, then the working
// directory, its parent, and next to the executable.
func FindConfigFile(configArg string) string {
	if configArg != "" {
		if _, err := os.Stat(configArg); err == nil {
			return configArg
		}
		log.Printf("Warning: config file not found at %s, trying default locations", configArg)
	}

	candidates := []string{"config.yaml", filepath.Join("..", "config.yaml")}
	if exePath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exePath), "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func ApplyDefaults(cfg *Config) {
	if cfg.Http.Port <= 0 {
		cfg.Http.Port = 8501
	}
	if cfg.Http.ReadTimeout <= 0 {
		cfg.Http.ReadTimeout = 15 * time.Second
	}
	if cfg.Http.WriteTimeout <= 0 {
		cfg.Http.WriteTimeout = 15 * time.Second
	}
	if cfg.Http.MaxBodyBytes <= 0 {
		cfg.Http.MaxBodyBytes = 64 << 10
	}

	if cfg.Models.Dir == "" {
		cfg.Models.Dir = "models"
	}
	if cfg.Models.SVM == "" {
		cfg.Models.SVM = "svm_model.json"
	}
	if cfg.Models.RF == "" {
		cfg.Models.RF = "rf_model.json"
	}
	if cfg.Models.ANN == "" {
		cfg.Models.ANN = "ann_model.json"
	}
	if cfg.Models.Linear == "" {
		cfg.Models.Linear = "linear_model.json"
	}
	switch {
	case cfg.Models.CacheSize == 0:
		cfg.Models.CacheSize = 1024
	case cfg.Models.CacheSize < 0:
		cfg.Models.CacheSize = 0
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.MaxSizeMB <= 0 {
		cfg.Log.MaxSizeMB = 50
	}
	if cfg.Log.MaxBackups <= 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAgeDays <= 0 {
		cfg.Log.MaxAgeDays = 28
	}
}

// ApplyEnv overrides selected settings from the environment.
func ApplyEnv(cfg *Config) {
	cfg.Http.Port = getEnvInt("NODEGUARD_PORT", cfg.Http.Port)
	cfg.Models.Dir = getEnv("NODEGUARD_MODEL_DIR", cfg.Models.Dir)
	cfg.Log.Level = getEnv("NODEGUARD_LOG_LEVEL", cfg.Log.Level)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}
