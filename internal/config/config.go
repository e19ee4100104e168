package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3, cloudflare_r2
		BasePath  string `yaml:"base_path"`  // For local storage
		BaseURL   string `yaml:"base_url"`   // Public URL base
		Bucket    string `yaml:"bucket"`     // For S3/R2
		Region    string `yaml:"region"`     // For S3
		AccessKey string `yaml:"access_key"` // For S3/R2
		SecretKey string `yaml:"secret_key"` // For S3/R2
		Endpoint  string `yaml:"endpoint"`   // For R2 or custom S3
	} `yaml:"storage"`

	Upload struct {
		MaxSize        int64    `yaml:"max_size"`        // Max file size in bytes
		AllowedTypes   []string `yaml:"allowed_types"`   // Allowed MIME types
		ThumbnailWidth int      `yaml:"thumbnail_width"` // Bounding box for thumbnails
		ImageQuality   int      `yaml:"image_quality"`   // JPEG quality (1-100)
	} `yaml:"upload"`
}

// Defaults applied when the config file leaves a section empty.
const (
	DefaultMaxUploadSize  = 5 * 1024 * 1024 // 5MB
	DefaultThumbnailWidth = 400
	DefaultImageQuality   = 85
)

func DefaultAllowedTypes() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
}

var AppConfig *Config

// LoadConfig fills AppConfig, either from environment variables (when
// DATABASE_URL is set, the test/deploy mode) or from the yaml config file.
func LoadConfig() {
	if os.Getenv("DATABASE_URL") != "" {
		AppConfig = loadFromEnv()
		return
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := loadFromFile(configPath)
	if err != nil {
		// Config is a boot-time requirement, nothing to do without it
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	AppConfig = cfg
}

func loadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func loadFromEnv() *Config {
	var cfg Config

	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = DefaultMaxUploadSize
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = DefaultAllowedTypes()
	}
	if cfg.Upload.ThumbnailWidth == 0 {
		cfg.Upload.ThumbnailWidth = DefaultThumbnailWidth
	}
	if cfg.Upload.ImageQuality <= 0 || cfg.Upload.ImageQuality > 100 {
		cfg.Upload.ImageQuality = DefaultImageQuality
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
