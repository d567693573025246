package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"audioscribe/internal/app/engine"
	"audioscribe/internal/app/upload"
)

// Config is the full service configuration, loaded from an optional YAML
// file and overridden by environment variables.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Storage StorageConfig `yaml:"storage"`
	Engine  EngineConfig  `yaml:"engine"`
	Upload  UploadConfig  `yaml:"upload"`
	Redis   RedisConfig   `yaml:"redis"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	Environment  string        `yaml:"environment"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DBConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // postgres connection string
}

type StorageConfig struct {
	Backend   string `yaml:"backend"` // local or minio
	UploadDir string `yaml:"upload_dir"`
	Minio     struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Bucket    string `yaml:"bucket"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`
}

type EngineConfig struct {
	Kind         string `yaml:"kind"` // whisper_cpp or openai
	ModelVariant string `yaml:"model_variant"`
	BinaryPath   string `yaml:"binary_path"`
	ModelDir     string `yaml:"model_dir"`
	Language     string `yaml:"language"`
	OpenAIKey    string `yaml:"-"` // environment only, never from file
}

type UploadConfig struct {
	MaxSizeMB      int64    `yaml:"max_size_mb"`
	AllowedFormats []string `yaml:"allowed_formats"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"` // empty disables the result cache
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	cfg := Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.Server.Environment = "development"
	cfg.Server.ReadTimeout = 30 * time.Second
	cfg.Server.WriteTimeout = 10 * time.Minute // inference runs inside the request
	cfg.Server.IdleTimeout = 120 * time.Second
	cfg.DB.Driver = "sqlite"
	cfg.DB.Path = "data/audioscribe.db"
	cfg.Storage.Backend = "local"
	cfg.Storage.UploadDir = "uploads"
	cfg.Engine.Kind = "whisper_cpp"
	cfg.Engine.ModelVariant = engine.DefaultVariant
	cfg.Upload.MaxSizeMB = 100
	cfg.Upload.AllowedFormats = upload.DefaultAllowedFormats
	return cfg
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment variables. A .env file in the working
// directory is loaded first so env overrides work in development too.
func Load(path string) (Config, error) {
	// Missing .env is fine; variables may be set system-wide.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "AUDIOSCRIBE_HOST")
	setString(&cfg.Server.Port, "AUDIOSCRIBE_PORT")
	setString(&cfg.Server.Environment, "AUDIOSCRIBE_ENV")
	setString(&cfg.DB.Driver, "AUDIOSCRIBE_DB_DRIVER")
	setString(&cfg.DB.Path, "AUDIOSCRIBE_DB_PATH")
	setString(&cfg.DB.DSN, "AUDIOSCRIBE_DB_DSN")
	setString(&cfg.Storage.Backend, "AUDIOSCRIBE_STORAGE")
	setString(&cfg.Storage.UploadDir, "AUDIOSCRIBE_UPLOAD_DIR")
	setString(&cfg.Storage.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Storage.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Storage.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&cfg.Storage.Minio.Bucket, "MINIO_BUCKET")
	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		cfg.Storage.Minio.UseSSL = v == "true"
	}
	setString(&cfg.Engine.Kind, "AUDIOSCRIBE_ENGINE")
	setString(&cfg.Engine.ModelVariant, "AUDIOSCRIBE_MODEL_VARIANT")
	setString(&cfg.Engine.BinaryPath, "WHISPER_CPP_BINARY")
	setString(&cfg.Engine.ModelDir, "WHISPER_CPP_MODEL_DIR")
	setString(&cfg.Engine.Language, "AUDIOSCRIBE_LANGUAGE")
	cfg.Engine.OpenAIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if v := os.Getenv("AUDIOSCRIBE_MAX_UPLOAD_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.Upload.MaxSizeMB = n
		}
	}
	if v := os.Getenv("AUDIOSCRIBE_ALLOWED_FORMATS"); v != "" {
		cfg.Upload.AllowedFormats = strings.Split(v, ",")
	}
	setString(&cfg.Redis.Addr, "AUDIOSCRIBE_REDIS_ADDR")
}

func (cfg Config) validate() error {
	switch cfg.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
	switch cfg.Storage.Backend {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	switch cfg.Engine.Kind {
	case "whisper_cpp", "openai":
	default:
		return fmt.Errorf("unknown engine %q", cfg.Engine.Kind)
	}
	if _, err := engine.VariantFile(cfg.Engine.ModelVariant); err != nil {
		return err
	}
	return nil
}

// MaxUploadBytes converts the configured limit to bytes.
func (cfg Config) MaxUploadBytes() int64 {
	return cfg.Upload.MaxSizeMB * 1024 * 1024
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
