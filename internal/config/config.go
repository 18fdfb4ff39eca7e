// Package config loads the blog configuration from a YAML file, environment variables and
// struct-tag defaults.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Secrets are only ever read from the environment.
	Secrets Secrets `yaml:"-"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Blog"`
	Description string `yaml:"description" default:"개발과 기술에 대한 이야기를 나누는 공간입니다."`
}

type ServerConfig struct {
	Host         string        `yaml:"host" default:"0.0.0.0"`
	Port         string        `yaml:"port" default:"3000" validate:"required,numeric"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
	CORSOrigins  []string      `yaml:"cors_origins,omitempty"`
}

type StorageConfig struct {
	Driver string       `yaml:"driver" default:"fs" validate:"oneof=fs memory sqlite s3"`
	FS     FSConfig     `yaml:"fs"`
	SQLite SQLiteConfig `yaml:"sqlite"`
	S3     S3Config     `yaml:"s3"`
}

type FSConfig struct {
	Root string `yaml:"root" default:"content"`
}

type SQLiteConfig struct {
	Path        string `yaml:"path" default:"blog.db"`
	Compression string `yaml:"compression" default:"zstd" validate:"oneof=zstd gzip"`
}

type S3Config struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix" default:"posts/"`
	Region   string `yaml:"region" default:"auto"`
	Endpoint string `yaml:"endpoint"`
}

type MarkdownConfig struct {
	Engine      string `yaml:"engine" default:"goldmark" validate:"oneof=goldmark gomarkdown"`
	SyntaxTheme string `yaml:"syntax_theme" default:"github"`
}

type AuthConfig struct {
	TokenMode     string        `yaml:"token_mode" default:"signed" validate:"oneof=signed opaque"`
	SecureCookies bool          `yaml:"secure_cookies" default:"false"`
	SessionTTL    time.Duration `yaml:"session_ttl" default:"24h"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" default:"info"`
	Format string `yaml:"format" default:"console" validate:"oneof=console json"`
}

type Secrets struct {
	AdminPassword     string
	JWTSecret         string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

var validate = validator.New()

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads the YAML file at path on top of the defaults. A missing file is not an
// error: the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. Secrets are taken exclusively from here.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if getenv == nil {
		getenv = os.Getenv
	}

	if v := getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv(EnvContentDir); v != "" {
		cfg.Storage.FS.Root = v
	}
	if v := getenv(EnvPort); v != "" {
		cfg.Server.Port = v
	}

	cfg.Secrets = Secrets{
		AdminPassword:     getenv(EnvAdminPassword),
		JWTSecret:         getenv(EnvJWTSecret),
		S3AccessKeyID:     getenv(EnvS3AccessKeyID),
		S3SecretAccessKey: getenv(EnvS3SecretAccessKey),
	}
}

// Validate checks enumerated settings and the storage driver's required fields.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if c.Storage.Driver == "s3" && c.Storage.S3.Bucket == "" {
		return fmt.Errorf("%w: storage.s3.bucket is required for the s3 driver", ErrInvalidConfig)
	}

	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("%w: auth.session_ttl must be positive", ErrInvalidConfig)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

var durationType = reflect.TypeOf(time.Duration(0))

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch {
		case field.Type() == durationType:
			if d, err := time.ParseDuration(defaultValue); err == nil {
				field.SetInt(int64(d))
			}
		case field.Kind() == reflect.String:
			field.SetString(defaultValue)
		case field.Kind() == reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case field.Kind() == reflect.Int || field.Kind() == reflect.Int64:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case field.Kind() == reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case field.Kind() == reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
