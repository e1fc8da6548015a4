// Package config carga la configuración del servicio: defaults, YAML opcional y env.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

var (
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY is required")
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
)

const maxConfigFileSize = 1 << 20

type Config struct {
	HTTP   HTTPConfig   `koanf:"http"`
	Gemini GeminiConfig `koanf:"gemini"`
	JWT    JWTConfig    `koanf:"jwt"`
	Auth   AuthConfig   `koanf:"auth"`
	Mongo  MongoConfig  `koanf:"mongo"`
	DB     DBConfig     `koanf:"db"`
	CORS   CORSConfig   `koanf:"cors"`
	Log    LogConfig    `koanf:"log"`
	App    AppConfig    `koanf:"app"`
}

type HTTPConfig struct {
	Addr string `koanf:"addr"`
}

type GeminiConfig struct {
	APIKey  string        `koanf:"api_key"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

type JWTConfig struct {
	Secret string `koanf:"secret"`
}

type AuthConfig struct {
	CookieName string `koanf:"cookie_name"`
}

type MongoConfig struct {
	URI      string `koanf:"uri"`
	Database string `koanf:"database"`
}

// DBConfig es el backend Postgres alternativo (mismo DB_DSN de siempre).
type DBConfig struct {
	DSN string `koanf:"dsn"`
}

type CORSConfig struct {
	AllowedOrigins string `koanf:"allowed_origins"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type AppConfig struct {
	Name string `koanf:"name"`
}

var defaults = map[string]any{
	"http.addr":            ":5000",
	"gemini.model":         "gemini-1.5-pro",
	"gemini.timeout":       "60s",
	"auth.cookie_name":     "jwt",
	"mongo.database":       "arogya-vault",
	"cors.allowed_origins": "*",
	"log.level":            "info",
	"log.format":           "text",
	"app.name":             "health-insights",
}

// envKeys mapea variables de entorno a keys de koanf.
// Solo se leen estas; el resto del entorno se ignora.
var envKeys = map[string]string{
	"HTTP_ADDR":            "http.addr",
	"GEMINI_API_KEY":       "gemini.api_key",
	"GEMINI_MODEL":         "gemini.model",
	"GEMINI_TIMEOUT":       "gemini.timeout",
	"JWT_SECRET":           "jwt.secret",
	"AUTH_COOKIE_NAME":     "auth.cookie_name",
	"MONGO_URI":            "mongo.uri",
	"MONGO_DATABASE":       "mongo.database",
	"DB_DSN":               "db.dsn",
	"CORS_ALLOWED_ORIGINS": "cors.allowed_origins",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
	"APP_NAME":             "app.name",
}

// Load arma la config con precedencia env > YAML (configPath, opcional) > defaults
// y valida los secretos obligatorios.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return nil, fmt.Errorf("config: default %s: %w", key, err)
		}
	}

	if p := strings.TrimSpace(configPath); p != "" {
		content, err := readConfigFile(p)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", p, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	// GEMINI_API: nombre viejo de la variable, se acepta como fallback.
	if k.String("gemini.api_key") == "" {
		if legacy := strings.TrimSpace(os.Getenv("GEMINI_API")); legacy != "" {
			_ = k.Set("gemini.api_key", legacy)
		}
	}

	// PORT lo setean las plataformas de deploy; gana sobre http.addr.
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		_ = k.Set("http.addr", ":"+port)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate exige los dos secretos sin los cuales el servicio no puede arrancar.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Gemini.APIKey) == "" {
		errs = append(errs, ErrMissingGeminiKey)
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		errs = append(errs, ErrMissingJWTSecret)
	}
	if c.Gemini.Timeout < 0 {
		errs = append(errs, fmt.Errorf("gemini.timeout must be >= 0, got %s", c.Gemini.Timeout))
	}
	return errors.Join(errs...)
}

// Origins devuelve la lista CSV de CORS ya limpia.
func (c CORSConfig) Origins() []string {
	out := make([]string, 0)
	for _, part := range strings.Split(c.AllowedOrigins, ",") {
		if o := strings.TrimSpace(part); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config: %s exceeds %d bytes", path, maxConfigFileSize)
	}

	buf, err := io.ReadAll(io.LimitReader(f, maxConfigFileSize))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return buf, nil
}
