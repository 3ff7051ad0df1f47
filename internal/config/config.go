package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Log      LogConfig      `toml:"log"`
	Database DatabaseConfig `toml:"database"`
	LLM      LLMConfig      `toml:"llm"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Upload   UploadConfig   `toml:"upload"`
}

type AppConfig struct {
	Name               string   `toml:"name"`
	Version            string   `toml:"version"`
	Env                string   `toml:"env"`
	Host               string   `toml:"host"`
	Port               int      `toml:"port"`
	GinMode            string   `toml:"gin_mode"`
	CORSAllowedOrigins []string `toml:"cors_allowed_origins"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type DatabaseConfig struct {
	Driver                 string         `toml:"driver"`
	MySQL                  MySQLConfig    `toml:"mysql"`
	Postgres               PostgresConfig `toml:"postgres"`
	MaxOpenConns           int            `toml:"max_open_conns"`
	MaxIdleConns           int            `toml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int            `toml:"conn_max_lifetime_minutes"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	SSLMode  string `toml:"sslmode"`
	TimeZone string `toml:"timezone"`
}

type LLMConfig struct {
	Provider         string `toml:"provider"`
	BaseURL          string `toml:"base_url"`
	APIKey           string `toml:"api_key"`
	Model            string `toml:"model"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	ResponseLanguage string `toml:"response_language"`
}

// RabbitMQConfig leaves URL empty to disable domain events.
type RabbitMQConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type UploadConfig struct {
	MaxSizeMB          int  `toml:"max_size_mb"`
	PrecheckDuplicates bool `toml:"precheck_duplicates"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("app.port %d out of range", c.App.Port))
	}
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			errs = append(errs, fmt.Errorf("llm.api_key is required for provider %q", c.LLM.Provider))
		}
	case ProviderMock:
	default:
		errs = append(errs, fmt.Errorf("unsupported llm.provider %q", c.LLM.Provider))
	}
	if c.LLM.Provider == ProviderOpenAI && strings.TrimSpace(c.LLM.BaseURL) == "" {
		errs = append(errs, errors.New("llm.base_url is required for provider \"openai\""))
	}
	if len(c.App.CORSAllowedOrigins) == 0 {
		errs = append(errs, errors.New("app.cors_allowed_origins must list at least one origin"))
	}
	if c.Upload.MaxSizeMB <= 0 {
		errs = append(errs, fmt.Errorf("upload.max_size_mb must be positive, got %d", c.Upload.MaxSizeMB))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	m := c.Database.MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		m.User,
		m.Password,
		m.Host,
		m.Port,
		m.DB,
		m.Params,
	)
}

func (c *Config) PostgresDSN() string {
	p := c.Database.Postgres
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		p.Host,
		p.Port,
		p.User,
		p.Password,
		p.DB,
		p.SSLMode,
		p.TimeZone,
	)
}

// MaxUploadBytes is the upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) << 20
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:               "paper-summary-api",
			Version:            "1.0.0",
			Env:                "dev",
			Host:               "0.0.0.0",
			Port:               8000,
			GinMode:            "debug",
			CORSAllowedOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Database: DatabaseConfig{
			Driver: DriverMySQL,
			MySQL: MySQLConfig{
				Host:     "127.0.0.1",
				Port:     3306,
				User:     "root",
				Password: "",
				DB:       "paper_summary",
				Params:   "parseTime=true&loc=Local&charset=utf8mb4",
			},
			Postgres: PostgresConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "postgres",
				Password: "",
				DB:       "paper_summary",
				SSLMode:  "disable",
				TimeZone: "UTC",
			},
			MaxOpenConns:           50,
			MaxIdleConns:           10,
			ConnMaxLifetimeMinutes: 60,
		},
		LLM: LLMConfig{
			Provider:         ProviderGemini,
			BaseURL:          "",
			APIKey:           "",
			Model:            "gemini-2.0-flash",
			TimeoutSeconds:   120,
			ResponseLanguage: "Japanese",
		},
		RabbitMQ: RabbitMQConfig{
			URL:      "",
			Exchange: "paper_summary.events",
		},
		Upload: UploadConfig{
			MaxSizeMB:          20,
			PrecheckDuplicates: false,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	cfg.App.CORSAllowedOrigins = getEnvAsList("CORS_ALLOWED_ORIGINS", cfg.App.CORSAllowedOrigins)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)

	cfg.Database.Driver = strings.ToLower(getEnv("DB_DRIVER", cfg.Database.Driver))
	cfg.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeMinutes = getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", cfg.Database.ConnMaxLifetimeMinutes)

	cfg.Database.MySQL.Host = getEnv("MYSQL_HOST", cfg.Database.MySQL.Host)
	cfg.Database.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.Database.MySQL.Port)
	cfg.Database.MySQL.User = getEnv("MYSQL_USER", cfg.Database.MySQL.User)
	cfg.Database.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.Database.MySQL.Password)
	cfg.Database.MySQL.DB = getEnv("MYSQL_DB", cfg.Database.MySQL.DB)
	cfg.Database.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.Database.MySQL.Params)

	cfg.Database.Postgres.Host = getEnv("POSTGRES_HOST", cfg.Database.Postgres.Host)
	cfg.Database.Postgres.Port = getEnvAsInt("POSTGRES_PORT", cfg.Database.Postgres.Port)
	cfg.Database.Postgres.User = getEnv("POSTGRES_USER", cfg.Database.Postgres.User)
	cfg.Database.Postgres.Password = getEnv("POSTGRES_PASSWORD", cfg.Database.Postgres.Password)
	cfg.Database.Postgres.DB = getEnv("POSTGRES_DB", cfg.Database.Postgres.DB)
	cfg.Database.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", cfg.Database.Postgres.SSLMode)
	cfg.Database.Postgres.TimeZone = getEnv("POSTGRES_TIMEZONE", cfg.Database.Postgres.TimeZone)

	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("LLM_API_KEY", cfg.LLM.APIKey)
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = getEnv("GEMINI_API_KEY", "")
	}
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.TimeoutSeconds = getEnvAsInt("LLM_TIMEOUT_SECONDS", cfg.LLM.TimeoutSeconds)
	cfg.LLM.ResponseLanguage = getEnv("LLM_RESPONSE_LANGUAGE", cfg.LLM.ResponseLanguage)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.Exchange = getEnv("RABBITMQ_EXCHANGE", cfg.RabbitMQ.Exchange)

	cfg.Upload.MaxSizeMB = getEnvAsInt("UPLOAD_MAX_SIZE_MB", cfg.Upload.MaxSizeMB)
	cfg.Upload.PrecheckDuplicates = getEnvAsBool("UPLOAD_PRECHECK_DUPLICATES", cfg.Upload.PrecheckDuplicates)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
