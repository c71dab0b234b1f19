package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "HIREMIND"

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Env             string        `mapstructure:"env"` // development, production, test
	Debug           bool          `mapstructure:"debug"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres, mysql
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type StorageConfig struct {
	Type      string `mapstructure:"type"`      // local, s3
	BasePath  string `mapstructure:"base_path"` // local
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Endpoint  string `mapstructure:"endpoint"` // S3-compatible endpoint, optional
}

type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size"` // bytes
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUsername string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	FromEmail    string `mapstructure:"from_email"`
	FromName     string `mapstructure:"from_name"`
}

type AIConfig struct {
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Enabled - ключ задан, анализатор работает в live-режиме
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.GeminiAPIKey) != ""
}

type StripeConfig struct {
	SecretKey       string `mapstructure:"secret_key"`
	WebhookSecret   string `mapstructure:"webhook_secret"`
	PricePro        string `mapstructure:"price_pro"`
	PriceBusiness   string `mapstructure:"price_business"`
	PortalReturnURL string `mapstructure:"portal_return_url"`
}

func (c StripeConfig) Enabled() bool {
	return c.SecretKey != ""
}

type RateLimitConfig struct {
	AIPerMinute float64 `mapstructure:"ai_per_minute"` // <= 0 отключает лимитер
	Burst       int     `mapstructure:"burst"`
}

type WorkersConfig struct {
	// SubscriptionSync - период сверки users.subscription_tier с подписками, 0 отключает
	SubscriptionSync time.Duration `mapstructure:"subscription_sync"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Config собирается один раз в main и передается в конструкторы явно.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Email     EmailConfig     `mapstructure:"email"`
	AI        AIConfig        `mapstructure:"ai"`
	Stripe    StripeConfig    `mapstructure:"stripe"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Workers   WorkersConfig   `mapstructure:"workers"`
	Admin     AdminConfig     `mapstructure:"admin"`
}

// Load читает .env (если есть), затем YAML файл и переменные окружения HIREMIND_*.
// Пустой path - ищем CONFIG_PATH, потом config/config.yaml; отсутствие файла не ошибка.
func Load(path string) (*Config, error) {
	// .env опционален, переменные окружения процесса имеют приоритет
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && path != "" {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.env", "development")
	v.SetDefault("server.debug", false)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "https://hiremind.rkolabs.dev"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("jwt.ttl", 30*time.Minute)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./uploads")

	v.SetDefault("upload.max_size", 10*1024*1024)

	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.from_name", "HireMind")

	v.SetDefault("ai.model", "gemini-1.5-flash")
	v.SetDefault("ai.timeout", 60*time.Second)

	v.SetDefault("rate_limit.ai_per_minute", 20)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("workers.subscription_sync", 6*time.Hour)

	// Без явной привязки AutomaticEnv не видит ключи без значения по умолчанию
	for _, key := range []string{
		"database.dsn", "jwt.secret",
		"storage.bucket", "storage.region", "storage.access_key", "storage.secret_key", "storage.endpoint",
		"email.enabled", "email.smtp_host", "email.smtp_user", "email.smtp_password", "email.from_email",
		"ai.gemini_api_key",
		"stripe.secret_key", "stripe.webhook_secret", "stripe.price_pro", "stripe.price_business", "stripe.portal_return_url",
		"admin.email", "admin.password",
	} {
		_ = v.BindEnv(key)
	}
}

// Validate проверяет обязательные значения
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		errs = append(errs, fmt.Errorf("database.driver must be postgres or mysql, got %q", c.Database.Driver))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required"))
	}
	if c.JWT.TTL <= 0 {
		errs = append(errs, errors.New("jwt.ttl must be positive"))
	}
	switch c.Storage.Type {
	case "local", "memory":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.type must be local, s3 or memory, got %q", c.Storage.Type))
	}
	if c.Email.Enabled && c.Email.SMTPHost == "" {
		errs = append(errs, errors.New("email.smtp_host is required when email is enabled"))
	}
	if c.Stripe.Enabled() && c.Stripe.WebhookSecret == "" {
		errs = append(errs, errors.New("stripe.webhook_secret is required when stripe is enabled"))
	}

	return errors.Join(errs...)
}

// IsDevelopment - локальная разработка
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// Addr - адрес для http.Server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
