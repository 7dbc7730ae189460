package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	viper "github.com/spf13/viper"
)

/*
loading and reading are kept apart:
init : reads once, then sets up viper watch + onConfigChange
read : plain reads under the read lock
*/
var configSingleton *ConfigSingleton
var muonce sync.Once

type ConfigSingleton struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	Env                    string        `mapstructure:"ENV"`
	LogLevel               string        `mapstructure:"LOG_LEVEL"`
	ServerPort             string        `mapstructure:"SERVER_PORT"`
	GrpcPort               string        `mapstructure:"GRPC_PORT"`
	AppSecret              string        `mapstructure:"APP_SECRET"`
	FrontendURL            string        `mapstructure:"FRONTEND_URL"`
	DbDriver               string        `mapstructure:"DB_DRIVER"`
	DbName                 string        `mapstructure:"POSTGRES_DB"`
	DbHost                 string        `mapstructure:"POSTGRES_HOST"`
	DbPort                 string        `mapstructure:"POSTGRES_PORT"`
	DbUser                 string        `mapstructure:"POSTGRES_USER"`
	DbPas                  string        `mapstructure:"POSTGRES_PASSWORD"`
	DbMigrate              bool          `mapstructure:"DB_MIGRATE"`
	RedisAddr              string        `mapstructure:"REDIS_ADDR"`
	RedisPassword          string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB                int           `mapstructure:"REDIS_DB"`
	KafkaBrokers           string        `mapstructure:"KAFKA_BROKERS"`
	OrderEventsTopic       string        `mapstructure:"ORDER_EVENTS_TOPIC"`
	StripeSecretKey        string        `mapstructure:"STRIPE_SECRET_KEY"`
	SmtpHost               string        `mapstructure:"SMTP_HOST"`
	SmtpPort               int           `mapstructure:"SMTP_PORT"`
	SmtpUser               string        `mapstructure:"SMTP_USER"`
	SmtpPassword           string        `mapstructure:"SMTP_PASSWORD"`
	MailFrom               string        `mapstructure:"MAIL_FROM"`
	RateLimitCapacity      int           `mapstructure:"RATE_LIMIT_CAPACITY"`
	RateLimitRatePS        int           `mapstructure:"RATE_LIMIT_RATE_PS"`
	PermissionConfig       string        `mapstructure:"PERMISSION_CONFIG"`
	CheckoutResumeInterval time.Duration `mapstructure:"CHECKOUT_RESUME_INTERVAL"`

	// optional first admin, created on boot when the email is not registered yet
	AdminEmail    string `mapstructure:"ADMIN_EMAIL"`
	AdminName     string `mapstructure:"ADMIN_NAME"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`
}

func (c *Config) IsDev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "debug"
}

func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DbUser, c.DbPas, c.DbHost, c.DbPort, c.DbName)
}

func (c *Config) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Validate checks the settings without which the service cannot issue sessions or links.
func (c *Config) Validate() error {
	var errs []error
	if c.AppSecret == "" {
		errs = append(errs, errors.New("APP_SECRET is required"))
	}
	if c.FrontendURL == "" {
		errs = append(errs, errors.New("FRONTEND_URL is required"))
	}
	switch c.DbDriver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q must be postgres or memory", c.DbDriver))
	}
	return errors.Join(errs...)
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	muonce.Do(func() {
		configSingleton = &ConfigSingleton{}
		cf, err := loadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("error read config")
		}
		configSingleton.Config = cf

		if viper.ConfigFileUsed() == "" {
			return
		}
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			cf, err := loadConfig()
			if err != nil {
				log.Error().Err(err).Str("file", e.Name).Msg("failed to reload config file, keeping previous config")
				return
			}
			log.Info().Str("file", e.Name).Msg("config reloaded")
			configSingleton.Config = cf
		})
	})
}

/*
only returns the error, the caller decides whether it is fatal
*/
func loadConfig() (cf *Config, err error) {
	configSingleton.mu.Lock()
	defer configSingleton.mu.Unlock()

	return Load(".env")
}

// Load reads envFile when it exists, then lets process environment variables override it.
func Load(envFile string) (*Config, error) {
	setDefaults()

	if _, statErr := os.Stat(envFile); statErr == nil {
		viper.SetConfigFile(envFile)
		viper.SetConfigType("env")
		if err := viper.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	viper.AutomaticEnv()

	cf := &Config{}
	if err := viper.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

func setDefaults() {
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERVER_PORT", "4444")
	viper.SetDefault("GRPC_PORT", "50051")
	viper.SetDefault("FRONTEND_URL", "http://localhost:7777")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_DB", "sickfits")
	viper.SetDefault("DB_MIGRATE", true)
	viper.SetDefault("ORDER_EVENTS_TOPIC", "sickfits.orders")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("MAIL_FROM", "no-reply@sickfits.local")
	viper.SetDefault("RATE_LIMIT_CAPACITY", 60)
	viper.SetDefault("RATE_LIMIT_RATE_PS", 1)
	viper.SetDefault("PERMISSION_CONFIG", "config/permission.yaml")
	viper.SetDefault("CHECKOUT_RESUME_INTERVAL", time.Minute)
	viper.SetDefault("ADMIN_NAME", "admin")

	// env-only keys are ignored by Unmarshal unless viper knows them
	for _, key := range []string{
		"APP_SECRET", "POSTGRES_USER", "POSTGRES_PASSWORD", "REDIS_ADDR", "REDIS_PASSWORD",
		"REDIS_DB", "KAFKA_BROKERS", "STRIPE_SECRET_KEY", "SMTP_HOST", "SMTP_USER", "SMTP_PASSWORD",
		"ADMIN_EMAIL", "ADMIN_PASSWORD",
	} {
		viper.SetDefault(key, "")
	}
}
