package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Driver     string `mapstructure:"driver"`
		URL        string `mapstructure:"url"`
		Host       string `mapstructure:"host"`
		Port       string `mapstructure:"port"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		Name       string `mapstructure:"name"`
		SSLMode    string `mapstructure:"sslmode"`
		SQLitePath string `mapstructure:"sqlite_path"`
	} `mapstructure:"database"`
	Savings struct {
		AccountName string `mapstructure:"account_name"`
	} `mapstructure:"savings"`
	Redis struct {
		Enabled  bool          `mapstructure:"enabled"`
		Host     string        `mapstructure:"host"`
		Port     string        `mapstructure:"port"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		TTL      time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Events struct {
		Driver   string   `mapstructure:"driver"`
		Brokers  []string `mapstructure:"brokers"`
		Topic    string   `mapstructure:"topic"`
		AMQPURL  string   `mapstructure:"amqp_url"`
		Exchange string   `mapstructure:"exchange"`
	} `mapstructure:"events"`
	Scheduler struct {
		Enabled         bool   `mapstructure:"enabled"`
		Cron            string `mapstructure:"cron"`
		TakeFromSavings bool   `mapstructure:"take_from_savings"`
	} `mapstructure:"scheduler"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "2933")
	// Every key needs a default: AutomaticEnv only overrides keys viper knows.
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.sqlite_path", "data/budget.db")
	v.SetDefault("savings.account_name", "Marcus")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("events.driver", "")
	v.SetDefault("events.brokers", []string{})
	v.SetDefault("events.topic", "transaction.posted")
	v.SetDefault("events.amqp_url", "")
	v.SetDefault("events.exchange", "budget")
	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.cron", "0 6 * * *")
	v.SetDefault("scheduler.take_from_savings", true)
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yml from path, applies .env and environment
// overrides (DATABASE_HOST overrides database.host) and stores the result
// in AppConfig. A missing config file is not an error.
func LoadConfig(path string) error {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	AppConfig = cfg
	return nil
}

// Validate rejects combinations the application cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Savings.AccountName == "" {
		return errors.New("savings.account_name is required")
	}
	switch c.Events.Driver {
	case "":
	case "kafka":
		if len(c.Events.Brokers) == 0 {
			return errors.New("events.brokers is required for the kafka driver")
		}
	case "amqp":
		if c.Events.AMQPURL == "" {
			return errors.New("events.amqp_url is required for the amqp driver")
		}
	default:
		return fmt.Errorf("unsupported events driver %q", c.Events.Driver)
	}
	return nil
}
