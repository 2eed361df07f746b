package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	APIKey     string           `yaml:"api_key" env:"API_KEY"`
	HTTP       HTTPConfig       `yaml:"http"`
	Postgres   PostgresConfig   `yaml:"postgres"`
	Rabbit     RabbitConfig     `yaml:"rabbitmq"`
	Encryption EncryptionConfig `yaml:"encryption"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env-default:"8080"`
}

type PostgresConfig struct {
	Port    string `yaml:"port"`
	Host    string `yaml:"host"`
	DbName  string `yaml:"db_name"`
	User    string `yaml:"user"`
	Pwd     string `yaml:"password"`
	SslMode string `yaml:"sslmode"`
}

type RabbitConfig struct {
	Host  string `yaml:"host" env:"RABBITMQ_HOST" env-default:"localhost"`
	Port  int    `yaml:"port" env:"RABBITMQ_PORT" env-default:"5672"`
	User  string `yaml:"user" env:"RABBITMQ_USER"`
	Pwd   string `yaml:"password" env:"RABBITMQ_PASSWORD"`
	VHost string `yaml:"vhost" env:"RABBITMQ_VHOST" env-default:"/"`
}

type EncryptionConfig struct {
	// Key protects customer PII at rest, must be exactly 32 bytes.
	Key string `yaml:"key" env:"ENCRYPTION_KEY"`
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	if err := cfg.Validate(); err != nil {
		panic("invalid config: " + err.Error())
	}

	return cfg
}

// Validate enforces the production profile: secrets never fall back to
// built-in defaults. A local profile may run without broker credentials,
// in which case publishing degrades to no-ops.
func (c *Config) Validate() error {
	if len(c.Encryption.Key) != 32 {
		if c.Env == "prod" || c.Encryption.Key != "" {
			return fmt.Errorf("encryption key must be 32 bytes, got %d", len(c.Encryption.Key))
		}
	}

	if c.Env != "prod" {
		return nil
	}

	if c.APIKey == "" {
		return errors.New("api_key is required in prod")
	}
	if c.Rabbit.User == "" || c.Rabbit.Pwd == "" {
		return errors.New("rabbitmq credentials are required in prod")
	}
	if c.Encryption.Key == "" {
		return errors.New("encryption key is required in prod")
	}

	return nil
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
