package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env-default:"local"`
	HTTPServer `yaml:"http_server"`
	Mongo      `yaml:"mongo"`
	Redis      `yaml:"redis"`
	SMTP       `yaml:"smtp"`
	Auth       `yaml:"auth"`
}

type HTTPServer struct {
	Address      string        `yaml:"address" env-required:"true"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type Mongo struct {
	URI      string `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string `yaml:"database" env-default:"shop"`
}

type Redis struct {
	// Empty address keeps the session registry in process memory.
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
	// TTL of a registered refresh token; zero means no expiry.
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"0"`
}

type SMTP struct {
	Host       string `yaml:"host" env:"SMTP_HOST"`
	User       string `yaml:"user" env:"SMTP_USER"`
	Password   string `yaml:"password" env:"SMTP_PASSWORD"`
	From       string `yaml:"from" env-default:"Shop Service <noreply@shop.local>"`
	SkipVerify bool   `yaml:"skip_verify" env-default:"false"`
}

type Auth struct {
	AccessSecret  string        `yaml:"access_secret" env:"ACCESS_TOKEN_SECRET" env-required:"true"`
	RefreshSecret string        `yaml:"refresh_secret" env:"REFRESH_TOKEN_SECRET" env-required:"true"`
	AccessTTL     time.Duration `yaml:"access_ttl" env-default:"10m"`
	LoginLimit    int           `yaml:"login_limit" env-default:"5"`
	LoginWindow   time.Duration `yaml:"login_window" env-default:"15m"`
}

func MustLoadConfig(configPath string) *Config {
	if _, err := os.Stat(configPath); err != nil {
		panic("config file not found")
	}

	config, err := loadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

func loadConfig(path string) (*Config, error) {
	var config Config

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	return &config, nil
}
