package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API struct {
		BaseURL  string        `mapstructure:"base_url"`
		LoginURL string        `mapstructure:"login_url"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"api"`
	OAuth struct {
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"oauth"`
	TokenStore struct {
		Driver  string `mapstructure:"driver"`
		Path    string `mapstructure:"path"`
		Prefix  string `mapstructure:"prefix"`
		Profile string `mapstructure:"profile"`
	} `mapstructure:"token_store"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Cache struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"cache"`
	Server struct {
		Port          string        `mapstructure:"port"`
		JWTSecret     string        `mapstructure:"jwt_secret"`
		AccessTTL     time.Duration `mapstructure:"access_ttl"`
		RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
		AdminName     string        `mapstructure:"admin_name"`
		AdminPassword string        `mapstructure:"admin_password"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://tailor-next-drupal.ddev.site")
	v.SetDefault("api.login_url", "/login")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("oauth.client_id", "default_consumer")
	v.SetDefault("oauth.client_secret", "default_secret")
	v.SetDefault("token_store.driver", "file")
	v.SetDefault("token_store.path", defaultTokenPath())
	v.SetDefault("token_store.prefix", "tailor:session:")
	v.SetDefault("token_store.profile", "default")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "tailor")
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.access_ttl", 5*time.Minute)
	v.SetDefault("server.refresh_ttl", 14*24*time.Hour)
	v.SetDefault("server.jwt_secret", "change-me")
	v.SetDefault("server.admin_name", "admin")
	v.SetDefault("server.admin_password", "tailor-admin-1")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yml from path into AppConfig. A missing config file
// is not an error; defaults and TAILOR_* environment variables still apply.
// An optional .env file in path is loaded into the environment first.
func LoadConfig(path string) error {
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("TAILOR")
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
	AppConfig = cfg
	return nil
}

func defaultTokenPath() string {
	dir, err := filepath.Abs(".")
	if err != nil {
		return ".tailor-session.json"
	}
	return filepath.Join(dir, ".tailor-session.json")
}
