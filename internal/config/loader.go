package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// TOMLConfig represents the TOML configuration file structure
type TOMLConfig struct {
	HTTP    TOMLHTTPConfig    `toml:"http"`
	MongoDB TOMLMongoDBConfig `toml:"mongodb"`
	Redis   TOMLRedisConfig   `toml:"redis"`
	Auth    TOMLAuthConfig    `toml:"auth"`
	I18N    TOMLI18NConfig    `toml:"i18n"`
	DevMode bool              `toml:"dev_mode"`
}

// TOMLHTTPConfig represents HTTP configuration in TOML
type TOMLHTTPConfig struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// TOMLMongoDBConfig represents MongoDB configuration in TOML
type TOMLMongoDBConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// TOMLRedisConfig represents Redis configuration in TOML
type TOMLRedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// TOMLAuthConfig represents auth configuration in TOML
type TOMLAuthConfig struct {
	JWT TOMLJWTConfig `toml:"jwt"`
}

// TOMLJWTConfig represents JWT configuration in TOML
type TOMLJWTConfig struct {
	Secret string `toml:"secret"`
	Issuer string `toml:"issuer"`
	Expiry string `toml:"expiry"`
}

// TOMLI18NConfig represents localization configuration in TOML
type TOMLI18NConfig struct {
	DefaultLanguage string `toml:"default_language"`
}

// ConfigPaths lists the paths to search for config files
var ConfigPaths = []string{
	"config.toml",
	"storegate.toml",
	"./config/config.toml",
	"/etc/storegate/config.toml",
}

// LoadFromFile loads configuration from a TOML file
func LoadFromFile(path string) (*Config, error) {
	var tomlCfg TOMLConfig

	if _, err := toml.DecodeFile(path, &tomlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return tomlConfigToConfig(&tomlCfg)
}

// LoadWithFile loads configuration from file first, then overrides with env vars
func LoadWithFile() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	configPath := os.Getenv("STOREGATE_CONFIG")
	if configPath == "" {
		for _, path := range ConfigPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
	}

	if configPath == "" {
		return cfg, nil
	}

	fileCfg, err := LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return mergeConfigs(fileCfg, cfg), nil
}

// tomlConfigToConfig converts TOML config to the internal Config struct
func tomlConfigToConfig(tc *TOMLConfig) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			Port:        tc.HTTP.Port,
			CORSOrigins: tc.HTTP.CORSOrigins,
		},
		MongoDB: MongoDBConfig{
			URI:      tc.MongoDB.URI,
			Database: tc.MongoDB.Database,
		},
		Redis: RedisConfig{
			Addr:     tc.Redis.Addr,
			Password: tc.Redis.Password,
			DB:       tc.Redis.DB,
		},
		Auth: AuthConfig{
			JWT: JWTConfig{
				Secret: tc.Auth.JWT.Secret,
				Issuer: tc.Auth.JWT.Issuer,
			},
		},
		I18N: I18NConfig{
			DefaultLanguage: tc.I18N.DefaultLanguage,
		},
		DevMode: tc.DevMode,
	}

	if tc.Auth.JWT.Expiry != "" {
		if d, err := time.ParseDuration(tc.Auth.JWT.Expiry); err == nil {
			cfg.Auth.JWT.Expiry = d
		}
	}

	return cfg, nil
}

// mergeConfigs merges two configs, with override taking precedence for non-default values
func mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.HTTP.Port != 0 && override.HTTP.Port != 8080 {
		result.HTTP.Port = override.HTTP.Port
	}
	if len(override.HTTP.CORSOrigins) > 0 {
		result.HTTP.CORSOrigins = override.HTTP.CORSOrigins
	}

	if override.MongoDB.URI != "" && override.MongoDB.URI != "mongodb://localhost:27017/?replicaSet=rs0&directConnection=true" {
		result.MongoDB.URI = override.MongoDB.URI
	}
	if override.MongoDB.Database != "" && override.MongoDB.Database != "storegate" {
		result.MongoDB.Database = override.MongoDB.Database
	}

	if override.Redis.Addr != "" && override.Redis.Addr != "localhost:6379" {
		result.Redis.Addr = override.Redis.Addr
	}
	if override.Redis.Password != "" {
		result.Redis.Password = override.Redis.Password
	}
	if override.Redis.DB != 0 {
		result.Redis.DB = override.Redis.DB
	}

	if override.Auth.JWT.Secret != "" {
		result.Auth.JWT.Secret = override.Auth.JWT.Secret
	}
	if override.Auth.JWT.Issuer != "" && override.Auth.JWT.Issuer != "storegate" {
		result.Auth.JWT.Issuer = override.Auth.JWT.Issuer
	}
	if override.Auth.JWT.Expiry != 0 && override.Auth.JWT.Expiry != 8*time.Hour {
		result.Auth.JWT.Expiry = override.Auth.JWT.Expiry
	}

	if override.I18N.DefaultLanguage != "" && override.I18N.DefaultLanguage != "en" {
		result.I18N.DefaultLanguage = override.I18N.DefaultLanguage
	}

	if override.DevMode {
		result.DevMode = true
	}

	return &result
}
