package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel int `yaml:"log_level"`

	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type StorageConfig struct {
	// Type of storage: "sqlite" or "memory"
	Type string `yaml:"type"`

	// Path to the sqlite database file
	Path string `yaml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config *Config

	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	// Set defaults if not provided
	if config.Server.Port == "" {
		config.Server.Port = "8080"
	}

	if config.Storage.Type == "" {
		config.Storage.Type = "sqlite"
	}

	if config.Storage.Path == "" {
		config.Storage.Path = "genre-guide.db"
	}

	return config, nil
}
