package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
	CacheDSN       string
}

func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.CacheDSN = "movies.db"
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
