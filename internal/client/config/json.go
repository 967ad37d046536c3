package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/movieapi/internal/flagx"
	"github.com/dmitrijs2005/movieapi/internal/timex"
)

// JSONConfig is used only for unmarshalling. Absent fields keep their
// previous values.
type JSONConfig struct {
	ServerAddr     *string         `json:"server_addr"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	CacheDSN       *string         `json:"cache_dsn"`
}

func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerAddr != nil {
		cfg.ServerAddr = *jc.ServerAddr
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheDSN != nil {
		cfg.CacheDSN = *jc.CacheDSN
	}
	return nil
}
