package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/movieapi/internal/flagx"
	"github.com/dmitrijs2005/movieapi/internal/timex"
)

// JSONConfig mirrors Config for unmarshalling. Pointer fields distinguish
// "absent" from "zero" so a partial file only overrides what it names.
type JSONConfig struct {
	EndpointAddr   *string         `json:"endpoint_addr"`
	DatabaseDSN    *string         `json:"database_dsn"`
	SecretKey      *string         `json:"secret_key"`
	TokenTTL       *timex.Duration `json:"token_ttl"`
	StoreTimeout   *timex.Duration `json:"store_timeout"`
	StaticDir      *string         `json:"static_dir"`
	LogLevel       *string         `json:"log_level"`
	S3RootUser     *string         `json:"s3_root_user"`
	S3RootPassword *string         `json:"s3_root_password"`
	S3Bucket       *string         `json:"s3_bucket"`
	S3Region       *string         `json:"s3_region"`
	S3BaseEndpoint *string         `json:"s3_base_endpoint"`
	PosterURLTTL   *timex.Duration `json:"poster_url_ttl"`
}

// parseJSON overlays values from the file given by -c/-config, if any.
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

	setString(&cfg.EndpointAddr, jc.EndpointAddr)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.SecretKey, jc.SecretKey)
	setString(&cfg.StaticDir, jc.StaticDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.S3RootUser, jc.S3RootUser)
	setString(&cfg.S3RootPassword, jc.S3RootPassword)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	if jc.TokenTTL != nil {
		cfg.TokenTTL = jc.TokenTTL.Duration
	}
	if jc.StoreTimeout != nil {
		cfg.StoreTimeout = jc.StoreTimeout.Duration
	}
	if jc.PosterURLTTL != nil {
		cfg.PosterURLTTL = jc.PosterURLTTL.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
