package config

import (
	"fmt"
	"time"
)

// parseEnv overlays values from environment variables. Durations use
// time.ParseDuration syntax.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"ENDPOINT_ADDR":    &cfg.EndpointAddr,
		"DATABASE_DSN":     &cfg.DatabaseDSN,
		"SECRET_KEY":       &cfg.SecretKey,
		"STATIC_DIR":       &cfg.StaticDir,
		"LOG_LEVEL":        &cfg.LogLevel,
		"S3_ROOT_USER":     &cfg.S3RootUser,
		"S3_ROOT_PASSWORD": &cfg.S3RootPassword,
		"S3_BUCKET":        &cfg.S3Bucket,
		"S3_REGION":        &cfg.S3Region,
		"S3_BASE_ENDPOINT": &cfg.S3BaseEndpoint,
	}
	for name, dst := range strs {
		if v, ok := lookup(name); ok {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"TOKEN_TTL":      &cfg.TokenTTL,
		"STORE_TIMEOUT":  &cfg.StoreTimeout,
		"POSTER_URL_TTL": &cfg.PosterURLTTL,
	}
	for name, dst := range durations {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("env %s: %w", name, err)
		}
		*dst = d
	}
	return nil
}
