package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/movieapi/internal/flagx"
)

func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-r", "-d"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the API server")
	fs.DurationVar(&cfg.RequestTimeout, "r", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.CacheDSN, "d", cfg.CacheDSN, "offline cache file")

	return fs.Parse(args)
}
