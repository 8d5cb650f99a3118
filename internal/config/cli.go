package config

import (
	"strings"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	User     string
	Backend  string
	LogLevel string
	Port     int
}

// WithCLIConfig returns an Option that applies global command-line flags
// on top of the file configuration.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			User:     ctx.String("user"),
			Backend:  ctx.String("backend"),
			LogLevel: ctx.String("log-level"),
			Port:     ctx.Int("port"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies non-zero CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if u := strings.TrimSpace(opts.User); u != "" {
		c.Settings.User = u
	}

	if opts.Backend != "" {
		c.Storage.Backend = strings.ToLower(opts.Backend)
	}

	if opts.LogLevel != "" {
		c.Settings.LogLevel = opts.LogLevel
	}

	if opts.Port > 0 {
		c.Server.Port = opts.Port
	}
}
