package config

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗  █████╗ ██╗
██╔══██╗██╔══██╗██║
██║  ██║███████║██║
██║  ██║██╔══██║██║
██████╔╝██║  ██║███████╗
╚═════╝ ╚═╝  ╚═╝╚══════╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	User    string
	Backend string
}

// WithPromptConfig returns an Option that asks for the initial settings when
// no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPrompt.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		User:    "default",
		Backend: BackendBolt,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure dal for the first time.
Enter your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'dal edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default user").
				Value(&opts.User),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Storage backend").
				Options(
					huh.NewOption("Single file key/value store (bolt)", BackendBolt).
						Selected(true),
					huh.NewOption("SQLite database", BackendSQLite),
				).
				Value(&opts.Backend),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Settings.User = strings.TrimSpace(opts.User)
	c.Storage.Backend = opts.Backend
}
