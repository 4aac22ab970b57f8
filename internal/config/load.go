package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load resolves configuration in priority order:
// 1. Defaults
// 2. Config file (-config, TADA_CONFIG, or the user config dir)
// 3. Environment variables
// 4. Flags
//
// It returns the arguments left after flag parsing.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	if fs == nil {
		fs = flag.NewFlagSet("tada", flag.ContinueOnError)
	}
	cfg := &Config{}
	setDefaults(cfg)

	fl := bindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	path := fl.config
	explicit := path != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv("TADA_CONFIG"))
		explicit = path != ""
	}
	if !explicit {
		path = findUserConfigFile()
	}
	if path != "" {
		path = expandPath(path)
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.File = path
		}
	}

	loadFromEnv(cfg)
	fl.apply(fs, cfg)

	cfg.DataDir = expandPath(cfg.DataDir)
	cfg.LogFile = expandPath(cfg.LogFile)
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if err := validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, fs.Args(), nil
}

func loadConfigFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return fmt.Errorf("unknown keys: %v", undec)
	}
	return nil
}

// loadFromEnv overrides config from TADA_* environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.Color = "never"
	}
}
