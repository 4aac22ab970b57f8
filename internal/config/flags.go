package config

import "flag"

type flagValues struct {
	config   string
	backend  string
	dataDir  string
	key      string
	logLevel string
	logFile  string
	theme    string
	color    bool
	noColor  bool
	group    bool
}

// bindFlags registers the root flags. Values only override the config for
// flags the user actually set.
func bindFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.config, "config", "", "path to config file")
	fs.StringVar(&v.backend, "backend", "", "storage backend: file, sqlite or memory")
	fs.StringVar(&v.dataDir, "data-dir", "", "directory holding the todo data")
	fs.StringVar(&v.key, "key", "", "storage key of the list")
	fs.StringVar(&v.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&v.logFile, "log-file", "", "write logs to this file")
	fs.StringVar(&v.theme, "theme", "", "output theme: classic, neon or mono")
	fs.BoolVar(&v.color, "color", false, "force colored output")
	fs.BoolVar(&v.noColor, "no-color", false, "disable colored output")
	fs.BoolVar(&v.group, "group", false, "group output by pending/done")
	return v
}

func (v *flagValues) apply(fs *flag.FlagSet, cfg *Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = v.backend
		case "data-dir":
			cfg.DataDir = v.dataDir
		case "key":
			cfg.Key = v.key
		case "log-level":
			cfg.LogLevel = v.logLevel
		case "log-file":
			cfg.LogFile = v.logFile
		case "theme":
			cfg.Theme = v.theme
		case "color":
			if v.color {
				cfg.Color = "always"
			}
		case "no-color":
			if v.noColor {
				cfg.Color = "never"
			}
		case "group":
			cfg.Group = v.group
		}
	})
}
