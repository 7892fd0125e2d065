// Package config layers defaults, an optional YAML file, UPPER_LOWER_*
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/lowaak/upper-lower/upper-lower-app/internal/store"
)

const (
	EnvPrefix      = "UPPER_LOWER"
	DefaultDirName = ".upper-lower"
	configFileName = "config"
	logFileName    = "upper-lower.log"
)

// Keys, as used in the config file. Flags use the same names with dashes.
const (
	KeyDataDir       = "data_dir"
	KeyStore         = "store"
	KeyLogFile       = "log_file"
	KeyLogMaxSizeMB  = "log_max_size_mb"
	KeyLogMaxBackups = "log_max_backups"
	KeyLogMaxAgeDays = "log_max_age_days"
	KeyRestSeconds   = "rest_seconds"
	KeyProgramFile   = "program_file"
	KeyExport        = "export"
	KeyImport        = "import"
)

// StderrLogFile as log_file sends logs to stderr instead of a file.
const StderrLogFile = "-"

type Config struct {
	DataDir       string
	Store         string
	LogFile       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	RestSeconds   int
	ProgramFile   string
	Export        string
	Import        string

	// ConfigFile is the file that was read, empty when none was.
	ConfigFile string
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func newFlagSet(name string) (*pflag.FlagSet, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	configPath := fs.String("config", "", "config file (default $HOME/"+DefaultDirName+"/config.yaml)")
	fs.String(flagName(KeyDataDir), "", "directory holding saved state (default $HOME/"+DefaultDirName+")")
	fs.String(flagName(KeyStore), store.KindJSON, "state backend: json or sqlite")
	fs.String(flagName(KeyLogFile), "", "log file, - for stderr (default <data-dir>/"+logFileName+")")
	fs.Int(flagName(KeyLogMaxSizeMB), 10, "log size in megabytes before rotation")
	fs.Int(flagName(KeyLogMaxBackups), 3, "rotated log files to keep")
	fs.Int(flagName(KeyLogMaxAgeDays), 28, "days to keep rotated log files")
	fs.Int(flagName(KeyRestSeconds), 120, "default rest between sets, in seconds")
	fs.String(flagName(KeyProgramFile), "", "YAML program replacing the built-in one")
	fs.String(flagName(KeyExport), "", "write a backup to this path and exit")
	fs.String(flagName(KeyImport), "", "restore the backup at this path and exit")
	return fs, configPath
}

// Load parses args (without the program name) and resolves the configuration.
// pflag.ErrHelp is returned as is when help was requested.
func Load(name string, args []string) (Config, error) {
	fs, configPath := newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("config: locate home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		bindErr = multierr.Append(bindErr, v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f))
	})
	if bindErr != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", bindErr)
	}

	if *configPath != "" {
		v.SetConfigFile(expandHome(*configPath, home))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", *configPath, err)
		}
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(home, DefaultDirName))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("config: %w", err)
			}
		}
	}

	cfg := Config{
		DataDir:       v.GetString(KeyDataDir),
		Store:         strings.ToLower(v.GetString(KeyStore)),
		LogFile:       v.GetString(KeyLogFile),
		LogMaxSizeMB:  v.GetInt(KeyLogMaxSizeMB),
		LogMaxBackups: v.GetInt(KeyLogMaxBackups),
		LogMaxAgeDays: v.GetInt(KeyLogMaxAgeDays),
		RestSeconds:   v.GetInt(KeyRestSeconds),
		ProgramFile:   v.GetString(KeyProgramFile),
		Export:        v.GetString(KeyExport),
		Import:        v.GetString(KeyImport),
		ConfigFile:    v.ConfigFileUsed(),
	}

	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(home, DefaultDirName)
	}
	cfg.DataDir = expandHome(cfg.DataDir, home)
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.DataDir, logFileName)
	} else if cfg.LogFile != StderrLogFile {
		cfg.LogFile = expandHome(cfg.LogFile, home)
	}
	cfg.ProgramFile = expandHome(cfg.ProgramFile, home)
	cfg.Export = expandHome(cfg.Export, home)
	cfg.Import = expandHome(cfg.Import, home)

	return cfg, nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	var errs error
	switch c.Store {
	case store.KindJSON, store.KindSQLite:
	default:
		errs = multierr.Append(errs, fmt.Errorf("store must be %q or %q, got %q", store.KindJSON, store.KindSQLite, c.Store))
	}
	if c.RestSeconds <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("rest_seconds must be positive, got %d", c.RestSeconds))
	}
	if c.DataDir == "" {
		errs = multierr.Append(errs, errors.New("data_dir is empty"))
	}
	if c.LogMaxSizeMB <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("log_max_size_mb must be positive, got %d", c.LogMaxSizeMB))
	}
	if c.Export != "" && c.Import != "" {
		errs = multierr.Append(errs, errors.New("export and import cannot be combined"))
	}
	return errs
}

// Usage prints flag help for name to stderr.
func Usage(name string) {
	fs, _ := newFlagSet(name)
	fmt.Fprintf(os.Stderr, "Usage of %s:\n", name)
	fs.PrintDefaults()
}
