package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/ofile/pkg/ofile"
	"github.com/arthur-debert/ofile/pkg/ofile/core"
	"github.com/arthur-debert/ofile/pkg/ofile/filesystem"
)

// fileConfig is the on-disk form of the settings, e.g.
//
//	root = "/srv/data"
//	log_level = "info"
//	match = "positional"
//	block_size = 4096
type fileConfig struct {
	Root      string `toml:"root"`
	LogLevel  string `toml:"log_level"`
	Match     string `toml:"match"`
	BlockSize int    `toml:"block_size"`
}

// settings is what every subcommand runs with once flags and file are merged.
type settings struct {
	root     string
	logLevel zerolog.Level
	opts     *ofile.Options
}

func loadConfigFile(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown keys in config file %s: %v", path, undecoded)
	}
	return cfg, nil
}

// resolveSettings layers explicitly set flags over the config file over defaults.
func resolveSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("root") || cfg.Root == "" {
		cfg.Root, _ = flags.GetString("root")
	}
	if flags.Changed("log-level") || cfg.LogLevel == "" {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("match") || cfg.Match == "" {
		cfg.Match, _ = flags.GetString("match")
	}
	if flags.Changed("block-size") || cfg.BlockSize == 0 {
		cfg.BlockSize, _ = flags.GetInt("block-size")
	}

	level, err := ofile.LogLevelFromString(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	mode, err := core.ParseMatchMode(cfg.Match)
	if err != nil {
		return nil, err
	}

	opts := ofile.DefaultOptions().
		WithMatchMode(mode).
		WithBlockSize(cfg.BlockSize)
	if cfg.Root != "" {
		opts = opts.WithFileSystem(filesystem.NewOSFileSystem(cfg.Root))
	}

	return &settings{root: cfg.Root, logLevel: level, opts: opts}, nil
}

// open resolves p against --root when given, against the host otherwise.
func (s *settings) open(p string) (*ofile.Handle, error) {
	if s.root == "" {
		return ofile.OpenHostWith(p, s.opts)
	}
	return ofile.OpenWith(p, s.opts)
}

// openExisting is open without the create-on-missing behaviour.
func (s *settings) openExisting(p string) (*ofile.Handle, error) {
	var exists bool
	if s.root == "" {
		exists = ofile.Exists(p)
	} else {
		exists = ofile.ExistsIn(s.opts.FileSystem, p)
	}
	if !exists {
		return nil, core.NewError("open", p, core.KindNotFound, nil)
	}
	return s.open(p)
}
