// Package config loads dotstow configuration with koanf, layering
// built-in defaults, an optional .dotstow.toml or .dotstow.yaml in the
// dotfiles root, and DOTSTOW_* environment variables, in that order.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/dotstow/pkg/errors"
	"github.com/arthur-debert/dotstow/pkg/logging"
)

// Config is the resolved configuration value object passed into each
// component, replacing any reliance on ambient global state.
type Config struct {
	// Packages is the default set of packs deployed when none are named
	// on the command line.
	Packages []string `koanf:"packages" toml:"packages"`

	// Work holds the work-machine overlay.
	Work struct {
		// Packages are deployed on top of the base set in work mode.
		Packages []string `koanf:"packages" toml:"packages"`
	} `koanf:"work" toml:"work"`

	// Stow configures the external linking tool invocation.
	Stow struct {
		// Bin is the stow binary name or path.
		Bin string `koanf:"bin" toml:"bin"`
		// Ignore lists glob patterns stow must not link (dependency
		// manifests, installer scripts).
		Ignore []string `koanf:"ignore" toml:"ignore"`
	} `koanf:"stow" toml:"stow"`

	// Backup configures the backup directory naming.
	Backup struct {
		// Prefix is prepended to the timestamp of each backup directory.
		Prefix string `koanf:"prefix" toml:"prefix"`
	} `koanf:"backup" toml:"backup"`
}

// Config file names probed in the dotfiles root, first hit wins.
var configFiles = []string{".dotstow.toml", "dotstow.toml", ".dotstow.yaml", "dotstow.yaml"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "not implemented")
}

// Load resolves the configuration for a dotfiles root.
func Load(dotfilesRoot string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load built-in defaults")
	}

	for _, name := range configFiles {
		path := filepath.Join(dotfilesRoot, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		parser := parserFor(path)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded repo config")
		break
	}

	// DOTSTOW_STOW_BIN -> stow.bin, DOTSTOW_BACKUP_PREFIX -> backup.prefix
	err := k.Load(env.Provider("DOTSTOW_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "DOTSTOW_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// AllPackages returns the effective package list: explicit names win,
// otherwise the configured defaults, plus the work overlay when work
// mode is on.
func (c *Config) AllPackages(explicit []string, work bool) []string {
	pkgs := explicit
	if len(pkgs) == 0 {
		pkgs = append([]string(nil), c.Packages...)
		if work {
			pkgs = append(pkgs, c.Work.Packages...)
		}
	}
	return pkgs
}

func parserFor(path string) koanf.Parser {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}
