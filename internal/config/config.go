// Package config loads decoder defaults from an embedded TOML file: the
// flux-stream defaults (sample and index clock, hard-sector count) and the
// byte framer's retry schedule parameters, letting an operator override
// them for oddball drives without recompiling. Only the retry schedule
// reaches the decoder; the stream defaults are loaded but not read by the
// stream parser.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

//go:embed decoder.toml
var defaultConfigData []byte

// StreamDefaults mirrors flux.StreamParams' fallback values. They are loaded
// and can be overridden, but the decode pipeline does not read them:
// flux.Parse always starts from flux.DefaultParams and then applies the
// stream's own KFInfo OOB block.
type StreamDefaults struct {
	SampleClock float64 `toml:"sck"`
	IndexClock  float64 `toml:"ick"`
	HardSectors int     `toml:"hc"`
}

// RetrySchedule mirrors the byte framer's nested retry loop parameter lists.
type RetrySchedule struct {
	InitSync []int `toml:"init_sync"`
	Resync   []int `toml:"resync"`
}

// Config is the full decoder configuration tree.
type Config struct {
	Stream StreamDefaults `toml:"stream"`
	Retry  RetrySchedule  `toml:"retry"`
}

// Default returns the built-in configuration baked into the binary, parsed
// from the embedded decoder.toml.
func Default() (*Config, error) {
	var conf Config
	if _, err := toml.Decode(string(defaultConfigData), &conf); err != nil {
		return nil, fmt.Errorf("config: failed to parse embedded default: %w", err)
	}
	return &conf, nil
}

// path determines the user override config file's path, per-OS: AppData on
// Windows, a dotfile in the home directory elsewhere.
func path() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user config directory: %w", err)
		}
		return filepath.Join(dir, "fluxdecode", "decoder.toml"), nil
	default:
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home directory: %w", err)
		}
		return filepath.Join(dir, ".fluxdecode.toml"), nil
	}
}

// Load returns the operator's override config if one exists at the
// per-OS path, else the built-in Default.
func Load() (*Config, error) {
	conf, err := Default()
	if err != nil {
		return nil, err
	}

	p, err := path()
	if err != nil {
		return conf, nil // no override location resolvable; built-in default still usable
	}
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return conf, nil
	}

	var override Config
	if _, err := toml.DecodeFile(p, &override); err != nil {
		return nil, fmt.Errorf("config: failed to parse override at %s: %w", p, err)
	}
	if override.Stream.SampleClock != 0 {
		conf.Stream.SampleClock = override.Stream.SampleClock
	}
	if override.Stream.IndexClock != 0 {
		conf.Stream.IndexClock = override.Stream.IndexClock
	}
	if override.Stream.HardSectors != 0 {
		conf.Stream.HardSectors = override.Stream.HardSectors
	}
	if len(override.Retry.InitSync) > 0 {
		conf.Retry.InitSync = override.Retry.InitSync
	}
	if len(override.Retry.Resync) > 0 {
		conf.Retry.Resync = override.Retry.Resync
	}
	return conf, nil
}
