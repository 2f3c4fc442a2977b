package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/sigmactl/internal/logging"
	"github.com/danmuck/sigmactl/internal/protocol/packet"
	"github.com/danmuck/sigmactl/internal/protocol/variant"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Config is the resolved sigmactl configuration.
type Config struct {
	Variant  string
	Limits   packet.Limits
	Output   string
	// LogLevel is empty unless set in the file, so the environment override
	// applied by logging.Configure stays in effect.
	LogLevel string
}

type fileConfig struct {
	Variant         string `toml:"variant"`
	MaxPayloadBytes int64  `toml:"max_payload_bytes"`
	Output          string `toml:"output"`
	LogLevel        string `toml:"log_level"`
}

func DefaultConfig() Config {
	return Config{
		Variant:  variant.Default,
		Limits:   packet.DefaultLimits(),
		Output:   OutputTable,
	}
}

// Load reads path on top of DefaultConfig. Keys missing from the file keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("variant") {
		cfg.Variant = strings.ToLower(strings.TrimSpace(raw.Variant))
	}
	if meta.IsDefined("max_payload_bytes") {
		if raw.MaxPayloadBytes < 0 {
			return Config{}, fmt.Errorf("config max_payload_bytes must not be negative")
		}
		cfg.Limits.MaxPayloadBytes = uint64(raw.MaxPayloadBytes)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := variant.Lookup(cfg.Variant); err != nil {
		return fmt.Errorf("config variant invalid: %w", err)
	}
	if cfg.Limits.MaxPayloadBytes == 0 {
		return fmt.Errorf("config max_payload_bytes must be positive")
	}
	switch cfg.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("config output %q must be one of %s|%s|%s", cfg.Output, OutputTable, OutputJSON, OutputYAML)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); cfg.LogLevel != "" && !ok {
		return fmt.Errorf("config log_level %q is not a known level", cfg.LogLevel)
	}
	return nil
}
