package bench

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the run parameters for one verification run.
type Config struct {
	// Count is the number of requests the generator produces. Default: 30.
	Count int `json:"count"`

	// Seed seeds the stimulus randomization. Runs with the same seed and
	// config produce the same request stream. Default: 1.
	Seed int64 `json:"seed"`

	// ResetCycles is the number of edges the reset line is held asserted.
	// Default: 3.
	ResetCycles int `json:"reset_cycles"`

	// SettleCycles is the number of idle edges before reset, giving the
	// clock time to stabilize. Default: 2.
	SettleCycles int `json:"settle_cycles"`

	// PayloadMin and PayloadMax bound the randomized write payloads,
	// inclusive. Defaults: 1 and 20.
	PayloadMin byte `json:"payload_min"`
	PayloadMax byte `json:"payload_max"`
}

// DefaultConfig returns the configuration the reference harness runs with.
func DefaultConfig() *Config {
	return &Config{
		Count:        30,
		Seed:         1,
		ResetCycles:  3,
		SettleCycles: 2,
		PayloadMin:   1,
		PayloadMax:   20,
	}
}

// LoadConfig loads a Config from a JSON file. Fields missing from the file
// keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bench config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse bench config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a Config to a JSON file.
func (c *Config) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize bench config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bench config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Count <= 0 {
		return fmt.Errorf("count must be > 0")
	}
	if c.ResetCycles <= 0 {
		return fmt.Errorf("reset_cycles must be > 0")
	}
	if c.SettleCycles < 0 {
		return fmt.Errorf("settle_cycles must be >= 0")
	}
	if c.PayloadMin == 0 {
		return fmt.Errorf("payload_min must be > 0")
	}
	if c.PayloadMin > c.PayloadMax {
		return fmt.Errorf("payload_min must be <= payload_max")
	}
	return nil
}

// Clone returns a deep copy of the Config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
