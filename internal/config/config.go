// Package config loads the simulation's process-start configuration
// (spec.md §6: "compile-time or process-start, no dynamic reload").
//
// Grounded on the teacher's internal/infra.Config/LoadConfig/Validate
// (yaml.v3 + shopspring/decimal for the one genuinely fractional field),
// rewritten for this domain's knobs instead of exchange API credentials.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable spec.md §6 names, plus the ambient logging
// and metrics sections every process in this stack carries regardless of
// domain Non-goals.
type Config struct {
	Simulation struct {
		MaxOperationsToGenerateAtATime int             `yaml:"max_operations_to_generate_at_a_time"`
		MaxOperationsToClearFromQueue  int             `yaml:"max_operations_to_clear_from_queue"`
		MaxOperationsToAcknowledge     int             `yaml:"max_operations_to_acknowledge"`
		LikelihoodOfBeingThrottled     decimal.Decimal `yaml:"likelihood_of_being_throttled"`
		UpperPrice                     int             `yaml:"upper_price"`
		OrderGcThreshold               int             `yaml:"order_gc_threshold"`
		QuoteOpsGcThreshold            int             `yaml:"quote_ops_gc_threshold"`
		QuoteOpsGcKeepTail             int             `yaml:"quote_ops_gc_keep_tail"`
		Seed                           int64           `yaml:"seed"`
		Ticks                          int             `yaml:"ticks"`
	} `yaml:"simulation"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	Metrics struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"metrics"`
}

// Default returns the configuration spec.md §6 lists as the venue's
// defaults, used when no config file is supplied.
func Default() *Config {
	var c Config
	c.Simulation.MaxOperationsToGenerateAtATime = 10
	c.Simulation.MaxOperationsToClearFromQueue = 10
	c.Simulation.MaxOperationsToAcknowledge = 10
	c.Simulation.LikelihoodOfBeingThrottled = decimal.NewFromFloat(0.15)
	c.Simulation.UpperPrice = 9
	c.Simulation.OrderGcThreshold = 1000
	c.Simulation.QuoteOpsGcThreshold = 200
	c.Simulation.QuoteOpsGcKeepTail = 50
	c.Simulation.Seed = 1
	c.Simulation.Ticks = 0
	c.Logging.Level = "info"
	c.Metrics.ListenAddr = ":9090"
	return &c
}

// Load reads and parses a YAML configuration file on top of Default:
// fields the file omits keep their Default values, fields it sets (even
// to zero) replace them, and the result is validated. Use Default
// directly when no file is supplied.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	s := &c.Simulation
	if s.MaxOperationsToGenerateAtATime <= 0 {
		return fmt.Errorf("max_operations_to_generate_at_a_time must be positive")
	}
	if s.MaxOperationsToClearFromQueue < 0 {
		return fmt.Errorf("max_operations_to_clear_from_queue must not be negative")
	}
	if s.MaxOperationsToAcknowledge < 0 {
		return fmt.Errorf("max_operations_to_acknowledge must not be negative")
	}
	if s.LikelihoodOfBeingThrottled.LessThan(decimal.Zero) || s.LikelihoodOfBeingThrottled.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("likelihood_of_being_throttled must be in [0, 1]")
	}
	if s.UpperPrice < 2 {
		return fmt.Errorf("upper_price must be at least 2 (a quote needs a bid strictly below its ask)")
	}
	if s.OrderGcThreshold <= 0 {
		return fmt.Errorf("order_gc_threshold must be positive")
	}
	if s.QuoteOpsGcKeepTail < 0 || s.QuoteOpsGcKeepTail > s.QuoteOpsGcThreshold {
		return fmt.Errorf("quote_ops_gc_keep_tail must be within [0, quote_ops_gc_threshold]")
	}
	return nil
}
