// Package scenario builds and runs a load-balancing network described by a
// YAML file.
//
// Items are produced by a source at a fixed arrival rate, optionally filtered
// by a random admission branch, spread over a set of queues by a
// MultiQueueHead, served by one server per queue, merged by a joiner and
// consumed by a sink.
package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/sarchlab/flowsim/flow/selection"
	"github.com/sarchlab/flowsim/sim/naming"
	"gopkg.in/yaml.v3"
)

// Config describes a scenario.
type Config struct {
	Name         string           `yaml:"name"`
	Duration     float64          `yaml:"duration"`
	ArrivalRate  float64          `yaml:"arrival_rate"`
	ServiceRates []float64        `yaml:"service_rates"`
	MaxDepth     int              `yaml:"max_depth,omitempty"`
	Strategy     string           `yaml:"strategy"`
	Admission    *AdmissionConfig `yaml:"admission,omitempty"`
	Record       string           `yaml:"record,omitempty"`
}

// AdmissionConfig adds a branch in front of the router that admits each item
// with the given probability. Rejected items go to a separate sink.
type AdmissionConfig struct {
	Probability float64 `yaml:"probability"`
	Stream      string  `yaml:"stream,omitempty"`
}

// DefaultConfig returns a small three-queue scenario.
func DefaultConfig() *Config {
	return &Config{
		Name:         "Scenario",
		Duration:     100,
		ArrivalRate:  2,
		ServiceRates: []float64{1, 0.6, 0.5},
		MaxDepth:     8,
		Strategy:     selection.NameShortest,
	}
}

// LoadConfig reads and parses a scenario file. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses a scenario from YAML. Fields that are not given keep the
// values of DefaultConfig.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	return cfg, nil
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := naming.Validate(c.Name); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Duration <= 0 {
		result = multierror.Append(result,
			fmt.Errorf("duration must be positive, got %g", c.Duration))
	}

	if c.ArrivalRate <= 0 {
		result = multierror.Append(result,
			fmt.Errorf("arrival_rate must be positive, got %g", c.ArrivalRate))
	}

	if len(c.ServiceRates) == 0 {
		result = multierror.Append(result,
			fmt.Errorf("at least one service rate is required"))
	}

	for i, r := range c.ServiceRates {
		if r <= 0 {
			result = multierror.Append(result,
				fmt.Errorf("service_rates[%d] must be positive, got %g", i, r))
		}
	}

	if c.MaxDepth < 0 {
		result = multierror.Append(result,
			fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth))
	}

	if !knownStrategy(c.Strategy) {
		result = multierror.Append(result,
			fmt.Errorf("unknown strategy %q; valid: %v",
				c.Strategy, selection.AvailableStrategies()))
	}

	if c.Admission != nil {
		p := c.Admission.Probability
		if p < 0 || p > 1 {
			result = multierror.Append(result,
				fmt.Errorf("admission probability must be in [0, 1], got %g", p))
		}
	}

	return result.ErrorOrNil()
}

func knownStrategy(name string) bool {
	for _, s := range selection.AvailableStrategies() {
		if s == name {
			return true
		}
	}

	return false
}
