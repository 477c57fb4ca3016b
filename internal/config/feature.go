package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const (
	EmissionBatch = "batch"
	EmissionLine  = "line"

	defaultInvoiceType = "A"
	defaultGatewayAddr = ":8081"
)

// FeatureConfig holds desk-facing settings that operators may tune without
// touching the environment.
// Source: TOML configuration file
type FeatureConfig struct {
	Invoice InvoiceConfig `toml:"invoice"`
	Gateway GatewayConfig `toml:"gateway"`
}

// InvoiceConfig controls how invoice-creation payloads are built.
type InvoiceConfig struct {
	Type     string `toml:"type"`
	Emission string `toml:"emission"` // "batch" stamps every invoice of a confirmation identically
}

type GatewayConfig struct {
	Addr string `toml:"addr"`
}

// DefaultFeatureConfig returns the settings used when no file is present.
func DefaultFeatureConfig() *FeatureConfig {
	return &FeatureConfig{
		Invoice: InvoiceConfig{Type: defaultInvoiceType, Emission: EmissionBatch},
		Gateway: GatewayConfig{Addr: defaultGatewayAddr},
	}
}

// LoadFeatureConfig loads feature configuration from a TOML file. A missing
// file yields the defaults.
func LoadFeatureConfig(path string) (*FeatureConfig, error) {
	cfg := DefaultFeatureConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultFeatureConfig(), nil
		}
		return nil, fmt.Errorf("failed to load feature config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *FeatureConfig) applyDefaults() {
	if c.Invoice.Type == "" {
		c.Invoice.Type = defaultInvoiceType
	}
	if c.Invoice.Emission == "" {
		c.Invoice.Emission = EmissionBatch
	}
	if c.Gateway.Addr == "" {
		c.Gateway.Addr = defaultGatewayAddr
	}
}

// Validate rejects unknown emission policies.
func (c *FeatureConfig) Validate() error {
	switch c.Invoice.Emission {
	case EmissionBatch, EmissionLine:
		return nil
	default:
		return fmt.Errorf("invoice.emission must be %q or %q, got %q", EmissionBatch, EmissionLine, c.Invoice.Emission)
	}
}
