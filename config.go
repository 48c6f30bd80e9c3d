package goACL

import (
	"errors"

	"github.com/MrEthical07/goACL/nameset"
)

// Config defines a public type used by goACL APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Resolution ResolutionConfig
	Storage    StorageConfig
	Metrics    MetricsConfig
}

/*
====================================
RESOLUTION CONFIG
====================================
*/

// ResolutionConfig defines a public type used by goACL APIs.
//
// ResolutionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ResolutionConfig struct {
	// FallbackRole is the role anonymous callers resolve through, applied
	// only when the role set actually contains it. Empty disables the
	// fallback entirely.
	FallbackRole string
	// Normalizer canonicalizes every role and action name. Nil selects
	// nameset.Normalize. Its output must never contain ':'.
	Normalizer nameset.Normalizer
}

/*
====================================
STORAGE CONFIG
====================================
*/

// StorageConfig defines a public type used by goACL APIs.
//
// StorageConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StorageConfig struct {
	// KeyPrefix is prepended to the container name to form the storage
	// key ("acl_" + name by default).
	KeyPrefix string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goACL APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
PRESETS
====================================
*/

// DefaultKeyPrefix is an exported constant or variable used by the ACL engine.
const DefaultKeyPrefix = "acl_"

// DefaultFallbackRole is an exported constant or variable used by the ACL engine.
const DefaultFallbackRole = "guest"

// DefaultConfig returns the baseline configuration: guest fallback, "acl_"
// key prefix, slug normalization, metrics off.
func DefaultConfig() Config {
	return Config{
		Resolution: ResolutionConfig{
			FallbackRole: DefaultFallbackRole,
			Normalizer:   nil,
		},
		Storage: StorageConfig{
			KeyPrefix: DefaultKeyPrefix,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// ObservedConfig returns [DefaultConfig] with counters and latency
// histograms enabled, for deployments that scrape the engine.
func ObservedConfig() Config {
	cfg := DefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	norm := c.Resolution.Normalizer
	if norm == nil {
		norm = nameset.Normalize
	}

	// Resolution
	if c.Resolution.FallbackRole != "" && norm(c.Resolution.FallbackRole) == "" {
		return errors.New("Resolution FallbackRole does not survive normalization")
	}

	// Storage
	if c.Storage.KeyPrefix == "" {
		return errors.New("Storage KeyPrefix must not be empty")
	}

	// Metrics
	if c.Metrics.EnableLatencyHistograms && !c.Metrics.Enabled {
		return errors.New("Metrics EnableLatencyHistograms requires Enabled")
	}

	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	return out
}
