package goACL

import (
	"context"
	"errors"

	"github.com/MrEthical07/goACL/nameset"
)

// Builder defines a public type used by goACL APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	name   string

	roles   []string
	actions []string

	identity IdentityProvider
	store    Store

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithName describes the withname operation and its observable behavior.
//
// WithName may return an error when input validation, dependency calls, or security checks fail.
// WithName does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithIdentity describes the withidentity operation and its observable behavior.
//
// WithIdentity may return an error when input validation, dependency calls, or security checks fail.
// WithIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithIdentity(provider IdentityProvider) *Builder {
	b.identity = provider
	return b
}

// WithStore describes the withstore operation and its observable behavior.
//
// WithStore may return an error when input validation, dependency calls, or security checks fail.
// WithStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The store is attached during [Builder.Build], which loads and merges any
// previously persisted state before the engine is returned.
func (b *Builder) WithStore(store Store) *Builder {
	b.store = store
	return b
}

// WithRoles describes the withroles operation and its observable behavior.
//
// WithRoles may return an error when input validation, dependency calls, or security checks fail.
// WithRoles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRoles(names ...string) *Builder {
	b.roles = append(b.roles, names...)
	return b
}

// WithActions describes the withactions operation and its observable behavior.
//
// WithActions may return an error when input validation, dependency calls, or security checks fail.
// WithActions does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithActions(names ...string) *Builder {
	b.actions = append(b.actions, names...)
	return b
}

// WithFallbackRole describes the withfallbackrole operation and its observable behavior.
//
// WithFallbackRole may return an error when input validation, dependency calls, or security checks fail.
// WithFallbackRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithFallbackRole(name string) *Builder {
	b.config.Resolution.FallbackRole = name
	return b
}

// WithNormalizer describes the withnormalizer operation and its observable behavior.
//
// WithNormalizer may return an error when input validation, dependency calls, or security checks fail.
// WithNormalizer does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithNormalizer(norm nameset.Normalizer) *Builder {
	b.config.Resolution.Normalizer = norm
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Build validates the configuration, seeds the fallback role and any
// declared roles and actions, and, when a store was supplied, attaches it
// (load, merge, resave) before returning the engine. The context only
// applies to that initial store round-trip.
func (b *Builder) Build(ctx context.Context) (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.identity == nil {
		return nil, errors.New("identity provider required")
	}

	norm := cfg.Resolution.Normalizer
	if norm == nil {
		norm = nameset.Normalize
	}

	if b.name == "" {
		return nil, errors.New("container name required")
	}
	name := norm(b.name)
	if name == "" {
		return nil, wrapName(ErrInvalidName, b.name)
	}

	// -------- NAME SETS --------
	roles := nameset.New(norm)
	actions := nameset.New(norm)

	if cfg.Resolution.FallbackRole != "" {
		roles.Add(cfg.Resolution.FallbackRole)
	}
	for _, r := range b.roles {
		if norm(r) == "" {
			return nil, wrapName(ErrInvalidName, r)
		}
		roles.Add(r)
	}
	for _, a := range b.actions {
		if norm(a) == "" {
			return nil, wrapName(ErrInvalidName, a)
		}
		actions.Add(a)
	}

	// -------- ENGINE --------
	engine := &Engine{
		config:   cfg,
		name:     name,
		identity: b.identity,
		metrics:  NewMetrics(cfg.Metrics),
		roles:    roles,
		actions:  actions,
		grants:   make(map[string]bool),
	}

	// -------- PERSISTENCE --------
	if b.store != nil {
		if err := engine.Attach(ctx, b.store); err != nil {
			return nil, err
		}
	}

	b.built = true

	return engine, nil
}
