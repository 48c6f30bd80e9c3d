package goACL

import (
	"context"
	"sync"
	"time"

	"github.com/MrEthical07/goACL/nameset"
)

// Engine defines a public type used by goACL APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config   Config
	name     string
	identity IdentityProvider
	metrics  *Metrics

	mu      sync.RWMutex
	roles   *nameset.Set
	actions *nameset.Set
	grants  map[string]bool
	store   Store
}

// Name describes the name operation and its observable behavior.
//
// Name may return an error when input validation, dependency calls, or security checks fail.
// Name does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Attached describes the attached operation and its observable behavior.
//
// Attached may return an error when input validation, dependency calls, or security checks fail.
// Attached does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Attached() bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store != nil
}

// Roles describes the roles operation and its observable behavior.
//
// Roles may return an error when input validation, dependency calls, or security checks fail.
// Roles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Roles() []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.roles.Names()
}

// Actions describes the actions operation and its observable behavior.
//
// Actions may return an error when input validation, dependency calls, or security checks fail.
// Actions does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Actions() []string {
	if e == nil {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actions.Names()
}

// HasRole describes the hasrole operation and its observable behavior.
//
// HasRole may return an error when input validation, dependency calls, or security checks fail.
// HasRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) HasRole(name string) bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.roles.Has(name)
}

// HasAction describes the hasaction operation and its observable behavior.
//
// HasAction may return an error when input validation, dependency calls, or security checks fail.
// HasAction does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) HasAction(name string) bool {
	if e == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.actions.Has(name)
}

// Grants describes the grants operation and its observable behavior.
//
// Grants may return an error when input validation, dependency calls, or security checks fail.
// Grants does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The returned map is a copy keyed "role:action"; true means allow, false
// means explicit deny.
func (e *Engine) Grants() map[string]bool {
	if e == nil {
		return map[string]bool{}
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]bool, len(e.grants))
	for k, v := range e.grants {
		out[k] = v
	}
	return out
}

// Check describes the check operation and its observable behavior.
//
// Check may return an error when input validation, dependency calls, or security checks fail.
// Check does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The action must exist ([ErrUnknownAction] otherwise). Roles are walked in
// caller order; names that are unknown or invalid are skipped, and the first
// role holding an explicit entry for the action decides. No entry anywhere
// denies.
func (e *Engine) Check(action string, roles []string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}
	start := time.Now()

	e.mu.RLock()
	allowed, err := e.checkLocked(action, roles)
	e.mu.RUnlock()

	switch {
	case err != nil:
		e.metricInc(MetricCheckUnknownAction)
	case allowed:
		e.metricInc(MetricCheckAllowed)
	default:
		e.metricInc(MetricCheckDenied)
	}
	e.metricObserve(MetricCheckLatency, time.Since(start))

	return allowed, err
}

// Can describes the can operation and its observable behavior.
//
// Can may return an error when input validation, dependency calls, or security checks fail.
// Can does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Anonymous callers resolve through the configured fallback role when the
// role set contains it, and with no roles otherwise. Authenticated callers
// resolve with the provider's role list in provider order.
func (e *Engine) Can(ctx context.Context, action string) (bool, error) {
	if e == nil || e.identity == nil {
		return false, ErrEngineNotReady
	}
	return e.Check(action, e.callerRoles(ctx))
}

// IsAllowed describes the isallowed operation and its observable behavior.
//
// IsAllowed may return an error when input validation, dependency calls, or security checks fail.
// IsAllowed does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// IsAllowed probes one (role, action) pair directly: the second return
// reports whether an explicit entry exists at all.
func (e *Engine) IsAllowed(role, action string) (bool, bool) {
	if e == nil {
		return false, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	allowed, ok := e.grants[grantKey(e.roles.Norm(role), e.actions.Norm(action))]
	return allowed, ok
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) checkLocked(action string, roles []string) (bool, error) {
	a := e.actions.Norm(action)
	if a == "" || !e.actions.Has(a) {
		return false, wrapName(ErrUnknownAction, action)
	}

	for _, role := range roles {
		r := e.roles.Norm(role)
		if r == "" || !e.roles.Has(r) {
			continue
		}
		if allowed, ok := e.grants[grantKey(r, a)]; ok {
			return allowed, nil
		}
	}

	return false, nil
}

func (e *Engine) callerRoles(ctx context.Context) []string {
	if !e.identity.Anonymous(ctx) {
		return e.identity.Roles(ctx)
	}

	fallback := e.config.Resolution.FallbackRole
	if fallback == "" {
		return nil
	}
	e.mu.RLock()
	present := e.roles.Has(fallback)
	e.mu.RUnlock()
	if !present {
		return nil
	}
	e.metricInc(MetricAnonymousFallback)
	return []string{fallback}
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) metricAdd(id MetricID, n uint64) {
	if e == nil || e.metrics == nil || n == 0 {
		return
	}
	e.metrics.Add(id, n)
}

func (e *Engine) metricObserve(id MetricID, d time.Duration) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Observe(id, d)
}
