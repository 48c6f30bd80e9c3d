package goACL

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Allow describes the allow operation and its observable behavior.
//
// Allow may return an error when input validation, dependency calls, or security checks fail.
// Allow does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Allow is all-or-nothing: every role and every action is validated before
// any entry is written, so a failed call leaves the matrix untouched. On
// success every (role, action) pair in the cartesian product is set to
// allow, overwriting earlier entries, and the state is synced once.
func (e *Engine) Allow(ctx context.Context, roles, actions []string) error {
	return e.applyGrant(ctx, roles, actions, true)
}

// Deny describes the deny operation and its observable behavior.
//
// Deny may return an error when input validation, dependency calls, or security checks fail.
// Deny does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Deny writes explicit deny entries with the same all-or-nothing contract
// as [Engine.Allow]. An explicit deny differs from no entry: it stops the
// resolution walk at the first role that carries it.
func (e *Engine) Deny(ctx context.Context, roles, actions []string) error {
	return e.applyGrant(ctx, roles, actions, false)
}

// Revoke describes the revoke operation and its observable behavior.
//
// Revoke may return an error when input validation, dependency calls, or security checks fail.
// Revoke does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Revoke deletes the explicit entries for the cartesian product, restoring
// deny-by-default for those pairs. Validation matches [Engine.Allow];
// pairs without an entry are fine.
func (e *Engine) Revoke(ctx context.Context, roles, actions []string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	normRoles, normActions, err := e.validatePairsLocked(roles, actions)
	if err != nil {
		return err
	}
	if len(normRoles) == 0 || len(normActions) == 0 {
		return nil
	}

	removed := 0
	for _, r := range normRoles {
		for _, a := range normActions {
			key := grantKey(r, a)
			if _, ok := e.grants[key]; ok {
				delete(e.grants, key)
				removed++
			}
		}
	}
	if removed == 0 {
		return nil
	}
	e.metricAdd(MetricGrantRevoked, uint64(removed))
	return e.syncLocked(ctx)
}

func (e *Engine) applyGrant(ctx context.Context, roles, actions []string, allow bool) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	normRoles, normActions, err := e.validatePairsLocked(roles, actions)
	if err != nil {
		e.metricInc(MetricGrantRejected)
		return err
	}
	if len(normRoles) == 0 || len(normActions) == 0 {
		return nil
	}

	for _, r := range normRoles {
		for _, a := range normActions {
			e.grants[grantKey(r, a)] = allow
		}
	}
	e.metricInc(MetricGrantApplied)
	return e.syncLocked(ctx)
}

// validatePairsLocked normalizes both name lists and rejects the call on
// the first role or action missing from its set. Caller holds a lock.
func (e *Engine) validatePairsLocked(roles, actions []string) ([]string, []string, error) {
	normRoles := make([]string, 0, len(roles))
	for _, role := range roles {
		r := e.roles.Norm(role)
		if r == "" || !e.roles.Has(r) {
			return nil, nil, wrapName(ErrUnknownRole, role)
		}
		normRoles = append(normRoles, r)
	}

	normActions := make([]string, 0, len(actions))
	for _, action := range actions {
		a := e.actions.Norm(action)
		if a == "" || !e.actions.Has(a) {
			return nil, nil, wrapName(ErrUnknownAction, action)
		}
		normActions = append(normActions, a)
	}

	return normRoles, normActions, nil
}

// assign is the tolerant write path used when replaying persisted grant
// keys. Each side resolves as a positional index when it parses as a
// base-10 integer in range of its set (the legacy key format), and as a
// normalized name otherwise. Unresolvable pairs are skipped. Caller holds
// the write lock; nothing is persisted here.
func (e *Engine) assign(role, action string, allow bool) bool {
	r, ok := e.resolveRole(role)
	if !ok {
		return false
	}
	a, ok := e.resolveAction(action)
	if !ok {
		return false
	}
	e.grants[grantKey(r, a)] = allow
	return true
}

func (e *Engine) resolveRole(token string) (string, bool) {
	if i, ok := parseIndex(token); ok {
		if name, found := e.roles.Name(i); found {
			return name, true
		}
	}
	n := e.roles.Norm(token)
	if n == "" || !e.roles.Has(n) {
		return "", false
	}
	return n, true
}

func (e *Engine) resolveAction(token string) (string, bool) {
	if i, ok := parseIndex(token); ok {
		if name, found := e.actions.Name(i); found {
			return name, true
		}
	}
	n := e.actions.Norm(token)
	if n == "" || !e.actions.Has(n) {
		return "", false
	}
	return n, true
}

func grantKey(role, action string) string {
	return role + ":" + action
}

// splitGrantKey splits on the first ':'. Normalized names never contain
// one, so the role side is unambiguous; anything malformed reports false.
func splitGrantKey(key string) (role, action string, ok bool) {
	i := strings.IndexByte(key, ':')
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	return key[:i], key[i+1:], true
}

func parseIndex(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		if token[i] < '0' || token[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n, true
}

func wrapName(sentinel error, name string) error {
	return fmt.Errorf("%w: %q", sentinel, name)
}

func wrapErr(sentinel, err error) error {
	return fmt.Errorf("%w: %v", sentinel, err)
}
