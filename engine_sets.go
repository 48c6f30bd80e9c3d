package goACL

import (
	"context"
	"errors"

	"github.com/MrEthical07/goACL/nameset"
)

// AddRole describes the addrole operation and its observable behavior.
//
// AddRole may return an error when input validation, dependency calls, or security checks fail.
// AddRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Adding a role that already exists is a no-op. The change is persisted
// when a store is attached.
func (e *Engine) AddRole(ctx context.Context, name string) error {
	return e.AddRoles(ctx, name)
}

// AddRoles describes the addroles operation and its observable behavior.
//
// AddRoles may return an error when input validation, dependency calls, or security checks fail.
// AddRoles does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Every name is validated before any is added: one invalid name rejects the
// whole call with [ErrInvalidName].
func (e *Engine) AddRoles(ctx context.Context, names ...string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateNames(e.roles, names); err != nil {
		return err
	}

	added := 0
	for _, name := range names {
		if _, grew := e.roles.Add(name); grew {
			added++
		}
	}
	if added == 0 {
		return nil
	}
	e.metricAdd(MetricRoleAdded, uint64(added))
	return e.syncLocked(ctx)
}

// AddAction describes the addaction operation and its observable behavior.
//
// AddAction may return an error when input validation, dependency calls, or security checks fail.
// AddAction does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Adding an action that already exists is a no-op. The change is persisted
// when a store is attached.
func (e *Engine) AddAction(ctx context.Context, name string) error {
	return e.AddActions(ctx, name)
}

// AddActions describes the addactions operation and its observable behavior.
//
// AddActions may return an error when input validation, dependency calls, or security checks fail.
// AddActions does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Every name is validated before any is added: one invalid name rejects the
// whole call with [ErrInvalidName].
func (e *Engine) AddActions(ctx context.Context, names ...string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := validateNames(e.actions, names); err != nil {
		return err
	}

	added := 0
	for _, name := range names {
		if _, grew := e.actions.Add(name); grew {
			added++
		}
	}
	if added == 0 {
		return nil
	}
	e.metricAdd(MetricActionAdded, uint64(added))
	return e.syncLocked(ctx)
}

// RemoveRole describes the removerole operation and its observable behavior.
//
// RemoveRole may return an error when input validation, dependency calls, or security checks fail.
// RemoveRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Removing an absent role is a no-op. Grant entries mentioning the removed
// role become unreachable and are pruned by the sync that follows.
func (e *Engine) RemoveRole(ctx context.Context, name string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.roles.Remove(name) {
		return nil
	}
	e.metricInc(MetricRoleRemoved)
	return e.syncLocked(ctx)
}

// RemoveAction describes the removeaction operation and its observable behavior.
//
// RemoveAction may return an error when input validation, dependency calls, or security checks fail.
// RemoveAction does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Removing an absent action is a no-op. Grant entries mentioning the removed
// action become unreachable and are pruned by the sync that follows.
func (e *Engine) RemoveAction(ctx context.Context, name string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.actions.Remove(name) {
		return nil
	}
	e.metricInc(MetricActionRemoved)
	return e.syncLocked(ctx)
}

// RenameRole describes the renamerole operation and its observable behavior.
//
// RenameRole may return an error when input validation, dependency calls, or security checks fail.
// RenameRole does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A successful rename re-keys every grant entry held by the role, so
// decisions are unchanged.
func (e *Engine) RenameRole(ctx context.Context, old, new string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.roles.Rename(old, new); err != nil {
		return wrapRenameErr(err, ErrUnknownRole, ErrRoleExists, old, new)
	}
	if e.roles.Norm(old) == e.roles.Norm(new) {
		return nil
	}
	e.rekeyGrants(e.roles.Norm(old), e.roles.Norm(new), true)
	e.metricInc(MetricRoleRenamed)
	return e.syncLocked(ctx)
}

// RenameAction describes the renameaction operation and its observable behavior.
//
// RenameAction may return an error when input validation, dependency calls, or security checks fail.
// RenameAction does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// A successful rename re-keys every grant entry held by the action, so
// decisions are unchanged.
func (e *Engine) RenameAction(ctx context.Context, old, new string) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.actions.Rename(old, new); err != nil {
		return wrapRenameErr(err, ErrUnknownAction, ErrActionExists, old, new)
	}
	if e.actions.Norm(old) == e.actions.Norm(new) {
		return nil
	}
	e.rekeyGrants(e.actions.Norm(old), e.actions.Norm(new), false)
	e.metricInc(MetricActionRenamed)
	return e.syncLocked(ctx)
}

// rekeyGrants rewrites every grant entry whose role (or action, when
// roleSide is false) equals from. Caller holds the write lock.
func (e *Engine) rekeyGrants(from, to string, roleSide bool) {
	if from == to {
		return
	}

	moved := make(map[string]bool)
	for key, allowed := range e.grants {
		role, action, ok := splitGrantKey(key)
		if !ok {
			continue
		}
		if roleSide && role == from {
			moved[grantKey(to, action)] = allowed
			delete(e.grants, key)
		} else if !roleSide && action == from {
			moved[grantKey(role, to)] = allowed
			delete(e.grants, key)
		}
	}
	for key, allowed := range moved {
		e.grants[key] = allowed
	}
}

func validateNames(set *nameset.Set, names []string) error {
	for _, name := range names {
		if set.Norm(name) == "" {
			return wrapName(ErrInvalidName, name)
		}
	}
	return nil
}

func wrapRenameErr(err error, unknown, exists error, old, new string) error {
	switch {
	case errors.Is(err, nameset.ErrUnknownName):
		return wrapName(unknown, old)
	case errors.Is(err, nameset.ErrDuplicateName):
		return wrapName(exists, new)
	case errors.Is(err, nameset.ErrInvalidName):
		return wrapName(ErrInvalidName, new)
	}
	return err
}
