package goACL

import (
	"context"
	"errors"
	"sort"
)

// Attach describes the attach operation and its observable behavior.
//
// Attach may return an error when input validation, dependency calls, or security checks fail.
// Attach does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Attach loads the record stored under the container's key, merges it into
// live state (persisted entries overwrite matching in-memory pairs,
// in-memory-only state survives), and saves the merged result back. The
// store reference is kept only when load and save both succeed; attaching
// while a store is already attached fails with [ErrStoreAttached]. A failed
// attach may leave merged state in memory, and retrying it is safe because
// the merge is idempotent.
func (e *Engine) Attach(ctx context.Context, store Store) error {
	if e == nil {
		return ErrEngineNotReady
	}
	if store == nil {
		return errors.New("store is nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.store != nil {
		return ErrStoreAttached
	}

	rec, err := store.Load(ctx, e.storageKey())
	if err != nil {
		e.metricInc(MetricAttachFailure)
		return wrapStoreErr(err)
	}
	if rec != nil {
		e.mergeLocked(rec)
	}

	e.store = store
	if err := e.syncLocked(ctx); err != nil {
		e.store = nil
		e.metricInc(MetricAttachFailure)
		return err
	}
	e.metricInc(MetricAttachSuccess)
	return nil
}

// Sync describes the sync operation and its observable behavior.
//
// Sync may return an error when input validation, dependency calls, or security checks fail.
// Sync does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Sync prunes grant entries that no longer resolve against the live sets,
// then saves the container state. With no store attached the prune still
// runs and Sync returns nil. Mutating operations sync internally, so
// explicit calls are only needed after Detach/Attach cycles or external
// store writes.
func (e *Engine) Sync(ctx context.Context) error {
	if e == nil {
		return ErrEngineNotReady
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.syncLocked(ctx)
}

// Detach describes the detach operation and its observable behavior.
//
// Detach may return an error when input validation, dependency calls, or security checks fail.
// Detach does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// Detach drops the store reference without touching the store, after which
// a different store may be attached.
func (e *Engine) Detach() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store = nil
}

// StorageKey describes the storagekey operation and its observable behavior.
//
// StorageKey may return an error when input validation, dependency calls, or security checks fail.
// StorageKey does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) StorageKey() string {
	if e == nil {
		return ""
	}
	return e.storageKey()
}

func (e *Engine) storageKey() string {
	return e.config.Storage.KeyPrefix + e.name
}

// mergeLocked folds a loaded record into live state. Sets grow by Fill
// (existing order wins, new names append); grant keys replay through the
// tolerant assign path in sorted order so records carrying both legacy
// numeric and name keys merge deterministically.
func (e *Engine) mergeLocked(rec *Record) {
	e.roles.Fill(rec.Roles)
	e.actions.Fill(rec.Actions)

	keys := make([]string, 0, len(rec.Grants))
	for key := range rec.Grants {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		role, action, ok := splitGrantKey(key)
		if !ok {
			continue
		}
		e.assign(role, action, rec.Grants[key])
	}
}

// syncLocked is the single write-out path. Caller holds the write lock.
func (e *Engine) syncLocked(ctx context.Context) error {
	e.pruneLocked()

	if e.store == nil {
		return nil
	}
	if err := e.store.Save(ctx, e.storageKey(), e.recordLocked()); err != nil {
		e.metricInc(MetricSyncFailure)
		return wrapStoreErr(err)
	}
	e.metricInc(MetricSyncSuccess)
	return nil
}

// pruneLocked drops grant entries whose role or action is no longer in its
// set. In-memory keys are always normalized names, so this is a direct
// membership test, not an index resolution.
func (e *Engine) pruneLocked() {
	pruned := 0
	for key := range e.grants {
		role, action, ok := splitGrantKey(key)
		if ok && e.roles.Has(role) && e.actions.Has(action) {
			continue
		}
		delete(e.grants, key)
		pruned++
	}
	e.metricAdd(MetricGrantPruned, uint64(pruned))
}

func (e *Engine) recordLocked() *Record {
	rec := &Record{
		Roles:   e.roles.Names(),
		Actions: e.actions.Names(),
		Grants:  make(map[string]bool, len(e.grants)),
	}
	for k, v := range e.grants {
		rec.Grants[k] = v
	}
	return rec
}

func wrapStoreErr(err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return wrapErr(ErrStoreUnavailable, err)
}
