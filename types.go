package goACL

import "context"

// IdentityProvider is the interface callers implement to tell the engine who
// is asking. The engine never stores identity: every [Engine.Can] call asks
// the provider again, and the provider's role order is the resolution order.
type IdentityProvider interface {
	// Anonymous reports whether the current caller is unauthenticated.
	// Anonymous callers resolve through the configured fallback role.
	Anonymous(ctx context.Context) bool
	// Roles returns the current caller's role names in priority order.
	// Names are normalized by the engine; unknown ones are skipped.
	Roles(ctx context.Context) []string
}

// Record is the persisted shape of one container: the ordered role and
// action lists plus the sparse grant matrix. Grant keys are "role:action"
// on normalized names; records written by older deployments may carry
// "row:col" numeric keys instead, which load through the same tolerant
// resolution path.
type Record struct {
	Roles   []string        `json:"roles"`
	Actions []string        `json:"actions"`
	Grants  map[string]bool `json:"acl"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		Roles:   make([]string, len(r.Roles)),
		Actions: make([]string, len(r.Actions)),
		Grants:  make(map[string]bool, len(r.Grants)),
	}
	copy(out.Roles, r.Roles)
	copy(out.Actions, r.Actions)
	for k, v := range r.Grants {
		out.Grants[k] = v
	}
	return out
}

// Store is the narrow persistence contract the engine speaks. Load returns
// (nil, nil) when the key has never been saved. Implementations must treat
// the record as owned by the caller: deep-copy on both sides if they retain
// state (see [MemoryStore]).
//
// Backends live in store/redisstore, store/pebblestore, and store/gormstore.
type Store interface {
	Load(ctx context.Context, key string) (*Record, error)
	Save(ctx context.Context, key string, rec *Record) error
}
