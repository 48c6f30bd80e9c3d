package identity

import "context"

// Static is a provider with a fixed answer: a constant role list, or a
// permanently anonymous caller. Useful for single-principal tools, tests,
// and wiring an engine before a real identity source exists.
type Static struct {
	roles []string
	anon  bool
}

// NewStatic returns a provider that reports an authenticated caller
// holding the given roles, in the given order.
func NewStatic(roles ...string) *Static {
	held := make([]string, len(roles))
	copy(held, roles)
	return &Static{roles: held}
}

// Anonymous returns a provider that always reports an anonymous caller.
func Anonymous() *Static {
	return &Static{anon: true}
}

// Anonymous implements the provider contract.
func (s *Static) Anonymous(context.Context) bool {
	return s == nil || s.anon
}

// Roles returns a copy of the fixed role list.
func (s *Static) Roles(context.Context) []string {
	if s == nil || s.anon {
		return nil
	}
	out := make([]string, len(s.roles))
	copy(out, s.roles)
	return out
}
