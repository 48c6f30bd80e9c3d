package identity

import "context"

type rolesContextKey struct{}
type tokenContextKey struct{}

// WithRoles attaches the caller's role names to ctx. [FromContext] reads
// them back; attaching an empty list marks the caller authenticated with
// no roles, which is different from not attaching at all.
func WithRoles(ctx context.Context, roles ...string) context.Context {
	attached := make([]string, len(roles))
	copy(attached, roles)
	return context.WithValue(ctx, rolesContextKey{}, attached)
}

// WithToken attaches a bearer credential to ctx. [ClaimsProvider] reads it
// as a JWT; [TokenProvider] reads it as an opaque issued token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

func rolesFromContext(ctx context.Context) ([]string, bool) {
	if ctx == nil {
		return nil, false
	}

	roles, ok := ctx.Value(rolesContextKey{}).([]string)
	return roles, ok
}

func tokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

// FromContext resolves identity from values attached with [WithRoles].
// Requests without attached roles are anonymous.
type FromContext struct{}

// Anonymous reports whether ctx carries no attached roles.
func (FromContext) Anonymous(ctx context.Context) bool {
	_, ok := rolesFromContext(ctx)
	return !ok
}

// Roles returns a copy of the attached role names in attachment order.
func (FromContext) Roles(ctx context.Context) []string {
	roles, ok := rolesFromContext(ctx)
	if !ok {
		return nil
	}
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}
