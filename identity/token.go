package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// TokenProvider resolves identity from opaque bearer tokens it issued
// itself. Tokens are random UUIDs held in memory, so they die with the
// process; revocation takes effect on the next resolution.
type TokenProvider struct {
	mu     sync.RWMutex
	tokens map[string][]string
}

// NewTokenProvider creates an empty [TokenProvider].
func NewTokenProvider() *TokenProvider {
	return &TokenProvider{
		tokens: make(map[string][]string),
	}
}

// Issue mints a token carrying the given roles and returns it. The caller
// attaches it to requests with [WithToken].
func (p *TokenProvider) Issue(roles ...string) string {
	held := make([]string, len(roles))
	copy(held, roles)

	token := uuid.NewString()
	p.mu.Lock()
	p.tokens[token] = held
	p.mu.Unlock()
	return token
}

// Revoke invalidates a token and reports whether it was live.
func (p *TokenProvider) Revoke(token string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.tokens[token]; !ok {
		return false
	}
	delete(p.tokens, token)
	return true
}

// Live reports how many tokens are currently valid.
func (p *TokenProvider) Live() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.tokens)
}

// Anonymous reports whether ctx carries no live issued token.
func (p *TokenProvider) Anonymous(ctx context.Context) bool {
	token := tokenFromContext(ctx)
	if token == "" {
		return true
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.tokens[token]
	return !ok
}

// Roles returns a copy of the roles carried by the token on ctx, or nil.
func (p *TokenProvider) Roles(ctx context.Context) []string {
	token := tokenFromContext(ctx)
	if token == "" {
		return nil
	}

	p.mu.RLock()
	held, ok := p.tokens[token]
	p.mu.RUnlock()
	if !ok {
		return nil
	}
	out := make([]string, len(held))
	copy(out, held)
	return out
}
