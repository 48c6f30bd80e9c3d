package identity

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SigningMethod selects the signature algorithm a [ClaimsProvider] accepts.
type SigningMethod string

const (
	// MethodEd25519 verifies EdDSA signatures with an ed25519 public key.
	MethodEd25519 SigningMethod = "ed25519"
	// MethodHS256 verifies HMAC-SHA256 signatures with a shared secret.
	MethodHS256 SigningMethod = "hs256"
)

// ClaimsConfig configures token verification for [ClaimsProvider].
type ClaimsConfig struct {
	SigningMethod SigningMethod
	// VerifyKey is the HMAC secret for hs256, or a raw/PEM ed25519 public
	// key for ed25519.
	VerifyKey []byte
	Issuer    string
	Audience  string
	Leeway    time.Duration
	// RolesClaim is the claim holding the role list, "roles" by default.
	// The claim may be a JSON string array or a single string.
	RolesClaim string
}

// ClaimsProvider resolves identity from a JWT attached with [WithToken].
// A missing, malformed, expired, or otherwise unverifiable token makes the
// caller anonymous; a valid one yields the roles carried in the configured
// claim, in claim order.
//
// Anonymous and Roles each verify the token. Callers checking many actions
// per request can verify once and re-attach the result with [WithRoles].
type ClaimsProvider struct {
	config ClaimsConfig
}

// NewClaimsProvider validates cfg and returns the provider.
func NewClaimsProvider(cfg ClaimsConfig) (*ClaimsProvider, error) {
	if cfg.RolesClaim == "" {
		cfg.RolesClaim = "roles"
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	switch cfg.SigningMethod {
	case MethodHS256:
		if len(cfg.VerifyKey) == 0 {
			return nil, errors.New("hs256 requires verify key")
		}
	case MethodEd25519:
		if _, err := parseEdPublicKey(cfg.VerifyKey); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("unsupported signing method")
	}

	return &ClaimsProvider{config: cfg}, nil
}

// Anonymous reports whether ctx carries no verifiable token.
func (p *ClaimsProvider) Anonymous(ctx context.Context) bool {
	_, ok := p.verify(ctx)
	return !ok
}

// Roles returns the role list from the verified token, or nil.
func (p *ClaimsProvider) Roles(ctx context.Context) []string {
	roles, _ := p.verify(ctx)
	return roles
}

func (p *ClaimsProvider) verify(ctx context.Context) ([]string, bool) {
	raw := tokenFromContext(ctx)
	if raw == "" {
		return nil, false
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{p.method().Alg()}),
	}
	if p.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(p.config.Leeway))
	}
	if p.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(p.config.Issuer))
	}
	if p.config.Audience != "" {
		options = append(options, jwt.WithAudience(p.config.Audience))
	}

	parser := jwt.NewParser(options...)
	token, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != p.method().Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return p.verifyKey()
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	return claimRoles(claims[p.config.RolesClaim]), true
}

func (p *ClaimsProvider) method() jwt.SigningMethod {
	switch p.config.SigningMethod {
	case MethodHS256:
		return jwt.SigningMethodHS256
	default:
		return jwt.SigningMethodEdDSA
	}
}

func (p *ClaimsProvider) verifyKey() (interface{}, error) {
	switch p.config.SigningMethod {
	case MethodHS256:
		return p.config.VerifyKey, nil
	default:
		return parseEdPublicKey(p.config.VerifyKey)
	}
}

func claimRoles(v interface{}) []string {
	switch roles := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(roles))
		for _, r := range roles {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		out := make([]string, len(roles))
		copy(out, roles)
		return out
	case string:
		if roles == "" {
			return nil
		}
		return []string{roles}
	}
	return nil
}

func parseEdPublicKey(key []byte) (ed25519.PublicKey, error) {
	if len(key) == ed25519.PublicKeySize {
		return ed25519.PublicKey(key), nil
	}
	parsed, err := jwt.ParseEdPublicKeyFromPEM(key)
	if err != nil {
		return nil, errors.New("invalid ed25519 public key")
	}
	edKey, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("invalid ed25519 public key type")
	}
	return edKey, nil
}
