package test

import (
	"context"
	"testing"

	goACL "github.com/MrEthical07/goACL"
	"github.com/MrEthical07/goACL/identity"
	"github.com/MrEthical07/goACL/policy"
)

// This test intentionally guards public API compile-compat for consumers.
func TestPublicAPISurfaceCompile(t *testing.T) {
	_ = goACL.New

	var _ *goACL.Builder
	var _ *goACL.Engine
	var _ goACL.Config
	var _ goACL.Record
	var _ goACL.Report
	var _ goACL.MetricsSnapshot
	var _ goACL.Store = goACL.NewMemoryStore()
	var _ goACL.IdentityProvider = identity.NewStatic()
	var _ goACL.IdentityProvider = identity.Anonymous()
	var _ goACL.IdentityProvider = identity.FromContext{}

	var _ error = goACL.ErrEngineNotReady
	var _ error = goACL.ErrStoreAttached
	var _ error = goACL.ErrStoreUnavailable
	var _ error = goACL.ErrUnknownRole
	var _ error = goACL.ErrUnknownAction
	var _ error = goACL.ErrRoleExists
	var _ error = goACL.ErrActionExists
	var _ error = goACL.ErrInvalidName

	var _ func(*goACL.Engine, string, []string) (bool, error) = (*goACL.Engine).Check
	var _ func(*goACL.Engine, context.Context, string) (bool, error) = (*goACL.Engine).Can
	var _ func(*goACL.Engine, context.Context, []string, []string) error = (*goACL.Engine).Allow
	var _ func(*goACL.Engine, context.Context, []string, []string) error = (*goACL.Engine).Deny
	var _ func(*goACL.Engine, context.Context, []string, []string) error = (*goACL.Engine).Revoke
	var _ func(*goACL.Engine, context.Context, ...string) error = (*goACL.Engine).AddRoles
	var _ func(*goACL.Engine, context.Context, ...string) error = (*goACL.Engine).AddActions
	var _ func(*goACL.Engine, context.Context, string, string) error = (*goACL.Engine).RenameRole
	var _ func(*goACL.Engine, context.Context, goACL.Store) error = (*goACL.Engine).Attach
	var _ func(*goACL.Engine, context.Context) error = (*goACL.Engine).Sync

	var _ func(context.Context, *policy.Document, *goACL.Engine) error = policy.Apply
	var _ func([]byte) (*policy.Document, error) = policy.Parse
}
