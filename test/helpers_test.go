//go:build integration
// +build integration

package test

import (
	"context"
	"testing"

	goACL "github.com/MrEthical07/goACL"
	"github.com/MrEthical07/goACL/identity"
	"github.com/MrEthical07/goACL/store/redisstore"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newIntegrationRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

// newRedisEngine builds an engine named "docs" attached to a redis-backed
// store, pre-seeded with the guest/member roles and view/edit actions.
func newRedisEngine(t *testing.T, rdb redis.UniversalClient, provider goACL.IdentityProvider) *goACL.Engine {
	t.Helper()

	engine, err := goACL.New().
		WithName("docs").
		WithIdentity(provider).
		WithRoles("guest", "member").
		WithActions("view", "edit").
		WithStore(redisstore.New(rdb)).
		Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return engine
}

func staticMember() *identity.Static {
	return identity.NewStatic("member")
}
