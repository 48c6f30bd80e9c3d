package goACL

import (
	"context"
	"testing"

	"github.com/MrEthical07/goACL/identity"
)

func BenchmarkCheck(b *testing.B) {
	engine := newBenchmarkEngine(b, DefaultConfig())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		allowed, err := engine.Check("view", []string{"member"})
		if err != nil {
			b.Fatalf("check failed: %v", err)
		}
		if !allowed {
			b.Fatal("expected allow")
		}
	}
}

func BenchmarkCheckLastRoleMatches(b *testing.B) {
	engine := newBenchmarkEngine(b, DefaultConfig())
	roles := []string{"visitor", "intern", "contractor", "member", "editor"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		allowed, err := engine.Check("publish", roles)
		if err != nil {
			b.Fatalf("check failed: %v", err)
		}
		if !allowed {
			b.Fatal("expected allow")
		}
	}
}

func BenchmarkCheckObserved(b *testing.B) {
	engine := newBenchmarkEngine(b, ObservedConfig())

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Check("view", []string{"member"}); err != nil {
			b.Fatalf("check failed: %v", err)
		}
	}
}

func BenchmarkCan(b *testing.B) {
	engine := newBenchmarkEngine(b, DefaultConfig())
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Can(ctx, "view"); err != nil {
			b.Fatalf("can failed: %v", err)
		}
	}
}

func BenchmarkAllowWithSync(b *testing.B) {
	engine := newBenchmarkEngine(b, DefaultConfig())
	ctx := context.Background()
	if err := engine.Attach(ctx, NewMemoryStore()); err != nil {
		b.Fatalf("attach failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := engine.Allow(ctx, []string{"member"}, []string{"view"}); err != nil {
			b.Fatalf("allow failed: %v", err)
		}
	}
}

func newBenchmarkEngine(tb testing.TB, cfg Config) *Engine {
	tb.Helper()

	engine, err := New().
		WithName("bench").
		WithConfig(cfg).
		WithIdentity(identity.NewStatic("member")).
		WithRoles("guest", "visitor", "intern", "contractor", "member", "editor", "admin").
		WithActions("view", "edit", "delete", "publish").
		Build(context.Background())
	if err != nil {
		tb.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	if err := engine.Allow(ctx, []string{"member", "editor", "admin"}, []string{"view", "edit"}); err != nil {
		tb.Fatalf("seed grants failed: %v", err)
	}
	if err := engine.Allow(ctx, []string{"editor", "admin"}, []string{"publish"}); err != nil {
		tb.Fatalf("seed grants failed: %v", err)
	}
	if err := engine.Deny(ctx, []string{"guest"}, []string{"edit", "delete", "publish"}); err != nil {
		tb.Fatalf("seed grants failed: %v", err)
	}

	return engine
}
