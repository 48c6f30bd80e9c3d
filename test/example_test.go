package test

import (
	"context"
	"fmt"

	goACL "github.com/MrEthical07/goACL"
	"github.com/MrEthical07/goACL/identity"
)

// ExampleNew demonstrates engine construction with a persistent store.
func ExampleNew() {
	engine, _ := goACL.New().
		WithName("docs").
		WithIdentity(identity.FromContext{}).
		WithRoles("guest", "member", "admin").
		WithActions("view", "edit").
		WithStore(goACL.NewMemoryStore()).
		Build(context.Background())
	_ = engine
}

// ExampleEngine_Check resolves an action against an explicit role list.
func ExampleEngine_Check() {
	engine, _ := goACL.New().
		WithName("docs").
		WithIdentity(identity.NewStatic("member")).
		WithRoles("member").
		WithActions("view").
		Build(context.Background())
	_ = engine.Allow(context.Background(), []string{"member"}, []string{"view"})

	allowed, _ := engine.Check("view", []string{"member"})
	fmt.Println(allowed)
	// Output: true
}

// ExampleEngine_Can resolves an action for the caller carried by the context.
func ExampleEngine_Can() {
	engine, _ := goACL.New().
		WithName("docs").
		WithIdentity(identity.FromContext{}).
		WithRoles("guest", "member").
		WithActions("view").
		Build(context.Background())
	_ = engine.Allow(context.Background(), []string{"member"}, []string{"view"})

	ctx := identity.WithRoles(context.Background(), "member")
	allowed, _ := engine.Can(ctx, "view")
	fmt.Println(allowed)
	// Output: true
}

// ExampleEngine_MetricsSnapshot shows how to read in-process metrics counters.
func ExampleEngine_MetricsSnapshot() {
	var engine *goACL.Engine
	snapshot := engine.MetricsSnapshot()
	_ = snapshot
}
