// Package goACL provides an embeddable role/action access-control engine
// with ordered name sets, an explicit allow/deny grant matrix, and an
// attachable persistence bridge.
//
// The package is designed for concurrent server workloads: Engine methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// goACL is the public surface. It exposes [Engine], [Builder], [Config], the
// [Store] and [IdentityProvider] contracts, and value types (Record, Report,
// MetricsSnapshot). Name normalization lives in nameset; store backends live
// under store/; identity adapters live under identity/ — the root package
// never imports any of its consumers.
//
// # What this package must NOT do
//
//   - Expose backend clients (Redis, Pebble, SQL) in its public API; the
//     engine only ever sees the [Store] contract.
//   - Store or cache identity. Every [Engine.Can] call asks the
//     [IdentityProvider] again, and the provider's role order is the
//     resolution order.
//   - Import any sub-package that re-imports goACL (no import cycles).
//
// # Performance contract
//
// Check is the hot path: one read-lock, no store round-trips, allocations
// limited to name normalization. Mutating operations hold the write lock
// through their store sync, so persistence is a synchronous, blocking part
// of every successful mutation when a store is attached.
package goACL
