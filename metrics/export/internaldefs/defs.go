package internaldefs

import (
	goACL "github.com/MrEthical07/goACL"
)

// CounterDef defines a public type used by goACL APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goACL.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goACL APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goACL.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the ACL engine.
var CounterDefs = []CounterDef{
	{ID: goACL.MetricCheckAllowed, Name: "goacl_check_allowed_total", Help: "Checks resolved to allow."},
	{ID: goACL.MetricCheckDenied, Name: "goacl_check_denied_total", Help: "Checks resolved to deny."},
	{ID: goACL.MetricCheckUnknownAction, Name: "goacl_check_unknown_action_total", Help: "Checks rejected for an undeclared action."},
	{ID: goACL.MetricAnonymousFallback, Name: "goacl_anonymous_fallback_total", Help: "Anonymous callers resolved through the fallback role."},
	{ID: goACL.MetricGrantApplied, Name: "goacl_grant_applied_total", Help: "Explicit allow or deny entries written."},
	{ID: goACL.MetricGrantRejected, Name: "goacl_grant_rejected_total", Help: "Grant calls rejected by validation."},
	{ID: goACL.MetricGrantRevoked, Name: "goacl_grant_revoked_total", Help: "Explicit entries removed by revoke."},
	{ID: goACL.MetricGrantPruned, Name: "goacl_grant_pruned_total", Help: "Dangling entries dropped during sync."},
	{ID: goACL.MetricRoleAdded, Name: "goacl_role_added_total", Help: "Roles added to the container."},
	{ID: goACL.MetricRoleRemoved, Name: "goacl_role_removed_total", Help: "Roles removed from the container."},
	{ID: goACL.MetricRoleRenamed, Name: "goacl_role_renamed_total", Help: "Role rename operations."},
	{ID: goACL.MetricActionAdded, Name: "goacl_action_added_total", Help: "Actions added to the container."},
	{ID: goACL.MetricActionRemoved, Name: "goacl_action_removed_total", Help: "Actions removed from the container."},
	{ID: goACL.MetricActionRenamed, Name: "goacl_action_renamed_total", Help: "Action rename operations."},
	{ID: goACL.MetricAttachSuccess, Name: "goacl_attach_success_total", Help: "Successful store attachments."},
	{ID: goACL.MetricAttachFailure, Name: "goacl_attach_failure_total", Help: "Failed store attachments."},
	{ID: goACL.MetricSyncSuccess, Name: "goacl_sync_success_total", Help: "Successful store syncs."},
	{ID: goACL.MetricSyncFailure, Name: "goacl_sync_failure_total", Help: "Failed store syncs."},
}

// HistogramDefs is an exported constant or variable used by the ACL engine.
var HistogramDefs = []HistogramDef{
	{ID: goACL.MetricCheckLatency, Name: "goacl_check_latency_microseconds", Help: "Check resolution latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the ACL engine.
var HistogramBounds = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"500",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the ACL engine.
var HistogramBoundSuffix = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"500",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
