// Package prometheus provides Prometheus collectors for goACL metrics.
//
// [NewPrometheusExporter] accepts a [goACL.Engine] and exposes an [http.Handler]
// that renders all goACL counters and histograms in Prometheus text exposition format.
// Counter names are prefixed goacl_*_total; the single histogram is
// goacl_check_latency_microseconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
