package goACL

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goACL/identity"
)

func TestMetricsDisabledNoIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	m.Inc(MetricCheckAllowed)

	if got := m.Value(MetricCheckAllowed); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestMetricsEnabledIncrement(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricCheckAllowed)
	m.Inc(MetricCheckAllowed)
	m.Inc(MetricCheckAllowed)

	if got := m.Value(MetricCheckAllowed); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestMetricsConcurrentIncrementSafe(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})

	const goroutines = 32
	const perG = 4000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perG; j++ {
				m.Inc(MetricCheckDenied)
			}
		}()
	}
	wg.Wait()

	want := uint64(goroutines * perG)
	if got := m.Value(MetricCheckDenied); got != want {
		t.Fatalf("expected %d, got %d", want, got)
	}
}

func TestMetricsHistogramBucketCorrectness(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})

	// One observation per microsecond bucket.
	observations := []time.Duration{
		800 * time.Nanosecond,
		3 * time.Microsecond,
		8 * time.Microsecond,
		20 * time.Microsecond,
		40 * time.Microsecond,
		80 * time.Microsecond,
		300 * time.Microsecond,
		2 * time.Millisecond,
	}

	for _, d := range observations {
		m.Observe(MetricCheckLatency, d)
	}

	snap := m.Snapshot()
	buckets := snap.Histograms[MetricCheckLatency]
	if len(buckets) != 8 {
		t.Fatalf("expected 8 buckets, got %d", len(buckets))
	}

	for i, v := range buckets {
		if v != 1 {
			t.Fatalf("bucket %d expected 1, got %d", i, v)
		}
	}
}

func TestMetricsSnapshotConsistency(t *testing.T) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	m.Inc(MetricCheckAllowed)
	m.Inc(MetricCheckDenied)
	m.Inc(MetricCheckDenied)
	m.Observe(MetricCheckLatency, 500*time.Nanosecond)

	snap := m.Snapshot()

	if snap.Counters[MetricCheckAllowed] != 1 {
		t.Fatalf("expected MetricCheckAllowed=1 got %d", snap.Counters[MetricCheckAllowed])
	}
	if snap.Counters[MetricCheckDenied] != 2 {
		t.Fatalf("expected MetricCheckDenied=2 got %d", snap.Counters[MetricCheckDenied])
	}
	if len(snap.Histograms[MetricCheckLatency]) != 8 {
		t.Fatalf("expected histogram length 8")
	}
	if snap.Histograms[MetricCheckLatency][0] != 1 {
		t.Fatalf("expected first histogram bucket=1 got %d", snap.Histograms[MetricCheckLatency][0])
	}
}

func TestMetricsSnapshotOmitsHistogramWhenLatencyDisabled(t *testing.T) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	m.Inc(MetricCheckAllowed)
	m.Observe(MetricCheckLatency, time.Microsecond)

	snap := m.Snapshot()
	if snap.Counters[MetricCheckAllowed] != 1 {
		t.Fatalf("expected counter recorded, got %d", snap.Counters[MetricCheckAllowed])
	}
	if _, ok := snap.Histograms[MetricCheckLatency]; ok {
		t.Fatal("expected no histogram when latency tracking is off")
	}
}

func TestEngineCountsResolutionOutcomes(t *testing.T) {
	engine := newTestEngine(t, func(b *Builder) { b.WithConfig(ObservedConfig()) })

	mustAllow(t, engine, []string{"member"}, []string{"view"})

	if _, err := engine.Check("view", []string{"member"}); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := engine.Check("edit", []string{"member"}); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if _, err := engine.Check("missing", []string{"member"}); err == nil {
		t.Fatal("expected unknown action error")
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricCheckAllowed] != 1 {
		t.Fatalf("expected one allow, got %d", snap.Counters[MetricCheckAllowed])
	}
	if snap.Counters[MetricCheckDenied] != 1 {
		t.Fatalf("expected one deny, got %d", snap.Counters[MetricCheckDenied])
	}
	if snap.Counters[MetricCheckUnknownAction] != 1 {
		t.Fatalf("expected one unknown action, got %d", snap.Counters[MetricCheckUnknownAction])
	}
	if snap.Counters[MetricGrantApplied] != 1 {
		t.Fatalf("expected one applied grant, got %d", snap.Counters[MetricGrantApplied])
	}
	// Two resolved checks, two latency samples.
	var samples uint64
	for _, v := range snap.Histograms[MetricCheckLatency] {
		samples += v
	}
	if samples != 2 {
		t.Fatalf("expected 2 latency samples, got %d", samples)
	}
}

func TestEngineCountsAnonymousFallback(t *testing.T) {
	engine := newTestEngine(t, func(b *Builder) {
		b.WithConfig(ObservedConfig()).WithIdentity(identity.Anonymous())
	})
	ctx := context.Background()

	if _, err := engine.Can(ctx, "view"); err != nil {
		t.Fatalf("Can failed: %v", err)
	}

	snap := engine.MetricsSnapshot()
	if snap.Counters[MetricAnonymousFallback] != 1 {
		t.Fatalf("expected one fallback resolution, got %d", snap.Counters[MetricAnonymousFallback])
	}
}
