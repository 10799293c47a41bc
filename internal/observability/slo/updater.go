package slo

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	requestsTotalName   = "http_requests_total"
	requestDurationName = "http_request_duration_seconds"
)

// StartUpdater periodically recomputes the SLO gauges from the gatherer's
// request counters and latency histogram. It blocks until ctx is cancelled,
// so run it in its own goroutine.
//
// The computed values are lifetime ratios, not windowed rates. Alerting-grade
// windowed SLO math belongs in the Prometheus server; these gauges exist so a
// bare /metrics scrape still shows whether the service is inside its targets.
func StartUpdater(ctx context.Context, gatherer prometheus.Gatherer, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := updateFromGatherer(gatherer); err != nil {
				slog.Warn("slo update failed", slog.Any("error", err))
			}
		}
	}
}

func updateFromGatherer(gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		switch family.GetName() {
		case requestsTotalName:
			total, errors := sumRequests(family)
			if total > 0 {
				Availability.Set((total - errors) / total)
				ErrorRate.Set(errors / total)
			}
		case requestDurationName:
			buckets := mergeBuckets(family)
			if len(buckets) > 0 {
				LatencyP95.Set(quantileFromBuckets(buckets, 0.95))
				LatencyP99.Set(quantileFromBuckets(buckets, 0.99))
			}
		}
	}
	return nil
}

// sumRequests totals the request counter across all label sets and counts
// the 5xx share.
func sumRequests(family *dto.MetricFamily) (total, errors float64) {
	for _, metric := range family.GetMetric() {
		value := metric.GetCounter().GetValue()
		total += value
		for _, label := range metric.GetLabel() {
			if label.GetName() == "status" && strings.HasPrefix(label.GetValue(), "5") {
				errors += value
			}
		}
	}
	return total, errors
}

type bucket struct {
	upperBound      float64
	cumulativeCount float64
}

// mergeBuckets collapses the per-label histogram series into one cumulative
// bucket list.
func mergeBuckets(family *dto.MetricFamily) []bucket {
	merged := map[float64]float64{}
	for _, metric := range family.GetMetric() {
		for _, b := range metric.GetHistogram().GetBucket() {
			merged[b.GetUpperBound()] += float64(b.GetCumulativeCount())
		}
	}

	buckets := make([]bucket, 0, len(merged))
	for bound, count := range merged {
		buckets = append(buckets, bucket{upperBound: bound, cumulativeCount: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].upperBound < buckets[j].upperBound
	})
	return buckets
}

// quantileFromBuckets estimates a quantile by linear interpolation within
// the bucket that crosses the target rank, the same way PromQL's
// histogram_quantile does.
func quantileFromBuckets(buckets []bucket, q float64) float64 {
	count := buckets[len(buckets)-1].cumulativeCount
	if count == 0 {
		return 0
	}

	rank := q * count
	for i, b := range buckets {
		if b.cumulativeCount < rank {
			continue
		}

		lowerBound, lowerCount := 0.0, 0.0
		if i > 0 {
			lowerBound = buckets[i-1].upperBound
			lowerCount = buckets[i-1].cumulativeCount
		}
		// The +Inf bucket has no useful upper edge; report its lower one.
		if math.IsInf(b.upperBound, +1) {
			return lowerBound
		}
		if b.cumulativeCount == lowerCount {
			return b.upperBound
		}
		return lowerBound + (b.upperBound-lowerBound)*(rank-lowerCount)/(b.cumulativeCount-lowerCount)
	}
	return buckets[len(buckets)-1].upperBound
}
