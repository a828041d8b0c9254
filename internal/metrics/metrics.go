package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vida"

// 投影种类
const (
	KindSummary    = "summary"
	KindDetail     = "detail"
	KindFederation = "federation"
)

var (
	projectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "projection_total",
			Help:      "Video projections built, by kind and result",
		},
		[]string{"kind", "result"},
	)

	projectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "projection_duration_seconds",
			Help:      "Time spent building one projection, including snapshot loading",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"kind"},
	)

	federationCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "federation_cache_total",
			Help:      "Federation object cache lookups",
		},
		[]string{"result"},
	)

	outboxPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "federation_outbox_total",
			Help:      "Activities handed to the federation outbox",
		},
		[]string{"type", "result"},
	)

	rateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ratelimit_exceeded_total",
			Help:      "Requests rejected by the per-client rate limiter",
		},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveProjection 记录一次投影的结果与耗时
func ObserveProjection(kind string, start time.Time, err error) {
	projectionTotal.WithLabelValues(kind, result(err)).Inc()
	projectionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// CacheHit / CacheMiss 联邦对象缓存
func CacheHit()  { federationCache.WithLabelValues("hit").Inc() }
func CacheMiss() { federationCache.WithLabelValues("miss").Inc() }

// ObserveOutbox 记录一次活动投递
func ObserveOutbox(activityType string, err error) {
	outboxPublished.WithLabelValues(activityType, result(err)).Inc()
}

func RateLimited() {
	rateLimited.Inc()
}
