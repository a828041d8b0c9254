package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveProjection(t *testing.T) {
	okBefore := testutil.ToFloat64(projectionTotal.WithLabelValues(KindDetail, "ok"))
	errBefore := testutil.ToFloat64(projectionTotal.WithLabelValues(KindDetail, "error"))

	ObserveProjection(KindDetail, time.Now(), nil)
	ObserveProjection(KindDetail, time.Now(), errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(projectionTotal.WithLabelValues(KindDetail, "ok")))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(projectionTotal.WithLabelValues(KindDetail, "error")))
}

func TestCacheCounters(t *testing.T) {
	hits := testutil.ToFloat64(federationCache.WithLabelValues("hit"))
	misses := testutil.ToFloat64(federationCache.WithLabelValues("miss"))

	CacheHit()
	CacheMiss()
	CacheMiss()

	assert.Equal(t, hits+1, testutil.ToFloat64(federationCache.WithLabelValues("hit")))
	assert.Equal(t, misses+2, testutil.ToFloat64(federationCache.WithLabelValues("miss")))
}

func TestObserveOutbox(t *testing.T) {
	before := testutil.ToFloat64(outboxPublished.WithLabelValues("Update", "ok"))
	ObserveOutbox("Update", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(outboxPublished.WithLabelValues("Update", "ok")))
}
