package metrics

import (
	"context"
	"time"

	"advisor/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// SessionCollector reports the number of planning sessions persisted in Redis.
// Only registered when the Redis session backend is in use.
type SessionCollector struct {
	log   *logger.Logger
	redis *redis.Client

	storedSessions *prometheus.Desc
}

// NewSessionCollector creates a collector over the Redis session store.
func NewSessionCollector(log *logger.Logger, rdb *redis.Client) *SessionCollector {
	return &SessionCollector{
		log:   log,
		redis: rdb,

		storedSessions: prometheus.NewDesc(
			"advisor_stored_sessions",
			"Number of planning sessions currently persisted",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *SessionCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.storedSessions
}

// Collect implements prometheus.Collector
func (c *SessionCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count float64
	iter := c.redis.Scan(ctx, 0, "planning_session:*", 0).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		c.log.Warnw("Failed to count stored sessions", "error", err)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.storedSessions, prometheus.GaugeValue, count)
}
