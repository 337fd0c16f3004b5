package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/planner-sync/internal/limiter"
	"github.com/MKhiriev/planner-sync/internal/logger"
)

// RateLimitJanitor periodically drops expired rate-limit windows so the
// table does not grow with every key or IP ever seen.
type RateLimitJanitor struct {
	limiter  *limiter.FixedWindow
	interval time.Duration
	logger   *logger.Logger
}

func NewRateLimitJanitor(rateLimiter *limiter.FixedWindow, interval time.Duration, logger *logger.Logger) *RateLimitJanitor {
	return &RateLimitJanitor{
		limiter:  rateLimiter,
		interval: interval,
		logger:   logger,
	}
}

func (j *RateLimitJanitor) Run(ctx context.Context) error {
	if j.interval <= 0 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if evicted := j.limiter.Evict(); evicted > 0 {
				j.logger.Debug().
					Int("evicted", evicted).
					Int("tracked", j.limiter.Len()).
					Str("func", "*RateLimitJanitor.Run").
					Msg("expired rate-limit windows evicted")
			}
		}
	}
}
