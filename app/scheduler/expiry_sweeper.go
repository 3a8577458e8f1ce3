// Package scheduler
package scheduler

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	businessflow "github.com/shiftwave/shiftwave/business_flow"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ExpirySweeper periodically expires available shifts whose start has passed.
// Assignment does not depend on it: reads filter expired-but-unswept shifts
// anyway, so the sweeper only keeps the stored state honest.
type ExpirySweeper struct {
	shiftFlow businessflow.ShiftFlow
	cache     *redis.Client
	lockKey   string
	interval  time.Duration
	logger    *log.Logger
}

// NewExpirySweeper creates the sweep loop. The redis client may be nil, in
// which case the sweeper runs unguarded (single-instance deployments).
func NewExpirySweeper(shiftFlow businessflow.ShiftFlow, cache *redis.Client, keyPrefix string, interval time.Duration, logFilePath string) *ExpirySweeper {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	var out io.Writer = os.Stdout
	if logFilePath != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    50, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}

	return &ExpirySweeper{
		shiftFlow: shiftFlow,
		cache:     cache,
		lockKey:   keyPrefix + "sweep:lock",
		interval:  interval,
		logger:    log.New(out, "sweeper ", log.LstdFlags|log.Lmicroseconds|log.LUTC),
	}
}

// Start launches the sweep loop in a background goroutine and returns a stop function
func (s *ExpirySweeper) Start(parent context.Context) func() {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx)
			}
		}
	}()

	return cancel
}

func (s *ExpirySweeper) runOnce(ctx context.Context) {
	if !s.acquireLock(ctx) {
		return
	}

	expired, err := s.shiftFlow.ExpireDue(ctx)
	if err != nil {
		s.logger.Printf("sweep failed: %v", err)
		return
	}
	if expired > 0 {
		s.logger.Printf("expired %d shifts", expired)
	}
}

// acquireLock takes the cross-instance sweep lock for one interval. Losing
// the race is normal: another instance is sweeping.
func (s *ExpirySweeper) acquireLock(ctx context.Context) bool {
	if s.cache == nil {
		return true
	}

	ok, err := s.cache.SetNX(ctx, s.lockKey, time.Now().UTC().Format(time.RFC3339), s.interval).Result()
	if err != nil {
		s.logger.Printf("sweep lock unavailable, proceeding without it: %v", err)
		return true
	}
	return ok
}
