package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/kalakar/casting-api/internal/api/metrics"
)

// RateLimiter throttles requests per client IP using Redis. When Redis cannot
// answer it falls back to an in-process token bucket per key.
type RateLimiter struct {
	limiter  *redis_rate.Limiter
	fallback *localLimiter
	limit    redis_rate.Limit
	log      zerolog.Logger
}

func NewRateLimiter(rdb *redis.Client, limit redis_rate.Limit, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		limiter:  redis_rate.NewLimiter(rdb),
		fallback: newLocalLimiter(),
		limit:    limit,
		log:      log,
	}
}

// PerMinute builds a limit of rate requests per minute with the given burst.
func PerMinute(rate, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: rate, Burst: burst, Period: time.Minute}
}

// Limit returns middleware keyed by route and client IP. A non-positive rate
// disables limiting.
func (rl *RateLimiter) Limit(route string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if rl.limit.Rate <= 0 || rl.limit.Period <= 0 {
			return next
		}
		return func(c echo.Context) error {
			key := "ratelimit:" + route + ":" + c.RealIP()
			res := rl.allow(c.Request().Context(), key)

			setRateLimitHeaders(c.Response().Header(), res, rl.limit)
			if res.Allowed == 0 {
				metrics.RateLimitedTotal.WithLabelValues(route).Inc()
				retryAfter := int(res.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
				return echo.NewHTTPError(http.StatusTooManyRequests,
					fmt.Sprintf("too many attempts, retry after %d seconds", retryAfter))
			}
			return next(c)
		}
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) *redis_rate.Result {
	res, err := rl.limiter.Allow(ctx, key, rl.limit)
	if err != nil {
		rl.log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, using local limiter")
		return rl.fallback.allow(key, rl.limit)
	}
	return res
}

func setRateLimitHeaders(h http.Header, res *redis_rate.Result, limit redis_rate.Limit) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(limit.Rate))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(res.ResetAfter).Unix(), 10))
}

const entryTTL = 10 * time.Minute

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// localLimiter keeps one token bucket per key. Idle entries are swept on
// access once per entryTTL.
type localLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	lastSweep time.Time
	now       func() time.Time
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{entries: make(map[string]*limiterEntry), now: time.Now}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit) *redis_rate.Result {
	ratePerSec := float64(limit.Rate) / limit.Period.Seconds()
	interval := time.Duration(float64(time.Second) / ratePerSec)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) > entryTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastAccess) > entryTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(ratePerSec), limit.Burst)}
		l.entries[key] = e
	}
	e.lastAccess = now

	res := &redis_rate.Result{Limit: limit, ResetAfter: interval, RetryAfter: -1}
	if e.limiter.AllowN(now, 1) {
		res.Allowed = 1
	} else {
		res.RetryAfter = interval
	}
	res.Remaining = max(int(e.limiter.TokensAt(now)), 0)
	return res
}
