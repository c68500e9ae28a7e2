package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/greencontrol/internal/http/response"
)

// RateLimiter раздаёт по token bucket на пользователя, а для анонимных
// запросов на адрес клиента.
type RateLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	buckets map[any]*bucket
	ttl     time.Duration
	now     func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель rps запросов в секунду с запасом burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		buckets: make(map[any]*bucket),
		ttl:     10 * time.Minute,
		now:     time.Now,
	}
}

// Allow расходует токен ключа key.
func (l *RateLimiter) Allow(key any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		l.evict(now)
		b = &bucket{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// evict удаляет давно не использованные ключи. Вызывается под mu.
func (l *RateLimiter) evict(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.ttl {
			delete(l.buckets, k)
		}
	}
}

// RateLimitMiddleware отвечает 429, когда ключ запроса исчерпал лимит.
func RateLimitMiddleware(limiter *RateLimiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var key any = r.RemoteAddr
			if id, ok := UserIDFrom(r.Context()); ok {
				key = id
			}
			if !limiter.Allow(key) {
				log.Warn("too many requests", slog.Any("key", key))
				response.TooManyRequests(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
