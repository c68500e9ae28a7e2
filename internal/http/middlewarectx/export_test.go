package middlewarectx

import "time"

func (l *RateLimiter) SetNow(now func() time.Time) {
	l.now = now
}

func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
