// Package ratelimiter implements per-identity token buckets that expire when idle.
package ratelimiter

import (
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	rate       float64 // tokens per second
	lastRefill time.Time
	mu         sync.Mutex
	timer      *time.Timer
}

func (b *bucket) allow(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens += now.Sub(b.lastRefill).Seconds() * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// UserRateLimiter keeps one bucket per identity (IP, user id, "global").
type UserRateLimiter struct {
	buckets        map[string]*bucket
	mu             sync.Mutex
	rate           float64
	capacity       float64
	expirationTime time.Duration
}

func New(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
	}
}

func OnceInSecond() *UserRateLimiter { return New(1, 1, time.Hour) }
func OnceInMinute() *UserRateLimiter { return New(1.0/60, 1, time.Hour) }
func Rps100() *UserRateLimiter       { return New(100, 100, time.Hour) }

// OnceEvery allows one request per identity in every window of length d.
func OnceEvery(d time.Duration) *UserRateLimiter {
	return New(1/d.Seconds(), 1, d+time.Hour)
}

func (l *UserRateLimiter) getBucket(id string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[id]
	if !ok {
		b = &bucket{
			tokens:     l.capacity,
			capacity:   l.capacity,
			rate:       l.rate,
			lastRefill: time.Now(),
		}
		l.buckets[id] = b
	}

	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(l.expirationTime, func() { l.cleanup(id, b) })

	return b
}

// cleanup drops the bucket unless it was replaced in the meantime.
func (l *UserRateLimiter) cleanup(id string, b *bucket) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buckets[id] == b {
		delete(l.buckets, id)
	}
}

func (l *UserRateLimiter) Allow(id string) bool {
	return l.getBucket(id).allow(time.Now())
}

// Stop cancels all expiration timers.
func (l *UserRateLimiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
