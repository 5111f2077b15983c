package ratelimit

import (
	"context"
	"sync"
	"time"
)

type bucket struct {
	tokens     float64
	capacity   float64
	refillRate float64 // tokens per second
	last       time.Time
}

// Limiter is a per-key token bucket used to shed excess calls outright.
type Limiter struct {
	mu sync.Mutex
	m  map[string]*bucket
}

func New() *Limiter { return &Limiter{m: make(map[string]*bucket)} }

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string, capacity, refillPerSec float64) bool {
	now := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.m[key]
	if !ok {
		b = &bucket{tokens: capacity, capacity: capacity, refillRate: refillPerSec, last: now}
		l.m[key] = b
	}
	elapsed := now.Sub(b.last).Seconds()
	if elapsed > 0 {
		b.tokens += elapsed * b.refillRate
		if b.tokens > b.capacity {
			b.tokens = b.capacity
		}
		b.last = now
	}
	if b.tokens >= 1 {
		b.tokens -= 1
		return true
	}
	return false
}

// Pacer enforces a minimum interval between consecutive calls per key by
// waiting rather than rejecting. Used for upstreams with hard per-minute
// quotas (the screener's fundamentals calls, Alpha Vantage's free tier).
type Pacer struct {
	interval time.Duration

	mu   sync.Mutex
	next map[string]time.Time
}

// NewPacer creates a pacer with the given minimum inter-call interval.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, next: make(map[string]time.Time)}
}

// Wait blocks until the key's next allowed call time, or until ctx is done.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	p.mu.Lock()
	now := time.Now()
	at, ok := p.next[key]
	if !ok || at.Before(now) {
		at = now
	}
	p.next[key] = at.Add(p.interval)
	p.mu.Unlock()

	d := time.Until(at)
	if d <= 0 {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
