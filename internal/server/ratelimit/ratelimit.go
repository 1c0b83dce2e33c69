// Package ratelimit provides rate limiting using the token bucket algorithm.
// Model-backed endpoints get strict per-client limits; everything else uses
// the global default.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// TokenBucket allows a number of requests per window, with tokens
// refilling at a steady rate.
type TokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

func (tb *TokenBucket) refillLocked(now time.Time) {
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now
}

// allow consumes a token if one is available.
func (tb *TokenBucket) allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked(time.Now())
	if tb.tokens >= 1.0 {
		tb.tokens -= 1.0
		return true
	}
	return false
}

// status reports remaining tokens and when the bucket refills completely.
func (tb *TokenBucket) status() (remaining int, resetTime time.Time) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.refillLocked(now)

	remaining = int(tb.tokens)
	if tb.tokens < float64(tb.capacity) {
		needed := float64(tb.capacity) - tb.tokens
		resetTime = now.Add(time.Duration(needed / tb.refillRate * float64(time.Second)))
	} else {
		resetTime = now
	}
	return remaining, resetTime
}

// EndpointConfig is the limit for one path prefix + method pair.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	EndpointConfigs []EndpointConfig
}

// Info describes the rate limit state returned with each decision.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

// Limiter manages per-client token buckets.
type Limiter struct {
	buckets map[string]*TokenBucket
	mu      sync.RWMutex
	config  *Config

	lastAccess    map[string]time.Time
	accessMu      sync.Mutex
	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
}

// NewLimiter creates a rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}

	limiter := &Limiter{
		buckets:    make(map[string]*TokenBucket),
		config:     config,
		lastAccess: make(map[string]time.Time),
	}

	if config.Enabled && config.CleanupInterval > 0 {
		limiter.cleanupTicker = time.NewTicker(config.CleanupInterval)
		limiter.cleanupStop = make(chan struct{})
		go limiter.cleanupLoop()
	}
	return limiter
}

// DefaultConfig returns the limits used by the server: analysis and fix
// calls hit the model and are kept tight, everything else rides the
// default.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    300,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/analyze", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
			{Path: "/fix-step", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		},
	}
}

// Allow checks whether a request from the client is allowed for the
// endpoint, returning rate limit information either way.
func (l *Limiter) Allow(clientID, endpoint, method string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	endpointConfig := l.match(endpoint, method)
	if endpointConfig == nil {
		endpointConfig = &EndpointConfig{
			Limit:  l.config.DefaultLimit,
			Window: l.config.DefaultWindow,
			Burst:  l.config.DefaultLimit,
		}
	}
	// Unlimited endpoint (health check)
	if endpointConfig.Limit <= 0 {
		return true, Info{Allowed: true}
	}

	bucketKey := clientID + ":" + endpoint + ":" + method
	bucket := l.getBucket(bucketKey, endpointConfig)

	l.accessMu.Lock()
	l.lastAccess[bucketKey] = time.Now()
	l.accessMu.Unlock()

	allowed := bucket.allow()
	remaining, resetTime := bucket.status()

	var retryAfter time.Duration
	if !allowed {
		retryAfter = max(time.Until(resetTime), 0)
	}

	return allowed, Info{
		Allowed:    allowed,
		Limit:      endpointConfig.Limit,
		Remaining:  remaining,
		ResetTime:  resetTime,
		RetryAfter: retryAfter,
	}
}

// match finds the endpoint config for a path and method. Health checks
// are never limited; matching is exact first, then by prefix.
func (l *Limiter) match(path, method string) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range l.config.EndpointConfigs {
		config := &l.config.EndpointConfigs[i]
		if config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}
	return nil
}

func (l *Limiter) getBucket(key string, config *EndpointConfig) *TokenBucket {
	l.mu.RLock()
	bucket, exists := l.buckets[key]
	l.mu.RUnlock()
	if exists {
		return bucket
	}

	capacity := config.Burst
	if capacity <= 0 {
		capacity = config.Limit
	}
	bucket = newTokenBucket(capacity, float64(config.Limit)/config.Window.Seconds())

	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, exists := l.buckets[key]; exists {
		return existing
	}
	l.buckets[key] = bucket
	return bucket
}

func (l *Limiter) cleanupLoop() {
	for {
		select {
		case <-l.cleanupTicker.C:
			l.evictStale()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictStale drops buckets idle for over an hour.
func (l *Limiter) evictStale() {
	cutoff := time.Now().Add(-1 * time.Hour)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.accessMu.Lock()
	defer l.accessMu.Unlock()

	for key, last := range l.lastAccess {
		if last.Before(cutoff) {
			delete(l.buckets, key)
			delete(l.lastAccess, key)
		}
	}
}

// Stop stops the cleanup goroutine.
func (l *Limiter) Stop() {
	if l.cleanupTicker != nil {
		l.cleanupTicker.Stop()
	}
	if l.cleanupStop != nil {
		close(l.cleanupStop)
	}
}
