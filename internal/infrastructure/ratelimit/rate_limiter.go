package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Actions throttled per user identity.
const (
	ActionChatMessage      = "chat_message"
	ActionOpenConversation = "open_conversation"
)

// TokenBucket is a refillable bucket of permits.
type TokenBucket struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available. When the bucket is empty it
// reports the wait until the next token.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	if refills := int(elapsed / tb.refillTime); refills > 0 {
		tb.tokens += refills * tb.refillRate
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// Limiter tracks one bucket per user and action.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewLimiter() *Limiter {
	return &Limiter{
		buckets: make(map[string]*TokenBucket),
	}
}

// Allow reports whether userID may perform action now.
func (l *Limiter) Allow(userID int64, action string) (bool, time.Duration) {
	key := fmt.Sprintf("%d:%s", userID, action)

	l.mu.Lock()
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = newBucketFor(action)
		l.buckets[key] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

func newBucketFor(action string) *TokenBucket {
	switch action {
	case ActionChatMessage:
		// 10 messages per minute
		return NewTokenBucket(10, 1, 6*time.Second)
	case ActionOpenConversation:
		// 5 new conversations per hour
		return NewTokenBucket(5, 1, 12*time.Minute)
	default:
		// 20 actions per minute
		return NewTokenBucket(20, 1, 3*time.Second)
	}
}
