package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 1, time.Hour)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "token %d should be available", i+1)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(2, 1, 10*time.Millisecond)

	bucket.Allow()
	bucket.Allow()
	allowed, _ := bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(25 * time.Millisecond)

	allowed, _ = bucket.Allow()
	assert.True(t, allowed, "tokens should refill over time")
}

func TestTokenBucketRefillCapsAtMax(t *testing.T) {
	bucket := NewTokenBucket(2, 1, time.Millisecond)

	time.Sleep(10 * time.Millisecond)

	for i := 0; i < 2; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed)
	}
	allowed, _ := bucket.Allow()
	assert.False(t, allowed, "bucket must not refill past its capacity")
}

func TestLimiterIsolatesUsersAndActions(t *testing.T) {
	limiter := NewLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow(1, ActionChatMessage)
		assert.True(t, allowed)
	}
	allowed, _ := limiter.Allow(1, ActionChatMessage)
	assert.False(t, allowed, "user 1 exhausted the chat bucket")

	allowed, _ = limiter.Allow(2, ActionChatMessage)
	assert.True(t, allowed, "user 2 has a separate bucket")

	allowed, _ = limiter.Allow(1, ActionOpenConversation)
	assert.True(t, allowed, "other actions have separate buckets")
}
