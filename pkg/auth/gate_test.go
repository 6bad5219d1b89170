package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGate_NoSecretConfigured(t *testing.T) {
	gate := NewGate("")

	assert.False(t, gate.Enabled())
	assert.True(t, gate.Check(""))
	assert.True(t, gate.Check("anything"))
}

func TestGate_SecretConfigured(t *testing.T) {
	gate := NewGate("s3cret")

	assert.True(t, gate.Enabled())
	assert.True(t, gate.Check("s3cret"))
	assert.False(t, gate.Check(""))
	assert.False(t, gate.Check("S3CRET"))
	assert.False(t, gate.Check("s3cret "))
}

func TestTokenBucketLimiter_ExhaustsAndRefills(t *testing.T) {
	limiter := NewTokenBucketLimiter(2, 10*time.Millisecond)

	assert.True(t, limiter.Allow("n8n"))
	assert.True(t, limiter.Allow("n8n"))
	assert.False(t, limiter.Allow("n8n"))

	// Separate keys get separate buckets
	assert.True(t, limiter.Allow("zapier"))

	time.Sleep(25 * time.Millisecond)
	assert.True(t, limiter.Allow("n8n"))
}

func TestTokenBucketLimiter_Reset(t *testing.T) {
	limiter := NewTokenBucketLimiter(1, time.Hour)

	assert.True(t, limiter.Allow("n8n"))
	assert.False(t, limiter.Allow("n8n"))

	limiter.Reset("n8n")
	assert.True(t, limiter.Allow("n8n"))
}
