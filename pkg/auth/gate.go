package auth

import "crypto/subtle"

// Gate guards the webhook ingestion path with a single shared secret.
// The secret is fixed at process start; an empty secret disables the check.
type Gate struct {
	secret string
}

// NewGate creates a gate for the configured secret
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Enabled reports whether a secret is configured
func (g *Gate) Enabled() bool {
	return g.secret != ""
}

// Check returns true when no secret is configured, or when the provided
// token matches it. The comparison is constant-time so the token cannot
// be probed byte by byte.
func (g *Gate) Check(token string) bool {
	if g.secret == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) == 1
}
