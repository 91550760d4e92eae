package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker_AllowAll(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"*"})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	assert.True(t, oc.CheckOrigin(req))
}

func TestOriginChecker_Whitelist(t *testing.T) {
	t.Parallel()

	oc := NewOriginChecker([]string{"https://party.example", "http://localhost:3000/"})

	cases := []struct {
		origin string
		want   bool
	}{
		{"https://party.example", true},
		{"https://party.example/", true}, // trailing slash normalized
		{"http://localhost:3000", true},
		{"https://evil.example", false},
		{"", true}, // non-browser clients carry no Origin header
	}

	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/ws", nil)
		if tc.origin != "" {
			req.Header.Set("Origin", tc.origin)
		}
		assert.Equal(t, tc.want, oc.CheckOrigin(req), "origin %q", tc.origin)
	}
}

func TestMessageRateLimiter(t *testing.T) {
	t.Parallel()

	l := NewMessageRateLimiter(3)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("c1"), "message %d should pass", i)
	}
	assert.False(t, l.Allow("c1"), "fourth message within a second must be rejected")

	// Each connection gets its own window
	assert.True(t, l.Allow("c2"))

	l.Remove("c1")
	assert.True(t, l.Allow("c1"), "counter resets after Remove")
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/ws", nil)
	req.RemoteAddr = "10.0.0.1:4567"
	assert.Equal(t, "10.0.0.1", GetClientIP(req))

	req.Header.Set("X-Real-IP", "3.3.3.3")
	assert.Equal(t, "3.3.3.3", GetClientIP(req))

	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "1.1.1.1", GetClientIP(req))
}

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		name := GenerateNickname()
		assert.NotEmpty(t, name)
		seen[name] = true
	}
	// Random combos should not all collide
	assert.Greater(t, len(seen), 1)
}
