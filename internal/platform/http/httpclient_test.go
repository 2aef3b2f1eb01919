package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewHTTPClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		timeout  time.Duration
		expected time.Duration
	}{
		{"custom timeout", 5 * time.Second, 5 * time.Second},
		{"zero uses default", 0, DefaultTimeout},
		{"negative uses default", -time.Second, DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewHTTPClient(tt.timeout)
			assert.Equal(t, tt.expected, c.Timeout)
			assert.NotNil(t, c.Transport)
		})
	}
}

func TestNewHTTPClient_Transport(t *testing.T) {
	t.Parallel()

	c := NewHTTPClient(time.Second)
	tr, ok := c.Transport.(*http.Transport)

	assert.True(t, ok)
	assert.Equal(t, 10, tr.MaxIdleConns)
	assert.NotNil(t, tr.Proxy)
	assert.Equal(t, 5*time.Second, tr.TLSHandshakeTimeout)
}
