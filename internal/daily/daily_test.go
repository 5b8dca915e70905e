package daily

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordOfDay(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/2024-01-01.json":
			_, _ = w.Write([]byte(`{"solution":"crane"}`))
		case "/2024-01-03.json":
			_, _ = w.Write([]byte(`{"solution":""}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	w, err := c.WordOfDay(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", w)

	// Second lookup is served from cache, not the network.
	w, err = c.WordOfDay(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", w)
	assert.Equal(t, int32(1), hits.Load())

	// Not-yet-published days and empty solutions are soft errors.
	_, err = c.WordOfDay(ctx, "2024-01-02")
	assert.Error(t, err)
	_, err = c.WordOfDay(ctx, "2024-01-03")
	assert.Error(t, err)

	// Failures are not cached: the next call retries.
	_, err = c.WordOfDay(ctx, "2024-01-02")
	assert.Error(t, err)
	assert.Equal(t, int32(4), hits.Load())
}

func TestNewClientDefaultBase(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.base)

	c = NewClient("http://example.test/words/")
	assert.Equal(t, "http://example.test/words", c.base)
}
