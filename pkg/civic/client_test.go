package civic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupByZip_InvalidZip(t *testing.T) {
	c := NewClient("", "", time.Minute)

	for _, zip := range []string{"", "1234", "123456", "abcde", "12 45"} {
		_, err := c.LookupByZip(context.Background(), zip)
		assert.Error(t, err, "zip %q", zip)
	}
}

func TestLookupByZip_DisabledClient(t *testing.T) {
	c := NewClient("", "", time.Minute)
	assert.False(t, c.Enabled())

	officials, err := c.LookupByZip(context.Background(), "94102")
	require.NoError(t, err)
	assert.Empty(t, officials)
}

func TestLookupByZip_FetchesAndCaches(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/representatives", r.URL.Path)
		assert.Equal(t, "94102", r.URL.Query().Get("zip"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"officials":[{"name":"Jane Doe","office":"Senator","phones":["(202) 555-1234"]}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", time.Minute)
	require.True(t, c.Enabled())

	officials, err := c.LookupByZip(context.Background(), "94102")
	require.NoError(t, err)
	require.Len(t, officials, 1)
	assert.Equal(t, "Jane Doe", officials[0].Name)
	assert.Equal(t, "Senator", officials[0].Office)

	// second lookup is served from the cache
	officials, err = c.LookupByZip(context.Background(), "94102")
	require.NoError(t, err)
	require.Len(t, officials, 1)
	assert.Equal(t, int32(1), hits.Load())

	// a different zip is a fresh request
	_, err = c.LookupByZip(context.Background(), "10001")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLookupByZip_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Minute)
	_, err := c.LookupByZip(context.Background(), "94102")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}
