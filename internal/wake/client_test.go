package wake

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
)

func testSeed() string {
	a := base64.StdEncoding.EncodeToString([]byte("12345678901234567890"))
	b := base64.StdEncoding.EncodeToString([]byte("abcdefghijabcdefghij"))
	return a + ";" + b
}

func TestNewClient_InvalidSeed(t *testing.T) {
	_, err := NewClient("http://wake", "only-one-part")
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Configuration))

	_, err = NewClient("", testSeed())
	assert.True(t, errs.Is(err, errs.Configuration))
}

func TestClient_TokenStableWithinStep(t *testing.T) {
	c, err := NewClient("http://wake", testSeed())
	require.NoError(t, err)

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	t1, err := c.Token(base)
	require.NoError(t, err)
	t2, err := c.Token(base.Add(14 * time.Second))
	require.NoError(t, err)

	assert.Equal(t, t1, t2)
	assert.Less(t, t1, uint64(2_000_000))
}

func TestClient_Pulse(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/start", r.URL.Path)
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c, err := NewClient(server.URL+"/", testSeed())
	require.NoError(t, err)
	fixed := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	require.NoError(t, c.Pulse(context.Background()))

	token, err := c.Token(fixed)
	require.NoError(t, err)
	assert.Equal(t, "Bearer "+strconv.FormatUint(token, 10), auth)
}

func TestClient_WakeRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testSeed())
	require.NoError(t, err)
	c.delay = time.Millisecond

	require.NoError(t, c.Wake(context.Background()))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_WakeGivesUp(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "asleep", http.StatusBadGateway)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testSeed())
	require.NoError(t, err)
	c.delay = time.Millisecond

	err = c.Wake(context.Background())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Unreachable))
	assert.True(t, strings.Contains(err.Error(), "502"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_WakeCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, err := NewClient(server.URL, testSeed())
	require.NoError(t, err)
	c.delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err = c.Wake(ctx)
	assert.True(t, errs.Is(err, errs.Cancelled))
}
