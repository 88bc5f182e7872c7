package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neptis/internal/errs"
	"neptis/internal/models"
	"neptis/internal/secret"
)

func testCodec() *secret.Codec {
	return secret.New(&secret.Seed{
		KeyA:     bytes.Repeat([]byte{1}, 64),
		KeyB:     bytes.Repeat([]byte{2}, 64),
		Password: "Abcdefgh12345678",
	})
}

// sequenceClock returns the given instants in order, repeating the last one.
func sequenceClock(times ...time.Time) func() time.Time {
	var mu sync.Mutex
	i := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func TestNew(t *testing.T) {
	c := New("http://server:8080/", nil)
	assert.Equal(t, "http://server:8080", c.BaseURL())
	assert.False(t, c.Encrypted())
	assert.Equal(t, time.Duration(0), c.httpClient.Timeout)
}

func TestNewFromProfile(t *testing.T) {
	_, err := NewFromProfile(&models.Profile{Endpoint: "not a url"})
	assert.True(t, errs.Is(err, errs.Configuration))

	_, err = NewFromProfile(&models.Profile{Endpoint: "http://h", Secret: "garbage"})
	assert.True(t, errs.Is(err, errs.Configuration))

	seed := &secret.Seed{KeyA: []byte("a"), KeyB: []byte("b"), Password: "pw"}
	c, err := NewFromProfile(&models.Profile{Endpoint: "http://h/", Secret: seed.String()})
	require.NoError(t, err)
	assert.True(t, c.Encrypted())
}

func TestClient_LoginSetsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req models.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			json.NewEncoder(w).Encode(models.LoginResponse{Token: "tok-1"})
		case "/api/infos/summary":
			assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(models.InfoSummary{Version: "2.1"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", c.Token())

	info, err := c.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.1", info.Version)
}

func TestClient_ErrorKinds(t *testing.T) {
	tests := []struct {
		status int
		body   string
		kind   errs.Kind
		typed  bool
	}{
		{http.StatusUnauthorized, `{"message":"expired"}`, errs.Unauthorized, true},
		{http.StatusForbidden, `nope`, errs.Denied, false},
		{http.StatusNotFound, `{"message":"no mount"}`, errs.NotFound, true},
		{http.StatusConflict, `{"message":"exists"}`, errs.Conflict, true},
		{http.StatusInternalServerError, `oops`, errs.Transport, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := New(server.URL, nil).GetMount(context.Background(), "m1")
			require.Error(t, err)
			assert.True(t, errs.Is(err, tt.kind))

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.body, apiErr.Body)
			assert.Equal(t, tt.typed, apiErr.Typed != nil)
		})
	}
}

func TestClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := New(url, nil).GetInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Transport))
}

func TestClient_QueryParameters(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/messages":
			assert.Equal(t, "true", r.URL.Query().Get("unread_only"))
			json.NewEncoder(w).Encode([]models.Message{{ID: "1", Subject: "hi"}})
		case "/api/files/dump":
			assert.Equal(t, "/m/data/a.txt", r.URL.Query().Get("path"))
			assert.Equal(t, "3", r.URL.Query().Get("offset"))
			assert.False(t, r.URL.Query().Has("size"))
			w.Write([]byte("raw bytes"))
		case "/api/mounts/my%20mount/backup", "/api/mounts/my mount/backup":
			assert.Equal(t, "POST", r.Method)
			json.NewEncoder(w).Encode(models.ServerJob{ID: "b1", Status: models.ServerJobPending})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)

	msgs, err := c.ListMessages(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Subject)

	data, err := c.Dump(context.Background(), "/m/data/a.txt", 3, -1)
	require.NoError(t, err)
	assert.Equal(t, "raw bytes", string(data))

	job, err := c.StartBackup(context.Background(), "my mount")
	require.NoError(t, err)
	assert.Equal(t, "b1", job.ID)
}

func TestClient_EnvelopeRoundTrip(t *testing.T) {
	codec := testCodec()
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		path, plainBody, err := codec.DecodeRequest(r.URL.EscapedPath(), body, at)
		require.NoError(t, err)
		assert.Equal(t, "/api/files", path)
		assert.Equal(t, "PUT", r.Method)

		var patch models.FilePatch
		require.NoError(t, json.Unmarshal(plainBody, &patch))
		assert.Equal(t, "/m/data/x", patch.Path)

		resp, err := codec.EncodeResponse([]byte(`{}`), at)
		require.NoError(t, err)
		w.Write(resp)
	}))
	defer server.Close()

	c := New(server.URL, codec)
	c.now = func() time.Time { return at }

	err := c.WriteFile(context.Background(), models.FilePatch{Path: "/m/data/x", Data: []byte("hi")})
	require.NoError(t, err)
}

func TestClient_EnvelopeRetriesOnceAcrossRollover(t *testing.T) {
	codec := testCodec()
	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			io.WriteString(w, "cannot decrypt")
			return
		}
		resp, err := codec.EncodeResponse([]byte(`{"version":"3"}`), base.Add(60*time.Second))
		require.NoError(t, err)
		w.Write(resp)
	}))
	defer server.Close()

	c := New(server.URL, codec)
	c.now = sequenceClock(base.Add(59*time.Second), base.Add(60*time.Second))

	info, err := c.GetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3", info.Version)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_EnvelopeNoRetryWithinMinute(t *testing.T) {
	codec := testCodec()
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := New(server.URL, codec)
	at := time.Date(2025, 7, 1, 0, 0, 10, 0, time.UTC)
	c.now = func() time.Time { return at }

	_, err := c.GetInfo(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_EnvelopeUndecryptableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "plain text, not an envelope")
	}))
	defer server.Close()

	c := New(server.URL, testCodec())

	_, err := c.GetInfo(context.Background())
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.Transport))
}
