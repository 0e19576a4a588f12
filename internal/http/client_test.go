package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentful-labs/cma-client/pkg/cma"
)

func rateLimitBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"sys":       map[string]interface{}{"type": "Error", "id": "RateLimitExceeded"},
		"message":   "Rate limit exceeded.",
		"requestId": "req-429",
	})

	return body
}

// fakeSleep records requested waits without actually sleeping.
func fakeSleep(waits *[]time.Duration) func(ctx context.Context, d time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestClient_SendsAuthAndMediaType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/vnd.contentful.management.v1+json", r.Header.Get("Accept"))
		assert.Equal(t, "application/vnd.contentful.management.v1+json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sys":{"id":"x","type":"Space"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")

	resp, err := client.Post(context.Background(), "/spaces", map[string]string{"name": "x"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClient_RateLimitRetriesWithinBudget(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("X-Contentful-RateLimit-Second-Remaining", "5")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write(rateLimitBody())
			return
		}

		w.Write([]byte(`{"sys":{"id":"x","type":"Space"},"name":"x"}`))
	}))
	defer server.Close()

	var waits []time.Duration

	client := NewClient(server.URL, "token", WithRateLimitConfig(1, 0))
	client.sleep = fakeSleep(&waits)

	resp, err := client.Get(context.Background(), "/spaces/x", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, []time.Duration{5 * time.Second}, waits)
}

func TestClient_RateLimitDefaultBudgetIsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Contentful-RateLimit-Second-Remaining", "2")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(rateLimitBody())
	}))
	defer server.Close()

	var waits []time.Duration

	client := NewClient(server.URL, "token")
	client.sleep = fakeSleep(&waits)

	_, err := client.Get(context.Background(), "/spaces/x", nil)
	require.Error(t, err)

	var rateLimitErr *cma.RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)
	assert.Equal(t, 2*time.Second, rateLimitErr.RetryAfter)
	assert.Empty(t, waits)
	assert.True(t, cma.IsRateLimit(err))
}

func TestClient_RateLimitWaitBeyondCeilingNeverSleeps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Contentful-RateLimit-Second-Remaining", "120")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(rateLimitBody())
	}))
	defer server.Close()

	var waits []time.Duration

	client := NewClient(server.URL, "token", WithRateLimitConfig(10, 0))
	client.sleep = fakeSleep(&waits)

	_, err := client.Get(context.Background(), "/spaces/x", nil)
	require.Error(t, err)

	var tooLongErr *cma.RateWaitTooLongError
	require.ErrorAs(t, err, &tooLongErr)
	assert.Equal(t, 120*time.Second, tooLongErr.RetryAfter)
	assert.Equal(t, 60*time.Second, tooLongErr.MaxWait)
	assert.Empty(t, waits)
}

func TestClient_RateLimitBudgetExhausted(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("X-Contentful-RateLimit-Second-Remaining", "1")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(rateLimitBody())
	}))
	defer server.Close()

	var waits []time.Duration

	client := NewClient(server.URL, "token", WithRateLimitConfig(2, 0))
	client.sleep = fakeSleep(&waits)

	_, err := client.Get(context.Background(), "/spaces/x", nil)
	require.Error(t, err)

	var rateLimitErr *cma.RateLimitError
	require.ErrorAs(t, err, &rateLimitErr)

	// Initial attempt plus two retries.
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Len(t, waits, 2)
}

func TestClient_MissingRateLimitHeaderMeansNoWait(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write(rateLimitBody())
			return
		}

		w.Write([]byte(`{"sys":{"id":"x","type":"Space"},"name":"x"}`))
	}))
	defer server.Close()

	var waits []time.Duration

	client := NewClient(server.URL, "token", WithRateLimitConfig(1, 0))
	client.sleep = fakeSleep(&waits)

	_, err := client.Get(context.Background(), "/spaces/x", nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{0}, waits)
}

func TestClient_NoRetryOnClientErrors(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"sys":{"type":"Error","id":"NotFound"},"message":"not found","requestId":"req-1"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", WithRateLimitConfig(5, 0))

	_, err := client.Get(context.Background(), "/spaces/missing", nil)
	require.Error(t, err)

	var errResp *cma.ErrorResponse
	require.ErrorAs(t, err, &errResp)
	assert.Equal(t, cma.ErrorIDNotFound, errResp.ID())
	assert.Equal(t, "req-1", errResp.RequestID)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_ServerErrorRetriesWhenEnabled(t *testing.T) {
	var calls int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Write([]byte(`{"sys":{"id":"x","type":"Space"},"name":"x"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token",
		WithRetryConfig(2, time.Millisecond, 2*time.Millisecond))

	resp, err := client.Get(context.Background(), "/spaces/x", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClient_UploadHostSelection(t *testing.T) {
	uploadServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-id/uploads", r.URL.Path)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sys":{"id":"upload-id","type":"Upload"}}`))
	}))
	defer uploadServer.Close()

	client := NewClient("http://unused.invalid", "token", WithUploadURL(uploadServer.URL))

	resp, err := client.Do(context.Background(), &Request{
		Method:  "POST",
		Host:    cma.HostUpload,
		Path:    "/spaces/space-id/uploads",
		RawBody: []byte("bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClient_ContextCancelDuringWait(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Contentful-RateLimit-Second-Remaining", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(rateLimitBody())
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", WithRateLimitConfig(1, 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Get(ctx, "/spaces/x", nil)
	require.ErrorIs(t, err, context.Canceled)
}
