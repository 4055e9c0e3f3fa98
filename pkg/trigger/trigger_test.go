package trigger

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func TestCallAsync_AppendsRecordID(t *testing.T) {
	var hits atomic.Int32
	var gotID atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotID.Store(r.URL.Query().Get("id"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	CallAsync(srv.URL+"/hook?id=", "book-demo", "5f0c2a9e-1d2b-4c1e-9a51-0c6b2b7f2f10", httpclient.NewStandardClient())
	Wait()

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, "5f0c2a9e-1d2b-4c1e-9a51-0c6b2b7f2f10", gotID.Load())
}

func TestCallAsync_NoURLSkips(t *testing.T) {
	CallAsync("", "enquire", "id", nil)
	Wait()
}

func fastRetries(t *testing.T) {
	t.Helper()
	saved := retryConfig
	retryConfig = retry.Config{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Multiplier: 2}
	t.Cleanup(func() { retryConfig = saved })
}

func TestCallAsync_ServerErrorIsRetriedThenSwallowed(t *testing.T) {
	fastRetries(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	CallAsync(srv.URL+"/", "enquire", "id", httpclient.NewStandardClient())
	Wait()

	assert.Equal(t, int32(3), hits.Load())
}

func TestCallAsync_RecoversAfterServerError(t *testing.T) {
	fastRetries(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	CallAsync(srv.URL+"/", "tutor-application", "id", httpclient.NewStandardClient())
	Wait()

	assert.Equal(t, int32(2), hits.Load())
}

func TestCallAsync_ClientErrorIsNotRetried(t *testing.T) {
	fastRetries(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	CallAsync(srv.URL+"/", "enquire", "id", httpclient.NewStandardClient())
	Wait()

	assert.Equal(t, int32(1), hits.Load())
}
