package endpoint

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DevilXD/HiRezAPI/internal/testutil"
	"github.com/DevilXD/HiRezAPI/pkg/usage"
)

func newTestEndpoint(t *testing.T, mock *testutil.MockHiRez, mutate func(*Config)) *Endpoint {
	t.Helper()

	cfg := DefaultConfig("1234", "secretKey")
	cfg.URL = mock.URL()
	if mutate != nil {
		mutate(&cfg)
	}

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{AuthKey: "key"}); err == nil {
		t.Error("New() without dev id expected error, got nil")
	}
	if _, err := New(Config{DevID: "1234"}); err == nil {
		t.Error("New() without auth key expected error, got nil")
	}
}

func TestRequest_URLShape(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusOK, `[]`)

	fixed := time.Date(2023, 6, 1, 12, 30, 45, 0, time.UTC)
	e := newTestEndpoint(t, mock, func(cfg *Config) {
		cfg.Clock = func() time.Time { return fixed }
	})

	if _, err := e.Request(context.Background(), "getplayer", "5959045"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	// The auth key is uppercased before signing.
	timestamp := "20230601123045"
	sum := md5.Sum([]byte("1234getplayer" + "SECRETKEY" + timestamp))
	wantSig := hex.EncodeToString(sum[:])

	path := mock.LastPath("getplayer")
	want := "/getplayerjson/1234/" + wantSig + "/mock-session-id/" + timestamp + "/5959045"
	if path != want {
		t.Errorf("request path = %q, want %q", path, want)
	}

	// ping carries no credentials at all.
	if _, err := e.Request(context.Background(), "ping"); err != nil {
		t.Fatalf("ping error = %v", err)
	}
	if got := mock.LastPath("ping"); got != "/pingjson" {
		t.Errorf("ping path = %q, want /pingjson", got)
	}
}

func TestRequest_SessionReuse(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusOK, `[]`)

	e := newTestEndpoint(t, mock, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := e.Request(ctx, "getplayer", "1"); err != nil {
			t.Fatalf("Request() #%d error = %v", i, err)
		}
	}

	if got := mock.SessionsCreated(); got != 1 {
		t.Errorf("%d sessions created for three requests, want 1", got)
	}
}

func TestRequest_SessionExpiresAfterIdle(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusOK, `[]`)

	now := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	e := newTestEndpoint(t, mock, func(cfg *Config) {
		cfg.Clock = func() time.Time { return now }
	})
	ctx := context.Background()

	if _, err := e.Request(ctx, "getplayer", "1"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	// 10 minutes later the session is still warm; each use slides the
	// expiry forward.
	now = now.Add(10 * time.Minute)
	if _, err := e.Request(ctx, "getplayer", "1"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if got := mock.SessionsCreated(); got != 1 {
		t.Fatalf("%d sessions created within the lifetime, want 1", got)
	}

	// 16 idle minutes kill it.
	now = now.Add(16 * time.Minute)
	if _, err := e.Request(ctx, "getplayer", "1"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if got := mock.SessionsCreated(); got != 2 {
		t.Errorf("%d sessions created after idle expiry, want 2", got)
	}
}

func TestRequest_InvalidSessionRecreated(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()

	// The first data call comes back with the server-side session
	// rejection; after recreating the session the call succeeds.
	rejected := false
	mock.Handle("getplayer", func(w http.ResponseWriter, _ *http.Request) {
		if !rejected {
			rejected = true
			w.Write([]byte(`[{"ret_msg": "Invalid session id."}]`))
			return
		}
		w.Write([]byte(`[{"Id": 1}]`))
	})

	e := newTestEndpoint(t, mock, nil)

	body, err := e.Request(context.Background(), "getplayer", "1")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if !strings.Contains(string(body), `"Id"`) {
		t.Errorf("Request() body = %s, want the retried response", body)
	}
	if got := mock.SessionsCreated(); got != 2 {
		t.Errorf("%d sessions created, want 2 (initial + recreated)", got)
	}
	if got := mock.Calls("getplayer"); got != 2 {
		t.Errorf("getplayer called %d times, want 2", got)
	}
}

func TestRequest_ServiceUnavailable(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusServiceUnavailable, "")

	e := newTestEndpoint(t, mock, nil)

	if _, err := e.Request(context.Background(), "getplayer", "1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Request() error = %v, want ErrUnavailable", err)
	}
	// 503 is the API's emergency mode, not a flaky connection.
	if got := mock.Calls("getplayer"); got != 1 {
		t.Errorf("getplayer called %d times, want 1 (no retries)", got)
	}
}

func TestRequest_HTTPError(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusBadRequest, `{"ret_msg": "Invalid request"}`)

	e := newTestEndpoint(t, mock, nil)

	_, err := e.Request(context.Background(), "getplayer", "1")
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Request() error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusBadRequest || httpErr.Method != "getplayer" {
		t.Errorf("HTTPError = %+v, want status 400 for getplayer", httpErr)
	}
}

func TestRequest_BadCredentials(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("createsession", http.StatusOK, `{"ret_msg": "Exception - DevId or AuthKey.", "session_id": ""}`)

	e := newTestEndpoint(t, mock, nil)

	if _, err := e.Request(context.Background(), "getplayer", "1"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Request() error = %v, want ErrUnauthorized", err)
	}
}

func TestRequest_QuotaGate(t *testing.T) {
	mock := testutil.NewMockHiRez()
	defer mock.Close()
	mock.RespondBody("getplayer", http.StatusOK, `[]`)

	tracker := usage.NewMemoryTracker(nil)
	e := newTestEndpoint(t, mock, func(cfg *Config) {
		cfg.Usage = tracker
	})
	ctx := context.Background()

	if _, err := e.Request(ctx, "getplayer", "1"); err != nil {
		t.Fatalf("Request() error = %v", err)
	}

	state, err := tracker.State(ctx)
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	// The data request and the implicit createsession are both counted.
	if state.Requests != 2 || state.Sessions != 1 {
		t.Errorf("usage = %d requests, %d sessions, want 2, 1", state.Requests, state.Sessions)
	}

	// Exhaust the request quota: the next call is blocked client-side.
	for i := state.Requests; i < usage.DefaultRequestLimit; i++ {
		if err := tracker.RecordRequest(ctx); err != nil {
			t.Fatalf("RecordRequest() error = %v", err)
		}
	}
	if _, err := e.Request(ctx, "getplayer", "1"); !errors.Is(err, ErrLimitReached) {
		t.Errorf("Request() error = %v, want ErrLimitReached", err)
	}
	if got := mock.Calls("getplayer"); got != 1 {
		t.Errorf("getplayer called %d times, want 1 (blocked call never sent)", got)
	}
}

func TestRequest_RetryExhausted(t *testing.T) {
	mock := testutil.NewMockHiRez()
	mock.Close() // nothing listens anymore, every attempt fails to connect

	cfg := DefaultConfig("1234", "secretKey")
	cfg.URL = mock.URL()
	cfg.MaxRetries = 2
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := e.Request(context.Background(), "ping"); !errors.Is(err, ErrRetryExhausted) {
		t.Errorf("Request() error = %v, want ErrRetryExhausted", err)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"unauthorized", ErrUnauthorized, "unauthorized"},
		{"unavailable", ErrUnavailable, "unavailable"},
		{"limit", ErrLimitReached, "limit_reached"},
		{"exhausted", ErrRetryExhausted, "retry_exhausted"},
		{"http", &HTTPError{StatusCode: 400, Method: "getplayer"}, "http_error"},
		{"network", errors.New("connection refused"), "network"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProbeRetMsg(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"object", `{"ret_msg": "Invalid session id."}`, "Invalid session id."},
		{"list", `[{"ret_msg": "Invalid session id."}]`, "Invalid session id."},
		{"clean list", `[{"ret_msg": null, "Id": 1}]`, ""},
		{"empty list", `[]`, ""},
		{"not json", `pong`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := probeRetMsg([]byte(tt.body)); got != tt.want {
				t.Errorf("probeRetMsg() = %q, want %q", got, tt.want)
			}
		})
	}
}
