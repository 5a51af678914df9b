package ranger_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/ranger"
)

func TestNew(t *testing.T) {
	// Arrange
	t.Setenv("ENVIRONMENT", "testing")
	t.Setenv("HOST", "example.com")
	t.Setenv("PORT", "8080")

	// Act
	rng, err := ranger.New(ranger.WithLogger(newLogger()))

	// Assert
	require.Nil(t, err)
	require.Equal(t, switchback.Testing, rng.Env())
	require.Equal(t, "http://example.com:8080/", rng.URL().String())
	require.NotNil(t, rng.Responder)
	require.NotNil(t, rng.Router)
}

func TestNewOptions(t *testing.T) {
	// Arrange
	l := newLogger()
	d := resp.NewResponder(resp.WithLogger(l))
	rt := router.New(switchback.Staging, d, nil)
	srv := &http.Server{Addr: "127.0.0.1:0"}

	// Act
	rng, err := ranger.New(
		ranger.WithEnv("STAGING"),
		ranger.WithLogger(l),
		ranger.WithResponder(d),
		ranger.WithRouter(rt),
		ranger.WithServer(srv),
	)

	// Assert
	require.Nil(t, err)
	require.Equal(t, switchback.Staging, rng.Env())
	require.Same(t, l, rng.EmitLogger())
	require.Same(t, d, rng.Responder)
	require.Same(t, rt, rng.Router)
	require.Same(t, rt, srv.Handler)
	require.Contains(t, l.String(), "using responder")
}

func TestNewBadContext(t *testing.T) {
	_, err := ranger.New(ranger.WithContext(nil))
	require.ErrorIs(t, err, ranger.ErrBadConfig)
}

func TestRangerURL(t *testing.T) {
	// Arrange
	t.Setenv("BASE_URL", "https://example.com/app")
	rng, err := ranger.New(ranger.WithLogger(newLogger()))
	require.Nil(t, err)

	// Act
	u := rng.URL()
	u.Path = "/changed"

	// Assert
	require.Equal(t, "https://example.com/app", rng.URL().String())
}

func TestMaintModeAction(t *testing.T) {
	tcs := []struct {
		name   string
		accept string
		body   string
	}{
		{"Json", "application/json", ""},
		{"Html", "text/html", "Down for maintenance. Questions? Contact test@example.com.\n"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := resp.NewResponder(resp.WithLogger(newLogger()))
			rt := router.New(switchback.Testing, d, nil)
			rt.CatchAll(ranger.MaintModeAction("test@example.com"))

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "https://example.com/maint-mode-test", nil)
			r.Header.Set("Accept", tc.accept)

			// Act
			rt.ServeHTTP(w, r)

			// Assert
			require.Equal(t, http.StatusServiceUnavailable, w.Code)
			require.Equal(t, "600", w.Header().Get("Retry-After"))
			require.Equal(t, tc.body, w.Body.String())
		})
	}
}

func TestRangerGuide(t *testing.T) {
	// Arrange
	l := newLogger()
	rng, err := ranger.New(
		ranger.WithLogger(l),
		ranger.WithServer(&http.Server{Addr: "127.0.0.1:0"}),
	)
	require.Nil(t, err)

	errCh := make(chan error, 1)

	// Act
	go func() { errCh <- rng.Guide() }()
	rng.Cancel()

	// Assert
	select {
	case err := <-errCh:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Guide did not return after Cancel")
	}
	require.Contains(t, l.String(), "web server shutdown successfully")
}

type testLogger struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func newLogger() *testLogger                                  { return new(testLogger) }
func (tl *testLogger) Debug(msg string, _ *logger.LogContext) { tl.log(msg) }
func (tl *testLogger) Error(msg string, _ *logger.LogContext) { tl.log(msg) }
func (tl *testLogger) Fatal(msg string, _ *logger.LogContext) { tl.log(msg) }
func (tl *testLogger) Info(msg string, _ *logger.LogContext)  { tl.log(msg) }
func (tl *testLogger) Warn(msg string, _ *logger.LogContext)  { tl.log(msg) }
func (tl *testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }

func (tl *testLogger) log(msg string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	fmt.Fprintln(&tl.b, msg)
}

func (tl *testLogger) String() string {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	return tl.b.String()
}
