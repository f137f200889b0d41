package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophaccounts/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	msg  string
	args []any
}

// captureLogger records Info/Error calls, including args added by With.
type captureLogger struct {
	mu      *sync.Mutex
	base    []any
	entries *[]entry
}

func newCaptureLogger() *captureLogger {
	return &captureLogger{mu: &sync.Mutex{}, entries: &[]entry{}}
}

func (c *captureLogger) add(msg string, args []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*c.entries = append(*c.entries, entry{msg: msg, args: append(append([]any{}, c.base...), args...)})
}

func (c *captureLogger) Info(_ context.Context, msg string, args ...any)  { c.add(msg, args) }
func (c *captureLogger) Warn(_ context.Context, msg string, args ...any)  { c.add(msg, args) }
func (c *captureLogger) Error(_ context.Context, msg string, args ...any) { c.add(msg, args) }
func (c *captureLogger) With(args ...any) logging.Logger {
	return &captureLogger{mu: c.mu, base: append(append([]any{}, c.base...), args...), entries: c.entries}
}

func TestLogRequests(t *testing.T) {
	logger := newCaptureLogger()
	s := NewServer(":0", logger, Services{}, sessionTTL, false)

	var inner logging.Logger
	handler := s.logRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = logging.FromContext(r.Context(), nil)
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test-path", nil)
	req.Header.Set("X-Request-Id", "req-1")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
	require.NotNil(t, inner, "request logger must be in context")

	require.Len(t, *logger.entries, 1)
	e := (*logger.entries)[0]
	assert.Equal(t, "HTTP request", e.msg)
	assert.Subset(t, e.args, []any{"request_id", "req-1", "method", "GET", "path", "/test-path", "status", http.StatusTeapot})
}

func TestLogRequests_GeneratesRequestID(t *testing.T) {
	s := NewServer(":0", nopLogger{}, Services{}, sessionTTL, false)
	handler := s.logRequests(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, w.Header().Get("X-Request-Id"), 36)
	assert.Equal(t, http.StatusOK, w.Code)
}
