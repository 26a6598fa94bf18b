package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestID(t *testing.T) {
	var seen string
	h := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "req-1")
	h.ServeHTTP(rr, req)
	assert.Equal(t, "req-1", seen)
	assert.Equal(t, "req-1", rr.Header().Get("X-Request-Id"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestWithSession(t *testing.T) {
	valid := uuid.NewString()

	tests := []struct {
		name       string
		cookie     string
		wantReused bool
	}{
		{name: "no cookie", cookie: ""},
		{name: "malformed cookie", cookie: "not-a-uuid"},
		{name: "valid cookie", cookie: valid, wantReused: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := WithSession(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = SessionFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if tt.wantReused {
				assert.Equal(t, valid, seen)
				assert.Empty(t, rr.Result().Cookies())
				return
			}

			_, err := uuid.Parse(seen)
			require.NoError(t, err)
			cookies := rr.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, SessionCookie, cookies[0].Name)
			assert.Equal(t, seen, cookies[0].Value)
			assert.True(t, cookies[0].HttpOnly)
		})
	}
}

func TestWithLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	h := WithRequestID(WithLogging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pot", nil))

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/pot", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, len("short and stout"), fields["bytes"])
	assert.NotEmpty(t, fields["request_id"])
}
