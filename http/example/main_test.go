package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/ranger"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()

	rng, err := ranger.New(
		ranger.WithEnv("DEVELOPMENT"),
		ranger.WithLogger(logger.New(logger.WithLevel(logger.LogLevelFatal))),
	)
	require.Nil(t, err)

	h := &Handler{rng}
	require.Nil(t, h.routes())

	return h
}

func Test(t *testing.T) {
	h := newHandler(t)

	for _, tc := range []struct {
		name     string
		method   string
		input    string
		expected int
		header   string
		value    string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "Cache-Control", "public, max-age=60"},
		{"greet", http.MethodGet, "/greet/gopher", http.StatusOK, "X-Generated-By", "switchback"},
		{"visit", http.MethodPost, "/visit", http.StatusSeeOther, "Location", "http://localhost:3000/"},
		{"forget", http.MethodPost, "/forget", http.StatusNoContent, "Set-Cookie", "visits=; Path=/; Expires=Thu, 01 Jan 1970 00:00:00 GMT; Max-Age=0"},
		{"status", http.MethodGet, "/api/status", http.StatusOK, "Content-Type", "application/json"},
		{"static", http.MethodGet, "/static/app.css", http.StatusOK, "Cache-Control", "public, max-age=3600"},
		{"wrong-method", http.MethodDelete, "/", http.StatusMethodNotAllowed, "", ""},
		{"not-found", http.MethodGet, "/not-found", http.StatusNotFound, "", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tc.method, "http://localhost:3000"+tc.input, nil)

			// Act
			h.Router.ServeHTTP(w, r)

			// Assert
			require.Equal(t, tc.expected, w.Code)
			if tc.header != "" {
				require.Equal(t, tc.value, w.Header().Get(tc.header))
			}
		})
	}
}

func TestVisitCounts(t *testing.T) {
	// Arrange
	h := newHandler(t)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "http://localhost:3000/visit", nil)
	r.AddCookie(&http.Cookie{Name: visitsCookie, Value: "2"})

	// Act
	h.Router.ServeHTTP(w, r)

	// Assert
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "3", cookies[0].Value)
	require.True(t, cookies[0].HttpOnly)
}
