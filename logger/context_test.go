package logger_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"}}`, string(b))

	// Arrange
	lc = logger.LogContext{Error: errors.New("test"), Status: http.StatusTeapot}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"error":"test","status":418}`, string(b))

	// Arrange
	r := httptest.NewRequest(http.MethodGet, "https://example.com/test?some=param", nil)
	r.Header.Set("X-Request-Id", "abc")
	lc = logger.LogContext{Request: r, Caller: "ignored.go:1"}
	expected := map[string]any{
		"request": map[string]any{
			"method": http.MethodGet,
			"url":    "https://example.com/test?some=param",
			"id":     "abc",
		},
	}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, expected, m)
}

func TestLogContextString(t *testing.T) {
	lc := logger.LogContext{Data: map[string]any{"bad": func() {}}}
	require.Contains(t, lc.String(), `"error"`)

	lc = logger.LogContext{Status: http.StatusOK}
	require.Equal(t, `{"status":200}`, lc.String())
}
