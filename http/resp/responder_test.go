package resp_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/cookie"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/logger"
)

type testFn func(*testing.T, *httptest.ResponseRecorder, *http.Request, error)

const (
	jsonMediaType  = "application/json; charset=UTF-8"
	plainMediaType = "text/plain; charset=utf-8"
)

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Json(w, r, resp.Code(http.StatusTeapot))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("From-Context", func(t *testing.T) {
		// Arrange
		rr := resp.New()
		require.Nil(t, rr.SetHeader("X-Set-Earlier", "yes"))

		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r = r.WithContext(resp.NewContext(r.Context(), rr))
		w := httptest.NewRecorder()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Raw(w, r, resp.ContentString("ok"))

		// Assert
		require.Nil(t, err)
		require.True(t, rr.Consumed())
		require.Equal(t, "yes", w.Header().Get("X-Set-Earlier"))
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("Consumed", func(t *testing.T) {
		// Arrange
		rr := resp.New()
		_, err := rr.Build()
		require.Nil(t, err)

		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r = r.WithContext(resp.NewContext(r.Context(), rr))
		w := httptest.NewRecorder()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err = d.Raw(w, r)

		// Assert
		require.ErrorIs(t, err, resp.ErrConsumed)
		require.Equal(t, 0, w.Body.Len())
	})

	t.Run("Out-Of-Order", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		w := httptest.NewRecorder()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Redirect(w, r, resp.Param("a", "b"), resp.Url("/next"))

		// Assert
		require.Nil(t, err)
		require.Equal(t, "/next?a=b", w.Header().Get("Location"))
	})

	t.Run("Aggregated-Errors", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		w := httptest.NewRecorder()

		d := resp.NewResponder(resp.WithLogger(newLogger()))

		// Act
		err := d.Raw(w, r, resp.Url("not a url"), resp.SignedCookie(cookie.New("a", "b")))

		// Assert
		require.ErrorIs(t, err, resp.ErrInvalid)
		require.ErrorIs(t, err, resp.ErrBadConfig)
	})
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name   string
		err    error
		fns    []resp.Fn
		opts   []resp.ResponderOptFn
		code   int
		body   string
		logged bool
	}{
		{"Nil-Err", nil, nil, nil, http.StatusInternalServerError, "Internal Server Error\n", false},
		{"Err", errors.New("boom"), nil, nil, http.StatusInternalServerError, "Internal Server Error\n", true},
		{
			"With-Code",
			errors.New("boom"),
			[]resp.Fn{resp.Code(http.StatusNotFound)},
			nil,
			http.StatusNotFound,
			"Not Found\n",
			true,
		},
		{
			"With-Success-Code",
			errors.New("boom"),
			[]resp.Fn{resp.Code(http.StatusOK)},
			nil,
			http.StatusInternalServerError,
			"Internal Server Error\n",
			true,
		},
		{
			"With-Redirect-Code",
			errors.New("boom"),
			[]resp.Fn{resp.Code(http.StatusFound)},
			nil,
			http.StatusInternalServerError,
			"Internal Server Error\n",
			true,
		},
		{
			"With-Contact-Msg",
			errors.New("boom"),
			nil,
			[]resp.ResponderOptFn{resp.WithContactErrMsg("contact us@example.com")},
			http.StatusInternalServerError,
			"contact us@example.com\n",
			true,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			l := newLogger()
			d := resp.NewResponder(append([]resp.ResponderOptFn{resp.WithLogger(l)}, tc.opts...)...)
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()

			// Act
			d.Err(w, r, tc.err, tc.fns...)

			// Assert
			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.body, w.Body.String())
			require.Equal(t, plainMediaType, w.Header().Get("Content-Type"))
			require.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
			require.Equal(t, tc.logged, l.b.Len() > 0)
			if tc.err != nil {
				require.NotContains(t, w.Body.String(), tc.err.Error())
			}
		})
	}
}

func TestResponderJson(t *testing.T) {
	tcs := []struct {
		name   string
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			fns:  []resp.Fn{},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
				require.Equal(t, []byte("{}\n"), w.Body.Bytes())
			},
		},
		{
			name: "With-Code",
			fns:  []resp.Fn{resp.Code(http.StatusTeapot)},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusTeapot, w.Code)
				require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))
				require.Equal(t, []byte("{}\n"), w.Body.Bytes())
			},
		},
		{
			name: "With-Data",
			fns:  []resp.Fn{resp.Data(map[string]any{"go": "rocks"})},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, jsonMediaType, w.Header().Get("Content-Type"))

				var b bytes.Buffer
				err = json.NewEncoder(&b).Encode(map[string]map[string]string{"data": {"go": "rocks"}})
				require.Nil(t, err)
				require.Equal(t, b.Bytes(), w.Body.Bytes())
			},
		},
		{
			name: "With-Headers-And-Cookie",
			fns: []resp.Fn{
				resp.Code(http.StatusCreated),
				resp.AddHeader("X-Tag", "a"),
				resp.AddHeader("X-Tag", "b"),
				resp.Cookie(cookie.New("seen", "1")),
				resp.MaxAge(30),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusCreated, w.Code)
				require.Equal(t, []string{"a, b"}, w.Header().Values("X-Tag"))
				require.Equal(t, []string{"seen=1; Path=/"}, w.Header().Values("Set-Cookie"))
				require.Equal(t, "max-age=30", w.Header().Get("Cache-Control"))
			},
		},
		{
			name: "Unmarshalable",
			fns:  []resp.Fn{resp.Data(make(chan int))},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.NotNil(t, err)
				require.Equal(t, http.StatusInternalServerError, w.Code)
				require.Equal(t, plainMediaType, w.Header().Get("Content-Type"))
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := resp.NewResponder(resp.WithLogger(newLogger()))
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()

			// Act
			err := d.Json(w, r, tc.fns...)

			// Assert
			tc.assert(t, w, r, err)
		})
	}
}

func TestResponderRaw(t *testing.T) {
	tcs := []struct {
		name   string
		fns    []resp.Fn
		assert testFn
	}{
		{
			name: "Zero-Value",
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusOK, w.Code)
				require.Equal(t, 0, w.Body.Len())
			},
		},
		{
			name: "With-Content",
			fns: []resp.Fn{
				resp.Code(http.StatusAccepted),
				resp.ContentType("text/csv"),
				resp.Content([]byte("a,b\n1,2\n")),
			},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)
				require.Equal(t, http.StatusAccepted, w.Code)
				require.Equal(t, "text/csv", w.Header().Get("Content-Type"))
				require.Equal(t, "a,b\n1,2\n", w.Body.String())
			},
		},
		{
			name: "With-Deleted-Cookie",
			fns:  []resp.Fn{resp.DeleteCookie("session")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.Nil(t, err)

				res := w.Result()
				require.Len(t, res.Cookies(), 1)
				require.Equal(t, "session", res.Cookies()[0].Name)
				require.Equal(t, -1, res.Cookies()[0].MaxAge)
			},
		},
		{
			name: "With-Invalid-Header",
			fns:  []resp.Fn{resp.Header("X-Bad", "a\r\nb")},
			assert: func(t *testing.T, w *httptest.ResponseRecorder, r *http.Request, err error) {
				require.NotNil(t, err)
				require.Equal(t, 0, w.Body.Len())
			},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := resp.NewResponder(resp.WithLogger(newLogger()))
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()

			// Act
			err := d.Raw(w, r, tc.fns...)

			// Assert
			tc.assert(t, w, r, err)
		})
	}
}

func TestResponderRedirect(t *testing.T) {
	tcs := []struct {
		name     string
		opts     []resp.ResponderOptFn
		fns      []resp.Fn
		code     int
		location string
		err      error
	}{
		{"No-Target", nil, nil, 0, "", resp.ErrMissingData},
		{"To-Root", []resp.ResponderOptFn{resp.WithRootUrl("https://example.com/home")}, nil, http.StatusSeeOther, "https://example.com/home", nil},
		{"Url", nil, []resp.Fn{resp.Url("/next")}, http.StatusSeeOther, "/next", nil},
		{"Redirect", nil, []resp.Fn{resp.Redirect("/next")}, http.StatusSeeOther, "/next", nil},
		{"Url-With-3xx", nil, []resp.Fn{resp.Url("/next"), resp.Code(http.StatusPermanentRedirect)}, http.StatusPermanentRedirect, "/next", nil},
		{"Url-With-4xx", nil, []resp.Fn{resp.Url("/next"), resp.Code(http.StatusUnauthorized)}, http.StatusSeeOther, "/next", nil},
		{"Url-With-5xx", nil, []resp.Fn{resp.Url("/next"), resp.Code(http.StatusBadGateway)}, http.StatusTemporaryRedirect, "/next", nil},
		{"Url-With-2xx", nil, []resp.Fn{resp.Url("/next"), resp.Code(http.StatusOK)}, http.StatusFound, "/next", nil},
		{
			"Root-With-Param",
			[]resp.ResponderOptFn{resp.WithRootUrl("https://example.com")},
			[]resp.Fn{resp.Param("from", "login")},
			http.StatusSeeOther,
			"https://example.com?from=login",
			nil,
		},
		{"Bad-Url", nil, []resp.Fn{resp.Url("not a url")}, 0, "", resp.ErrInvalid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d := resp.NewResponder(append([]resp.ResponderOptFn{resp.WithLogger(newLogger())}, tc.opts...)...)
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()

			// Act
			err := d.Redirect(w, r, tc.fns...)

			// Assert
			require.ErrorIs(t, err, tc.err)
			if tc.err != nil {
				return
			}

			require.Equal(t, tc.code, w.Code)
			require.Equal(t, tc.location, w.Header().Get("Location"))
		})
	}

	t.Run("Target-From-Context", func(t *testing.T) {
		// Arrange
		d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithRootUrl("https://example.com/"))
		rr := resp.New()
		rr.SetRedirect(&url.URL{Path: "/login"}, http.StatusFound)

		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		r = r.WithContext(resp.NewContext(r.Context(), rr))
		w := httptest.NewRecorder()

		// Act
		err := d.Redirect(w, r, resp.Param("next", "/account"))

		// Assert
		require.Nil(t, err)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login?next=%2Faccount", w.Header().Get("Location"))
	})

	t.Run("Root-Unchanged-By-Param", func(t *testing.T) {
		// Arrange
		d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithRootUrl("https://example.com/"))

		// Act
		for i := 0; i < 2; i++ {
			r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
			w := httptest.NewRecorder()
			require.Nil(t, d.Redirect(w, r, resp.Param("i", fmt.Sprint(i))))

			// Assert
			require.Equal(t, fmt.Sprintf("https://example.com/?i=%d", i), w.Header().Get("Location"))
		}
	})
}

func TestResponderCompression(t *testing.T) {
	// Arrange
	d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithCompression(true))
	r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	r.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()

	// Act
	err := d.Raw(w, r, resp.ContentString("compress me"))

	// Assert
	require.Nil(t, err)
	require.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(w.Body)
	require.Nil(t, err)
	actual, err := io.ReadAll(zr)
	require.Nil(t, err)
	require.Equal(t, "compress me", string(actual))
}

func BenchmarkResponderJson(b *testing.B) {
	d := resp.NewResponder(resp.WithLogger(newLogger()))
	data := map[string]any{"go": "rocks"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		w := httptest.NewRecorder()
		_ = d.Json(w, r, resp.Data(data))
	}
}

func BenchmarkResponderRedirect(b *testing.B) {
	d := resp.NewResponder(resp.WithLogger(newLogger()), resp.WithRootUrl("https://example.com"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
		w := httptest.NewRecorder()
		_ = d.Redirect(w, r, resp.Param("a", "b"))
	}
}

type testLogger struct {
	b *bytes.Buffer
}

func newLogger() testLogger                                  { return testLogger{bytes.NewBuffer(nil)} }
func (tl testLogger) Debug(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Error(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Fatal(msg string, _ *logger.LogContext) { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Info(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) Warn(msg string, _ *logger.LogContext)  { fmt.Fprint(tl.b, msg) }
func (tl testLogger) LogLevel() logger.LogLevel              { return logger.LogLevelDebug }
