package vision

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAnalyzeForwardsBodyAndContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") != "multipart/form-data; boundary=x" || string(body) != "image-bytes" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"labels":["beach"]}`))
	}))
	defer srv.Close()

	out, err := NewForwarder(srv.URL).Analyze(context.Background(), "multipart/form-data; boundary=x", strings.NewReader("image-bytes"))
	require.NoError(t, err)
	require.JSONEq(t, `{"labels":["beach"]}`, string(out))
}

func TestAnalyzeUpstreamStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed: traceback ...", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewForwarder(srv.URL).Analyze(context.Background(), "image/png", strings.NewReader("x"))
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
	require.Contains(t, upErr.Body, "model crashed")
	require.NotContains(t, upErr.Error(), "model crashed")
}

func TestAnalyzeNonJSONReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer srv.Close()

	_, err := NewForwarder(srv.URL).Analyze(context.Background(), "image/png", strings.NewReader("x"))
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
}

func TestAnalyzeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := NewForwarder(srv.URL)
	f.client.Timeout = 50 * time.Millisecond
	_, err := f.Analyze(context.Background(), "image/png", strings.NewReader("x"))
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	require.Equal(t, DefaultTimeout, NewForwarder(srv.URL).client.Timeout)
}

func TestAnalyzeUnreachable(t *testing.T) {
	_, err := NewForwarder("http://127.0.0.1:1/analyze").Analyze(context.Background(), "image/png", strings.NewReader("x"))
	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
}
