package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, opts ClientOptions) *Client {
	t.Helper()
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RatePerHost == 0 {
		opts.RatePerHost = 100
	}
	c, err := NewClient(opts)
	require.NoError(t, err)
	return c
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		fmt.Fprint(w, `<div class="job-card"><h3>Engineer</h3></div>`)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientOptions{})
	doc, err := c.FetchDocument(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Engineer", doc.Find("h3").Text())
}

func TestFetchBodyRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	c := newTestClient(t, ClientOptions{})
	body, err := c.FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", body)
	require.Equal(t, int32(3), calls.Load())
}

func TestFetchBodyNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientOptions{})
	_, err := c.FetchBody(context.Background(), srv.URL)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestFetchBodySendsCookieHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "session=abc", r.Header.Get("Cookie"))
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	c := newTestClient(t, ClientOptions{Cookie: "session=abc"})
	_, err := c.FetchBody(context.Background(), srv.URL)
	require.NoError(t, err)
}

func TestProbe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		if r.Method == http.MethodPost {
			fmt.Fprint(w, "posted")
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, ClientOptions{})

	body, ok := c.Probe(context.Background(), srv.URL, "POST")
	require.True(t, ok)
	require.Equal(t, "posted", body)

	_, ok = c.Probe(context.Background(), srv.URL, "GET")
	require.False(t, ok)
}

func TestJoinCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\ntoken=xyz\nignored=1\n"), 0644))

	require.Equal(t, "session=abc", joinCookies("session=abc", ""))
	require.Equal(t, "token=xyz", joinCookies("", path))
	require.Equal(t, "session=abc; token=xyz", joinCookies("session=abc", path))
	require.Equal(t, "", joinCookies("", ""))
}

func TestPickUserAgent(t *testing.T) {
	require.Equal(t, "custom", PickUserAgent("custom"))
	require.NotEmpty(t, PickUserAgent(""))
}

func TestHasJobContent(t *testing.T) {
	withJobs, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div class="job-card">SDE</div>`))
	require.NoError(t, err)
	require.True(t, HasJobContent(withJobs))

	keywordOnly, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<p>Browse our open positions</p>`))
	require.NoError(t, err)
	require.True(t, HasJobContent(keywordOnly))

	empty, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<p>About us</p>`))
	require.NoError(t, err)
	require.False(t, HasJobContent(empty))
}
