package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestScanEndpoints(t *testing.T) {
	d := doc(t, `<script>
		var api = "https://example.com/api/jobsearch";
		var asset = "/static/jobs.js";
		var other = "/unrelated/path";
	</script>`)

	eps := scanEndpoints(d, "https://example.com/en/search")
	require.Equal(t, []string{"https://example.com/api/jobsearch"}, eps)
}

func TestScanEndpointsSkipsOwnPage(t *testing.T) {
	d := doc(t, `<script>var self = "https://example.com/en/jobsearch";</script>`)
	require.Empty(t, scanEndpoints(d, "https://example.com/en/jobsearch"))
}

func TestCrawlFallsBackToScriptEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/search", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<script>var api = "/api/jobsearch?region=in";</script><p>Loading openings...</p>`)
	})
	mux.HandleFunc("/api/jobsearch", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		fmt.Fprint(w, `
			<div class="job-card">
				<h3 class="job-title">Hidden Engineer</h3>
				<span class="job-location">Remote</span>
				<a href="/careers/77/hidden-engineer">View</a>
			</div>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{Timeout: 5 * time.Second, RatePerHost: 100})
	require.NoError(t, err)

	ex := New("microsoft", client, ui.NewLogger(false))
	out, err := ex.Extract(context.Background(), Target{
		Company:  "Microsoft",
		URL:      srv.URL + "/en/search",
		MaxPages: 1,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Hidden Engineer", out[0].Title)
	require.Equal(t, "Remote", out[0].Location)
	require.Equal(t, srv.URL+"/careers/77/hidden-engineer", out[0].URL)
}
