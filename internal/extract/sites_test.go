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

func TestParseAmazonPage(t *testing.T) {
	d := doc(t, `
		<div class="job-tile" data-job-id="2587134">
			<a href="/en/jobs/2587134/software-development-engineer">
				<h3>Software Development Engineer</h3>
			</a>
			<p class="location-text">Bengaluru, KA, IND</p>
		</div>
		<div class="job-tile">
			<a href="/en/jobs/2590001/support-engineer"><h3>Support Engineer</h3></a>
			<p class="location-text">Hyderabad, TS, IND</p>
		</div>`)

	out := parseAmazonPage(d, "https://www.amazon.jobs/en/search?base_query=sde", "Amazon")
	require.Len(t, out, 2)
	require.Equal(t, "Software Development Engineer", out[0].Title)
	require.Equal(t, "Bengaluru, KA, IND", out[0].Location)
	require.Equal(t, "https://www.amazon.jobs/en/jobs/2587134/software-development-engineer", out[0].URL)
	require.Equal(t, "2587134", out[0].JobID)
	require.Equal(t, "2590001", out[1].JobID)
}

func TestParseGooglePage(t *testing.T) {
	d := doc(t, `
		<a class="WpHeLc" aria-label="Software Engineer III, Google Cloud"
		   href="jobs/results/118294912-software-engineer-iii">
			<span class="r0wTof location">Bengaluru, India</span>
		</a>`)

	out := parseGooglePage(d, "https://www.google.com/about/careers/applications/jobs/results/", "Google")
	require.Len(t, out, 1)
	require.Equal(t, "Software Engineer III, Google Cloud", out[0].Title)
	require.Equal(t, "Bengaluru, India", out[0].Location)
	require.Equal(t, googleApplicationsBase+"jobs/results/118294912-software-engineer-iii", out[0].URL)
	require.Equal(t, "118294912", out[0].JobID)
}

func TestParseIBMPage(t *testing.T) {
	d := doc(t, `
		<a class="bx--card-group__card" href="https://careers.ibm.com/job/21033322/">
			<div class="bx--card__eyebrow">Software Engineering</div>
			<div class="bx--card__heading">Backend Developer</div>
			<div class="ibm--card__copy__inner">Bangalore, IN</div>
		</a>`)

	out := parseIBMPage(d, "https://www.ibm.com/in-en/careers/search", "IBM")
	require.Len(t, out, 1)
	require.Equal(t, "Backend Developer", out[0].Title)
	require.Equal(t, "Bangalore, IN", out[0].Location)
	require.Equal(t, "IBM/Software Engineering", out[0].Source)
	require.Equal(t, "21033322", out[0].JobID)
}

func TestParseMahindraPage(t *testing.T) {
	d := doc(t, `
		<table><tbody>
		<tr>
			<td><a class="jobTitle-link" href="/job/Mumbai-Deputy-Manager/1417855501/">Deputy Manager</a></td>
			<td><span class="job-location">Mumbai, IN</span></td>
		</tr>
		</tbody></table>`)

	out := parseMahindraPage(d, "https://jobs.mahindracareers.com/search/?startrow=0", "Mahindra")
	require.Len(t, out, 1)
	require.Equal(t, "Deputy Manager", out[0].Title)
	require.Equal(t, "Mumbai, IN", out[0].Location)
	require.Equal(t, "1417855501", out[0].JobID)
}

func TestNextMahindraPageFallsBackToStartrow(t *testing.T) {
	d := doc(t, `<p>no anchors</p>`)
	require.Equal(t, "https://jobs.mahindracareers.com/search/?startrow=10",
		nextMahindraPage(d, "https://jobs.mahindracareers.com/search/", 1))
}

func TestNewFallsBackToHeuristic(t *testing.T) {
	log := ui.NewLogger(false)
	require.Equal(t, "heuristic", New("", nil, log).Name())
	require.Equal(t, "heuristic", New("no-such-site", nil, log).Name())
	require.Equal(t, "amazon", New("Amazon", nil, log).Name())
}

func TestAmazonExtractorPaginates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/en/search", func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			fmt.Fprintf(w, `
				<div class="job-tile" data-job-id="100">
					<a href="/en/jobs/100/sde"><h3>SDE I</h3></a>
					<p class="location-text">Pune</p>
				</div>
				<a aria-label="Next page" href="/en/search?page=2">Next</a>`)
		default:
			fmt.Fprintf(w, `
				<div class="job-tile" data-job-id="200">
					<a href="/en/jobs/200/sde"><h3>SDE II</h3></a>
					<p class="location-text">Pune</p>
				</div>`)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := fetch.NewClient(fetch.ClientOptions{
		Timeout:     5 * time.Second,
		RatePerHost: 100,
	})
	require.NoError(t, err)

	ex := New("amazon", client, ui.NewLogger(false))
	out, err := ex.Extract(context.Background(), Target{
		Company:  "Amazon",
		URL:      srv.URL + "/en/search",
		MaxPages: 2,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "SDE I", out[0].Title)
	require.Equal(t, "SDE II", out[1].Title)
}
