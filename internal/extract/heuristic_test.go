package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestCollectHeuristicJobCards(t *testing.T) {
	d := doc(t, `
		<div class="job-card">
			<h3 class="job-title">Backend Engineer</h3>
			<span class="job-location">Bengaluru</span>
			<a href="/careers/12345/backend-engineer">View</a>
		</div>
		<div class="job-card">
			<h3 class="job-title">Data Analyst</h3>
			<span class="job-location">Pune</span>
			<a href="https://jobs.example.com/careers/67890">View</a>
		</div>`)

	out := CollectHeuristic(d, "https://jobs.example.com/search", "Example")
	require.Len(t, out, 2)

	require.Equal(t, "Backend Engineer", out[0].Title)
	require.Equal(t, "Bengaluru", out[0].Location)
	require.Equal(t, "https://jobs.example.com/careers/12345/backend-engineer", out[0].URL)
	require.Equal(t, "12345", out[0].JobID)
	require.Equal(t, "Example", out[0].Company)

	require.Equal(t, "https://jobs.example.com/careers/67890", out[1].URL)
}

func TestCollectHeuristicSkipsNavigation(t *testing.T) {
	d := doc(t, `
		<div class="job-card">
			<h3 class="job-title">Saved Jobs</h3>
			<a href="/careers/saved">View</a>
		</div>
		<div class="job-card">
			<h3 class="job-title">Platform Engineer</h3>
			<a href="/careers/42">View</a>
		</div>`)

	out := CollectHeuristic(d, "https://jobs.example.com/search", "Example")
	require.Len(t, out, 1)
	require.Equal(t, "Platform Engineer", out[0].Title)
}

func TestCollectHeuristicAnchorContainer(t *testing.T) {
	d := doc(t, `
		<a ph-tevent="job_click" href="/en/job/1111/sre">
			<h4>Site Reliability Engineer</h4>
			<span class="location">Hyderabad</span>
		</a>`)

	out := CollectHeuristic(d, "https://careers.example.com/en/search", "Example")
	require.Len(t, out, 1)
	require.Equal(t, "Site Reliability Engineer", out[0].Title)
	require.Equal(t, "https://careers.example.com/en/job/1111/sre", out[0].URL)
}

func TestCollectHeuristicStripsScriptMarkup(t *testing.T) {
	d := doc(t, `
		<a ph-tevent="job_click" href="/en/job/9/qa-engineer">
			QA Engineer
			<script>trackImpression();</script>
		</a>`)

	out := CollectHeuristic(d, "https://careers.example.com/en/search", "Example")
	require.Len(t, out, 1)
	require.Equal(t, "QA Engineer", out[0].Title)
}

func TestCollectHeuristicEmptyDocument(t *testing.T) {
	d := doc(t, `<p>Nothing to see.</p>`)
	require.Empty(t, CollectHeuristic(d, "https://jobs.example.com", "Example"))
}
