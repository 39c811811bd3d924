package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextPageURLRelNext(t *testing.T) {
	d := doc(t, `<a rel="next" href="/jobs?page=2">Next</a>`)
	require.Equal(t, "https://jobs.example.com/jobs?page=2",
		NextPageURL(d, "https://jobs.example.com/jobs"))
}

func TestNextPageURLSkipsJavascriptHrefs(t *testing.T) {
	d := doc(t, `
		<a rel="next" href="javascript:void(0)">Next</a>
		<a class="pagination-next" href="#">Next</a>`)
	require.Equal(t, "", NextPageURL(d, "https://jobs.example.com/jobs"))
}

func TestNextPageURLBumpsPageParam(t *testing.T) {
	d := doc(t, `<p>no pagination markup</p>`)
	require.Equal(t, "https://jobs.example.com/jobs?page=3",
		NextPageURL(d, "https://jobs.example.com/jobs?page=2"))
}

func TestNextPageURLBumpsStartrow(t *testing.T) {
	d := doc(t, `<p>no pagination markup</p>`)
	require.Equal(t, "https://jobs.example.com/search/?startrow=10",
		NextPageURL(d, "https://jobs.example.com/search/?startrow=0"))
}

func TestNextPageURLNoCursor(t *testing.T) {
	d := doc(t, `<p>no pagination markup</p>`)
	require.Equal(t, "", NextPageURL(d, "https://jobs.example.com/jobs"))
}

func TestStartRowURL(t *testing.T) {
	require.Equal(t, "https://jobs.example.com/search/?startrow=10",
		StartRowURL("https://jobs.example.com/search/", 2))
	require.Equal(t, "https://jobs.example.com/search/?q=sde&startrow=20",
		StartRowURL("https://jobs.example.com/search/?q=sde&startrow=0", 3))
}
