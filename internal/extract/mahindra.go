package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// mahindraExtractor reads SAP SuccessFactors style listings used by
// Mahindra careers: .jobTitle-link anchors paginated by a startrow
// query cursor stepping in tens.
type mahindraExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *mahindraExtractor) Name() string { return "mahindra" }

func (e *mahindraExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseMahindraPage, nextMahindraPage)
}

func parseMahindraPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find(".jobTitle-link").Each(func(_ int, link *goquery.Selection) {
		title := jobs.NormalizeText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" || !jobs.ValidTitle(title) {
			return
		}

		container := link.Closest("tr")
		if container.Length() == 0 {
			container = link.Parent()
		}
		location := jobs.NormalizeText(container.Find(".job-location").First().Text())

		u := resolveURL(pageURL, href)
		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     jobs.IDFromURL(u),
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

func nextMahindraPage(doc *goquery.Document, pageURL string, page int) string {
	// the next page's cursor is page*10; prefer the real anchor so we
	// inherit whatever other params the site appended
	startrow := page * 10
	sel := fmt.Sprintf("a[href*=\"startrow=%d\"][rel=\"nofollow\"]", startrow)
	if href, ok := doc.Find(sel).First().Attr("href"); ok && href != "" {
		return resolveURL(pageURL, href)
	}
	return StartRowURL(pageURL, page+1)
}
