package extract

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jobscout-dev/jobscout/internal/fetch"
	"github.com/jobscout-dev/jobscout/internal/jobs"
	"github.com/jobscout-dev/jobscout/internal/ui"
)

// ciscoExtractor reads jobs.cisco.com search results, where each
// posting is a ProjectDetail link inside a .job-listing row.
type ciscoExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *ciscoExtractor) Name() string { return "cisco" }

func (e *ciscoExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseCiscoPage, nextCiscoPage)
}

func parseCiscoPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find("a[href*=\"/jobs/ProjectDetail/\"]").Each(func(_ int, link *goquery.Selection) {
		title := jobs.NormalizeText(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}

		container := link.Closest(".job-listing")
		if container.Length() == 0 {
			container = link.Parent()
		}
		location := jobs.NormalizeText(container.Find("[class*=\"location\"]").First().Text())

		u := resolveURL(pageURL, href)
		segments := strings.Split(strings.TrimRight(u, "/"), "/")

		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  location,
			URL:       u,
			JobID:     segments[len(segments)-1],
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

func nextCiscoPage(doc *goquery.Document, pageURL string, page int) string {
	next := ""
	doc.Find("a.pagination_item").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(a.Text()), "next") {
			return true
		}
		if href, ok := a.Attr("href"); ok && href != "" {
			next = resolveURL(pageURL, href)
			return false
		}
		return true
	})
	if next != "" {
		return next
	}
	return NextPageURL(doc, pageURL)
}
