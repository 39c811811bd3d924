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

// capgeminiExtractor reads capgemini.com job tables: anchor rows whose
// cells are labelled by a .table-td-header div (Location, Experience,
// Contract type).
type capgeminiExtractor struct {
	client *fetch.Client
	log    *ui.Logger
}

func (e *capgeminiExtractor) Name() string { return "capgemini" }

func (e *capgeminiExtractor) Extract(ctx context.Context, t Target) ([]jobs.Job, error) {
	return crawl(ctx, e.client, e.log, t, parseCapgeminiPage, func(doc *goquery.Document, pageURL string, page int) string {
		return NextPageURL(doc, pageURL)
	})
}

func parseCapgeminiPage(doc *goquery.Document, pageURL, company string) []jobs.Job {
	now := time.Now()
	var out []jobs.Job

	doc.Find("a.table-tr.filter-box.joblink").Each(func(_ int, row *goquery.Selection) {
		title := jobs.NormalizeText(row.Find(".table-td.table-title div:not(.table-td-header)").First().Text())
		href, _ := row.Attr("href")
		if title == "" || href == "" {
			return
		}

		u := resolveURL(pageURL, href)
		if !strings.Contains(u, "/jobs/") || !jobs.ValidTitle(title) {
			return
		}

		out = append(out, jobs.Job{
			Company:   company,
			Title:     title,
			Location:  labelledCell(row, "Location"),
			URL:       u,
			JobID:     jobs.IDFromURL(u),
			Source:    company,
			ScrapedAt: now,
		})
	})

	return out
}

// labelledCell finds the cell whose .table-td-header matches label and
// returns its value div text.
func labelledCell(row *goquery.Selection, label string) string {
	value := ""
	row.Find(".table-td.table-title").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		header := jobs.NormalizeText(td.Find(".table-td-header").First().Text())
		if !strings.Contains(header, label) {
			return true
		}
		value = jobs.NormalizeText(td.Find("div:not(.table-td-header)").First().Text())
		return false
	})
	return value
}
