package mailbox

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// JobTuple is one row of a job-alert table: a company, a role, and where to
// apply. Tuples live only within a single pipeline run; they are merged into
// job records before anything is persisted.
type JobTuple struct {
	CompanyName  string
	JobTitle     string
	ApplyLink    string
	EmailSubject string
	EmailDate    string
	EmailFrom    string
}

// ParseJobs extracts job tuples from an alert email body. The first <table>
// holds the postings: its first row is a header, and each later row with at
// least two cells carries the company in cell one and the titled apply link
// in cell two. Rows missing any of company, title, or link are skipped.
// Parsing does not mutate the input and the same markup always yields the
// same tuples in the same order.
func ParseJobs(bodyHTML string) ([]JobTuple, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(bodyHTML))
	if err != nil {
		return nil, err
	}

	var tuples []JobTuple

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return tuples, nil
	}

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return tuples, nil
	}

	rows.Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		company := strings.TrimSpace(cells.Eq(0).Text())
		jobCell := cells.Eq(1)
		title := strings.TrimSpace(jobCell.Text())
		link, _ := jobCell.Find("a").First().Attr("href")
		link = strings.TrimSpace(link)

		if company == "" || title == "" || link == "" {
			return
		}
		tuples = append(tuples, JobTuple{
			CompanyName: company,
			JobTitle:    title,
			ApplyLink:   link,
		})
	})

	return tuples, nil
}
