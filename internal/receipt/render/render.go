// Package render turns composed receipts into HTML pages and display strings.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"crawlreceipt/internal/receipt"
)

// ProtectURL is the crawler-blocking project linked from every page.
const ProtectURL = "https://github.com/Josusanz/pay-per-crawl-worker"

//go:embed templates/*.html
var templateFS embed.FS

// Money formats an unrounded dollar amount as "$1,234.56". This is the only
// place amounts are rounded to cents.
func Money(amount float64) string {
	cents := int64(math.Round(amount * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, humanize.Comma(cents/100), cents%100)
}

// Pages formats a page count with thousands separators.
func Pages(n int) string {
	return humanize.Comma(int64(n))
}

// SourceNote describes where the page count came from.
func SourceNote(measured bool, year int) string {
	if measured {
		return "Source: Common Crawl CDX Index " + strconv.Itoa(year)
	}
	return "Estimated (Common Crawl unavailable)"
}

// ShareURL is the public receipt link for domain.
func ShareURL(publicURL, domain string) string {
	return publicURL + "/receipt/" + url.PathEscape(domain)
}

// Headline is the one-line summary used in page metadata and share posts.
func Headline(r receipt.Receipt) string {
	return fmt.Sprintf("AI crawlers owe %s an estimated %s/year in unpaid scraping fees.", r.Domain, Money(r.Total))
}

// LineView is one formatted receipt row.
type LineView struct {
	Name    string
	Company string
	Price   string
	Detail  string
}

// ReceiptView is the template model for the receipt page.
type ReceiptView struct {
	Domain       string
	Year         int
	Pages        string
	Provenance   string
	Lines        []LineView
	CrawlerCount int
	Total        string
	Headline     string
	SourceNote   string
	ShareURL     string
	TweetURL     string
	LinkedInURL  string
	ProtectURL   string
	DownloadName string
}

// LandingView is the template model for the landing page.
type LandingView struct {
	Description   string
	PublicURL     string
	ProtectURL    string
	CrawlerCount  int
	CrawlsPerYear int
	PricePerPage  string
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl      *template.Template
	publicURL string
}

// New parses the embedded templates. publicURL is the externally visible
// origin used in share links, without a trailing slash.
func New(publicURL string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, publicURL: publicURL}, nil
}

// NewReceiptView formats r for display. now supplies the receipt year.
func (rd *Renderer) NewReceiptView(r receipt.Receipt, now time.Time) ReceiptView {
	pages := Pages(r.Pages)
	lines := make([]LineView, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, LineView{
			Name:    l.Name,
			Company: l.Company,
			Price:   Money(l.Subtotal),
			Detail:  fmt.Sprintf("%s pages × %d crawls/yr", Pages(l.Pages), l.CrawlsPerYear),
		})
	}

	total := Money(r.Total)
	share := ShareURL(rd.publicURL, r.Domain)
	post := fmt.Sprintf("AI crawlers owe %s %s in unpaid scraping fees.\n\nSee yours → %s\n\nDeploy HTTP 402 in 5 min: %s",
		r.Domain, total, share, ProtectURL)

	return ReceiptView{
		Domain:       r.Domain,
		Year:         now.Year(),
		Pages:        pages,
		Provenance:   string(r.Provenance),
		Lines:        lines,
		CrawlerCount: len(r.Lines),
		Total:        total,
		Headline:     Headline(r),
		SourceNote:   SourceNote(r.IsMeasured(), now.Year()),
		ShareURL:     share,
		TweetURL:     "https://twitter.com/intent/tweet?text=" + url.QueryEscape(post),
		LinkedInURL:  "https://www.linkedin.com/sharing/share-offsite/?url=" + url.QueryEscape(share),
		ProtectURL:   ProtectURL,
		DownloadName: "receipt-" + r.Domain + ".png",
	}
}

// Receipt writes the receipt page for r.
func (rd *Renderer) Receipt(w io.Writer, r receipt.Receipt, now time.Time) error {
	return rd.tmpl.ExecuteTemplate(w, "receipt", rd.NewReceiptView(r, now))
}

// Landing writes the entry page. crawlers and pricing fill the "how it works" panel.
func (rd *Renderer) Landing(w io.Writer, crawlers int, pricing receipt.Pricing) error {
	return rd.tmpl.ExecuteTemplate(w, "landing", LandingView{
		Description:   "Find out how much AI crawlers owe your website in unpaid scraping fees. Real data from Common Crawl.",
		PublicURL:     rd.publicURL,
		ProtectURL:    ProtectURL,
		CrawlerCount:  crawlers,
		CrawlsPerYear: pricing.CrawlsPerYear,
		PricePerPage:  Money(pricing.PricePerPage),
	})
}
