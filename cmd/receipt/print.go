package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"crawlreceipt/internal/receipt"
	"crawlreceipt/internal/receipt/render"
)

const lineWidth = 44

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	dueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5F87"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

// printReceipt lays the receipt out as a bordered terminal block.
func printReceipt(r receipt.Receipt, now time.Time) string {
	sections := []string{
		titleStyle.Render("AI SCRAPING RECEIPT"),
		r.Domain,
		metaStyle.Render(fmt.Sprintf("%s · %s pages", now.Format("Jan 2, 2006"), render.Pages(r.Pages))),
		"",
	}
	for _, line := range r.Lines {
		sections = append(sections,
			row(line.Name, amountStyle.Render(render.Money(line.Subtotal))),
			metaStyle.Render(fmt.Sprintf("  %s · %s pages × %d crawls", line.Company, render.Pages(line.Pages), line.CrawlsPerYear)),
		)
	}
	sections = append(sections,
		"",
		row(fmt.Sprintf("SUBTOTAL (%d crawlers)", len(r.Lines)), render.Money(r.Total)),
		row("PAYMENT RECEIVED", render.Money(0)),
		row("OUTSTANDING", dueStyle.Render(render.Money(r.Total))),
		"",
		metaStyle.Render(render.SourceNote(r.IsMeasured(), now.Year())),
	)
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// row places label and value at either end of a fixed-width line.
func row(label, value string) string {
	gap := lineWidth - lipgloss.Width(label) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, lipgloss.NewStyle().Width(gap).Render(""), value)
}
