package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shivakharbanda/cm-front/internal/api"
)

// renderBarChart draws a vertical-value horizontal-bar chart from daily
// points, one row per day, scaled to barWidth.
func renderBarChart(points []api.DatePoint, barWidth int) string {
	if len(points) == 0 {
		return helpDimStyle.Render("no data for this period")
	}
	if barWidth < 5 {
		barWidth = 5
	}

	peak := 0
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
	}

	var b strings.Builder
	for i, p := range points {
		filled := 0
		if peak > 0 {
			filled = p.Value * barWidth / peak
		}
		if p.Value > 0 && filled == 0 {
			filled = 1
		}
		bar := chartBarStyle.Render(strings.Repeat("█", filled))
		label := chartLabelStyle.Render(fmt.Sprintf("%-10s", shortDate(p.Date)))
		b.WriteString(fmt.Sprintf("%s %s %d", label, bar, p.Value))
		if i < len(points)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// shortDate trims an ISO date down to MM-DD.
func shortDate(date string) string {
	if len(date) >= 10 {
		return date[5:10]
	}
	return date
}

func renderCountryTable(countries []api.CountryBreakdown, limit int) string {
	if len(countries) == 0 {
		return helpDimStyle.Render("no geographic data")
	}
	if limit > 0 && len(countries) > limit {
		countries = countries[:limit]
	}

	var b strings.Builder
	b.WriteString(chartLabelStyle.Render(fmt.Sprintf("%-4s %-20s %8s %7s", "", "Country", "Views", "%")))
	for _, c := range countries {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-4s %-20s %8d %6.1f%%",
			c.CountryCode, truncateStr(c.CountryName, 20), c.Views, c.Percentage))
	}
	return b.String()
}

func renderTopItems(items *api.ItemAnalytics, limit int) string {
	if items == nil || (len(items.Links) == 0 && len(items.Cards) == 0) {
		return helpDimStyle.Render("no clicks yet")
	}

	type row struct {
		kind   string
		title  string
		clicks int
	}
	var rows []row
	for _, l := range items.Links {
		rows = append(rows, row{"link", l.Title, l.Clicks})
	}
	for _, c := range items.Cards {
		rows = append(rows, row{"card", c.Headline, c.Submissions})
	}
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[j].clicks > rows[i].clicks {
				rows[i], rows[j] = rows[j], rows[i]
			}
		}
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	var b strings.Builder
	for i, r := range rows {
		b.WriteString(fmt.Sprintf("%s %-30s %d",
			itemKindStyle.Render(fmt.Sprintf("%-5s", r.kind)), truncateStr(r.title, 30), r.clicks))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderAnalytics(page *api.PageAnalytics, items *api.ItemAnalytics, countries []api.CountryBreakdown, width, height int) string {
	if page == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			helpDimStyle.Render("loading analytics..."))
	}

	headline := fmt.Sprintf("%s views   %s clicks   %s ctr",
		itemTitleStyle.Render(fmt.Sprintf("%d", page.TotalViews)),
		itemTitleStyle.Render(fmt.Sprintf("%d", page.TotalClicks)),
		itemTitleStyle.Render(fmt.Sprintf("%.1f%%", page.CTR)))
	if page.ViewsChangePercent != nil {
		headline += "   " + trendLabel(*page.ViewsChangePercent)
	}

	chartWidth := width/2 - 20
	sections := []string{
		headline,
		"",
		detailLabelStyle.Render("Views, last 30 days"),
		renderBarChart(tailPoints(page.ViewsByDate, 10), chartWidth),
		"",
		detailLabelStyle.Render("Top items"),
		renderTopItems(items, 5),
		"",
		detailLabelStyle.Render("Audience"),
		renderCountryTable(countries, 5),
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Padding(1, 2).MaxHeight(height).Render(body)
}

func trendLabel(pct float64) string {
	if pct >= 0 {
		return publishedStyle.Render(fmt.Sprintf("▲ %.1f%%", pct))
	}
	return errorStyle.Render(fmt.Sprintf("▼ %.1f%%", -pct))
}

func tailPoints(points []api.DatePoint, n int) []api.DatePoint {
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
