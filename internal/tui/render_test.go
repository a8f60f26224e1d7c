package tui

import (
	"strings"
	"testing"

	"github.com/shivakharbanda/cm-front/internal/api"
)

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 5, "hello"},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestWrapText(t *testing.T) {
	got := wrapText("one two three four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Errorf("wrapText = %q, want %q", got, want)
	}

	if got := wrapText("", 10); got != "" {
		t.Errorf("empty input should stay empty, got %q", got)
	}
	if got := wrapText("short", 80); got != "short" {
		t.Errorf("no wrap needed, got %q", got)
	}
}

func TestShortDate(t *testing.T) {
	if got := shortDate("2026-08-14"); got != "08-14" {
		t.Errorf("shortDate = %q", got)
	}
	if got := shortDate("bad"); got != "bad" {
		t.Errorf("short input should pass through, got %q", got)
	}
}

func TestTailPoints(t *testing.T) {
	pts := []api.DatePoint{{Date: "a"}, {Date: "b"}, {Date: "c"}}
	got := tailPoints(pts, 2)
	if len(got) != 2 || got[0].Date != "b" {
		t.Errorf("tailPoints = %v", got)
	}
	if len(tailPoints(pts, 5)) != 3 {
		t.Error("tailPoints should return all when n exceeds length")
	}
}

func TestRenderBarChartScalesToPeak(t *testing.T) {
	pts := []api.DatePoint{
		{Date: "2026-08-01", Value: 10},
		{Date: "2026-08-02", Value: 5},
		{Date: "2026-08-03", Value: 0},
	}
	out := renderBarChart(pts, 10)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if c10, c5 := strings.Count(lines[0], "█"), strings.Count(lines[1], "█"); c10 != 10 || c5 != 5 {
		t.Errorf("bar widths = %d and %d, want 10 and 5", c10, c5)
	}
	if strings.Contains(lines[2], "█") {
		t.Error("zero value should draw no bar")
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	out := renderBarChart(nil, 20)
	if !strings.Contains(out, "no data") {
		t.Errorf("expected placeholder, got %q", out)
	}
}

func TestRenderItemRowShowsKindAndState(t *testing.T) {
	active := false
	item := api.PageItem{
		Type:     api.ItemLink,
		ItemID:   "l1",
		Position: 2,
		Link:     &api.BioLink{ID: "l1", Title: "My shop", URL: "https://shop.example", IsActive: active},
	}
	out := renderItemRow(item, false, 60)
	for _, want := range []string{"My shop", "link", "#2", "off"} {
		if !strings.Contains(out, want) {
			t.Errorf("row missing %q: %q", want, out)
		}
	}
}

func TestTriggerLabel(t *testing.T) {
	all := api.Automation{TriggerType: api.TriggerAllComments}
	if got := triggerLabel(all); got != "any comment" {
		t.Errorf("triggerLabel(all_comments) = %q", got)
	}
	kw := api.Automation{TriggerType: api.TriggerKeyword, Keywords: []string{"price", "link"}}
	if got := triggerLabel(kw); got != "keywords: price, link" {
		t.Errorf("triggerLabel(keyword) = %q", got)
	}
}

func TestRenderCountryTable(t *testing.T) {
	out := renderCountryTable([]api.CountryBreakdown{
		{CountryCode: "BR", CountryName: "Brazil", Views: 120, Percentage: 61.5},
		{CountryCode: "US", CountryName: "United States", Views: 75, Percentage: 38.5},
	}, 1)
	if !strings.Contains(out, "Brazil") {
		t.Errorf("missing first row: %q", out)
	}
	if strings.Contains(out, "United States") {
		t.Errorf("limit should cut second row: %q", out)
	}
}
