package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shivakharbanda/cm-front/internal/api"
)

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func kindLabel(t api.ItemType) string {
	switch t {
	case api.ItemLink:
		return "link"
	case api.ItemCard:
		return "card"
	}
	return string(t)
}

func renderItemRow(item api.PageItem, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	title := item.Title()
	var line string
	switch {
	case selected:
		line = itemSelectedStyle.Render("> " + truncateStr(title, width-4))
	case !item.Active():
		line = itemInactiveStyle.Render("  " + truncateStr(title, width-4))
	default:
		line = itemTitleStyle.Render("  " + truncateStr(title, width-4))
	}

	state := "on"
	if !item.Active() {
		state = "off"
	}
	meta := "  " + itemKindStyle.Render(kindLabel(item.Type)) + " " + itemMetaStyle.Render(fmt.Sprintf("· #%d · %s", item.Position, state))

	return line + "\n" + meta
}

func renderItemList(items []api.PageItem, cursor int, height, width int) string {
	if len(items) == 0 {
		return centerText("No links or cards yet", width, height)
	}

	// Each row is 2 lines + 1 blank line = 3 lines
	rowHeight := 3
	visible := height / rowHeight
	if visible < 1 {
		visible = 1
	}

	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderItemRow(items[i], i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderItemDetail(item *api.PageItem, width, height int) string {
	if item == nil {
		return centerText("Select an item", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	var sections []string
	sections = append(sections, detailTitleStyle.Width(contentWidth).Render(item.Title()))

	switch item.Type {
	case api.ItemLink:
		l := item.Link
		sections = append(sections, detailLabelStyle.Render("URL     ")+detailBodyStyle.Render(truncateStr(l.URL, contentWidth-9)))
		sections = append(sections, detailLabelStyle.Render("Type    ")+detailBodyStyle.Render(string(l.LinkType)))
		if l.VisibleFrom != nil || l.VisibleUntil != nil {
			window := fmt.Sprintf("%s → %s", orDash(l.VisibleFrom), orDash(l.VisibleUntil))
			sections = append(sections, detailLabelStyle.Render("Window  ")+detailBodyStyle.Render(window))
		}
	case api.ItemCard:
		c := item.Card
		if c.BadgeText != nil && *c.BadgeText != "" {
			sections = append(sections, detailLabelStyle.Render("Badge   ")+detailBodyStyle.Render(*c.BadgeText))
		}
		if c.Description != nil && *c.Description != "" {
			sections = append(sections, detailBodyStyle.Width(contentWidth).Render(wrapText(*c.Description, contentWidth)))
		}
		sections = append(sections, detailLabelStyle.Render("CTA     ")+detailBodyStyle.Render(c.CTAText))
		sections = append(sections, detailLabelStyle.Render("Goes to ")+detailBodyStyle.Render(truncateStr(c.DestinationURL, contentWidth-9)))
		gate := "anyone"
		if c.RequiresEmail {
			gate = "email required"
		}
		sections = append(sections, detailLabelStyle.Render("Access  ")+detailBodyStyle.Render(gate))
	}

	state := "active"
	if !item.Active() {
		state = "hidden"
	}
	sections = append(sections, "")
	sections = append(sections, itemMetaStyle.Render(fmt.Sprintf("position %d · %s", item.Position, state)))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	lines := strings.Split(content, "\n")
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > width {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}

func centerText(s string, width, height int) string {
	pad := (width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", max(0, height/3)) + strings.Repeat(" ", pad) + s
}
