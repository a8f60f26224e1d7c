package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shivakharbanda/cm-front/internal/api"
)

func triggerLabel(a api.Automation) string {
	switch a.TriggerType {
	case api.TriggerAllComments:
		return "any comment"
	case api.TriggerKeyword:
		return "keywords: " + strings.Join(a.Keywords, ", ")
	}
	return string(a.TriggerType)
}

func renderAutomationRow(a api.Automation, sum api.AutomationSummary, selected bool, width int) string {
	state := draftStyle.Render("paused")
	if a.IsActive {
		state = publishedStyle.Render("active")
	}

	name := truncateStr(a.Name, width-20)
	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + name)
	} else {
		title = itemTitleStyle.Render("  " + name)
	}

	meta := "  " + itemMetaStyle.Render(fmt.Sprintf("%s · %d comments · %d DMs · ",
		truncateStr(triggerLabel(a), width/2), sum.TotalComments, sum.TotalDMsSent)) + state

	return title + "\n" + meta
}

func renderAutomations(automations []api.Automation, summary map[string]api.AutomationSummary, cursor, width, height int) string {
	if len(automations) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			helpDimStyle.Render("No automations. Connect an Instagram account and create one from the web app."))
	}

	var b strings.Builder
	for i, a := range automations {
		b.WriteString(renderAutomationRow(a, summary[a.ID], i == cursor, width-4))
		if i < len(automations)-1 {
			b.WriteString("\n\n")
		}
	}

	footer := helpDimStyle.Render("space toggle · r refresh")
	body := lipgloss.JoinVertical(lipgloss.Left, b.String(), "", footer)
	return lipgloss.NewStyle().Padding(1, 2).MaxHeight(height).Render(body)
}
