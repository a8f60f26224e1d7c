package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) statusBar() string {
	var left string
	switch {
	case a.loading:
		left = a.spinner.View() + " working..."
	case a.err != nil:
		left = errorStyle.Render(truncateStr(a.err.Error(), a.width-20))
	case a.status != "":
		left = a.status
	default:
		left = helpDimStyle.Render("? help")
	}

	right := ""
	if a.user != nil {
		right = a.user.Email
	}

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(a.width).Render(left + strings.Repeat(" ", gap) + right)
}
