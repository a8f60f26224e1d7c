package tui

import (
	"github.com/shivakharbanda/cm-front/internal/api"
)

type loginDoneMsg struct {
	user *api.User
}

type editorLoadedMsg struct{}

type itemToggledMsg struct{}

type itemRemovedMsg struct{}

type publishToggledMsg struct{}

type reorderedMsg struct{}

type analyticsMsg struct {
	page      *api.PageAnalytics
	items     *api.ItemAnalytics
	countries []api.CountryBreakdown
}

type automationsMsg struct {
	automations []api.Automation
	summary     map[string]api.AutomationSummary
}

type automationToggledMsg struct {
	automation *api.Automation
}

type errMsg struct {
	err error
}
