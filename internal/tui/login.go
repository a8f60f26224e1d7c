package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 120
	email.Width = 32
	email.Prompt = "> "

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 120
	password.Width = 32
	password.Prompt = "> "

	email.Focus()
	return loginModel{email: email, password: password}
}

func (m loginModel) init() tea.Cmd {
	return textinput.Blink
}

func (m loginModel) ready() bool {
	return strings.TrimSpace(m.email.Value()) != "" && m.password.Value() != ""
}

func (m loginModel) values() (email, password string) {
	return strings.TrimSpace(m.email.Value()), m.password.Value()
}

func (m loginModel) update(msg tea.Msg) (loginModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			m.focus = (m.focus + 1) % 2
		}
	}

	if m.focus == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}

	var cmds [2]tea.Cmd
	m.email, cmds[0] = m.email.Update(msg)
	m.password, cmds[1] = m.password.Update(msg)
	return m, tea.Batch(cmds[0], cmds[1])
}

func (m loginModel) view(width, height int, appName string) string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		itemTitleStyle.Render(appName),
		"",
		formLabelStyle.Render("Email"),
		m.email.View(),
		"",
		formLabelStyle.Render("Password"),
		m.password.View(),
		"",
		helpDimStyle.Render("tab to switch · enter to sign in · ctrl+c to quit"),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, formCardStyle.Render(form))
}
