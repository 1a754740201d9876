package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
)

type loginResultMsg struct {
	resp *client.LoginResponse
	err  error
}

type loginModel struct {
	api  *client.Client
	form form

	errMsg string
	notice string
	busy   bool
}

func newLoginModel(api *client.Client) loginModel {
	return loginModel{
		api: api,
		form: newForm(
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", placeholder: "password", secret: true},
		),
	}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.busy {
		return m, nil
	}
	switch key.String() {
	case "enter":
		f := loginForm{
			Email:    strings.TrimSpace(m.form.value(0)),
			Password: m.form.value(1),
		}
		if errMsg := f.check(); errMsg != "" {
			m.errMsg = errMsg
			return m, nil
		}
		m.errMsg = ""
		m.notice = ""
		m.busy = true
		api := m.api
		return m, func() tea.Msg {
			resp, err := api.Login(context.Background(), f.Email, f.Password)
			return loginResultMsg{resp: resp, err: err}
		}
	default:
		m.form.handleKey(key.String())
	}
	return m, nil
}

// fail surfaces a submit error and re-enables the form.
func (m *loginModel) fail(errMsg string) {
	m.busy = false
	m.errMsg = errMsg
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + renderLogo() + "\n\n")
	b.WriteString("  " + sectionHeaderStyle.Render("Sign in") + "\n\n")
	b.WriteString(m.form.render())
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	case m.notice != "":
		b.WriteString("  " + successStyle.Render(m.notice) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "sign in") + "  " +
		helpEntry("ctrl+r", "register") + "  " + helpEntry("ctrl+c", "quit") + "\n")
	return b.String()
}
