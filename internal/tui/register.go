package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type registerResultMsg struct {
	message string
	err     error
}

type registerModel struct {
	api  *client.Client
	form form

	errMsg string
	busy   bool
}

func newRegisterModel(api *client.Client) registerModel {
	return registerModel{
		api: api,
		form: newForm(
			formField{label: "Name", placeholder: "full name"},
			formField{label: "Email", placeholder: "you@example.com"},
			formField{label: "Password", placeholder: "at least 4 characters", secret: true},
			formField{label: "Role", value: string(domain.RoleClient),
				options: []string{string(domain.RoleClient), string(domain.RoleFreelancer)}},
			formField{label: "Skills (freelancers)", placeholder: "e.g. Go, React, SQL"},
			formField{label: "Experience (freelancers)", placeholder: "e.g. 3 years backend work"},
		),
	}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.busy {
		return m, nil
	}
	switch key.String() {
	case "enter":
		f := registerForm{
			Name:       strings.TrimSpace(m.form.value(0)),
			Email:      strings.TrimSpace(m.form.value(1)),
			Password:   m.form.value(2),
			Role:       m.form.value(3),
			Skills:     strings.TrimSpace(m.form.value(4)),
			Experience: strings.TrimSpace(m.form.value(5)),
		}
		if errMsg := f.check(); errMsg != "" {
			m.errMsg = errMsg
			return m, nil
		}
		m.errMsg = ""
		m.busy = true
		api := m.api
		return m, func() tea.Msg {
			message, err := api.Register(context.Background(), client.RegisterRequest{
				Name:       f.Name,
				Email:      f.Email,
				Password:   f.Password,
				Role:       f.Role,
				Skills:     f.Skills,
				Experience: f.Experience,
			})
			return registerResultMsg{message: message, err: err}
		}
	default:
		m.form.handleKey(key.String())
	}
	return m, nil
}

func (m *registerModel) fail(errMsg string) {
	m.busy = false
	m.errMsg = errMsg
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + renderLogo() + "\n\n")
	b.WriteString("  " + sectionHeaderStyle.Render("Create account") + "\n\n")
	b.WriteString(m.form.render())
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("creating account...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "create account") + "  " +
		helpEntry("←/→", "pick role") + "  " + helpEntry("esc", "back to sign in") + "\n")
	return b.String()
}
