package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type profileState int

const (
	prBrowsing profileState = iota
	prEditName
	prEditSkills
	prEditPassword
)

type profileMsg struct {
	gen     int
	profile *domain.Profile
	err     error
}

type profileActionMsg struct {
	message string
	err     error
}

// profileModel serves both the client and the freelancer profile panel. The
// role picks the endpoints; freelancers additionally get a skills editor.
type profileModel struct {
	api   *client.Client
	role  domain.Role
	state profileState

	profile *domain.Profile

	input  string
	pwForm form

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newProfileModel(api *client.Client, role domain.Role) profileModel {
	return profileModel{
		api:  api,
		role: role,
		pwForm: newForm(
			formField{label: "Current password", secret: true},
			formField{label: "New password", secret: true},
		),
	}
}

func (m profileModel) refresh() (profileModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	role := m.role
	return m, func() tea.Msg {
		var profile *domain.Profile
		var err error
		if role == domain.RoleFreelancer {
			profile, err = api.FreelancerProfile(context.Background())
		} else {
			profile, err = api.ClientProfile(context.Background())
		}
		return profileMsg{gen: gen, profile: profile, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case profileMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.profile, m.err = msg.profile, msg.err
		return m, nil
	case profileActionMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "update failed")
			return m, nil
		}
		m.status = msg.message
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m profileModel) handleKey(key string) (profileModel, tea.Cmd) {
	switch m.state {
	case prEditName:
		switch key {
		case "enter":
			name := strings.TrimSpace(m.input)
			if len([]rune(name)) < 3 {
				m.status = "Name must be at least 3 characters"
				return m, nil
			}
			m.state = prBrowsing
			m.status = "saving..."
			api := m.api
			role := m.role
			return m, func() tea.Msg {
				var message string
				var err error
				if role == domain.RoleFreelancer {
					message, err = api.UpdateFreelancerName(context.Background(), name)
				} else {
					message, err = api.UpdateClientName(context.Background(), name)
				}
				return profileActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = prBrowsing
		default:
			m.input = editRune(m.input, key)
		}
		return m, nil
	case prEditSkills:
		switch key {
		case "enter":
			skills := strings.TrimSpace(m.input)
			if skills == "" {
				m.status = "Skills are required"
				return m, nil
			}
			m.state = prBrowsing
			m.status = "saving..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.UpdateFreelancerSkills(context.Background(), skills)
				return profileActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = prBrowsing
		default:
			m.input = editRune(m.input, key)
		}
		return m, nil
	case prEditPassword:
		switch key {
		case "enter":
			current, next := m.pwForm.value(0), m.pwForm.value(1)
			if current == "" || next == "" {
				m.status = "All fields are required"
				return m, nil
			}
			if len([]rune(next)) < 4 {
				m.status = "Password must be at least 4 characters"
				return m, nil
			}
			m.state = prBrowsing
			m.status = "saving..."
			api := m.api
			role := m.role
			return m, func() tea.Msg {
				var message string
				var err error
				if role == domain.RoleFreelancer {
					message, err = api.UpdateFreelancerPassword(context.Background(), current, next)
				} else {
					message, err = api.UpdateClientPassword(context.Background(), current, next)
				}
				return profileActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = prBrowsing
		default:
			m.pwForm.handleKey(key)
		}
		return m, nil
	}

	switch key {
	case "n":
		if m.profile != nil {
			m.state = prEditName
			m.input = m.profile.Name
			m.status = ""
		}
	case "s":
		if m.profile != nil && m.role == domain.RoleFreelancer {
			m.state = prEditSkills
			m.input = m.profile.Skills
			m.status = ""
		}
	case "p":
		m.state = prEditPassword
		m.pwForm.reset()
		m.status = ""
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Profile") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load profile")) + "\n")
	case m.profile != nil:
		b.WriteString(statRow("Name", m.profile.Name))
		b.WriteString(statRow("Email", m.profile.Email))
		if m.profile.MemberSince != "" {
			b.WriteString(statRow("Member since", m.profile.MemberSince))
		}
		if m.role == domain.RoleFreelancer {
			b.WriteString(statRow("Skills", truncStr(m.profile.Skills, 50)))
			b.WriteString(statRow("Experience", truncStr(m.profile.Experience, 50)))
		}
	}

	switch m.state {
	case prEditName:
		b.WriteString("\n  " + sectionHeaderStyle.Render("New name") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case prEditSkills:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Skills") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case prEditPassword:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Change password") + "\n\n")
		b.WriteString(m.pwForm.render())
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	if m.state == prBrowsing {
		b.WriteString(helpEntry("n", "edit name"))
		if m.role == domain.RoleFreelancer {
			b.WriteString("  " + helpEntry("s", "edit skills"))
		}
		b.WriteString("  " + helpEntry("p", "password") + "  " + helpEntry("r", "refresh"))
	} else {
		b.WriteString(helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
