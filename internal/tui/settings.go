package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type settingsState int

const (
	asBrowsing settingsState = iota
	asEditName
	asEditCommission
	asEditPassword
	asCreating
	asDeleteEntry
	asDeleteConfirm
)

type settingsMsg struct {
	gen      int
	settings *domain.AdminSettings
	err      error
}

type settingsActionMsg struct {
	message string
	err     error
}

// settingsModel is the admin account panel: own credentials, the platform
// commission rate, and admin account management.
type settingsModel struct {
	api   *client.Client
	state settingsState

	settings *domain.AdminSettings

	input      string
	pwForm     form
	createForm form

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newSettingsModel(api *client.Client) settingsModel {
	return settingsModel{
		api: api,
		pwForm: newForm(
			formField{label: "Current password", secret: true},
			formField{label: "New password", secret: true},
		),
		createForm: newForm(
			formField{label: "Name", placeholder: "full name"},
			formField{label: "Email", placeholder: "admin@workd.dev"},
			formField{label: "Password", secret: true},
		),
	}
}

func (m settingsModel) refresh() (settingsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		settings, err := api.AdminSettings(context.Background())
		return settingsMsg{gen: gen, settings: settings, err: err}
	}
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case settingsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.settings, m.err = msg.settings, msg.err
		return m, nil
	case settingsActionMsg:
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

func (m settingsModel) handleKey(key string) (settingsModel, tea.Cmd) {
	switch m.state {
	case asEditName:
		switch key {
		case "enter":
			name := strings.TrimSpace(m.input)
			if len([]rune(name)) < 3 {
				m.status = "Name must be at least 3 characters"
				return m, nil
			}
			m.state = asBrowsing
			m.status = "saving..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.UpdateAdminName(context.Background(), name)
				return settingsActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = asBrowsing
		default:
			m.input = editRune(m.input, key)
		}
		return m, nil
	case asEditCommission:
		switch key {
		case "enter":
			rate, err := strconv.ParseFloat(strings.TrimSpace(m.input), 64)
			if err != nil || rate < 0 || rate > 100 {
				m.status = "Commission must be between 0 and 100"
				return m, nil
			}
			m.state = asBrowsing
			m.status = "saving..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.UpdateAdminCommission(context.Background(), rate)
				return settingsActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = asBrowsing
		default:
			m.input = editRune(m.input, key)
		}
		return m, nil
	case asEditPassword:
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
			m.state = asBrowsing
			m.status = "saving..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.UpdateAdminPassword(context.Background(), current, next)
				return settingsActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = asBrowsing
		default:
			m.pwForm.handleKey(key)
		}
		return m, nil
	case asCreating:
		switch key {
		case "enter":
			f := registerForm{
				Name:     strings.TrimSpace(m.createForm.value(0)),
				Email:    strings.TrimSpace(m.createForm.value(1)),
				Password: m.createForm.value(2),
				Role:     string(domain.RoleAdmin),
			}
			if f.Name == "" || f.Email == "" || f.Password == "" {
				m.status = "All fields are required"
				return m, nil
			}
			if errMsg := f.check(); errMsg != "" && errMsg != "Select a role" {
				m.status = errMsg
				return m, nil
			}
			m.state = asBrowsing
			m.status = "creating admin..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.CreateAdmin(context.Background(), f.Name, f.Email, f.Password)
				return settingsActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = asBrowsing
		default:
			m.createForm.handleKey(key)
		}
		return m, nil
	case asDeleteEntry:
		switch key {
		case "enter":
			if strings.TrimSpace(m.input) == "" {
				m.status = "Email is required"
				return m, nil
			}
			m.state = asDeleteConfirm
		case "esc":
			m.state = asBrowsing
		default:
			m.input = editRune(m.input, key)
		}
		return m, nil
	case asDeleteConfirm:
		switch key {
		case "y":
			email := strings.TrimSpace(m.input)
			m.state = asBrowsing
			m.status = "deleting admin..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.DeleteAdmin(context.Background(), email)
				return settingsActionMsg{message: message, err: err}
			}
		case "n", "esc":
			m.state = asBrowsing
		}
		return m, nil
	}

	switch key {
	case "n":
		if m.settings != nil {
			m.state = asEditName
			m.input = m.settings.Name
			m.status = ""
		}
	case "m":
		if m.settings != nil {
			m.state = asEditCommission
			m.input = strconv.FormatFloat(m.settings.Commission, 'f', -1, 64)
			m.status = ""
		}
	case "p":
		m.state = asEditPassword
		m.pwForm.reset()
		m.status = ""
	case "c":
		m.state = asCreating
		m.createForm.reset()
		m.status = ""
	case "x":
		m.state = asDeleteEntry
		m.input = ""
		m.status = ""
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m settingsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Settings") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load settings")) + "\n")
	case m.settings != nil:
		b.WriteString(statRow("Name", m.settings.Name))
		b.WriteString(statRow("Email", m.settings.Email))
		b.WriteString(statRow("Commission", fmt.Sprintf("%.1f%%", m.settings.Commission)))
	}

	switch m.state {
	case asEditName:
		b.WriteString("\n  " + sectionHeaderStyle.Render("New name") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case asEditCommission:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Commission rate (%)") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case asEditPassword:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Change password") + "\n\n")
		b.WriteString(m.pwForm.render())
	case asCreating:
		b.WriteString("\n  " + sectionHeaderStyle.Render("New admin account") + "\n\n")
		b.WriteString(m.createForm.render())
	case asDeleteEntry:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Delete admin by email") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case asDeleteConfirm:
		b.WriteString("\n  " + errorStyle.Render(
			"delete admin "+strings.TrimSpace(m.input)+"? (y/n)") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case asBrowsing:
		b.WriteString(helpEntry("n", "name") + "  " + helpEntry("m", "commission") + "  " +
			helpEntry("p", "password") + "  " + helpEntry("c", "create admin") + "  " +
			helpEntry("x", "delete admin") + "  " + helpEntry("r", "refresh"))
	case asDeleteConfirm:
		b.WriteString(helpEntry("y", "delete") + "  " + helpEntry("n", "cancel"))
	default:
		b.WriteString(helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
