package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
)

type postJobState int

const (
	pjBrowsing postJobState = iota
	pjEditing
)

type postJobResultMsg struct {
	message string
	err     error
}

type postJobModel struct {
	api   *client.Client
	state postJobState
	form  form

	errMsg string
	status string
	busy   bool
	height int

	// now is swapped in tests to pin the deadline check.
	now func() time.Time
}

func newPostJobModel(api *client.Client) postJobModel {
	return postJobModel{
		api: api,
		form: newForm(
			formField{label: "Title", placeholder: "what needs doing"},
			formField{label: "Description", placeholder: "scope, deliverables, context"},
			formField{label: "Budget (₹)", placeholder: "5000"},
			formField{label: "Deadline (YYYY-MM-DD)", placeholder: "2026-10-01"},
		),
		now: time.Now,
	}
}

// refresh resets transient state; the form itself has nothing to fetch.
func (m postJobModel) refresh() (postJobModel, tea.Cmd) {
	m.errMsg = ""
	m.busy = false
	m.state = pjBrowsing
	return m, nil
}

func (m postJobModel) Update(msg tea.Msg) (postJobModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case postJobResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = client.Message(msg.err, "could not post job")
			return m, nil
		}
		m.status = msg.message
		m.errMsg = ""
		m.state = pjBrowsing
		m.form.reset()
		return m, nil
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m postJobModel) handleKey(key string) (postJobModel, tea.Cmd) {
	if m.state == pjBrowsing {
		if key == "e" || key == "enter" {
			m.state = pjEditing
			m.status = ""
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.state = pjBrowsing
		return m, nil
	case "enter":
		f := postJobForm{
			Title:       strings.TrimSpace(m.form.value(0)),
			Description: strings.TrimSpace(m.form.value(1)),
			Budget:      strings.TrimSpace(m.form.value(2)),
			Deadline:    strings.TrimSpace(m.form.value(3)),
		}
		if errMsg := f.check(m.now()); errMsg != "" {
			m.errMsg = errMsg
			return m, nil
		}
		m.errMsg = ""
		m.status = ""
		m.busy = true
		api := m.api
		req := client.PostJobRequest{
			Title:       f.Title,
			Description: f.Description,
			Budget:      f.budgetValue(),
			Deadline:    f.Deadline,
		}
		return m, func() tea.Msg {
			message, err := api.PostJob(context.Background(), req)
			return postJobResultMsg{message: message, err: err}
		}
	default:
		m.form.handleKey(key)
	}
	return m, nil
}

func (m postJobModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Post a job") + "\n\n")
	b.WriteString(m.form.render())
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("posting...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	case m.status != "":
		b.WriteString("  " + successStyle.Render(m.status) + "\n")
	}
	b.WriteString("\n  ")
	if m.state == pjBrowsing {
		b.WriteString(helpEntry("e", "edit form"))
	} else {
		b.WriteString(helpEntry("enter", "post job") + "  " + helpEntry("tab", "next field") + "  " +
			helpEntry("esc", "done"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
