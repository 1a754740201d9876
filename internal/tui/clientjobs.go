package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/internal/checkout"
	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type clientJobsState int

const (
	cjBrowsing clientJobsState = iota
	cjPayConfirm
	cjPaying
)

type clientJobsMsg struct {
	gen  int
	jobs []domain.Job
	err  error
}

type payResultMsg struct {
	reference string
	message   string
	err       error
}

// clientJobsModel tracks the client's in-flight jobs. Completed jobs can be
// paid: the checkout provider runs the payment widget, then the backend is
// told the reference so it can mark the job paid and record the earning.
type clientJobsModel struct {
	api      *client.Client
	provider checkout.Provider
	state    clientJobsState

	jobs     []domain.Job
	cursor   int
	expanded bool

	lastReference string

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newClientJobsModel(api *client.Client, provider checkout.Provider) clientJobsModel {
	return clientJobsModel{api: api, provider: provider}
}

func (m clientJobsModel) refresh() (clientJobsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		jobs, err := api.ActiveJobs(context.Background())
		return clientJobsMsg{gen: gen, jobs: jobs, err: err}
	}
}

func (m clientJobsModel) Update(msg tea.Msg) (clientJobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case clientJobsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.jobs, m.err = msg.jobs, msg.err
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon an unconfirmed pay.
		// An in-flight checkout keeps its captured job and is left alone.
		if m.state == cjPayConfirm {
			m.state = cjBrowsing
		}
		return m, nil
	case payResultMsg:
		m.state = cjBrowsing
		if msg.err != nil {
			m.status = client.Message(msg.err, "payment failed")
			return m, nil
		}
		m.lastReference = msg.reference
		m.status = msg.message + "  ref " + msg.reference
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m clientJobsModel) handleKey(key string) (clientJobsModel, tea.Cmd) {
	switch m.state {
	case cjPayConfirm:
		switch key {
		case "y":
			job := m.jobs[m.cursor]
			m.state = cjPaying
			m.status = "waiting for payment page..."
			api := m.api
			provider := m.provider
			return m, func() tea.Msg {
				// Checkout amounts are in paise.
				order := checkout.NewOrder(job.Budget*100, "INR", job.Title,
					"Payment for "+job.Title)
				if err := provider.Checkout(context.Background(), order); err != nil {
					return payResultMsg{err: err}
				}
				message, err := api.PayJob(context.Background(), job.ID, order.Reference)
				return payResultMsg{reference: order.Reference, message: message, err: err}
			}
		case "n", "esc":
			m.state = cjBrowsing
		}
		return m, nil
	case cjPaying:
		// A checkout is in flight; ignore input until it resolves.
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.expanded = false
		}
	case "down", "j":
		if m.cursor < len(m.jobs)-1 {
			m.cursor++
			m.expanded = false
		}
	case "enter":
		if len(m.jobs) > 0 {
			m.expanded = !m.expanded
		}
	case "p":
		if len(m.jobs) > 0 && m.jobs[m.cursor].Payable() {
			m.state = cjPayConfirm
			m.status = ""
		}
	case "c":
		ref := m.lastReference
		if ref == "" && len(m.jobs) > 0 {
			ref = m.jobs[m.cursor].PaymentReference
		}
		if ref != "" {
			if err := clipboard.WriteAll(ref); err != nil {
				m.status = "could not copy reference"
			} else {
				m.status = "payment reference copied"
			}
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m clientJobsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Active jobs") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load jobs")) + "\n")
	case len(m.jobs) == 0:
		b.WriteString("  " + dimStyle.Render("no active jobs") + "\n")
	default:
		for i, job := range m.jobs {
			marker := "  "
			titleStyle := normalStyle
			if i == m.cursor {
				marker = accentStyle.Render("▸ ")
				titleStyle = selectedStyle
			}
			b.WriteString("  " + marker + titleStyle.Render(truncStr(job.Title, 56)) + "  " +
				StatusStyle(job.Status).Render(strings.ToUpper(job.Status)) + "\n")
			line := "      " + moneyStyle.Render(formatMoney(job.Budget))
			if job.AssignedFreelancerName != "" {
				line += dimStyle.Render(" · ") + metaStyle.Render(job.AssignedFreelancerName)
			}
			b.WriteString(line + "\n")
			if i == m.cursor && m.expanded {
				for _, l := range strings.Split(truncStr(job.Description, 300), "\n") {
					b.WriteString("      " + dimStyle.Render(l) + "\n")
				}
				for _, f := range job.Files {
					b.WriteString("      " + metaStyle.Render("· "+f) + "\n")
				}
				if job.PaymentReference != "" {
					b.WriteString("      " + dimStyle.Render("ref "+job.PaymentReference) + "\n")
				}
			}
		}
	}

	switch m.state {
	case cjPayConfirm:
		job := m.jobs[m.cursor]
		b.WriteString("\n  " + errorStyle.Render(
			"pay "+formatMoney(job.Budget)+" for this job? (y/n)") + "\n")
	case cjPaying:
		b.WriteString("\n  " + dimStyle.Render("complete the payment in your browser...") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case cjPayConfirm:
		b.WriteString(helpEntry("y", "pay") + "  " + helpEntry("n", "cancel"))
	case cjPaying:
		b.WriteString(dimStyle.Render("waiting for checkout"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("enter", "details") + "  " +
			helpEntry("p", "pay") + "  " + helpEntry("c", "copy ref") + "  " +
			helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
