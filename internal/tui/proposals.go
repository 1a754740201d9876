package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type clientProposalsState int

const (
	cpJobs clientProposalsState = iota
	cpProposals
	cpAssigning
)

type clientProposalsMsg struct {
	gen  int
	jobs []domain.Job
	err  error
}

type assignResultMsg struct {
	err error
}

// clientProposalsModel shows the client's open jobs with their received
// proposals. Drilling into a job lets the client read messages and assign a
// freelancer.
type clientProposalsModel struct {
	api   *client.Client
	state clientProposalsState

	jobs       []domain.Job
	jobCursor  int
	propCursor int

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newClientProposalsModel(api *client.Client) clientProposalsModel {
	return clientProposalsModel{api: api}
}

func (m clientProposalsModel) refresh() (clientProposalsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		jobs, err := api.ClientProposals(context.Background())
		return clientProposalsMsg{gen: gen, jobs: jobs, err: err}
	}
}

func (m clientProposalsModel) Update(msg tea.Msg) (clientProposalsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case clientProposalsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.jobs, m.err = msg.jobs, msg.err
		if m.jobCursor >= len(m.jobs) {
			m.jobCursor = 0
		}
		m.state = cpJobs
		return m, nil
	case assignResultMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "could not assign freelancer")
			return m, nil
		}
		m.status = "freelancer assigned"
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m clientProposalsModel) handleKey(key string) (clientProposalsModel, tea.Cmd) {
	switch m.state {
	case cpProposals:
		props := m.jobs[m.jobCursor].Proposals
		switch key {
		case "up", "k":
			if m.propCursor > 0 {
				m.propCursor--
			}
		case "down", "j":
			if m.propCursor < len(props)-1 {
				m.propCursor++
			}
		case "a":
			if len(props) > 0 && props[m.propCursor].Pending() {
				m.state = cpAssigning
				m.status = ""
			}
		case "esc":
			m.state = cpJobs
		}
		return m, nil
	case cpAssigning:
		switch key {
		case "y":
			job := m.jobs[m.jobCursor]
			freelancer := job.Proposals[m.propCursor]
			m.state = cpProposals
			m.status = "assigning..."
			api := m.api
			return m, func() tea.Msg {
				_, err := api.AssignJob(context.Background(), job.ID, freelancer.FreelancerID)
				return assignResultMsg{err: err}
			}
		case "n", "esc":
			m.state = cpProposals
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.jobCursor > 0 {
			m.jobCursor--
		}
	case "down", "j":
		if m.jobCursor < len(m.jobs)-1 {
			m.jobCursor++
		}
	case "enter":
		if len(m.jobs) > 0 && len(m.jobs[m.jobCursor].Proposals) > 0 {
			m.state = cpProposals
			m.propCursor = 0
			m.status = ""
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m clientProposalsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Proposals received") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load proposals")) + "\n")
	case len(m.jobs) == 0:
		b.WriteString("  " + dimStyle.Render("no proposals yet") + "\n")
	default:
		for i, job := range m.jobs {
			marker := "  "
			titleStyle := normalStyle
			if i == m.jobCursor {
				marker = accentStyle.Render("▸ ")
				titleStyle = selectedStyle
			}
			b.WriteString("  " + marker + titleStyle.Render(truncStr(job.Title, 52)) + "  " +
				metaStyle.Render(fmt.Sprintf("%d proposal(s)", len(job.Proposals))) + "\n")

			if i == m.jobCursor && m.state != cpJobs {
				for pi, p := range job.Proposals {
					pMarker := "    "
					nameStyle := normalStyle
					if pi == m.propCursor {
						pMarker = "  " + accentStyle.Render("▸ ")
						nameStyle = selectedStyle
					}
					b.WriteString("    " + pMarker + nameStyle.Render(p.FreelancerName) + "  " +
						StatusStyle(p.Status).Render(strings.ToUpper(p.Status)) + "\n")
					b.WriteString("        " + dimStyle.Render(truncStr(p.Skills, 60)) + "\n")
					if pi == m.propCursor {
						for _, line := range strings.Split(truncStr(p.Message, 300), "\n") {
							b.WriteString("        " + metaStyle.Render(line) + "\n")
						}
					}
				}
			}
		}
	}

	if m.state == cpAssigning {
		props := m.jobs[m.jobCursor].Proposals
		b.WriteString("\n  " + errorStyle.Render(
			fmt.Sprintf("assign %s to this job? (y/n)", props[m.propCursor].FreelancerName)) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case cpProposals:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("a", "assign") + "  " +
			helpEntry("esc", "back"))
	case cpAssigning:
		b.WriteString(helpEntry("y", "assign") + "  " + helpEntry("n", "cancel"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("enter", "open") + "  " +
			helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
