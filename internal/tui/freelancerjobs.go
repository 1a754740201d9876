package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type freelancerJobsState int

const (
	flBrowsing freelancerJobsState = iota
	flUploading
	flCompleting
	flDeleting
)

type freelancerJobsMsg struct {
	gen  int
	jobs []domain.Job
	err  error
}

type freelancerJobActionMsg struct {
	message string
	err     error
}

// freelancerJobsModel manages jobs assigned to the freelancer through the
// delivery flow: upload work files, mark complete, and clear out paid jobs.
type freelancerJobsModel struct {
	api   *client.Client
	state freelancerJobsState

	jobs     []domain.Job
	cursor   int
	expanded bool

	pathInput string

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newFreelancerJobsModel(api *client.Client) freelancerJobsModel {
	return freelancerJobsModel{api: api}
}

func (m freelancerJobsModel) refresh() (freelancerJobsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		jobs, err := api.AssignedJobs(context.Background())
		return freelancerJobsMsg{gen: gen, jobs: jobs, err: err}
	}
}

func (m freelancerJobsModel) Update(msg tea.Msg) (freelancerJobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case freelancerJobsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.jobs, m.err = msg.jobs, msg.err
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon any pending action.
		m.state = flBrowsing
		return m, nil
	case freelancerJobActionMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "action failed")
			return m, nil
		}
		m.status = orText(msg.message, "done")
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m freelancerJobsModel) handleKey(key string) (freelancerJobsModel, tea.Cmd) {
	switch m.state {
	case flUploading:
		switch key {
		case "enter":
			raw := strings.TrimSpace(m.pathInput)
			if raw == "" {
				m.status = "Enter at least one file path"
				return m, nil
			}
			var paths []string
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					paths = append(paths, p)
				}
			}
			job := m.jobs[m.cursor]
			m.state = flBrowsing
			m.status = "uploading..."
			api := m.api
			replace := len(job.Files) > 0
			return m, func() tea.Msg {
				var message string
				var err error
				if replace {
					message, err = api.UpdateJobFiles(context.Background(), job.ID, paths)
				} else {
					message, err = api.UploadJobFiles(context.Background(), job.ID, paths)
				}
				return freelancerJobActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = flBrowsing
		default:
			m.pathInput = editRune(m.pathInput, key)
		}
		return m, nil
	case flCompleting:
		switch key {
		case "y":
			job := m.jobs[m.cursor]
			m.state = flBrowsing
			m.status = "completing..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.CompleteJob(context.Background(), job.ID)
				return freelancerJobActionMsg{message: message, err: err}
			}
		case "n", "esc":
			m.state = flBrowsing
		}
		return m, nil
	case flDeleting:
		switch key {
		case "y":
			job := m.jobs[m.cursor]
			m.state = flBrowsing
			m.status = "removing..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.FreelancerDeletePaidJob(context.Background(), job.ID)
				return freelancerJobActionMsg{message: message, err: err}
			}
		case "n", "esc":
			m.state = flBrowsing
		}
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
	case "u":
		if len(m.jobs) > 0 && m.jobs[m.cursor].StatusIs(domain.JobAssigned) {
			m.state = flUploading
			m.pathInput = ""
			m.status = ""
		}
	case "x":
		// Completing requires uploaded work files.
		if len(m.jobs) > 0 && m.jobs[m.cursor].StatusIs(domain.JobAssigned) &&
			len(m.jobs[m.cursor].Files) > 0 {
			m.state = flCompleting
			m.status = ""
		}
	case "d":
		if len(m.jobs) > 0 && m.jobs[m.cursor].StatusIs(domain.JobPaid) {
			m.state = flDeleting
			m.status = ""
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m freelancerJobsModel) View() string {
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
			line := "      " + moneyStyle.Render(formatMoney(job.Budget)) +
				dimStyle.Render(" · "+job.ClientName)
			if n := len(job.Files); n > 0 {
				line += dimStyle.Render(" · ") + metaStyle.Render(fmt.Sprintf("%d file(s)", n))
			}
			b.WriteString(line + "\n")
			if i == m.cursor && m.expanded {
				for _, line := range strings.Split(truncStr(job.Description, 300), "\n") {
					b.WriteString("      " + dimStyle.Render(line) + "\n")
				}
				for _, f := range job.Files {
					b.WriteString("      " + metaStyle.Render("· "+f) + "\n")
				}
			}
		}
	}

	switch m.state {
	case flUploading:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Work files (comma separated paths)") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.pathInput) + accentStyle.Render("█") + "\n")
	case flCompleting:
		b.WriteString("\n  " + errorStyle.Render("mark this job as completed? (y/n)") + "\n")
	case flDeleting:
		b.WriteString("\n  " + errorStyle.Render("remove this paid job from your list? (y/n)") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case flUploading:
		b.WriteString(helpEntry("enter", "upload") + "  " + helpEntry("esc", "cancel"))
	case flCompleting:
		b.WriteString(helpEntry("y", "complete") + "  " + helpEntry("n", "keep"))
	case flDeleting:
		b.WriteString(helpEntry("y", "remove") + "  " + helpEntry("n", "keep"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("enter", "details") + "  " +
			helpEntry("u", "upload files") + "  " + helpEntry("x", "complete") + "  " +
			helpEntry("d", "remove paid") + "  " + helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
