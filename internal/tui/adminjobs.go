package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// Status filter steps for the admin job browser. Empty means every status.
var jobStatusFilters = []string{"", domain.JobOpen, domain.JobAssigned, domain.JobCompleted, domain.JobPaid}

type adminJobsState int

const (
	ajBrowsing adminJobsState = iota
	ajSearching
	ajDeleting
)

type adminJobsMsg struct {
	gen        int
	jobs       []domain.Job
	totalPages int
	err        error
}

type adminJobActionMsg struct {
	err error
}

// adminJobsModel is the platform-wide job browser. Paid jobs can be purged
// from the admin view once their records are settled.
type adminJobsModel struct {
	api   *client.Client
	state adminJobsState

	jobs     []domain.Job
	cursor   int
	expanded bool

	pager       pager
	statusIdx   int
	search      string
	searchInput string

	loading bool
	err     error
	status  string
	height  int
}

func newAdminJobsModel(api *client.Client) adminJobsModel {
	return adminJobsModel{api: api, pager: newPager()}
}

func (m adminJobsModel) refresh() (adminJobsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	gen := m.pager.begin()
	api := m.api
	page := m.pager.page
	filter := jobStatusFilters[m.statusIdx]
	search := m.search
	return m, func() tea.Msg {
		jobs, totalPages, err := api.AdminJobs(context.Background(), page, filter, search)
		return adminJobsMsg{gen: gen, jobs: jobs, totalPages: totalPages, err: err}
	}
}

func (m adminJobsModel) Update(msg tea.Msg) (adminJobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case adminJobsMsg:
		if m.pager.stale(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.jobs, m.err = msg.jobs, msg.err
		if msg.err == nil {
			m.pager.setTotal(msg.totalPages)
		}
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon a pending delete.
		if m.state == ajDeleting {
			m.state = ajBrowsing
		}
		return m, nil
	case adminJobActionMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "could not delete job")
			return m, nil
		}
		m.status = "job removed"
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m adminJobsModel) handleKey(key string) (adminJobsModel, tea.Cmd) {
	switch m.state {
	case ajSearching:
		switch key {
		case "enter":
			m.state = ajBrowsing
			m.search = strings.TrimSpace(m.searchInput)
			m.pager.resetPage()
			return m.refresh()
		case "esc":
			m.state = ajBrowsing
			m.searchInput = m.search
		default:
			m.searchInput = editRune(m.searchInput, key)
		}
		return m, nil
	case ajDeleting:
		switch key {
		case "y":
			job := m.jobs[m.cursor]
			m.state = ajBrowsing
			m.status = "removing..."
			api := m.api
			return m, func() tea.Msg {
				_, err := api.AdminDeletePaidJob(context.Background(), job.ID)
				return adminJobActionMsg{err: err}
			}
		case "n", "esc":
			m.state = ajBrowsing
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
	case "left", "h":
		if m.pager.prev() {
			return m.refresh()
		}
	case "right", "l":
		if m.pager.next() {
			return m.refresh()
		}
	case "enter":
		if len(m.jobs) > 0 {
			m.expanded = !m.expanded
		}
	case "f":
		m.statusIdx = (m.statusIdx + 1) % len(jobStatusFilters)
		m.pager.resetPage()
		return m.refresh()
	case "/":
		m.state = ajSearching
		m.searchInput = m.search
	case "d":
		if len(m.jobs) > 0 && m.jobs[m.cursor].StatusIs(domain.JobPaid) {
			m.state = ajDeleting
			m.status = ""
		}
	case "c":
		if len(m.jobs) > 0 {
			if err := clipboard.WriteAll(m.jobs[m.cursor].ID); err != nil {
				m.status = "could not copy job id"
			} else {
				m.status = "job id copied"
			}
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m adminJobsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("All jobs") + "\n")

	statusLabel := jobStatusFilters[m.statusIdx]
	if statusLabel == "" {
		statusLabel = "all statuses"
	}
	line := "  " + metaStyle.Render("filter:") + " " + accentStyle.Render(statusLabel)
	if m.state == ajSearching {
		line += "   " + metaStyle.Render("search:") + " " +
			normalStyle.Render(m.searchInput) + accentStyle.Render("█")
	} else if m.search != "" {
		line += "   " + metaStyle.Render("search:") + " " + normalStyle.Render(m.search)
	}
	line += "   " + dimStyle.Render(fmt.Sprintf("page %d/%d", m.pager.page, m.pager.totalPages))
	b.WriteString(line + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load jobs")) + "\n")
	case len(m.jobs) == 0:
		b.WriteString("  " + dimStyle.Render("no jobs match") + "\n")
	default:
		for i, job := range m.jobs {
			marker := "  "
			titleStyle := normalStyle
			if i == m.cursor {
				marker = accentStyle.Render("▸ ")
				titleStyle = selectedStyle
			}
			b.WriteString("  " + marker + titleStyle.Render(truncStr(job.Title, 48)) + "  " +
				StatusStyle(job.Status).Render(strings.ToUpper(job.Status)) + "\n")
			line := "      " + moneyStyle.Render(formatMoney(job.Budget)) +
				dimStyle.Render(" · ") + metaStyle.Render(job.ClientName)
			if job.AssignedFreelancerName != "" {
				line += dimStyle.Render(" → ") + metaStyle.Render(job.AssignedFreelancerName)
			}
			b.WriteString(line + "\n")
			if i == m.cursor && m.expanded {
				for _, l := range strings.Split(truncStr(job.Description, 300), "\n") {
					b.WriteString("      " + dimStyle.Render(l) + "\n")
				}
			}
		}
	}

	if m.state == ajDeleting {
		b.WriteString("\n  " + errorStyle.Render("remove this paid job? (y/n)") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case ajSearching:
		b.WriteString(helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel"))
	case ajDeleting:
		b.WriteString(helpEntry("y", "remove") + "  " + helpEntry("n", "keep"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("←/→", "page") + "  " +
			helpEntry("f", "status") + "  " + helpEntry("/", "search") + "  " +
			helpEntry("d", "remove paid") + "  " + helpEntry("c", "copy id"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
