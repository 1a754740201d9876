package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// Budget filter steps for the job browser. The empty value means no cap.
var budgetFilters = []struct {
	value string
	label string
}{
	{"", "any budget"},
	{"1000", "up to ₹1,000"},
	{"5000", "up to ₹5,000"},
	{"10000", "up to ₹10,000"},
	{"50000", "up to ₹50,000"},
}

type findJobsState int

const (
	fjBrowsing findJobsState = iota
	fjSearching
	fjApplying
)

type findJobsMsg struct {
	gen  int
	jobs []domain.Job
	err  error
}

type applyResultMsg struct {
	message string
	err     error
}

type findJobsModel struct {
	api   *client.Client
	state findJobsState

	jobs     []domain.Job
	cursor   int
	expanded bool

	search      string
	searchInput string
	budgetIdx   int

	message string

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newFindJobsModel(api *client.Client) findJobsModel {
	return findJobsModel{api: api}
}

func (m findJobsModel) refresh() (findJobsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	search := m.search
	budget := budgetFilters[m.budgetIdx].value
	return m, func() tea.Msg {
		jobs, err := api.FindJobs(context.Background(), search, budget)
		return findJobsMsg{gen: gen, jobs: jobs, err: err}
	}
}

func (m findJobsModel) Update(msg tea.Msg) (findJobsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case findJobsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.jobs, m.err = msg.jobs, msg.err
		if m.cursor >= len(m.jobs) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon a pending apply.
		if m.state == fjApplying {
			m.state = fjBrowsing
		}
		return m, nil
	case applyResultMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "could not submit proposal")
			return m, nil
		}
		m.status = orText(msg.message, "proposal submitted")
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m findJobsModel) handleKey(key string) (findJobsModel, tea.Cmd) {
	switch m.state {
	case fjSearching:
		switch key {
		case "enter":
			m.state = fjBrowsing
			m.search = strings.TrimSpace(m.searchInput)
			return m.refresh()
		case "esc":
			m.state = fjBrowsing
			m.searchInput = m.search
			return m, nil
		default:
			m.searchInput = editRune(m.searchInput, key)
			return m, nil
		}
	case fjApplying:
		switch key {
		case "enter":
			message := strings.TrimSpace(m.message)
			if message == "" {
				m.status = "Proposal message is required"
				return m, nil
			}
			job := m.jobs[m.cursor]
			m.state = fjBrowsing
			m.status = "submitting proposal..."
			api := m.api
			return m, func() tea.Msg {
				resp, err := api.ApplyJob(context.Background(), job.ID, message)
				return applyResultMsg{message: resp, err: err}
			}
		case "esc":
			m.state = fjBrowsing
			m.message = ""
			return m, nil
		default:
			m.message = editRune(m.message, key)
			return m, nil
		}
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
	case "/":
		m.state = fjSearching
		m.searchInput = m.search
	case "b":
		m.budgetIdx = (m.budgetIdx + 1) % len(budgetFilters)
		return m.refresh()
	case "a":
		if len(m.jobs) > 0 && m.jobs[m.cursor].StatusIs(domain.JobOpen) {
			m.state = fjApplying
			m.message = ""
			m.status = ""
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m findJobsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Find jobs") + "\n")

	filterLine := "  " + metaStyle.Render("filter:") + " " +
		accentStyle.Render(budgetFilters[m.budgetIdx].label)
	if m.state == fjSearching {
		filterLine += "   " + metaStyle.Render("search:") + " " +
			normalStyle.Render(m.searchInput) + accentStyle.Render("█")
	} else if m.search != "" {
		filterLine += "   " + metaStyle.Render("search:") + " " + normalStyle.Render(m.search)
	}
	b.WriteString(filterLine + "\n\n")

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
			b.WriteString("  " + marker + titleStyle.Render(truncStr(job.Title, 60)) + "\n")
			b.WriteString("      " + moneyStyle.Render(formatMoney(job.Budget)) +
				dimStyle.Render(" · due "+job.Deadline+" · ") +
				metaStyle.Render(job.ClientName) + "  " +
				StatusStyle(job.Status).Render(strings.ToUpper(job.Status)) + "\n")
			if i == m.cursor && m.expanded {
				details := job.FullDetails
				if details == "" {
					details = job.Description
				}
				for _, line := range strings.Split(truncStr(details, 400), "\n") {
					b.WriteString("      " + dimStyle.Render(line) + "\n")
				}
			}
		}
	}

	if m.state == fjApplying {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Proposal message") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.message) + accentStyle.Render("█") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case fjApplying:
		b.WriteString(helpEntry("enter", "submit") + "  " + helpEntry("esc", "cancel"))
	case fjSearching:
		b.WriteString(helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("enter", "details") + "  " +
			helpEntry("a", "apply") + "  " + helpEntry("/", "search") + "  " +
			helpEntry("b", "budget") + "  " + helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
