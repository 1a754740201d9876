package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type earningsState int

const (
	eaBrowsing earningsState = iota
	eaSearching
)

type earningsMsg struct {
	gen        int
	earnings   []domain.Earning
	total      int64
	totalPages int
	err        error
}

// earningsModel is the admin ledger of commission earnings, one row per paid
// job.
type earningsModel struct {
	api   *client.Client
	state earningsState

	earnings []domain.Earning
	total    int64
	cursor   int

	pager       pager
	search      string
	searchInput string

	loading bool
	err     error
	height  int
}

func newEarningsModel(api *client.Client) earningsModel {
	return earningsModel{api: api, pager: newPager()}
}

func (m earningsModel) refresh() (earningsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	gen := m.pager.begin()
	api := m.api
	page := m.pager.page
	search := m.search
	return m, func() tea.Msg {
		earnings, total, totalPages, err := api.Earnings(context.Background(), page, search)
		return earningsMsg{gen: gen, earnings: earnings, total: total, totalPages: totalPages, err: err}
	}
}

func (m earningsModel) Update(msg tea.Msg) (earningsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case earningsMsg:
		if m.pager.stale(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.earnings, m.total, m.err = msg.earnings, msg.total, msg.err
		if msg.err == nil {
			m.pager.setTotal(msg.totalPages)
		}
		if m.cursor >= len(m.earnings) {
			m.cursor = 0
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m earningsModel) handleKey(key string) (earningsModel, tea.Cmd) {
	if m.state == eaSearching {
		switch key {
		case "enter":
			m.state = eaBrowsing
			m.search = strings.TrimSpace(m.searchInput)
			m.pager.resetPage()
			return m.refresh()
		case "esc":
			m.state = eaBrowsing
			m.searchInput = m.search
		default:
			m.searchInput = editRune(m.searchInput, key)
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.earnings)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.pager.prev() {
			return m.refresh()
		}
	case "right", "l":
		if m.pager.next() {
			return m.refresh()
		}
	case "/":
		m.state = eaSearching
		m.searchInput = m.search
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m earningsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Earnings") + "\n")

	line := "  " + metaStyle.Render("total commission:") + " " +
		moneyStyle.Render(formatMoney(m.total))
	if m.state == eaSearching {
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
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load earnings")) + "\n")
	case len(m.earnings) == 0:
		b.WriteString("  " + dimStyle.Render("no earnings recorded") + "\n")
	default:
		for i, e := range m.earnings {
			marker := "  "
			titleStyle := normalStyle
			if i == m.cursor {
				marker = accentStyle.Render("▸ ")
				titleStyle = selectedStyle
			}
			b.WriteString("  " + marker + titleStyle.Render(truncStr(e.JobTitle, 44)) + "  " +
				moneyStyle.Render(formatMoney(e.Commission)) +
				dimStyle.Render(" of "+formatMoney(e.Amount)) + "\n")
			b.WriteString("      " + metaStyle.Render(e.ClientName) +
				dimStyle.Render(" → ") + metaStyle.Render(e.FreelancerName) +
				dimStyle.Render(" · "+e.PaidAt) + "\n")
			if i == m.cursor && e.Reference != "" {
				b.WriteString("      " + dimStyle.Render("ref "+e.Reference) + "\n")
			}
		}
	}

	b.WriteString("\n  ")
	if m.state == eaSearching {
		b.WriteString(helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel"))
	} else {
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("←/→", "page") + "  " +
			helpEntry("/", "search") + "  " + helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
