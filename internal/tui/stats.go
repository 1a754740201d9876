package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// The stats panels are read-only dashboards. Each fetch is tagged with a
// generation so a slow response cannot clobber a newer refresh.

type adminStatsMsg struct {
	gen   int
	stats *domain.AdminStats
	err   error
}

type adminStatsModel struct {
	api     *client.Client
	stats   *domain.AdminStats
	err     error
	loading bool
	gen     int
}

func newAdminStatsModel(api *client.Client) adminStatsModel {
	return adminStatsModel{api: api}
}

func (m adminStatsModel) refresh() (adminStatsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		stats, err := api.GetAdminStats(context.Background())
		return adminStatsMsg{gen: gen, stats: stats, err: err}
	}
}

func (m adminStatsModel) Update(msg tea.Msg) (adminStatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case adminStatsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.stats, m.err = msg.stats, msg.err
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.refresh()
		}
	}
	return m, nil
}

func (m adminStatsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Platform overview") + "\n\n")
	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load stats")) + "\n")
	case m.stats != nil:
		b.WriteString(statRow("Clients", fmt.Sprintf("%d", m.stats.TotalClients)))
		b.WriteString(statRow("Freelancers", fmt.Sprintf("%d", m.stats.TotalFreelancers)))
		b.WriteString(statRow("Jobs posted", fmt.Sprintf("%d", m.stats.JobsPosted)))
		b.WriteString(statRow("Total revenue", formatMoney(m.stats.TotalRevenue)))
	}
	b.WriteString("\n  " + helpEntry("r", "refresh") + "\n")
	return b.String()
}

type clientStatsMsg struct {
	gen   int
	stats *domain.ClientStats
	err   error
}

type clientStatsModel struct {
	api     *client.Client
	stats   *domain.ClientStats
	err     error
	loading bool
	gen     int
}

func newClientStatsModel(api *client.Client) clientStatsModel {
	return clientStatsModel{api: api}
}

func (m clientStatsModel) refresh() (clientStatsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		stats, err := api.GetClientStats(context.Background())
		return clientStatsMsg{gen: gen, stats: stats, err: err}
	}
}

func (m clientStatsModel) Update(msg tea.Msg) (clientStatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case clientStatsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.stats, m.err = msg.stats, msg.err
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.refresh()
		}
	}
	return m, nil
}

func (m clientStatsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Your activity") + "\n\n")
	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load stats")) + "\n")
	case m.stats != nil:
		b.WriteString(statRow("Jobs posted", fmt.Sprintf("%d", m.stats.JobsPosted)))
		b.WriteString(statRow("Active jobs", fmt.Sprintf("%d", m.stats.ActiveJobs)))
		b.WriteString(statRow("Proposals received", fmt.Sprintf("%d", m.stats.ProposalsReceived)))
		b.WriteString(statRow("Total spent", formatMoney(m.stats.TotalSpent)))
	}
	b.WriteString("\n  " + helpEntry("r", "refresh") + "\n")
	return b.String()
}

type freelancerStatsMsg struct {
	gen   int
	stats *domain.FreelancerStats
	err   error
}

type freelancerStatsModel struct {
	api     *client.Client
	stats   *domain.FreelancerStats
	err     error
	loading bool
	gen     int
}

func newFreelancerStatsModel(api *client.Client) freelancerStatsModel {
	return freelancerStatsModel{api: api}
}

func (m freelancerStatsModel) refresh() (freelancerStatsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		stats, err := api.GetFreelancerStats(context.Background())
		return freelancerStatsMsg{gen: gen, stats: stats, err: err}
	}
}

func (m freelancerStatsModel) Update(msg tea.Msg) (freelancerStatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case freelancerStatsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.stats, m.err = msg.stats, msg.err
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.refresh()
		}
	}
	return m, nil
}

func (m freelancerStatsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Your activity") + "\n\n")
	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load stats")) + "\n")
	case m.stats != nil:
		b.WriteString(statRow("Proposals sent", fmt.Sprintf("%d", m.stats.ProposalsSent)))
		b.WriteString(statRow("Active jobs", fmt.Sprintf("%d", m.stats.ActiveJobs)))
		b.WriteString(statRow("Completed jobs", fmt.Sprintf("%d", m.stats.CompletedJobs)))
		b.WriteString(statRow("Total earned", formatMoney(m.stats.TotalEarned)))
	}
	b.WriteString("\n  " + helpEntry("r", "refresh") + "\n")
	return b.String()
}

func statRow(label, value string) string {
	// Pad before styling; ANSI escapes would break %-22s widths.
	return "  " + metaStyle.Render(fmt.Sprintf("%-22s", label)) + " " + selectedStyle.Render(value) + "\n"
}
