package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

type myProposalsState int

const (
	mpBrowsing myProposalsState = iota
	mpEditing
	mpWithdrawing
)

type myProposalsMsg struct {
	gen       int
	proposals []domain.MyProposal
	err       error
}

type proposalActionMsg struct {
	message string
	err     error
}

// myProposalsModel lists the freelancer's submitted proposals. Pending
// proposals can be edited or withdrawn; decided ones are read-only.
type myProposalsModel struct {
	api   *client.Client
	state myProposalsState

	proposals []domain.MyProposal
	cursor    int
	expanded  bool

	draft string

	loading bool
	err     error
	status  string
	gen     int
	height  int
}

func newMyProposalsModel(api *client.Client) myProposalsModel {
	return myProposalsModel{api: api}
}

func (m myProposalsModel) refresh() (myProposalsModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	m.gen++
	gen := m.gen
	api := m.api
	return m, func() tea.Msg {
		proposals, err := api.MyProposals(context.Background())
		return myProposalsMsg{gen: gen, proposals: proposals, err: err}
	}
}

func (m myProposalsModel) Update(msg tea.Msg) (myProposalsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case myProposalsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.proposals, m.err = msg.proposals, msg.err
		if m.cursor >= len(m.proposals) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon any pending edit.
		m.state = mpBrowsing
		return m, nil
	case proposalActionMsg:
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

func (m myProposalsModel) handleKey(key string) (myProposalsModel, tea.Cmd) {
	switch m.state {
	case mpEditing:
		switch key {
		case "enter":
			draft := strings.TrimSpace(m.draft)
			if draft == "" {
				m.status = "Proposal message is required"
				return m, nil
			}
			p := m.proposals[m.cursor]
			m.state = mpBrowsing
			m.status = "saving..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.UpdateProposal(context.Background(), p.ID, draft)
				return proposalActionMsg{message: message, err: err}
			}
		case "esc":
			m.state = mpBrowsing
		default:
			m.draft = editRune(m.draft, key)
		}
		return m, nil
	case mpWithdrawing:
		switch key {
		case "y":
			p := m.proposals[m.cursor]
			m.state = mpBrowsing
			m.status = "withdrawing..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.WithdrawProposal(context.Background(), p.ID)
				return proposalActionMsg{message: message, err: err}
			}
		case "n", "esc":
			m.state = mpBrowsing
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
		if m.cursor < len(m.proposals)-1 {
			m.cursor++
			m.expanded = false
		}
	case "enter":
		if len(m.proposals) > 0 {
			m.expanded = !m.expanded
		}
	case "e":
		if len(m.proposals) > 0 && m.proposals[m.cursor].Editable() {
			m.state = mpEditing
			m.draft = m.proposals[m.cursor].Message
			m.status = ""
		}
	case "w":
		if len(m.proposals) > 0 && m.proposals[m.cursor].Editable() {
			m.state = mpWithdrawing
			m.status = ""
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m myProposalsModel) View() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("My proposals") + "\n\n")

	switch {
	case m.loading:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	case m.err != nil:
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load proposals")) + "\n")
	case len(m.proposals) == 0:
		b.WriteString("  " + dimStyle.Render("no proposals yet") + "\n")
	default:
		for i, p := range m.proposals {
			marker := "  "
			titleStyle := normalStyle
			if i == m.cursor {
				marker = accentStyle.Render("▸ ")
				titleStyle = selectedStyle
			}
			b.WriteString("  " + marker + titleStyle.Render(truncStr(p.JobTitle, 56)) + "  " +
				StatusStyle(p.Status).Render(strings.ToUpper(p.Status)) + "\n")
			b.WriteString("      " + metaStyle.Render(p.ClientName) +
				dimStyle.Render(" · "+truncStr(p.Message, 50)) + "\n")
			if i == m.cursor && m.expanded {
				for _, line := range strings.Split(truncStr(p.JobDescription, 300), "\n") {
					b.WriteString("      " + dimStyle.Render(line) + "\n")
				}
			}
		}
	}

	switch m.state {
	case mpEditing:
		b.WriteString("\n  " + sectionHeaderStyle.Render("Edit message") + "\n")
		b.WriteString("  " + inputPromptStyle.Render("> ") +
			normalStyle.Render(m.draft) + accentStyle.Render("█") + "\n")
	case mpWithdrawing:
		b.WriteString("\n  " + errorStyle.Render("withdraw this proposal? (y/n)") + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case mpEditing:
		b.WriteString(helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel"))
	case mpWithdrawing:
		b.WriteString(helpEntry("y", "withdraw") + "  " + helpEntry("n", "keep"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("enter", "details") + "  " +
			helpEntry("e", "edit") + "  " + helpEntry("w", "withdraw") + "  " +
			helpEntry("r", "refresh"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
