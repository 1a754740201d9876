package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/workdlabs/workd/pkg/domain"
)

var (
	// Base styles, workd teal palette.
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e2e8f0")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cbd5e1"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2dd4bf"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0d9488")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#0d9488"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#475569"))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4a844"))
)

// logo letter colors, dark teal to bright, mirroring the web client's brand.
var logoColors = []string{"#0f766e", "#0d9488", "#14b8a6", "#2dd4bf", "#5eead4"}

// renderLogo renders the W O R K D wordmark with a teal gradient.
func renderLogo() string {
	const text = "WORKD"
	var b strings.Builder
	for i, r := range text {
		style := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(logoColors[i%len(logoColors)]))
		b.WriteString(style.Render(string(r)))
		if i < len(text)-1 {
			b.WriteString("  ")
		}
	}
	return b.String()
}

// RoleStyle returns the accent style for a platform role.
func RoleStyle(role domain.Role) lipgloss.Style {
	switch role {
	case domain.RoleAdmin:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#c084e0"))
	case domain.RoleClient:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa"))
	case domain.RoleFreelancer:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	}
	return dimStyle
}

// StatusStyle returns the badge style for a job or proposal status.
func StatusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case domain.JobOpen:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#60a5fa"))
	case domain.JobAssigned, domain.ProposalPending:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#d4a844"))
	case domain.JobCompleted, domain.ProposalAccepted:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#34d474"))
	case domain.JobPaid:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#2dd4bf"))
	case domain.ProposalRejected:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171"))
	}
	return dimStyle
}

// helpEntry renders a key/label pair for the help bar.
func helpEntry(key, label string) string {
	return accentStyle.Render(key) + " " + dimStyle.Render(label)
}
