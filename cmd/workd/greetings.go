package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/workdlabs/workd/internal/tui"
	"github.com/workdlabs/workd/pkg/domain"
)

var (
	logoStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0d9488"))
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
	nameStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e2e8f0"))
)

func dimText(s string) string {
	return dimStyle.Render(s)
}

// printGreeting shows who is signed in, roughly matching the dashboard
// header.
func printGreeting(id domain.Identity) {
	letters := strings.Join(strings.Split("WORKD", ""), " ")
	fmt.Println()
	fmt.Println("  " + logoStyle.Render(letters))
	fmt.Println()
	fmt.Println("  " + nameStyle.Render(id.Name) + " " +
		tui.RoleStyle(id.Role).Render("("+string(id.Role)+")"))
	fmt.Println("  " + dimStyle.Render("run `workd` to open your dashboard"))
	fmt.Println()
}

func printLoggedOut() {
	fmt.Println()
	fmt.Println("  " + dimStyle.Render("no active session"))
	fmt.Println("  " + dimStyle.Render("run `workd login` or `workd` to sign in"))
	fmt.Println()
}
