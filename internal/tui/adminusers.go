package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// Role filter steps for the user manager. Empty means all roles.
var userRoleFilters = []string{"", string(domain.RoleClient), string(domain.RoleFreelancer)}

type adminUsersState int

const (
	auBrowsing adminUsersState = iota
	auSearching
	auDeleting
	auActivity
)

type adminUsersMsg struct {
	gen        int
	users      []domain.User
	totalPages int
	err        error
}

type userActivityMsg struct {
	gen  int
	user *domain.User
	err  error
}

type softDeleteMsg struct {
	message string
	err     error
}

// adminUsersModel is the paginated user manager. Deletes are soft: the
// backend keeps the record and the list shows a DELETED marker.
type adminUsersModel struct {
	api   *client.Client
	state adminUsersState

	users  []domain.User
	cursor int
	marked map[string]bool

	pager       pager
	roleIdx     int
	search      string
	searchInput string

	activity *domain.User

	loading bool
	err     error
	status  string
	height  int
}

func newAdminUsersModel(api *client.Client) adminUsersModel {
	return adminUsersModel{api: api, pager: newPager(), marked: map[string]bool{}}
}

func (m adminUsersModel) refresh() (adminUsersModel, tea.Cmd) {
	m.loading = true
	m.err = nil
	gen := m.pager.begin()
	api := m.api
	page := m.pager.page
	role := userRoleFilters[m.roleIdx]
	search := m.search
	return m, func() tea.Msg {
		users, totalPages, err := api.AdminUsers(context.Background(), page, role, search)
		return adminUsersMsg{gen: gen, users: users, totalPages: totalPages, err: err}
	}
}

func (m adminUsersModel) Update(msg tea.Msg) (adminUsersModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case adminUsersMsg:
		if m.pager.stale(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.users, m.err = msg.users, msg.err
		if msg.err == nil {
			m.pager.setTotal(msg.totalPages)
		}
		if m.cursor >= len(m.users) {
			m.cursor = 0
		}
		// A reload can remove or reorder rows; abandon a pending delete.
		if m.state == auDeleting {
			m.state = auBrowsing
		}
		return m, nil
	case userActivityMsg:
		if m.pager.stale(msg.gen) {
			return m, nil
		}
		if msg.err != nil {
			m.state = auBrowsing
			m.status = client.Message(msg.err, "could not load activity")
			return m, nil
		}
		m.activity = msg.user
		return m, nil
	case softDeleteMsg:
		if msg.err != nil {
			m.status = client.Message(msg.err, "could not delete users")
			return m, nil
		}
		m.status = msg.message
		m.marked = map[string]bool{}
		return m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	}
	return m, nil
}

// deleteTargets returns the marked user IDs, or the cursor row when nothing
// is marked. Already-deleted users are never targets.
func (m adminUsersModel) deleteTargets() []string {
	var ids []string
	for _, u := range m.users {
		if m.marked[u.ID] && !u.Deleted() {
			ids = append(ids, u.ID)
		}
	}
	if len(ids) == 0 && len(m.users) > 0 && !m.users[m.cursor].Deleted() {
		ids = append(ids, m.users[m.cursor].ID)
	}
	return ids
}

func (m adminUsersModel) handleKey(key string) (adminUsersModel, tea.Cmd) {
	switch m.state {
	case auSearching:
		switch key {
		case "enter":
			m.state = auBrowsing
			m.search = strings.TrimSpace(m.searchInput)
			m.pager.resetPage()
			return m.refresh()
		case "esc":
			m.state = auBrowsing
			m.searchInput = m.search
		default:
			m.searchInput = editRune(m.searchInput, key)
		}
		return m, nil
	case auDeleting:
		switch key {
		case "y":
			ids := m.deleteTargets()
			m.state = auBrowsing
			m.status = "deleting..."
			api := m.api
			return m, func() tea.Msg {
				message, err := api.SoftDeleteUsers(context.Background(), ids)
				return softDeleteMsg{message: message, err: err}
			}
		case "n", "esc":
			m.state = auBrowsing
		}
		return m, nil
	case auActivity:
		if key == "esc" || key == "enter" || key == "q" {
			m.state = auBrowsing
			m.activity = nil
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.users)-1 {
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
	case "f":
		m.roleIdx = (m.roleIdx + 1) % len(userRoleFilters)
		m.pager.resetPage()
		return m.refresh()
	case "/":
		m.state = auSearching
		m.searchInput = m.search
	case " ", "space":
		if len(m.users) > 0 {
			id := m.users[m.cursor].ID
			m.marked[id] = !m.marked[id]
		}
	case "d":
		if len(m.deleteTargets()) > 0 {
			m.state = auDeleting
			m.status = ""
		}
	case "a":
		if len(m.users) > 0 {
			m.state = auActivity
			m.activity = nil
			gen := m.pager.gen
			api := m.api
			id := m.users[m.cursor].ID
			return m, func() tea.Msg {
				user, err := api.UserActivity(context.Background(), id)
				return userActivityMsg{gen: gen, user: user, err: err}
			}
		}
	case "r":
		return m.refresh()
	}
	return m, nil
}

func (m adminUsersModel) View() string {
	if m.state == auActivity {
		return m.viewActivity()
	}

	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("Manage users") + "\n")

	roleLabel := userRoleFilters[m.roleIdx]
	if roleLabel == "" {
		roleLabel = "all roles"
	}
	line := "  " + metaStyle.Render("filter:") + " " + accentStyle.Render(roleLabel)
	if m.state == auSearching {
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
		b.WriteString("  " + errorStyle.Render(client.Message(m.err, "could not load users")) + "\n")
	case len(m.users) == 0:
		b.WriteString("  " + dimStyle.Render("no users match") + "\n")
	default:
		for i, u := range m.users {
			marker := "  "
			nameStyle := normalStyle
			if i == m.cursor {
				marker = accentStyle.Render("▸ ")
				nameStyle = selectedStyle
			}
			check := dimStyle.Render("[ ]")
			if m.marked[u.ID] {
				check = accentStyle.Render("[x]")
			}
			row := "  " + marker + check + " " + nameStyle.Render(truncStr(u.Name, 28)) + "  " +
				metaStyle.Render(truncStr(u.Email, 28)) + "  " +
				RoleStyle(domain.ParseRole(u.Role)).Render(u.Role)
			if u.Deleted() {
				row += "  " + errorStyle.Render("DELETED")
			}
			b.WriteString(row + "\n")
		}
	}

	if m.state == auDeleting {
		b.WriteString("\n  " + errorStyle.Render(
			fmt.Sprintf("soft-delete %d user(s)? (y/n)", len(m.deleteTargets()))) + "\n")
	}
	if m.status != "" {
		b.WriteString("\n  " + metaStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n  ")
	switch m.state {
	case auSearching:
		b.WriteString(helpEntry("enter", "search") + "  " + helpEntry("esc", "cancel"))
	case auDeleting:
		b.WriteString(helpEntry("y", "delete") + "  " + helpEntry("n", "keep"))
	default:
		b.WriteString(helpEntry("↑/↓", "move") + "  " + helpEntry("←/→", "page") + "  " +
			helpEntry("space", "mark") + "  " + helpEntry("d", "delete") + "  " +
			helpEntry("a", "activity") + "  " + helpEntry("f", "role") + "  " +
			helpEntry("/", "search"))
	}
	b.WriteString("\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}

func (m adminUsersModel) viewActivity() string {
	var b strings.Builder
	b.WriteString("  " + sectionHeaderStyle.Render("User activity") + "\n\n")
	if m.activity == nil {
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
	} else {
		u := m.activity
		b.WriteString(statRow("Name", u.Name))
		b.WriteString(statRow("Email", u.Email))
		b.WriteString(statRow("Role", u.Role))
		b.WriteString(statRow("Joined", u.JoinDate))
		switch domain.ParseRole(u.Role) {
		case domain.RoleClient:
			b.WriteString(statRow("Jobs posted", fmt.Sprintf("%d", u.JobsPosted)))
		default:
			b.WriteString(statRow("Proposals sent", fmt.Sprintf("%d", u.ProposalsSent)))
			b.WriteString(statRow("Completed orders", fmt.Sprintf("%d", u.CompletedOrders)))
		}
		if u.Deleted() {
			b.WriteString("\n  " + errorStyle.Render("account soft-deleted") + "\n")
		}
	}
	b.WriteString("\n  " + helpEntry("esc", "back") + "\n")
	return truncateToHeight(b.String(), m.height-chromeHeight)
}
