// Package tui implements the interactive terminal client: authentication
// screens, one dashboard per role, and the panels inside each dashboard.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/workdlabs/workd/internal/checkout"
	"github.com/workdlabs/workd/internal/session"
	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

// chromeHeight is the number of lines the header and footer consume; panels
// truncate their bodies to fit the rest.
const chromeHeight = 4

type view int

const (
	viewLoading view = iota
	viewLogin
	viewRegister
	viewAdmin
	viewClient
	viewFreelancer
)

// panel identifies the active slot inside a dashboard. Exactly one panel is
// active at any time; what each slot maps to depends on the role.
type panel int

const (
	panelStats panel = iota
	panelFirst
	panelSecond
	panelThird
	panelProfile
	panelCount
)

// App is the root model. It owns the session, routes between views, and
// fans messages out to the active panel.
type App struct {
	api   *client.Client
	store *session.Store
	log   *logrus.Logger

	view          view
	panel         panel
	identity      domain.Identity
	width, height int
	confirmLogout bool

	login    loginModel
	register registerModel

	adminStats adminStatsModel
	users      adminUsersModel
	adminJobs  adminJobsModel
	earnings   earningsModel
	settings   settingsModel

	clientStats     clientStatsModel
	postJob         postJobModel
	clientProposals clientProposalsModel
	clientJobs      clientJobsModel
	clientProfile   profileModel

	freelancerStats   freelancerStatsModel
	findJobs          findJobsModel
	myProposals       myProposalsModel
	freelancerJobs    freelancerJobsModel
	freelancerProfile profileModel
}

// NewApp builds the root model. The store must already be initialized and the
// client's token set from it.
func NewApp(api *client.Client, store *session.Store, provider checkout.Provider, log *logrus.Logger) App {
	a := App{
		api:   api,
		store: store,
		log:   log,

		login:    newLoginModel(api),
		register: newRegisterModel(api),

		adminStats: newAdminStatsModel(api),
		users:      newAdminUsersModel(api),
		adminJobs:  newAdminJobsModel(api),
		earnings:   newEarningsModel(api),
		settings:   newSettingsModel(api),

		clientStats:     newClientStatsModel(api),
		postJob:         newPostJobModel(api),
		clientProposals: newClientProposalsModel(api),
		clientJobs:      newClientJobsModel(api, provider),
		clientProfile:   newProfileModel(api, domain.RoleClient),

		freelancerStats:   newFreelancerStatsModel(api),
		findJobs:          newFindJobsModel(api),
		myProposals:       newMyProposalsModel(api),
		freelancerJobs:    newFreelancerJobsModel(api),
		freelancerProfile: newProfileModel(api, domain.RoleFreelancer),
	}
	a.view = viewLogin
	if sess := store.Current(); sess != nil {
		a.identity = sess.Identity
		a.view = dashboardView(sess.Identity.Role)
	}
	return a
}

// dashboardView maps a role to its dashboard. Unknown roles were already
// normalized by domain.ParseRole, so every role has a home.
func dashboardView(role domain.Role) view {
	switch role {
	case domain.RoleAdmin:
		return viewAdmin
	case domain.RoleClient:
		return viewClient
	default:
		return viewFreelancer
	}
}

// requiredRole is the role a dashboard view demands.
func requiredRole(v view) domain.Role {
	switch v {
	case viewAdmin:
		return domain.RoleAdmin
	case viewClient:
		return domain.RoleClient
	default:
		return domain.RoleFreelancer
	}
}

// startMsg defers the first dashboard fetch into Update, where the returned
// model is kept.
type startMsg struct{}

func (a App) Init() tea.Cmd {
	if a.inDashboard() {
		return func() tea.Msg { return startMsg{} }
	}
	return nil
}

// enter routes to a dashboard through the guard. The decision is recomputed
// on every navigation; a cleared session redirects even mid-flight.
func (a App) enter(target view) (App, tea.Cmd) {
	snap := a.store.Snapshot()
	switch session.Decide(requiredRole(target), snap) {
	case session.Wait:
		a.view = viewLoading
		return a, nil
	case session.RedirectLogin:
		a.view = viewLogin
		return a, nil
	case session.RedirectOwn:
		a.view = dashboardView(snap.Identity.Role)
	case session.Allow:
		a.view = target
	}
	a.identity = *snap.Identity
	return a.activate(panelStats)
}

// activate switches the dashboard to the given panel and kicks off its
// fetch. Switching always refetches, so panels never show another session's
// leftovers.
func (a App) activate(p panel) (App, tea.Cmd) {
	a.panel = p
	var cmd tea.Cmd
	switch a.view {
	case viewAdmin:
		switch p {
		case panelStats:
			a.adminStats, cmd = a.adminStats.refresh()
		case panelFirst:
			a.users, cmd = a.users.refresh()
		case panelSecond:
			a.adminJobs, cmd = a.adminJobs.refresh()
		case panelThird:
			a.earnings, cmd = a.earnings.refresh()
		case panelProfile:
			a.settings, cmd = a.settings.refresh()
		}
	case viewClient:
		switch p {
		case panelStats:
			a.clientStats, cmd = a.clientStats.refresh()
		case panelFirst:
			a.postJob, cmd = a.postJob.refresh()
		case panelSecond:
			a.clientProposals, cmd = a.clientProposals.refresh()
		case panelThird:
			a.clientJobs, cmd = a.clientJobs.refresh()
		case panelProfile:
			a.clientProfile, cmd = a.clientProfile.refresh()
		}
	case viewFreelancer:
		switch p {
		case panelStats:
			a.freelancerStats, cmd = a.freelancerStats.refresh()
		case panelFirst:
			a.findJobs, cmd = a.findJobs.refresh()
		case panelSecond:
			a.myProposals, cmd = a.myProposals.refresh()
		case panelThird:
			a.freelancerJobs, cmd = a.freelancerJobs.refresh()
		case panelProfile:
			a.freelancerProfile, cmd = a.freelancerProfile.refresh()
		}
	}
	return a, cmd
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a.broadcastSize(msg)

	case startMsg:
		return a.enter(a.view)

	case loginResultMsg:
		if msg.err != nil {
			a.login.fail(client.Message(msg.err, "Login failed"))
			return a, nil
		}
		a.login = newLoginModel(a.api)
		resp := msg.resp
		identity := domain.Identity{ID: resp.ID, Name: resp.Name, Role: domain.ParseRole(resp.Role)}
		a.api.SetToken(resp.Token)
		if err := a.store.Login(identity, resp.Token); err != nil && a.log != nil {
			a.log.WithError(err).Warn("session will not survive restart")
		}
		return a.enter(dashboardView(identity.Role))

	case registerResultMsg:
		if msg.err != nil {
			a.register.fail(client.Message(msg.err, "Registration failed"))
			return a, nil
		}
		a.register = newRegisterModel(a.api)
		a.view = viewLogin
		a.login.notice = orText(msg.message, "Account created, sign in")
		return a, nil

	case tea.KeyMsg:
		if model, cmd, handled := a.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	return a.route(msg)
}

// handleGlobalKey processes keys that work regardless of the active panel.
// Returns handled=false for everything that should reach the focused model.
func (a App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	key := msg.String()

	if a.confirmLogout {
		switch key {
		case "y":
			a.confirmLogout = false
			if err := a.store.Logout(); err != nil && a.log != nil {
				a.log.WithError(err).Warn("could not clear persisted session")
			}
			api := a.api
			cmd := func() tea.Msg {
				// Best effort; the local session is gone either way.
				api.Logout(context.Background()) //nolint:errcheck
				api.SetToken("")
				return nil
			}
			a.login = newLoginModel(a.api)
			a.view = viewLogin
			return a, cmd, true
		case "n", "esc":
			a.confirmLogout = false
			return a, nil, true
		}
		return a, nil, true
	}

	switch key {
	case "ctrl+c":
		return a, tea.Quit, true
	case "ctrl+l":
		if a.inDashboard() {
			a.confirmLogout = true
			return a, nil, true
		}
	case "ctrl+r":
		if a.view == viewLogin {
			a.view = viewRegister
			return a, nil, true
		}
	case "esc":
		if a.view == viewRegister && !a.register.busy {
			a.view = viewLogin
			return a, nil, true
		}
	case "1", "2", "3", "4", "5":
		if a.inDashboard() && !a.panelCaptures() {
			target := panel(key[0] - '1')
			if target < panelCount && target != a.panel {
				app, cmd := a.activate(target)
				return app, cmd, true
			}
			return a, nil, true
		}
	}
	return a, nil, false
}

// inDashboard reports whether a role dashboard is active.
func (a App) inDashboard() bool {
	return a.view == viewAdmin || a.view == viewClient || a.view == viewFreelancer
}

// panelCaptures reports whether the active panel is in a text-entry or
// confirm state and should receive every key, including digits.
func (a App) panelCaptures() bool {
	switch a.view {
	case viewAdmin:
		switch a.panel {
		case panelFirst:
			return a.users.state != auBrowsing
		case panelSecond:
			return a.adminJobs.state != ajBrowsing
		case panelThird:
			return a.earnings.state != eaBrowsing
		case panelProfile:
			return a.settings.state != asBrowsing
		}
	case viewClient:
		switch a.panel {
		case panelFirst:
			return a.postJob.state == pjEditing
		case panelSecond:
			return a.clientProposals.state == cpAssigning
		case panelThird:
			return a.clientJobs.state != cjBrowsing
		case panelProfile:
			return a.clientProfile.state != prBrowsing
		}
	case viewFreelancer:
		switch a.panel {
		case panelFirst:
			return a.findJobs.state != fjBrowsing
		case panelSecond:
			return a.myProposals.state != mpBrowsing
		case panelThird:
			return a.freelancerJobs.state != flBrowsing
		case panelProfile:
			return a.freelancerProfile.state != prBrowsing
		}
	}
	return false
}

// broadcastSize forwards the new window size to every panel so inactive ones
// render correctly when activated.
func (a App) broadcastSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.adminStats, _ = a.adminStats.Update(msg)
	a.users, _ = a.users.Update(msg)
	a.adminJobs, _ = a.adminJobs.Update(msg)
	a.earnings, _ = a.earnings.Update(msg)
	a.settings, _ = a.settings.Update(msg)
	a.clientStats, _ = a.clientStats.Update(msg)
	a.postJob, _ = a.postJob.Update(msg)
	a.clientProposals, _ = a.clientProposals.Update(msg)
	a.clientJobs, _ = a.clientJobs.Update(msg)
	a.clientProfile, _ = a.clientProfile.Update(msg)
	a.freelancerStats, _ = a.freelancerStats.Update(msg)
	a.findJobs, _ = a.findJobs.Update(msg)
	a.myProposals, _ = a.myProposals.Update(msg)
	a.freelancerJobs, _ = a.freelancerJobs.Update(msg)
	a.freelancerProfile, _ = a.freelancerProfile.Update(msg)
	return a, nil
}

// route delivers a message to the focused model.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)
	case viewRegister:
		a.register, cmd = a.register.Update(msg)
	case viewAdmin:
		switch a.panel {
		case panelStats:
			a.adminStats, cmd = a.adminStats.Update(msg)
		case panelFirst:
			a.users, cmd = a.users.Update(msg)
		case panelSecond:
			a.adminJobs, cmd = a.adminJobs.Update(msg)
		case panelThird:
			a.earnings, cmd = a.earnings.Update(msg)
		case panelProfile:
			a.settings, cmd = a.settings.Update(msg)
		}
	case viewClient:
		switch a.panel {
		case panelStats:
			a.clientStats, cmd = a.clientStats.Update(msg)
		case panelFirst:
			a.postJob, cmd = a.postJob.Update(msg)
		case panelSecond:
			a.clientProposals, cmd = a.clientProposals.Update(msg)
		case panelThird:
			a.clientJobs, cmd = a.clientJobs.Update(msg)
		case panelProfile:
			a.clientProfile, cmd = a.clientProfile.Update(msg)
		}
	case viewFreelancer:
		switch a.panel {
		case panelStats:
			a.freelancerStats, cmd = a.freelancerStats.Update(msg)
		case panelFirst:
			a.findJobs, cmd = a.findJobs.Update(msg)
		case panelSecond:
			a.myProposals, cmd = a.myProposals.Update(msg)
		case panelThird:
			a.freelancerJobs, cmd = a.freelancerJobs.Update(msg)
		case panelProfile:
			a.freelancerProfile, cmd = a.freelancerProfile.Update(msg)
		}
	}
	return a, cmd
}

// panelLabels returns the tab names for the active dashboard.
func (a App) panelLabels() []string {
	switch a.view {
	case viewAdmin:
		return []string{"stats", "users", "jobs", "earnings", "settings"}
	case viewClient:
		return []string{"stats", "post job", "proposals", "active jobs", "profile"}
	case viewFreelancer:
		return []string{"stats", "find jobs", "my proposals", "active jobs", "profile"}
	}
	return nil
}

func (a App) View() string {
	switch a.view {
	case viewLoading:
		return "\n  " + dimStyle.Render("restoring session...") + "\n"
	case viewLogin:
		return a.login.View()
	case viewRegister:
		return a.register.View()
	}

	var b strings.Builder
	b.WriteString("  " + renderLogo() + "   " +
		normalStyle.Render(a.identity.Name) + " " +
		RoleStyle(a.identity.Role).Render("("+string(a.identity.Role)+")") + "\n")

	var tabs []string
	for i, label := range a.panelLabels() {
		entry := dimStyle.Render(label)
		if panel(i) == a.panel {
			entry = accentStyle.Render(label)
		}
		tabs = append(tabs, accentStyle.Render(string(rune('1'+i)))+" "+entry)
	}
	b.WriteString("  " + strings.Join(tabs, dimStyle.Render("  ·  ")) + "\n\n")

	switch a.view {
	case viewAdmin:
		switch a.panel {
		case panelStats:
			b.WriteString(a.adminStats.View())
		case panelFirst:
			b.WriteString(a.users.View())
		case panelSecond:
			b.WriteString(a.adminJobs.View())
		case panelThird:
			b.WriteString(a.earnings.View())
		case panelProfile:
			b.WriteString(a.settings.View())
		}
	case viewClient:
		switch a.panel {
		case panelStats:
			b.WriteString(a.clientStats.View())
		case panelFirst:
			b.WriteString(a.postJob.View())
		case panelSecond:
			b.WriteString(a.clientProposals.View())
		case panelThird:
			b.WriteString(a.clientJobs.View())
		case panelProfile:
			b.WriteString(a.clientProfile.View())
		}
	case viewFreelancer:
		switch a.panel {
		case panelStats:
			b.WriteString(a.freelancerStats.View())
		case panelFirst:
			b.WriteString(a.findJobs.View())
		case panelSecond:
			b.WriteString(a.myProposals.View())
		case panelThird:
			b.WriteString(a.freelancerJobs.View())
		case panelProfile:
			b.WriteString(a.freelancerProfile.View())
		}
	}

	if a.confirmLogout {
		b.WriteString("\n  " + errorStyle.Render("log out? (y/n)") + "\n")
	} else {
		b.WriteString("\n  " + helpEntry("1-5", "panels") + "  " +
			helpEntry("ctrl+l", "log out") + "  " + helpEntry("ctrl+c", "quit") + "\n")
	}
	return b.String()
}

func orText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
