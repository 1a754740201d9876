package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/internal/checkout"
	"github.com/workdlabs/workd/internal/session"
	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T, loggedInAs domain.Role) (App, *session.Store) {
	t.Helper()
	store := session.NewStore(t.TempDir())
	store.Initialize()
	if loggedInAs != "" {
		id := domain.Identity{ID: "u1", Name: "Test User", Role: loggedInAs}
		if err := store.Login(id, "tok"); err != nil {
			t.Fatal(err)
		}
	}
	api := client.New("http://127.0.0.1:1", "tok", nil)
	return NewApp(api, store, &checkout.Fake{}, nil), store
}

func TestNewAppLoggedOut(t *testing.T) {
	a, _ := newTestApp(t, "")
	if a.view != viewLogin {
		t.Errorf("view = %v, want login", a.view)
	}
}

func TestNewAppRestoresDashboard(t *testing.T) {
	tests := []struct {
		role domain.Role
		want view
	}{
		{domain.RoleAdmin, viewAdmin},
		{domain.RoleClient, viewClient},
		{domain.RoleFreelancer, viewFreelancer},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			a, _ := newTestApp(t, tt.role)
			if a.view != tt.want {
				t.Errorf("view = %v, want %v", a.view, tt.want)
			}
			if a.identity.Name != "Test User" {
				t.Errorf("identity = %+v", a.identity)
			}
		})
	}
}

func TestLoginDispatchByRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want view
	}{
		{"admin", "admin", viewAdmin},
		{"client", "client", viewClient},
		{"freelancer", "freelancer", viewFreelancer},
		{"unknown role falls back to freelancer", "moderator", viewFreelancer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, store := newTestApp(t, "")
			model, cmd := a.Update(loginResultMsg{resp: &client.LoginResponse{
				ID: "u9", Name: "Nu", Role: tt.role, Token: "fresh",
			}})
			got := model.(App)
			if got.view != tt.want {
				t.Errorf("view = %v, want %v", got.view, tt.want)
			}
			if cmd == nil {
				t.Error("entering a dashboard should kick off the stats fetch")
			}
			sess := store.Current()
			if sess == nil || sess.Token != "fresh" {
				t.Errorf("session not persisted: %+v", sess)
			}
		})
	}
}

func TestLoginFailureSurfacesMessage(t *testing.T) {
	a, _ := newTestApp(t, "")
	model, _ := a.Update(loginResultMsg{err: &client.HTTPError{StatusCode: 401, Message: "Invalid credentials"}})
	got := model.(App)
	if got.view != viewLogin {
		t.Errorf("view = %v, want login", got.view)
	}
	if got.login.errMsg != "Invalid credentials" {
		t.Errorf("errMsg = %q", got.login.errMsg)
	}
}

func TestRegisterSuccessReturnsToLogin(t *testing.T) {
	a, _ := newTestApp(t, "")
	a.view = viewRegister
	model, _ := a.Update(registerResultMsg{message: "Account created"})
	got := model.(App)
	if got.view != viewLogin {
		t.Errorf("view = %v, want login", got.view)
	}
	if got.login.notice != "Account created" {
		t.Errorf("notice = %q", got.login.notice)
	}
}

func TestPanelNavigation(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleClient)
	if a.panel != panelStats {
		t.Fatalf("initial panel = %v", a.panel)
	}
	model, cmd := a.Update(key("3"))
	got := model.(App)
	if got.panel != panelSecond {
		t.Errorf("panel = %v, want panelSecond", got.panel)
	}
	if cmd == nil {
		t.Error("activating a panel should start its fetch")
	}

	// Same panel again is a no-op.
	model, cmd = got.Update(key("3"))
	got = model.(App)
	if got.panel != panelSecond || cmd != nil {
		t.Error("re-selecting the active panel should not refetch")
	}
}

func TestPanelNavigationBlockedWhileTyping(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleAdmin)
	a, _ = appOf(a.Update(key("2")))
	a.users.state = auSearching

	model, _ := a.Update(key("3"))
	got := model.(App)
	if got.panel != panelFirst {
		t.Errorf("panel = %v, digits should reach the search box", got.panel)
	}
	if got.users.searchInput != "3" {
		t.Errorf("searchInput = %q, want the digit appended", got.users.searchInput)
	}
}

func TestLogoutConfirm(t *testing.T) {
	a, store := newTestApp(t, domain.RoleFreelancer)

	model, _ := a.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	got := model.(App)
	if !got.confirmLogout {
		t.Fatal("ctrl+l should ask for confirmation")
	}

	// Declining keeps the session.
	model, _ = got.Update(key("n"))
	got = model.(App)
	if got.confirmLogout || got.view != viewFreelancer {
		t.Error("declining should stay on the dashboard")
	}
	if store.Current() == nil {
		t.Error("session should survive a declined logout")
	}

	model, _ = got.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	got = model.(App)
	model, _ = got.Update(key("y"))
	got = model.(App)
	if got.view != viewLogin {
		t.Errorf("view = %v, want login after logout", got.view)
	}
	if store.Current() != nil {
		t.Error("session should be cleared")
	}
}

func TestEnterRedirectsToOwnDashboard(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleClient)
	got, _ := a.enter(viewAdmin)
	if got.view != viewClient {
		t.Errorf("view = %v, a client must land on the client dashboard", got.view)
	}
}

func TestEnterRedirectsToLoginWhenLoggedOut(t *testing.T) {
	a, store := newTestApp(t, domain.RoleClient)
	if err := store.Logout(); err != nil {
		t.Fatal(err)
	}
	got, _ := a.enter(viewClient)
	if got.view != viewLogin {
		t.Errorf("view = %v, want login after the session is cleared", got.view)
	}
}

func TestExactlyOnePanelRendered(t *testing.T) {
	a, _ := newTestApp(t, domain.RoleAdmin)
	for p := panelStats; p < panelCount; p++ {
		a, _ = a.activate(p)
		if a.panel != p {
			t.Errorf("activate(%v) left panel %v", p, a.panel)
		}
		if a.View() == "" {
			t.Errorf("panel %v rendered nothing", p)
		}
	}
}

func appOf(m tea.Model, _ tea.Cmd) (App, tea.Cmd) {
	return m.(App), nil
}
