package tui

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/workdlabs/workd/internal/checkout"
	"github.com/workdlabs/workd/pkg/client"
	"github.com/workdlabs/workd/pkg/domain"
)

var errTest = errors.New("card declined")

func offlineClient() *client.Client {
	return client.New("http://127.0.0.1:1", "tok", nil)
}

func TestRegisterFreelancerWithoutSkillsBlocksSubmit(t *testing.T) {
	m := newRegisterModel(offlineClient())
	m.form.setValue(0, "Ada Lovelace")
	m.form.setValue(1, "ada@example.com")
	m.form.setValue(2, "secret")
	m.form.setValue(3, string(domain.RoleFreelancer))
	// skills and experience left empty

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("validation failure must not produce a network command")
	}
	if m.errMsg != "Experience and Skills are required for freelancers" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
	if m.busy {
		t.Error("model must not be marked busy")
	}
}

func TestLoginValidationBlocksSubmit(t *testing.T) {
	m := newLoginModel(offlineClient())
	m.form.setValue(0, "not-an-email")
	m.form.setValue(1, "secret")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("validation failure must not produce a network command")
	}
	if m.errMsg != "Invalid email format" {
		t.Errorf("errMsg = %q", m.errMsg)
	}
}

func TestFindJobsStaleResponseDiscarded(t *testing.T) {
	m := newFindJobsModel(offlineClient())
	m, _ = m.refresh()
	firstGen := m.gen
	m, _ = m.refresh()

	stale := findJobsMsg{gen: firstGen, jobs: []domain.Job{{ID: "old"}}}
	m, _ = m.Update(stale)
	if !m.loading {
		t.Error("stale response must not clear the loading state")
	}
	if len(m.jobs) != 0 {
		t.Error("stale response must not install its data")
	}

	fresh := findJobsMsg{gen: m.gen, jobs: []domain.Job{{ID: "new"}}}
	m, _ = m.Update(fresh)
	if m.loading || len(m.jobs) != 1 || m.jobs[0].ID != "new" {
		t.Errorf("fresh response not applied: loading=%v jobs=%+v", m.loading, m.jobs)
	}
}

func TestFindJobsBudgetFilterTriggersRefetch(t *testing.T) {
	m := newFindJobsModel(offlineClient())
	before := m.gen
	m, cmd := m.handleKey("b")
	if m.budgetIdx != 1 {
		t.Errorf("budgetIdx = %d, want 1", m.budgetIdx)
	}
	if cmd == nil || m.gen == before {
		t.Error("changing the filter must start a new fetch")
	}
}

func TestClientJobsPayFlow(t *testing.T) {
	var paid map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/pay_job":
			if err := json.NewDecoder(r.Body).Decode(&paid); err != nil {
				t.Errorf("decode pay body: %v", err)
			}
			w.Write([]byte(`{"status":true,"message":"Payment recorded"}`)) //nolint:errcheck
		case "/users/get_my_active_jobs":
			w.Write([]byte(`{"status":true,"jobs":[]}`)) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fake := &checkout.Fake{}
	m := newClientJobsModel(client.New(srv.URL, "tok", nil), fake)
	m.jobs = []domain.Job{{ID: "j1", Title: "Logo design", Budget: 2500, Status: domain.JobCompleted}}

	m, _ = m.handleKey("p")
	if m.state != cjPayConfirm {
		t.Fatalf("state = %v, want confirm", m.state)
	}

	m, cmd := m.handleKey("y")
	if m.state != cjPaying || cmd == nil {
		t.Fatal("confirming must start the checkout command")
	}

	msg := cmd()
	result, ok := msg.(payResultMsg)
	if !ok {
		t.Fatalf("msg = %T", msg)
	}
	if result.err != nil {
		t.Fatalf("pay flow: %v", result.err)
	}
	if len(fake.Orders) != 1 {
		t.Fatalf("orders = %d, want 1", len(fake.Orders))
	}
	if fake.Orders[0].Amount != 250000 {
		t.Errorf("amount = %d paise, want 250000", fake.Orders[0].Amount)
	}
	if result.reference != fake.Orders[0].Reference {
		t.Error("backend must be confirmed with the checkout reference")
	}
	if paid["job_id"] != "j1" || paid["reference"] != result.reference {
		t.Errorf("pay body = %v", paid)
	}

	m, refetch := m.Update(result)
	if m.state != cjBrowsing || refetch == nil {
		t.Error("a successful payment must re-fetch the list")
	}
	if m.lastReference != result.reference {
		t.Errorf("lastReference = %q", m.lastReference)
	}
}

func TestClientJobsPayOnlyWhenCompleted(t *testing.T) {
	m := newClientJobsModel(offlineClient(), &checkout.Fake{})
	m.jobs = []domain.Job{{ID: "j1", Status: domain.JobAssigned}}
	m, _ = m.handleKey("p")
	if m.state != cjBrowsing {
		t.Error("only completed jobs are payable")
	}
}

func TestClientJobsCheckoutFailureDoesNotConfirm(t *testing.T) {
	fake := &checkout.Fake{Err: errTest}
	m := newClientJobsModel(offlineClient(), fake)
	m.jobs = []domain.Job{{ID: "j1", Title: "x", Budget: 100, Status: domain.JobCompleted}}

	m, _ = m.handleKey("p")
	m, cmd := m.handleKey("y")
	result := cmd().(payResultMsg)
	if result.err == nil {
		t.Fatal("widget failure must surface as an error")
	}
	if result.reference != "" {
		t.Error("no reference without a completed checkout")
	}
}

func TestFreelancerJobsCompleteRequiresFiles(t *testing.T) {
	m := newFreelancerJobsModel(offlineClient())
	m.jobs = []domain.Job{{ID: "j1", Status: domain.JobAssigned}}
	m, _ = m.handleKey("x")
	if m.state != flBrowsing {
		t.Error("completing without uploaded files must be refused")
	}

	m.jobs[0].Files = []string{"report.pdf"}
	m, _ = m.handleKey("x")
	if m.state != flCompleting {
		t.Error("completing with files should ask for confirmation")
	}
}

func TestFreelancerJobsDeleteOnlyPaid(t *testing.T) {
	m := newFreelancerJobsModel(offlineClient())
	m.jobs = []domain.Job{{ID: "j1", Status: domain.JobCompleted}}
	m, _ = m.handleKey("d")
	if m.state != flBrowsing {
		t.Error("only paid jobs can be removed")
	}
	m.jobs[0].Status = domain.JobPaid
	m, _ = m.handleKey("d")
	if m.state != flDeleting {
		t.Error("paid job removal should ask for confirmation")
	}
}

func TestAdminUsersSearchResetsPage(t *testing.T) {
	m := newAdminUsersModel(offlineClient())
	m.pager.setTotal(5)
	m.pager.page = 4

	m, _ = m.handleKey("/")
	if m.state != auSearching {
		t.Fatalf("state = %v, want searching", m.state)
	}
	for _, r := range "ada" {
		m, _ = m.handleKey(string(r))
	}
	m, cmd := m.handleKey("enter")
	if m.search != "ada" {
		t.Errorf("search = %q", m.search)
	}
	if m.pager.page != 1 {
		t.Errorf("page = %d, a new search must start on page 1", m.pager.page)
	}
	if cmd == nil {
		t.Error("committing a search must refetch")
	}
}

func TestAdminUsersRoleFilterResetsPage(t *testing.T) {
	m := newAdminUsersModel(offlineClient())
	m.pager.setTotal(5)
	m.pager.page = 3
	m, cmd := m.handleKey("f")
	if m.roleIdx != 1 || m.pager.page != 1 || cmd == nil {
		t.Errorf("roleIdx=%d page=%d cmd=%v", m.roleIdx, m.pager.page, cmd)
	}
}

func TestAdminUsersDeleteTargets(t *testing.T) {
	m := newAdminUsersModel(offlineClient())
	m.users = []domain.User{
		{ID: "u1", Name: "A"},
		{ID: "u2", Name: "B"},
		{ID: "u3", Name: "C", DeletedAt: "2026-01-01"},
	}

	// Nothing marked: the cursor row is the target.
	m.cursor = 1
	if got := m.deleteTargets(); len(got) != 1 || got[0] != "u2" {
		t.Errorf("targets = %v", got)
	}

	// Marked rows win over the cursor; deleted accounts are skipped.
	m.marked["u1"] = true
	m.marked["u3"] = true
	if got := m.deleteTargets(); len(got) != 1 || got[0] != "u1" {
		t.Errorf("targets = %v", got)
	}
}

func TestMyProposalsEditOnlyPending(t *testing.T) {
	m := newMyProposalsModel(offlineClient())
	m.proposals = []domain.MyProposal{{ID: "p1", Status: domain.ProposalAccepted}}
	m, _ = m.handleKey("e")
	if m.state != mpBrowsing {
		t.Error("decided proposals are read-only")
	}
	m.proposals[0].Status = domain.ProposalPending
	m, _ = m.handleKey("e")
	if m.state != mpEditing {
		t.Error("pending proposals should be editable")
	}
}

func TestPostJobValidation(t *testing.T) {
	m := newPostJobModel(offlineClient())
	m.state = pjEditing
	m.form.setValue(0, "Logo")
	m.form.setValue(1, "A fairly long description of the design work required.")
	m.form.setValue(2, "1000")
	m.form.setValue(3, "2099-01-01")

	m, cmd := m.handleKey("enter")
	if cmd != nil {
		t.Fatal("short title must not be submitted")
	}
	if m.errMsg != "Job title must be at least 5 characters" {
		t.Errorf("errMsg = %q", m.errMsg)
	}

	m.form.setValue(0, "Logo design for product launch")
	m, cmd = m.handleKey("enter")
	if cmd == nil || !m.busy {
		t.Error("valid form should submit")
	}
}

func TestAdminUsersRendersRawBackendRole(t *testing.T) {
	m := newAdminUsersModel(offlineClient())
	m.users = []domain.User{{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "moderator"}}
	out := m.View()
	if !strings.Contains(out, "Ada") || !strings.Contains(out, "moderator") {
		t.Errorf("view = %q", out)
	}
}

// A same-generation reload that empties the list must not strand a panel in a
// confirm or input state pointing at rows that no longer exist.

func TestClientJobsReloadDropsPayConfirm(t *testing.T) {
	m := newClientJobsModel(offlineClient(), &checkout.Fake{})
	m.jobs = []domain.Job{{ID: "j1", Title: "Logo design", Budget: 2500, Status: domain.JobCompleted}}
	m, _ = m.handleKey("p")
	if m.state != cjPayConfirm {
		t.Fatalf("state = %v, want confirm", m.state)
	}

	m, _ = m.Update(clientJobsMsg{gen: m.gen, jobs: nil})
	if m.state != cjBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("y")
	if cmd != nil {
		t.Error("no payment may start after the job list was reloaded")
	}
}

func TestFreelancerJobsReloadDropsDeleteConfirm(t *testing.T) {
	m := newFreelancerJobsModel(offlineClient())
	m.jobs = []domain.Job{{ID: "j1", Title: "Logo design", Status: domain.JobPaid}}
	m, _ = m.handleKey("d")
	if m.state != flDeleting {
		t.Fatalf("state = %v, want deleting", m.state)
	}

	m, _ = m.Update(freelancerJobsMsg{gen: m.gen, jobs: nil})
	if m.state != flBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("y")
	if cmd != nil {
		t.Error("no delete may run after the job list was reloaded")
	}
}

func TestFindJobsReloadDropsApply(t *testing.T) {
	m := newFindJobsModel(offlineClient())
	m.jobs = []domain.Job{{ID: "j1", Title: "Logo design", Status: domain.JobOpen}}
	m, _ = m.handleKey("a")
	if m.state != fjApplying {
		t.Fatalf("state = %v, want applying", m.state)
	}

	m, _ = m.Update(findJobsMsg{gen: m.gen, jobs: nil})
	if m.state != fjBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("enter")
	if cmd != nil {
		t.Error("no proposal may be submitted after the job list was reloaded")
	}
}

func TestMyProposalsReloadDropsEdit(t *testing.T) {
	m := newMyProposalsModel(offlineClient())
	m.proposals = []domain.MyProposal{{ID: "p1", Status: domain.ProposalPending, Message: "hi"}}
	m, _ = m.handleKey("e")
	if m.state != mpEditing {
		t.Fatalf("state = %v, want editing", m.state)
	}

	m, _ = m.Update(myProposalsMsg{gen: m.gen, proposals: nil})
	if m.state != mpBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("enter")
	if cmd != nil {
		t.Error("no update may run after the proposal list was reloaded")
	}
}

func TestAdminJobsReloadDropsDeleteConfirm(t *testing.T) {
	m := newAdminJobsModel(offlineClient())
	m.jobs = []domain.Job{{ID: "j1", Title: "Logo design", Status: domain.JobPaid}}
	m, _ = m.handleKey("d")
	if m.state != ajDeleting {
		t.Fatalf("state = %v, want deleting", m.state)
	}

	m, _ = m.Update(adminJobsMsg{gen: m.pager.gen, jobs: nil, totalPages: 1})
	if m.state != ajBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("y")
	if cmd != nil {
		t.Error("no delete may run after the job list was reloaded")
	}
}

func TestAdminUsersReloadDropsDeleteConfirm(t *testing.T) {
	m := newAdminUsersModel(offlineClient())
	m.users = []domain.User{{ID: "u1", Name: "Ada"}}
	m, _ = m.handleKey("d")
	if m.state != auDeleting {
		t.Fatalf("state = %v, want deleting", m.state)
	}

	m, _ = m.Update(adminUsersMsg{gen: m.pager.gen, users: nil, totalPages: 1})
	if m.state != auBrowsing {
		t.Fatalf("state = %v, want browsing after reload", m.state)
	}
	m.View()
	m, cmd := m.handleKey("y")
	if cmd != nil {
		t.Error("no delete may run after the user list was reloaded")
	}
}
