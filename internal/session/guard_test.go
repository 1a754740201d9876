package session

import (
	"testing"

	"github.com/workdlabs/workd/pkg/domain"
)

func TestDecide(t *testing.T) {
	admin := &domain.Identity{ID: "a1", Name: "Root", Role: domain.RoleAdmin}
	freelancer := &domain.Identity{ID: "f1", Name: "Flo", Role: domain.RoleFreelancer}

	tests := []struct {
		name     string
		required domain.Role
		snap     Snapshot
		want     Decision
	}{
		{"not initialized", domain.RoleClient, Snapshot{}, Wait},
		{"not initialized with identity", domain.RoleAdmin,
			Snapshot{Identity: admin}, Wait},
		{"no session", domain.RoleClient,
			Snapshot{Initialized: true}, RedirectLogin},
		{"wrong role", domain.RoleClient,
			Snapshot{Initialized: true, Identity: admin}, RedirectOwn},
		{"matching admin", domain.RoleAdmin,
			Snapshot{Initialized: true, Identity: admin}, Allow},
		{"matching freelancer", domain.RoleFreelancer,
			Snapshot{Initialized: true, Identity: freelancer}, Allow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.required, tt.snap); got != tt.want {
				t.Errorf("Decide(%s) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestDecideAfterLogout(t *testing.T) {
	s := NewStore(t.TempDir())
	s.Initialize()
	id := domain.Identity{ID: "c1", Name: "Cli", Role: domain.RoleClient}
	if err := s.Login(id, "tok"); err != nil {
		t.Fatal(err)
	}
	if got := Decide(domain.RoleClient, s.Snapshot()); got != Allow {
		t.Fatalf("before logout: got %v, want Allow", got)
	}
	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}
	if got := Decide(domain.RoleClient, s.Snapshot()); got != RedirectLogin {
		t.Fatalf("after logout: got %v, want RedirectLogin", got)
	}
}
