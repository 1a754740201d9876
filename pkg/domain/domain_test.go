package domain

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"client", RoleClient},
		{"freelancer", RoleFreelancer},
		{"moderator", RoleFreelancer},
		{"", RoleFreelancer},
		{"Admin", RoleFreelancer}, // roles are matched exactly
	}
	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, s := range []string{"admin", "client", "freelancer"} {
		if !Known(s) {
			t.Errorf("Known(%q) = false", s)
		}
	}
	for _, s := range []string{"", "moderator", "ADMIN"} {
		if Known(s) {
			t.Errorf("Known(%q) = true", s)
		}
	}
}

func TestJobStatus(t *testing.T) {
	j := Job{Status: "Completed"}
	if !j.StatusIs(JobCompleted) {
		t.Error("status comparison should ignore case")
	}
	if !j.Payable() {
		t.Error("completed jobs are payable")
	}
	if (Job{Status: JobAssigned}).Payable() {
		t.Error("assigned jobs are not payable")
	}
}

func TestProposalEditable(t *testing.T) {
	if !(MyProposal{Status: "Pending"}).Editable() {
		t.Error("pending proposals are editable")
	}
	if (MyProposal{Status: ProposalAccepted}).Editable() {
		t.Error("accepted proposals are not editable")
	}
}
