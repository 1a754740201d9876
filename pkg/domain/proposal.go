package domain

import "strings"

// Proposal statuses.
const (
	ProposalPending  = "pending"
	ProposalAccepted = "accepted"
	ProposalRejected = "rejected"
)

// Proposal is a freelancer's application as nested under a job in the
// client proposal view.
type Proposal struct {
	FreelancerID   string `json:"freelancer_id"`
	FreelancerName string `json:"freelancer_name"`
	Email          string `json:"email,omitempty"`
	Skills         string `json:"skills,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Message        string `json:"message"`
	Status         string `json:"status"`
}

// Pending reports whether the proposal can still be assigned.
func (p Proposal) Pending() bool {
	return strings.EqualFold(p.Status, ProposalPending)
}

// MyProposal is a proposal as seen by the freelancer who sent it.
type MyProposal struct {
	ID             string `json:"id"`
	JobTitle       string `json:"job_title"`
	JobDescription string `json:"job_description"`
	ClientName     string `json:"client_name"`
	Message        string `json:"message"`
	Status         string `json:"status"`
}

// Editable reports whether the freelancer may still edit or withdraw.
func (p MyProposal) Editable() bool {
	return strings.EqualFold(p.Status, ProposalPending)
}
