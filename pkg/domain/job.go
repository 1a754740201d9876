package domain

import "strings"

// Job statuses as reported by the backend. Comparisons are case-insensitive
// because the backend is not consistent about casing.
const (
	JobOpen      = "open"
	JobAssigned  = "assigned"
	JobCompleted = "completed"
	JobPaid      = "paid"
)

// Job is a job posting. Which fields are populated depends on the endpoint:
// listings omit proposals, the client proposal view nests them.
type Job struct {
	ID                     string     `json:"id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	FullDetails            string     `json:"full_details,omitempty"`
	Budget                 int64      `json:"budget"`
	Deadline               string     `json:"deadline,omitempty"`
	Status                 string     `json:"status"`
	ClientName             string     `json:"client_name,omitempty"`
	AssignedFreelancerName string     `json:"assigned_freelancer_name,omitempty"`
	Files                  []string   `json:"files,omitempty"`
	PaymentReference       string     `json:"payment_reference,omitempty"`
	Proposals              []Proposal `json:"proposals,omitempty"`
}

// StatusIs compares the job status case-insensitively.
func (j Job) StatusIs(status string) bool {
	return strings.EqualFold(j.Status, status)
}

// Payable reports whether the client may pay for this job.
func (j Job) Payable() bool {
	return j.StatusIs(JobCompleted)
}
