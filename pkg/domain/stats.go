package domain

// AdminStats are the platform-wide counters on the admin home panel.
type AdminStats struct {
	TotalClients     int   `json:"total_clients"`
	TotalFreelancers int   `json:"total_freelancers"`
	JobsPosted       int   `json:"jobs_posted"`
	TotalRevenue     int64 `json:"total_revenue"`
}

// ClientStats are the per-client counters on the client home panel.
type ClientStats struct {
	JobsPosted        int   `json:"jobs_posted"`
	ActiveJobs        int   `json:"active_jobs"`
	ProposalsReceived int   `json:"proposals_received"`
	TotalSpent        int64 `json:"total_spent"`
}

// FreelancerStats are the per-freelancer counters on the freelancer home panel.
type FreelancerStats struct {
	ProposalsSent int   `json:"proposals_sent"`
	ActiveJobs    int   `json:"active_jobs"`
	CompletedJobs int   `json:"completed_jobs"`
	TotalEarned   int64 `json:"total_earned"`
}
