package domain

// Earning is one paid-job record on the admin earnings dashboard.
type Earning struct {
	ID             string `json:"id"`
	JobTitle       string `json:"job_title"`
	ClientName     string `json:"client_name"`
	FreelancerName string `json:"freelancer_name"`
	Amount         int64  `json:"amount"`
	Commission     int64  `json:"commission"`
	PaidAt         string `json:"paid_at,omitempty"`
	Reference      string `json:"reference,omitempty"`
}
