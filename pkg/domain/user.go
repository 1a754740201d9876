package domain

// Identity is the client-held record of who is logged in.
// It is persisted verbatim across restarts alongside the credential.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// User is a platform account as seen by the admin user-management panel.
// Role carries the backend's raw value; callers normalize it with ParseRole.
type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Avatar          string `json:"avatar,omitempty"`
	JoinDate        string `json:"join_date,omitempty"`
	JobsPosted      int    `json:"jobs_posted"`
	ProposalsSent   int    `json:"proposals_sent"`
	CompletedOrders int    `json:"completed_orders"`
	DeletedAt       string `json:"deleted_at,omitempty"`
}

// Deleted reports whether the account has been soft-deleted.
func (u User) Deleted() bool {
	return u.DeletedAt != ""
}
