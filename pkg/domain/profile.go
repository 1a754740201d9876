package domain

// Profile is the editable account record shown on the client and
// freelancer profile panels. Skills and Experience are freelancer-only.
type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Skills      string `json:"skills,omitempty"`
	Experience  string `json:"experience,omitempty"`
	MemberSince string `json:"member_since,omitempty"`
}

// AdminSettings is the admin account plus platform-wide settings.
type AdminSettings struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Commission float64 `json:"commission"` // platform cut, percent
}
