package tui

import (
	"testing"
	"time"
)

func TestLoginFormCheck(t *testing.T) {
	tests := []struct {
		name string
		form loginForm
		want string
	}{
		{"valid", loginForm{"ada@example.com", "secret"}, ""},
		{"empty email", loginForm{"", "secret"}, "All fields are required"},
		{"empty password", loginForm{"ada@example.com", ""}, "All fields are required"},
		{"bad email", loginForm{"not-an-email", "secret"}, "Invalid email format"},
		{"short password", loginForm{"ada@example.com", "abc"}, "Password must be at least 4 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.form.check(); got != tt.want {
				t.Errorf("check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegisterFormCheck(t *testing.T) {
	valid := registerForm{
		Name: "Ada Lovelace", Email: "ada@example.com", Password: "secret",
		Role: "freelancer", Skills: "Go, SQL", Experience: "5 years",
	}
	tests := []struct {
		name   string
		mutate func(f registerForm) registerForm
		want   string
	}{
		{"valid freelancer", func(f registerForm) registerForm { return f }, ""},
		{"valid client without skills", func(f registerForm) registerForm {
			f.Role = "client"
			f.Skills, f.Experience = "", ""
			return f
		}, ""},
		{"missing name", func(f registerForm) registerForm { f.Name = ""; return f },
			"All fields are required"},
		{"short name", func(f registerForm) registerForm { f.Name = "Al"; return f },
			"Name must be at least 3 characters"},
		{"bad email", func(f registerForm) registerForm { f.Email = "nope"; return f },
			"Invalid email format"},
		{"short password", func(f registerForm) registerForm { f.Password = "abc"; return f },
			"Password must be at least 4 characters"},
		{"freelancer without skills", func(f registerForm) registerForm { f.Skills = ""; return f },
			"Experience and Skills are required for freelancers"},
		{"freelancer without experience", func(f registerForm) registerForm { f.Experience = ""; return f },
			"Experience and Skills are required for freelancers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mutate(valid).check(); got != tt.want {
				t.Errorf("check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostJobFormCheck(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	valid := postJobForm{
		Title:       "Build an API gateway",
		Description: "Design and implement a small API gateway in front of our services.",
		Budget:      "5000",
		Deadline:    "2026-09-15",
	}
	tests := []struct {
		name   string
		mutate func(f postJobForm) postJobForm
		want   string
	}{
		{"valid", func(f postJobForm) postJobForm { return f }, ""},
		{"missing field", func(f postJobForm) postJobForm { f.Deadline = ""; return f },
			"All fields are required"},
		{"short title", func(f postJobForm) postJobForm { f.Title = "API"; return f },
			"Job title must be at least 5 characters"},
		{"short description", func(f postJobForm) postJobForm { f.Description = "too short"; return f },
			"Description must be at least 20 characters"},
		{"budget not a number", func(f postJobForm) postJobForm { f.Budget = "lots"; return f },
			"Budget must be a positive number"},
		{"budget zero", func(f postJobForm) postJobForm { f.Budget = "0"; return f },
			"Budget must be a positive number"},
		{"budget negative", func(f postJobForm) postJobForm { f.Budget = "-50"; return f },
			"Budget must be a positive number"},
		{"deadline in the past", func(f postJobForm) postJobForm { f.Deadline = "2026-07-01"; return f },
			"Deadline must be in the future"},
		{"deadline malformed", func(f postJobForm) postJobForm { f.Deadline = "someday"; return f },
			"Deadline must be in the future"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mutate(valid).check(now); got != tt.want {
				t.Errorf("check() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPostJobFormBudgetValue(t *testing.T) {
	if got := (postJobForm{Budget: "1200"}).budgetValue(); got != 1200 {
		t.Errorf("budgetValue = %d, want 1200", got)
	}
	if got := (postJobForm{Budget: "12.5"}).budgetValue(); got != 0 {
		t.Errorf("budgetValue = %d, want 0 for fractional input", got)
	}
}
