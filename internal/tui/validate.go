package tui

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/workdlabs/workd/pkg/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// firstViolation returns the first failing field name, or "" if err carries
// no validator details.
func firstViolation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

type loginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=4"`
}

// check validates the form locally, returning a user-facing message or ""
// when the form may be submitted.
func (f loginForm) check() string {
	if f.Email == "" || f.Password == "" {
		return "All fields are required"
	}
	if err := validate.Struct(f); err != nil {
		switch firstViolation(err) {
		case "Email":
			return "Invalid email format"
		case "Password":
			return "Password must be at least 4 characters"
		}
		return "Invalid input"
	}
	return ""
}

type registerForm struct {
	Name       string `validate:"required,min=3"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,min=4"`
	Role       string `validate:"required,oneof=client freelancer"`
	Skills     string
	Experience string
}

func (f registerForm) check() string {
	if f.Name == "" || f.Email == "" || f.Password == "" || f.Role == "" {
		return "All fields are required"
	}
	if err := validate.Struct(f); err != nil {
		switch firstViolation(err) {
		case "Name":
			return "Name must be at least 3 characters"
		case "Email":
			return "Invalid email format"
		case "Password":
			return "Password must be at least 4 characters"
		case "Role":
			return "Select a role"
		}
		return "Invalid input"
	}
	if f.Role == string(domain.RoleFreelancer) && (f.Skills == "" || f.Experience == "") {
		return "Experience and Skills are required for freelancers"
	}
	return ""
}

type postJobForm struct {
	Title       string `validate:"required,min=5"`
	Description string `validate:"required,min=20"`
	Budget      string
	Deadline    string
}

// budgetValue parses the budget input. Returns 0 when it is not a positive
// whole number.
func (f postJobForm) budgetValue() int64 {
	n, err := strconv.ParseInt(f.Budget, 10, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func (f postJobForm) check(now time.Time) string {
	if f.Title == "" || f.Description == "" || f.Budget == "" || f.Deadline == "" {
		return "All fields are required"
	}
	if err := validate.Struct(f); err != nil {
		switch firstViolation(err) {
		case "Title":
			return "Job title must be at least 5 characters"
		case "Description":
			return "Description must be at least 20 characters"
		}
		return "Invalid input"
	}
	if f.budgetValue() <= 0 {
		return "Budget must be a positive number"
	}
	deadline, err := time.ParseInLocation("2006-01-02", f.Deadline, now.Location())
	if err != nil || !deadline.After(now) {
		return "Deadline must be in the future"
	}
	return ""
}
