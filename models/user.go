package models

// Role is the marketplace role a user signed up with. It decides which
// dashboard the user lands on after authentication.
type Role string

const (
	// RoleProjectManager is the administrative role that curates services
	// and assigns engineers to projects.
	RoleProjectManager Role = "project-manager"

	// RoleProjectOwner is a business posting projects and hiring engineers.
	RoleProjectOwner Role = "project-owner"

	// RoleProjectEngineer is an AI engineer looking for work.
	RoleProjectEngineer Role = "project-engineer"
)

// Roles lists every role the backend accepts, in sign-up form order.
var Roles = []Role{RoleProjectManager, RoleProjectOwner, RoleProjectEngineer}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleProjectManager, RoleProjectOwner, RoleProjectEngineer:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// User is a marketplace account as returned by the backend.
// It is created by sign-up and never mutated by the client.
type User struct {
	// ID is the backend identifier. The backend serialises it either as
	// "id" or as "_id"; see [User.UnmarshalJSON].
	ID string `json:"id"`

	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`

	// Role decides the post-login redirect.
	Role Role `json:"userRole"`

	// YearsOfExperience and OpenToRemoteWork are only filled for engineers.
	YearsOfExperience string `json:"yearsOfExperience,omitempty"`
	OpenToRemoteWork  string `json:"openToRemoteWork,omitempty"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// SignUpRequest is the body of POST /users/sign-up.
type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      Role   `json:"userRole" validate:"required,role"`
	Password  string `json:"password" validate:"required,min=6"`

	// ProjectManagerSecret is required by the backend only for the
	// project-manager role. The misspelled JSON name is the backend's.
	ProjectManagerSecret string `json:"projectMangerSecret,omitempty" validate:"required_if=Role project-manager"`

	PhoneNumber       string `json:"phoneNumber,omitempty"`
	YearsOfExperience string `json:"yearsOfExperience,omitempty"`
	OpenToRemoteWork  string `json:"openToRemoteWork,omitempty"`
}

// LoginRequest is the body of POST /users/sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

// UsersResponse wraps GET /users/get-user-by-role/{role}.
type UsersResponse struct {
	Users []User `json:"users"`
}
