package model

type Role string

const (
	RoleStaff      Role = "staff"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
)

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeEmployee UserType = "employee"
)

// User is the session's view of whoever is signed in. Accounts live in the
// external auth service; the dashboard only reads what the token claims say.
type User struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone,omitempty"`
	Role     Role     `json:"role,omitempty"`
	UserType UserType `json:"user_type"`
	Status   string   `json:"status"`
}

func IsValidRole(role Role) bool {
	switch role {
	case RoleStaff, RoleTechnician, RoleAdmin:
		return true
	default:
		return false
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
