package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"    // Can manage users and process requests
	RoleEmployee Role = "EMPLOYEE" // Regular employee
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role

	FirstName   string
	LastName    string
	PhoneNumber *string
	DateOfBirth *time.Time

	EmployeeCode  string
	Department    *string
	Position      *string
	DateOfJoining time.Time

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsAdmin checks if user can manage users and process requests
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
