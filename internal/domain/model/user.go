package model

import "time"

// Role separates customers from staff writers.
type Role string

const (
	RoleUser  Role = "user"
	RoleStaff Role = "staff"
)

// User represents a registered customer or staff member.
type User struct {
	ID                int64
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Phone             string
	City              string
	Country           string
	ProfessionalTitle string
	AvatarURL         string
	Role              Role
	CreatedAt         time.Time
}

// IsStaff reports whether user may manage all orders.
func (u *User) IsStaff() bool {
	return u.Role == RoleStaff
}

// ProfileUpdate carries editable profile fields.
type ProfileUpdate struct {
	FirstName         string
	LastName          string
	Phone             string
	City              string
	Country           string
	ProfessionalTitle string
}

// Apply copies update into the user.
func (p ProfileUpdate) Apply(u *User) {
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Phone = p.Phone
	u.City = p.City
	u.Country = p.Country
	u.ProfessionalTitle = p.ProfessionalTitle
}

// Registration holds sign-up data.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}
