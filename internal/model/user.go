package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleViewer:
		return true
	}
	return false
}

// Label is the name shown to merchant staff.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Merchant Owner"
	case RoleManager:
		return "Manager"
	case RoleViewer:
		return "Viewer"
	}
	return ""
}

const (
	UserActive   = "active"
	UserInactive = "inactive"
)

type User struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	PhoneNumber   string    `json:"phone_number,omitempty"`
	Role          Role      `json:"role"`
	Status        string    `json:"status"`
	StoreBranches []string  `json:"store_branches"`
	MerchantID    string    `json:"merchant_id,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u User) Active() bool {
	return u.Status == UserActive
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
