package dto

import (
	"time"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int   `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	Pages      []int `json:"pages"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	RoleLabel     string    `json:"role_label"`
	Status        string    `json:"status"`
	StoreBranches []string  `json:"store_branches"`
	MerchantID    string    `json:"merchant_id,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewUserResponse(u model.User) UserResponse {
	branches := u.StoreBranches
	if branches == nil {
		branches = []string{}
	}
	return UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		Role:          string(u.Role),
		RoleLabel:     u.Role.Label(),
		Status:        u.Status,
		StoreBranches: branches,
		MerchantID:    u.MerchantID,
		Avatar:        u.Avatar,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func NewUserResponses(users []model.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = NewUserResponse(u)
	}
	return out
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type CreateUserResponse struct {
	User UserResponse `json:"user"`
	// TemporaryPassword is set only when the server generated the password.
	TemporaryPassword string `json:"temporary_password,omitempty"`
}

type ResetPasswordResponse struct {
	TemporaryPassword string `json:"temporary_password,omitempty"`
}
