package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	FirstName     string   `json:"first_name" binding:"required,max=100"`
	LastName      string   `json:"last_name" binding:"max=100"`
	Email         string   `json:"email" binding:"required,email,max=255"`
	PhoneNumber   string   `json:"phone_number" binding:"max=32"`
	Role          string   `json:"role" binding:"required,oneof=admin manager viewer"`
	StoreBranches []string `json:"store_branches"`
	// Password is optional; a temporary one is generated when empty.
	Password string `json:"password" binding:"omitempty,min=8"`
}

// UpdateUserRequest changes only the fields that are present.
type UpdateUserRequest struct {
	FirstName     *string   `json:"first_name" binding:"omitempty,max=100"`
	LastName      *string   `json:"last_name" binding:"omitempty,max=100"`
	PhoneNumber   *string   `json:"phone_number" binding:"omitempty,max=32"`
	Role          *string   `json:"role" binding:"omitempty,oneof=admin manager viewer"`
	StoreBranches *[]string `json:"store_branches"`
}

type UserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"omitempty,min=8"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName    *string `json:"last_name" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
	Avatar      *string `json:"avatar" binding:"omitempty,url"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}
