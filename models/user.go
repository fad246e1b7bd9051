package models

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is the store API's user resource as the storefront sees it.
type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	Avatar *string `json:"avatar,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse is what login and register return: the opaque bearer token
// plus the authenticated user.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateProfileRequest struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty" binding:"omitempty,email"`
	Avatar *string `json:"avatar,omitempty"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the admin user-edit payload.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Role  *string `json:"role,omitempty" binding:"omitempty,oneof=admin customer"`
}
