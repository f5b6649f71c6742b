package dto

type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type UserLogin struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type AuthClaims struct {
	UserID uint    `json:"user_id"`
	Email  string  `json:"email"`
	Role   string  `json:"role"`
	JTI    string  `json:"jti"`
	Expiry float64 `json:"expiry"`
}

type DeleteUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}
