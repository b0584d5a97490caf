package dto

type RegisterUserRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Name    string `json:"name" validate:"max=255"`
	Address string `json:"address"`
	Gender  string `json:"gender" validate:"max=50"`
	Phone   string `json:"phone" validate:"max=50"`
	Photo   string `json:"photo"`
}

// UpdateProfileRequest carries the allow-listed profile fields. Nil fields
// are left untouched.
type UpdateProfileRequest struct {
	Address *string `json:"address"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Gender  *string `json:"gender" validate:"omitempty,max=50"`
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Photo   *string `json:"photo"`
}

type AdminCheckResponse struct {
	Admin bool `json:"admin"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
