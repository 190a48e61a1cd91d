package dto

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"notblank"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
