package dto

// RegisterRequest payload for new users.
type RegisterRequest struct {
	Username        string  `json:"username"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
	Email           string  `json:"email"`
	GitHub          *string `json:"github"`
	Role            string  `json:"role"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshRequest carries a refresh token for redemption.
type RefreshRequest struct {
	Token string `json:"token"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Detail       string `json:"detail"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"role"`
}

// TokenPairResponse is returned on refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
