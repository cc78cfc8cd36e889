package auth

// RegisterRequest is the registration payload. The username character set
// and length bounds are enforced before any hashing work is spent.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username" example:"new_user"`
	Password string `json:"password" validate:"required,min=6,max=100" example:"password123"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30" example:"new_user"`
	Password string `json:"password" validate:"required,min=1,max=100" example:"password123"`
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	Token string `json:"token" example:"a.very.long.jwt.token.string"`
}
