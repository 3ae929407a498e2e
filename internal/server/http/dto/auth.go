package dto

// AuthRequest describes login/password payload. Role is honoured on
// registration only.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthResponse returns the issued token.
type AuthResponse struct {
	Token string `json:"token"`
}
