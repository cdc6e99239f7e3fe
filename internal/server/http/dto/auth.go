package dto

// AuthRequest describes email/password payload for signup and login.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
