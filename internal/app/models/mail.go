package models

// ResetPasswordData is stored in redis under the reset token id until the
// token is used or expires.
type ResetPasswordData struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
