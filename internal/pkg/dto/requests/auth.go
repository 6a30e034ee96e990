package requests

type RegisterUser struct {
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	RetypePassword string `json:"retype_password"`
}

type LoginUser struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required"`
}

type ResetPassword struct {
	Token                   string `json:"token" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required"`
	NewPasswordConfirmation string `json:"new_password_confirmation"`
}
