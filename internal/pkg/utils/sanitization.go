package utils

import (
	"intake-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterUserRequest(input *requests.RegisterUser) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
}

func SanitizeLoginUserRequest(input *requests.LoginUser) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
}

func SanitizeForgotPasswordRequest(input *requests.ForgotPassword) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
}

func SanitizeResetPasswordRequest(input *requests.ResetPassword) {
	input.Token = strings.TrimSpace(input.Token)
}
