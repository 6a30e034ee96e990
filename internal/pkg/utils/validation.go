package utils

import (
	"intake-service/internal/pkg/constvars"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate          *validator.Validate
	emailRegex        = regexp.MustCompile(constvars.RegexEmail)
	mobileNumberRegex = regexp.MustCompile(constvars.RegexMobileNumber)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("mobile", validateMobileNumber)
	validate.RegisterValidation("notblank", validateNotBlank)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidMobileNumber(mobile string) bool {
	return mobileNumberRegex.MatchString(mobile)
}

func validateMobileNumber(fl validator.FieldLevel) bool {
	return IsValidMobileNumber(fl.Field().String())
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
