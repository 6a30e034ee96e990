package exceptions

import (
	"errors"
	"fmt"
	"intake-service/internal/pkg/constvars"
	"runtime"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	Code          string     `json:"code,omitempty"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	err           error
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.DevMessage, e.err.Error())
	}
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.err
}

// BuildNewCustomError wraps err with the given classification. When err is
// already a CustomError its locations are kept so the error response shows
// the full trail, innermost last.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	return build(2, err, statusCode, "", clientMessage, devMessage)
}

// FromResponse rebuilds an error decoded from an API error body.
func FromResponse(statusCode int, code, clientMessage, devMessage string) *CustomError {
	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
	}
}

func build(skip int, err error, statusCode int, code, clientMessage, devMessage string) *CustomError {
	locations := []Location{getLocation(skip + 1)}

	var inner *CustomError
	if errors.As(err, &inner) {
		locations = append(locations, inner.Locations...)
		if code == "" {
			code = inner.Code
		}
	}

	return &CustomError{
		StatusCode:    statusCode,
		Code:          code,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Locations:     locations,
		err:           err,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ErrFileLocationUnknown,
			Line:         0,
			FunctionName: constvars.ErrFunctionNameUnknown,
		}
	}
	function := constvars.ErrFunctionNameUnknown
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}

// Code returns the classification code carried by err, or an empty string.
func Code(err error) string {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Code
	}
	return ""
}

// Message returns a human-readable message for err that is safe to show to
// the person operating the client.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var customErr *CustomError
	if errors.As(err, &customErr) && customErr.ClientMessage != "" {
		return customErr.ClientMessage
	}
	return err.Error()
}

// OffersPasswordReset reports whether a failed login should point the user to
// the forgot-password flow.
func OffersPasswordReset(err error) bool {
	switch Code(err) {
	case constvars.AuthCodeWrongPassword,
		constvars.AuthCodeInvalidCredential,
		constvars.AuthCodeInvalidLoginCredentials:
		return true
	}
	return false
}

// OffersAccountCreation reports whether a failed login should point the user
// to the sign-up flow.
func OffersAccountCreation(err error) bool {
	switch Code(err) {
	case constvars.AuthCodeUserNotFound, constvars.AuthCodeInvalidEmail:
		return true
	}
	return false
}

func IsNotFound(err error) bool {
	return Code(err) == constvars.RecordCodeNotFound
}

func IsAuthenticationRequired(err error) bool {
	return Code(err) == constvars.AuthCodeSessionRequired
}
