package exceptions

import (
	"fmt"
	"intake-service/internal/pkg/constvars"
)

// Request and input errors
var (
	ErrCannotParseJSON = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.RequestCodeMalformed, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrInputValidation = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.RecordCodeInvalidArgument, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrAllFieldsRequired = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.RecordCodeInvalidArgument, constvars.ErrClientAllFieldsRequired, constvars.ErrDevValidationFailed)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return build(2, err, constvars.StatusGatewayTimeout, constvars.RequestCodeDeadlineExceeded, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return build(2, err, constvars.StatusTooManyRequests, constvars.AuthCodeTooManyRequests, constvars.ErrClientTooManyRequests, constvars.ErrDevRequestLimitExceeded)
	}
	ErrSubmissionInFlight = func(err error) *CustomError {
		return build(2, err, constvars.StatusConflict, "", constvars.ErrClientSubmissionInFlight, constvars.ErrDevSubmissionInFlight)
	}
)

// Identity errors
var (
	ErrAuthenticationRequired = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeSessionRequired, constvars.ErrClientAuthenticationRequired, constvars.ErrDevSessionRequired)
	}
	ErrInvalidCredentials = func(err error, code string) *CustomError {
		clientMessage := constvars.ErrClientWrongPassword
		switch code {
		case constvars.AuthCodeUserNotFound:
			clientMessage = constvars.ErrClientUserNotFound
		case constvars.AuthCodeInvalidEmail:
			clientMessage = constvars.ErrClientInvalidEmail
		}
		return build(2, err, constvars.StatusUnauthorized, code, clientMessage, constvars.ErrDevInvalidCredentials)
	}
	ErrEmailRequired = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.RequestCodeMalformed, constvars.ErrClientEnterEmailFirst, constvars.ErrDevInvalidEmail)
	}
	ErrWeakPassword = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.AuthCodeWeakPassword, constvars.ErrClientWeakPassword, constvars.ErrDevWeakPassword)
	}
	ErrPasswordMismatch = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadRequest, constvars.AuthCodePasswordMismatch, constvars.ErrClientPasswordsDoNotMatch, constvars.ErrDevPasswordsDoNotMatch)
	}
	ErrEmailAlreadyExist = func(err error) *CustomError {
		return build(2, err, constvars.StatusConflict, constvars.AuthCodeEmailAlreadyInUse, constvars.ErrClientEmailAlreadyExists, constvars.ErrDevEmailAlreadyExists)
	}
	ErrUserNotExist = func(err error) *CustomError {
		return build(2, err, constvars.StatusNotFound, constvars.AuthCodeUserNotFound, constvars.ErrClientUserNotFound, constvars.ErrDevUserNotExists)
	}
	ErrHashPassword = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevFailedToHashPassword)
	}
	ErrTokenMissing = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeSessionRequired, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrTokenInvalidOrExpired = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeSessionRequired, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalidOrExpired)
	}
	ErrTokenSigningMethod = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeSessionRequired, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthSigningMethod)
	}
	ErrInvalidSession = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeSessionRequired, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthInvalidSession)
	}
	ErrResetTokenInvalid = func(err error) *CustomError {
		return build(2, err, constvars.StatusGone, constvars.AuthCodeInvalidResetToken, constvars.ErrClientResetPasswordTokenInvalid, constvars.ErrDevAuthResetTokenInvalid)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return build(2, err, constvars.StatusUnauthorized, constvars.AuthCodeInvalidAPIKey, constvars.ErrClientInvalidAPIKey, constvars.ErrDevAPIKeyInvalid)
	}
)

// Record errors
var (
	ErrRecordNotFound = func(err error) *CustomError {
		return build(2, err, constvars.StatusNotFound, constvars.RecordCodeNotFound, constvars.ErrClientRecordNotFound, constvars.ErrDevRecordNotFound)
	}
)

// Storage, broker and transport errors
var (
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument)
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument)
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBCreateIndex = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToCreateIndex)
	}
	ErrRedisSet = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisGet = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisGetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisExpire = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpireData)
	}
	ErrRedisPublish = func(err error, channel string) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisPublishData, channel))
	}
	ErrRabbitMQPublishMessage = func(err error, queue string) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queue))
	}
	ErrRabbitMQOpenChannel = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRabbitMQOpenChannel)
	}
	ErrSMTPSendEmail = func(err error, host string) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevSMTPSendEmail, host))
	}
	ErrMinioCreateObject = func(err error, bucket string) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioFailedToCreateObject, bucket))
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return build(2, err, constvars.StatusInternalServerError, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadGateway, constvars.StoreCodeUnavailable, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevSendHTTPRequest)
	}
	ErrDecodeHTTPResponse = func(err error) *CustomError {
		return build(2, err, constvars.StatusBadGateway, "", constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDecodeHTTPResponse)
	}
)
