package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"eqfield":  "must match %s",
	"numeric":  "must be a number",
	"len":      "must be %s characters long",
	"mobile":   "mobile must be a valid 10-digit mobile number",
	"notblank": "is required",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"len":     true,
	"eqfield": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientAuthenticationRequired        = "user not authenticated, please login again"
	ErrClientInvalidAPIKey                 = "invalid API key"
	ErrClientWrongPassword                 = "the password is invalid for the given email"
	ErrClientUserNotFound                  = "no account found for this email"
	ErrClientInvalidEmail                  = "the email address is badly formatted"
	ErrClientWeakPassword                  = "password should be at least 6 characters"
	ErrClientPasswordsDoNotMatch           = "passwords do not match"
	ErrClientEmailAlreadyExists            = "email already used"
	ErrClientResetPasswordTokenInvalid     = "your reset password request is invalid or already expired"
	ErrClientAllFieldsRequired             = "all fields are required"
	ErrClientRecordNotFound                = "record not found"
	ErrClientTooManyRequests               = "too many requests, please try again later"
	ErrClientSubmissionInFlight            = "a submission is already in progress"
)

// Error messages for developers
const (
	ErrDevInvalidInput            = "invalid input"
	ErrDevCannotParseJSON         = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON       = "cannot convert struct or other data types to JSON"
	ErrDevFailedToHashPassword    = "failed to hash password"
	ErrDevInvalidCredentials      = "invalid credentials"
	ErrDevUserNotExists           = "user not exists in our system"
	ErrDevInvalidEmail            = "email does not match the expected format"
	ErrDevWeakPassword            = "password shorter than the minimum length"
	ErrDevPasswordsDoNotMatch     = "passwords do not match"
	ErrDevEmailAlreadyExists      = "email already exists"
	ErrDevSessionRequired         = "operation requires a non-empty user identifier"
	ErrDevRecordNotFound          = "patient record not found in the owner's partition"
	ErrDevCreateHTTPRequest       = "failed to create HTTP request"
	ErrDevSendHTTPRequest         = "failed to send HTTP request"
	ErrDevDecodeHTTPResponse      = "failed to decode HTTP response"
	ErrDevRequestLimitExceeded    = "request limit exceeded"
	ErrDevSubmissionInFlight      = "create requested while a previous submission is still loading"
	ErrDevUnexpectedStatusCode    = "unexpected status code %d from intake API"
	ErrDevSessionStreamNotSupport = "response writer does not support flushing"

	// Validation messages
	ErrDevValidationFailed = "validation failed"

	// Authentication messages
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthResetTokenInvalid     = "reset password token not found or expired"
	ErrDevAPIKeyInvalid             = "API key missing or does not match"

	// Database messages
	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index on database"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData     = "failed to SET data into redis"
	ErrDevRedisGetData     = "failed to GET data from redis"
	ErrDevRedisDeleteData  = "failed to DELETE data from redis"
	ErrDevRedisExpireData  = "failed to EXPIRE data in redis"
	ErrDevRedisPublishData = "failed to PUBLISH data into redis channel %s"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into rabbitmq queue %s"
	ErrDevRabbitMQOpenChannel    = "failed to open rabbitmq channel"

	// SMTP
	ErrDevSMTPSendEmail = "failed to send email via SMTP client hostname %s"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)

const (
	ErrFileLocationUnknown = "file location unknown"
	ErrFunctionNameUnknown = "function name unknown"
)

const (
	ErrEnvParsing          = "Error parsing %s: %v, will use default value"
	ErrEnvMissingOrDefault = "%s is missing or still set to a placeholder value. Update your .env file with the real backend credentials"
)

// Messages shown by the terminal client
const (
	ErrClientEnterEmailFirst       = "please enter your email first"
	ErrClientPatientRecordNotFound = "Patient record not found."
	PromptDeleteRecord             = "Delete this record permanently?"
)
