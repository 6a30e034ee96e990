package constvars

// Error classification codes shared by the API and its clients. The values
// follow the identity provider naming the intake frontend was written against.
const (
	AuthCodeWrongPassword           = "auth/wrong-password"
	AuthCodeInvalidCredential       = "auth/invalid-credential"
	AuthCodeInvalidLoginCredentials = "auth/invalid-login-credentials"
	AuthCodeUserNotFound            = "auth/user-not-found"
	AuthCodeInvalidEmail            = "auth/invalid-email"
	AuthCodeWeakPassword            = "auth/weak-password"
	AuthCodePasswordMismatch        = "auth/password-mismatch"
	AuthCodeEmailAlreadyInUse       = "auth/email-already-in-use"
	AuthCodeSessionRequired         = "auth/session-required"
	AuthCodeInvalidResetToken       = "auth/invalid-action-code"
	AuthCodeTooManyRequests         = "auth/too-many-requests"
	AuthCodeInvalidAPIKey           = "auth/invalid-api-key"
	RecordCodeNotFound              = "records/not-found"
	RecordCodeInvalidArgument       = "records/invalid-argument"
	StoreCodeUnavailable            = "store/unavailable"
	RequestCodeDeadlineExceeded     = "request/deadline-exceeded"
	RequestCodeMalformed            = "request/malformed"
)

const (
	JWTClaimSessionID = "session_id"
)

const (
	SessionEventLogin   = "login"
	SessionEventLogout  = "logout"
	SessionEventRefresh = "refresh"
)
