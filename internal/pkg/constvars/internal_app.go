package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_API_KEY_AUTH             ContextKey = "api_key_auth"
)

const (
	REQUEST_ID_PREFIX = "INTAKE_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

const (
	DefaultRecentRecordsCount = 10
	MinimumPasswordLength     = 6
)

const (
	SlipTitle             = "Sushrut Automation Slip"
	SlipProvisionalMarker = "(provisional, not yet confirmed by server)"
	SlipDateLayout        = "02 Jan 2006, 15:04:05"
	SlipObjectNameFormat  = "slips/%s/%s.txt"
)
