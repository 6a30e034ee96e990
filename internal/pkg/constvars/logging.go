package constvars

const (
	LoggingRequestIDKey  = "request_id"
	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingErrorCodeKey  = "error_code"
	LoggingOperationKey  = "operation"
	LoggingUserIDKey     = "user_id"
	LoggingRecordIDKey   = "record_id"
	LoggingSessionIDKey  = "session_id"
	LoggingQueueKey      = "queue"
	LoggingAddressKey    = "address"
)
