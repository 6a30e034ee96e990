package constvars

const (
	// Generic messages
	ResponseSuccess = "success"

	// Auth messages
	RegisterSuccessMessage       = "account created successfully"
	LoginSuccessMessage          = "successfully login"
	LogoutSuccessMessage         = "successfully logout"
	RefreshSessionSuccessMessage = "session refreshed successfully"
	GetSessionSuccessMessage     = "get session successfully"
	ForgotPasswordSuccessMessage = "password reset email sent, please check your inbox"
	ResetPasswordSuccessMessage  = "password already reset successfully"

	// Patient record messages
	CreatePatientRecordSuccessMessage = "patient record created successfully"
	GetPatientRecordSuccessMessage    = "get patient record successfully"
	GetPatientRecordsSuccessMessage   = "get patient records successfully"
	DeletePatientRecordSuccessMessage = "patient record deleted successfully"
	PrintPatientSlipSuccessMessage    = "patient slip archived successfully"
)
