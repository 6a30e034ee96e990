package constvars

const (
	CLIName          = "intakectl"
	CLIEnvPrefix     = "INTAKECTL"
	CLISessionFile   = "session.json"
	CLIDefaultAPIURL = "http://localhost:8080/api/v1"
)

const (
	CLIConfigKeyBaseURL     = "base_url"
	CLIConfigKeyAPIKey      = "api_key"
	CLIConfigKeySessionFile = "session_file"
	CLIConfigKeyDebug       = "debug"
)

const (
	CLIHintForgotPassword = "Forgot your password? Run `intakectl forgot-password --email %s`"
	CLIHintCreateAccount  = "No account for this email yet? Run `intakectl signup --email %s`"
	CLIHintLoginRequired  = "Please log in to continue."
	CLIHintSignInAgain    = "Run `intakectl login` to sign in again."
	CLIHintCheckingAccess = "Checking your session..."
	CLIHintUnknownCommand = "Unknown command %q, showing the dashboard instead."
	CLIHintProvisional    = "The date above comes from this machine and may differ from the saved record."
)
