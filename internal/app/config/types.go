package config

import "time"

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
		SMTP     SMTP
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
	}
)

type InternalConfig struct {
	App      App
	JWT      AppJWT
	Backend  BackendCredentials
	Store    AppStore
	RabbitMQ AppRabbitMQ
	Mailer   AppMailer
}

type App struct {
	Env                                     string
	Port                                    string
	Version                                 string
	Timezone                                string
	EndpointPrefix                          string
	ResetPasswordUrl                        string
	MaxRequests                             int
	MaxTimeRequestsPerSeconds               int
	LoginMaxAttempts                        int
	LoginBlockTimeInMinutes                 int
	ShutdownTimeoutInSeconds                int
	RequestTimeoutInSeconds                 int
	LoginSessionExpiredTimeInHours          int
	ForgotPasswordTokenExpiredTimeInMinutes int
	SessionStreamKeepAlive                  time.Duration
}

type AppJWT struct {
	Secret string
}

type AppStore struct {
	Driver string
}

type AppRabbitMQ struct {
	MailerQueue string
}

type AppMailer struct {
	EmailSenderDomain string
}

// BackendCredentials are the six values that bind a deployment to its
// identity, document and storage backends.
type BackendCredentials struct {
	APIKey            string
	AuthDomain        string
	ProjectID         string
	StorageBucket     string
	MessagingSenderID string
	AppID             string
}
