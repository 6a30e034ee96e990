package config

import (
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:     utils.GetEnvString("SMTP_HOST", "localhost"),
			Port:     utils.GetEnvInt("SMTP_PORT", 2525),
			Username: utils.GetEnvString("SMTP_USERNAME", ""),
			Password: utils.GetEnvString("SMTP_PASSWORD", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                                     utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                                    utils.GetEnvString("APP_PORT", ":8080"),
			Version:                                 utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                                utils.GetEnvString("APP_TIMEZONE", "Asia/Kolkata"),
			EndpointPrefix:                          utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			ResetPasswordUrl:                        utils.GetEnvString("APP_RESET_PASSWORD_URL", "/reset-password?token="),
			MaxRequests:                             utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:               utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			LoginMaxAttempts:                        utils.GetEnvInt("APP_LOGIN_MAX_ATTEMPTS", 5),
			LoginBlockTimeInMinutes:                 utils.GetEnvInt("APP_LOGIN_BLOCK_TIME_IN_MINUTES", 5),
			ShutdownTimeoutInSeconds:                utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:                 utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			LoginSessionExpiredTimeInHours:          utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			ForgotPasswordTokenExpiredTimeInMinutes: utils.GetEnvInt("APP_FORGOT_PASSWORD_TOKEN_EXPIRED_TIME_IN_MINUTES", 15),
			SessionStreamKeepAlive:                  utils.GetEnvDuration("APP_SESSION_STREAM_KEEP_ALIVE", 25*time.Second),
		},
		JWT: AppJWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Backend: NewBackendCredentials(),
		Store: AppStore{
			Driver: utils.GetEnvString("STORE_DRIVER", constvars.StoreDriverMongo),
		},
		RabbitMQ: AppRabbitMQ{
			MailerQueue: utils.GetEnvString("APP_RABBITMQ_MAILER_QUEUE", "intake_mailer"),
		},
		Mailer: AppMailer{
			EmailSenderDomain: utils.GetEnvString("APP_MAILER_EMAIL_SENDER_DOMAIN", "mail.intake.local"),
		},
	}
}
