package mailer

import (
	"intake-service/internal/app/config"

	"gopkg.in/gomail.v2"
)

type SMTPClient struct {
	Host   string
	Port   int
	Dialer *gomail.Dialer
}

func NewSMTPClient(driverConfig *config.DriverConfig) *SMTPClient {
	dialer := gomail.NewDialer(
		driverConfig.SMTP.Host,
		driverConfig.SMTP.Port,
		driverConfig.SMTP.Username,
		driverConfig.SMTP.Password,
	)
	return &SMTPClient{
		Host:   driverConfig.SMTP.Host,
		Port:   driverConfig.SMTP.Port,
		Dialer: dialer,
	}
}
