package mailer

import (
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/drivers/mailer"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/exceptions"

	"gopkg.in/gomail.v2"
)

type smtpDeliverer struct {
	Client *mailer.SMTPClient
}

func NewSMTPDeliverer(client *mailer.SMTPClient) contracts.EmailDeliverer {
	return &smtpDeliverer{Client: client}
}

func (d *smtpDeliverer) Deliver(request *requests.EmailPayload) error {
	message := gomail.NewMessage()
	message.SetHeader("From", request.From)
	message.SetHeader("To", request.To...)
	message.SetHeader("Subject", request.Subject)
	message.SetBody("text/html", request.HTMLCode)

	err := d.Client.Dialer.DialAndSend(message)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, d.Client.Host)
	}
	return nil
}
