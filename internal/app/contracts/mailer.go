package contracts

import (
	"context"
	"intake-service/internal/pkg/dto/requests"
)

// MailerService queues an email for delivery by the mail worker.
type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}

// EmailDeliverer hands an email to the SMTP relay.
type EmailDeliverer interface {
	Deliver(request *requests.EmailPayload) error
}
