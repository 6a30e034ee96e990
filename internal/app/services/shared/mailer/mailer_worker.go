package mailer

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/dto/requests"
	"intake-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Worker consumes queued emails and hands them to the SMTP relay.
type Worker struct {
	Log       *zap.Logger
	Deliverer contracts.EmailDeliverer
	Queue     string

	channel *amqp091.Channel
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewWorker(log *zap.Logger, rabbitMQConnection *amqp091.Connection, deliverer contracts.EmailDeliverer, queue string) (*Worker, error) {
	channel, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &Worker{
		Log:       log,
		Deliverer: deliverer,
		Queue:     queue,
		channel:   channel,
	}, nil
}

func (w *Worker) Start(ctx context.Context) error {
	deliveries, err := w.channel.ConsumeWithContext(ctx, w.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.consume(ctx, deliveries)
	}()

	w.Log.Info("Mailer worker started", zap.String(constvars.LoggingQueueKey, w.Queue))
	return nil
}

func (w *Worker) consume(ctx context.Context, deliveries <-chan amqp091.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			w.handle(delivery)
		}
	}
}

func (w *Worker) handle(delivery amqp091.Delivery) {
	payload := new(requests.EmailPayload)
	err := json.Unmarshal(delivery.Body, payload)
	if err != nil {
		w.Log.Error("Dropping malformed email payload",
			zap.String(constvars.LoggingQueueKey, w.Queue),
			zap.Error(err),
		)
		delivery.Nack(false, false)
		return
	}

	err = utils.LogOperation(w.Log, "deliver_email", delivery.MessageId, func() error {
		return w.Deliverer.Deliver(payload)
	})
	if err != nil {
		delivery.Nack(false, false)
		return
	}

	delivery.Ack(false)
	w.Log.Info("Email delivered",
		zap.String(constvars.LoggingQueueKey, w.Queue),
		zap.Strings("to", payload.To),
	)
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.channel.Close()
}
