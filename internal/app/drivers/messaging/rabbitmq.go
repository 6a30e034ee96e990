package messaging

import (
	"fmt"
	"intake-service/internal/app/config"
	"intake-service/internal/pkg/constvars"
	"strconv"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// NewRabbitMQ dials the broker that carries the outgoing mail queue. The
// connection is named so it can be told apart in the management UI.
func NewRabbitMQ(driverConfig *config.DriverConfig, log *zap.Logger) *amqp091.Connection {
	address := fmt.Sprintf("%s:%s", driverConfig.RabbitMQ.Host, driverConfig.RabbitMQ.Port)
	uri, err := brokerURI(driverConfig)
	if err != nil {
		log.Fatal("Invalid rabbitMQ port", zap.String(constvars.LoggingAddressKey, address), zap.Error(err))
	}

	conn, err := amqp091.DialConfig(uri.String(), brokerConfig())
	if err != nil {
		log.Fatal("Failed to connect to rabbitMQ", zap.String(constvars.LoggingAddressKey, address), zap.Error(err))
	}
	log.Info("Connected to rabbitMQ", zap.String(constvars.LoggingAddressKey, address))
	return conn
}

func brokerURI(driverConfig *config.DriverConfig) (amqp091.URI, error) {
	port, err := strconv.Atoi(driverConfig.RabbitMQ.Port)
	if err != nil {
		return amqp091.URI{}, err
	}
	return amqp091.URI{
		Scheme:   "amqp",
		Host:     driverConfig.RabbitMQ.Host,
		Port:     port,
		Username: driverConfig.RabbitMQ.Username,
		Password: driverConfig.RabbitMQ.Password,
		Vhost:    "/",
	}, nil
}

func brokerConfig() amqp091.Config {
	properties := amqp091.NewConnectionProperties()
	properties.SetClientConnectionName(constvars.ConnectionName)
	return amqp091.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: properties,
	}
}
