package messaging

import (
	"intake-service/internal/app/config"
	"intake-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerURI(t *testing.T) {
	driverConfig := &config.DriverConfig{}
	driverConfig.RabbitMQ.Host = "broker"
	driverConfig.RabbitMQ.Port = "5673"
	driverConfig.RabbitMQ.Username = "intake"
	driverConfig.RabbitMQ.Password = "secret"

	uri, err := brokerURI(driverConfig)
	require.NoError(t, err)
	assert.Equal(t, "broker", uri.Host)
	assert.Equal(t, 5673, uri.Port)
	assert.Equal(t, "intake", uri.Username)

	driverConfig.RabbitMQ.Port = "amqp"
	_, err = brokerURI(driverConfig)
	assert.Error(t, err, "port must be numeric")
}

func TestBrokerConfigNamesTheConnection(t *testing.T) {
	properties := brokerConfig().Properties
	assert.Equal(t, constvars.ConnectionName, properties["connection_name"])
}
