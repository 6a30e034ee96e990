package session

import (
	"testing"

	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHub_Dispatch(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)

	userA, cancelA := hub.Subscribe("user-a")
	defer cancelA()
	userB, cancelB := hub.Subscribe("user-b")
	defer cancelB()

	hub.Dispatch(models.SessionEvent{Type: constvars.SessionEventLogout, UserID: "user-a", SessionID: "s-1"})

	select {
	case event := <-userA:
		assert.Equal(t, constvars.SessionEventLogout, event.Type)
		assert.Nil(t, event.Session)
	default:
		t.Fatal("user a should receive its own event")
	}

	select {
	case <-userB:
		t.Fatal("user b must not receive user a's event")
	default:
	}
}

func TestHub_CancelClosesChannel(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)

	events, cancel := hub.Subscribe("user-a")
	cancel()
	cancel()

	_, open := <-events
	assert.False(t, open)

	hub.Dispatch(models.SessionEvent{Type: constvars.SessionEventLogin, UserID: "user-a"})
	assert.Empty(t, hub.subscribers)
}

func TestHub_LaggingSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub(zap.NewNop(), nil)

	_, cancel := hub.Subscribe("user-a")
	defer cancel()

	for i := 0; i < subscriberBufferSize*2; i++ {
		hub.Dispatch(models.SessionEvent{Type: constvars.SessionEventRefresh, UserID: "user-a"})
	}
}
