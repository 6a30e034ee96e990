package session

import (
	"context"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const subscriberBufferSize = 8

// Hub fans session events received on the redis channel out to the
// subscribers of the affected user. Every API instance runs one hub, so a
// logout handled by one instance reaches streams held open by another.
type Hub struct {
	Log    *zap.Logger
	client *redis.Client

	mu          sync.Mutex
	subscribers map[string]map[chan models.SessionEvent]struct{}

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewHub(log *zap.Logger, client *redis.Client) *Hub {
	return &Hub{
		Log:         log,
		client:      client,
		subscribers: make(map[string]map[chan models.SessionEvent]struct{}),
	}
}

func (h *Hub) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)
	pubsub := h.client.Subscribe(ctx, constvars.RedisChannelSessionEvents)

	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		defer pubsub.Close()

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}
				var event models.SessionEvent
				err := json.Unmarshal([]byte(message.Payload), &event)
				if err != nil {
					h.Log.Warn("Dropping malformed session event", zap.Error(err))
					continue
				}
				h.Dispatch(event)
			}
		}
	}()
}

func (h *Hub) Stop() {
	if h.cancel != nil {
		h.cancel()
	}
	h.wg.Wait()
}

func (h *Hub) Subscribe(userID string) (<-chan models.SessionEvent, func()) {
	events := make(chan models.SessionEvent, subscriberBufferSize)

	h.mu.Lock()
	if h.subscribers[userID] == nil {
		h.subscribers[userID] = make(map[chan models.SessionEvent]struct{})
	}
	h.subscribers[userID][events] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers[userID], events)
			if len(h.subscribers[userID]) == 0 {
				delete(h.subscribers, userID)
			}
			h.mu.Unlock()
			close(events)
		})
	}
	return events, cancel
}

// Dispatch delivers event to every subscriber of its user. A subscriber
// whose buffer is full misses the event rather than stalling the hub.
func (h *Hub) Dispatch(event models.SessionEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for events := range h.subscribers[event.UserID] {
		select {
		case events <- event:
		default:
			h.Log.Warn("Session event subscriber is lagging",
				zap.String(constvars.LoggingUserIDKey, event.UserID),
				zap.String(constvars.LoggingSessionIDKey, event.SessionID),
			)
		}
	}
}
