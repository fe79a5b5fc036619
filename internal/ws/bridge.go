package ws

import (
	"context"
	"encoding/json"

	"github.com/Ativos-Tecnologia/radar-sub000/internal/utils"

	"github.com/redis/go-redis/v9"
)

// The websocket hub lives in the web process, but async imports run in the
// worker process. The bridge carries events across: the worker publishes to
// a Redis channel and the web process forwards everything received on it to
// the hub. Delivery stays fire-and-forget, matching the hub's no-replay
// policy.

const bridgeChannel = "import-events"

type bridgeMessage struct {
	Event    string          `json:"event"`
	ClientID string          `json:"client_id,omitempty"`
	Data     json.RawMessage `json:"data"`
}

// RedisPublisher satisfies the import service's Publisher contract by
// publishing events to the bridge channel instead of local sockets.
type RedisPublisher struct {
	rdb *redis.Client
}

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher {
	return &RedisPublisher{rdb: rdb}
}

func (p *RedisPublisher) Emit(event string, data interface{}) {
	p.publish(bridgeMessage{Event: event, Data: mustMarshal(data)})
}

func (p *RedisPublisher) EmitTo(clientID, event string, data interface{}) {
	p.publish(bridgeMessage{Event: event, ClientID: clientID, Data: mustMarshal(data)})
}

func (p *RedisPublisher) publish(msg bridgeMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := p.rdb.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		utils.GetLogger().WithError(err).Warn("publish import event to bridge")
	}
}

func mustMarshal(data interface{}) json.RawMessage {
	payload, err := json.Marshal(data)
	if err != nil {
		return json.RawMessage(`null`)
	}
	return payload
}

// Forward subscribes to the bridge channel and relays worker-emitted events
// to the local hub until ctx is done. Run it in its own goroutine from the
// web process.
func Forward(ctx context.Context, rdb *redis.Client, hub *Hub) {
	log := utils.GetLogger()
	sub := rdb.Subscribe(ctx, bridgeChannel)
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			var msg bridgeMessage
			if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
				log.WithError(err).Warn("decode bridged import event")
				continue
			}
			if msg.ClientID != "" {
				hub.EmitTo(msg.ClientID, msg.Event, msg.Data)
			} else {
				hub.Emit(msg.Event, msg.Data)
			}
		}
	}
}
