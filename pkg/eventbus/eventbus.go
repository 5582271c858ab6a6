// Package eventbus distributes planning-data change notifications over
// redis pub/sub so dashboards and other listeners can react without polling.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/workplan/workplan/pkg/config"
)

type Event struct {
	Type      string          `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// AssignmentEvent notifies listeners (dashboards, caches) that the assignment
// set changed and which entities were recalculated as a result.
type AssignmentEvent struct {
	AssignmentID string `json:"assignment_id"`
	EmployeeID   string `json:"employee_id"`
	ProjectID    string `json:"project_id"`
	Action       string `json:"action"`
}

type RecalcEvent struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Value      int    `json:"value"`
}

type EpicSyncEvent struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

const (
	ChannelAssignment = "wp:events:assignment"
	ChannelRecalc     = "wp:events:recalc"
	ChannelEpic       = "wp:events:epic"
)

// Channels lists every channel the bus publishes on, in the order stream
// consumers subscribe to them.
var Channels = []string{ChannelAssignment, ChannelRecalc, ChannelEpic}

type Bus struct {
	client redis.UniversalClient
}

// Connect dials redis per the config and verifies the connection before
// returning a bus over it.
func Connect(cfg *config.RedisConfig) (*Bus, error) {
	var client redis.UniversalClient

	if cfg.ClusterMode {
		client = redis.NewClusterClient(&redis.ClusterOptions{
			Addrs:    cfg.Addresses,
			Password: cfg.Password,
			PoolSize: cfg.PoolSize,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     cfg.Addresses[0],
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewBus(client), nil
}

func NewBus(client redis.UniversalClient) *Bus {
	return &Bus{client: client}
}

func (b *Bus) Close() error {
	return b.client.Close()
}

func NewEvent(eventType string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		Type:      eventType,
		Timestamp: time.Now().Unix(),
		Data:      data,
	}, nil
}

func (b *Bus) Publish(ctx context.Context, channel string, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, channel, payload).Err()
}

// Subscribe delivers events from the channels until the context is
// cancelled; the returned channel is closed when the subscription ends.
func (b *Bus) Subscribe(ctx context.Context, channels ...string) <-chan *Event {
	sub := b.client.Subscribe(ctx, channels...)
	ch := make(chan *Event, 100)

	go func() {
		defer close(ch)
		for msg := range sub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			ch <- &event
		}
	}()

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()

	return ch
}
