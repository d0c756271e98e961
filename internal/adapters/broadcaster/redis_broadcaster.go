package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"troffee-marketplace-service/internal/ports/outbound"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBroadcaster implements the broadcaster interface using Redis pub/sub.
// Events are addressed to a user; every connected client of that user gets a
// copy through its own local channel.
type RedisBroadcaster struct {
	client         *redis.Client
	subscribers    map[string]chan outbound.Event // clientID -> local channel
	pubsubs        map[string]*redis.PubSub       // clientID -> pubsub instance
	clientsToUsers map[string]map[string]bool     // clientID -> userID -> subscribed
	mu             sync.RWMutex
	ctx            context.Context
	cancel         context.CancelFunc
	logger         zerolog.Logger
}

type RedisBroadcasterParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewBroadcaster(params RedisBroadcasterParams) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	return &RedisBroadcaster{
		client:         params.RedisClient,
		subscribers:    make(map[string]chan outbound.Event),
		pubsubs:        make(map[string]*redis.PubSub),
		clientsToUsers: make(map[string]map[string]bool),
		ctx:            ctx,
		cancel:         cancel,
		logger:         params.Logger.With().Str("component", "redis_broadcaster").Logger(),
	}
}

// channelName returns the Redis channel events for a user are published on
func channelName(userID string) string {
	return fmt.Sprintf("user:%s:events", userID)
}

// Subscribe subscribes a client to events addressed to a user
func (r *RedisBroadcaster) Subscribe(ctx context.Context, userID, clientID string, eventChan chan outbound.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.clientsToUsers[clientID] != nil && r.clientsToUsers[clientID][userID] {
		r.logger.Info().
			Str("client_id", clientID).
			Str("user_id", userID).
			Msg("Client already subscribed to user events")
		return nil
	}

	if r.subscribers[clientID] == nil {
		r.subscribers[clientID] = eventChan
	}

	if r.clientsToUsers[clientID] == nil {
		r.clientsToUsers[clientID] = make(map[string]bool)
	}
	r.clientsToUsers[clientID][userID] = true

	// Get or create pubsub connection for this client
	pubsub, exists := r.pubsubs[clientID]
	if !exists {
		pubsub = r.client.Subscribe(ctx)
		r.pubsubs[clientID] = pubsub

		go r.listenForRedisMessages(pubsub, clientID, eventChan)
	}

	if err := pubsub.Subscribe(ctx, channelName(userID)); err != nil {
		r.logger.Error().Err(err).Str("client_id", clientID).Str("user_id", userID).Msg("Failed to subscribe to Redis channel")
		return err
	}

	r.logger.Info().
		Str("client_id", clientID).
		Str("user_id", userID).
		Msg("Client subscribed to user events via Redis")
	return nil
}

// Unsubscribe unsubscribes a client from a user's events
func (r *RedisBroadcaster) Unsubscribe(ctx context.Context, userID, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientUsers, exists := r.clientsToUsers[clientID]
	if exists {
		delete(clientUsers, userID)

		if len(clientUsers) == 0 {
			delete(r.clientsToUsers, clientID)

			// The local channel belongs to the subscriber; drop the
			// reference only
			delete(r.subscribers, clientID)

			if pubsub, ok := r.pubsubs[clientID]; ok {
				if err := pubsub.Close(); err != nil {
					r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
				}
				delete(r.pubsubs, clientID)
			}
		} else {
			if pubsub, ok := r.pubsubs[clientID]; ok {
				if err := pubsub.Unsubscribe(ctx, channelName(userID)); err != nil {
					r.logger.Error().Err(err).Str("client_id", clientID).Str("user_id", userID).Msg("Error unsubscribing from Redis channel")
				}
			}
		}
	}

	r.logger.Info().
		Str("client_id", clientID).
		Str("user_id", userID).
		Msg("Client unsubscribed from user events")
	return nil
}

// Publish publishes an event to all clients subscribed to the user via Redis
func (r *RedisBroadcaster) Publish(ctx context.Context, userID string, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := r.client.Publish(ctx, channelName(userID), eventJSON)
	if err := result.Err(); err != nil {
		r.logger.Error().Err(err).Msg("Failed to publish to Redis")
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}

	r.logger.Info().
		Str("event_type", string(event.Type)).
		Str("user_id", userID).
		Int64("subscriber_count", result.Val()).
		Msg("Published event to user")

	return nil
}

// IsSubscribed checks if a client is subscribed to the user's events
func (r *RedisBroadcaster) IsSubscribed(ctx context.Context, userID, clientID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	clientUsers, exists := r.clientsToUsers[clientID]
	if !exists {
		return false
	}

	return clientUsers[userID]
}

// listenForRedisMessages listens for Redis messages and forwards them to the
// local channel
func (r *RedisBroadcaster) listenForRedisMessages(pubsub *redis.PubSub, clientID string, localChan chan outbound.Event) {
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error().Interface("panic", err).Str("client_id", clientID).Msg("Redis message listener panic for client")
		}
	}()

	ch := pubsub.Channel()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				r.logger.Info().Str("client_id", clientID).Msg("Redis channel closed for client")
				return
			}

			var event outbound.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error().Err(err).Str("client_id", clientID).Msg("Failed to unmarshal Redis message for client")
				continue
			}

			select {
			case localChan <- event:
			default:
				r.logger.Warn().Str("client_id", clientID).Msg("Local channel full for client, dropping event")
			}

		case <-r.ctx.Done():
			r.logger.Info().Str("client_id", clientID).Msg("Redis broadcaster context cancelled for client")
			return
		}
	}
}

// Close shuts down all subscriptions and the underlying Redis client
func (r *RedisBroadcaster) Close() error {
	r.cancel()

	r.mu.Lock()
	defer r.mu.Unlock()

	for clientID := range r.subscribers {
		delete(r.subscribers, clientID)
	}

	for clientID, pubsub := range r.pubsubs {
		if err := pubsub.Close(); err != nil {
			r.logger.Error().Err(err).Str("client_id", clientID).Msg("Error closing Redis pubsub for client")
		}
		delete(r.pubsubs, clientID)
	}

	return r.client.Close()
}
