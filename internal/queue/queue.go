package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/config"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// QueueManager publishes staking lifecycle events to a topic exchange
// for external indexers. Publishing is a side effect of committed
// operations: a failed publish is logged and counted, never propagated.
type QueueManager struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url)
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &QueueManager{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
	}, nil
}

func (qm *QueueManager) PushStakePoolCreatedEvent(ctx context.Context, event *types.StakePoolCreatedEvent) error {
	return qm.publish(ctx, types.EventStakePoolCreated, event.EventID, event)
}

func (qm *QueueManager) PushStakeCreatedEvent(ctx context.Context, event *types.StakeCreatedEvent) error {
	return qm.publish(ctx, types.EventStakeCreated, event.EventID, event)
}

func (qm *QueueManager) PushRewardClaimedEvent(ctx context.Context, event *types.RewardClaimedEvent) error {
	return qm.publish(ctx, types.EventRewardClaimed, event.EventID, event)
}

func (qm *QueueManager) publish(ctx context.Context, eventType types.EventTypes, messageID string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	return qm.channel.PublishWithContext(
		ctx,
		qm.exchange,
		eventType.String(), // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   messageID,
			Timestamp:   time.Now(),
			Body:        body,
		},
	)
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	if err := qm.channel.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue channel")
	}
	if err := qm.conn.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close queue connection")
	}
}
