package services

import (
	"context"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/clients/authclient"
	"github.com/stakelab-io/staking-pool-engine/internal/clients/tokenclient"
	"github.com/stakelab-io/staking-pool-engine/internal/config"
	"github.com/stakelab-io/staking-pool-engine/internal/db"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// EventEmitter publishes committed staking events for external
// indexers. Satisfied by queue.QueueManager.
type EventEmitter interface {
	PushStakePoolCreatedEvent(ctx context.Context, event *types.StakePoolCreatedEvent) error
	PushStakeCreatedEvent(ctx context.Context, event *types.StakeCreatedEvent) error
	PushRewardClaimedEvent(ctx context.Context, event *types.RewardClaimedEvent) error
}

// Service is the staking accounting engine. Every public operation
// holds mu for its whole duration, so operations are indivisible state
// transitions and reads observe consistent snapshots; ordering between
// operations is whatever order callers reach the lock in.
type Service struct {
	cfg            *config.Config
	db             db.DbInterface
	token          tokenclient.TokenInterface
	auth           authclient.AuthInterface
	queueManager   EventEmitter
	custodyAddress string

	mu sync.Mutex

	// now is the engine clock; tests override it to steer accrual.
	now func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	token tokenclient.TokenInterface,
	auth authclient.AuthInterface,
	qm EventEmitter,
) *Service {
	var custodyAddress string
	if cfg != nil {
		custodyAddress = cfg.Token.CustodyAddress
	}

	return &Service{
		cfg:            cfg,
		db:             db,
		token:          token,
		auth:           auth,
		queueManager:   qm,
		custodyAddress: custodyAddress,
		now:            time.Now,
	}
}

// HealthCheck reports whether the engine's persistence is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// GetCustodyBalance returns the token balance held by the engine's
// custody account (staked principal plus the reward budget).
func (s *Service) GetCustodyBalance(ctx context.Context) (sdkmath.Int, error) {
	return s.token.BalanceOf(ctx, s.custodyAddress)
}

// observe records operation latency; used via defer from every public
// operation.
func (s *Service) observe(operation string, start time.Time, err *error) {
	metrics.RecordOperationLatency(time.Since(start), operation, err != nil && *err != nil)
}

// emit publishes a committed event. Publishing is observability, not
// part of the state transition: failures are logged and counted only.
func (s *Service) emit(ctx context.Context, eventType types.EventTypes, push func() error) {
	if s.queueManager == nil {
		return
	}
	if err := push(); err != nil {
		metrics.RecordQueueSendError()
		log.Ctx(ctx).Error().
			Err(err).
			Str("event_type", eventType.String()).
			Msg("failed to publish staking event")
	}
}
