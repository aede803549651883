package testutil

import (
	"context"
	"sync"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

// FakeEventEmitter records published events for assertions.
type FakeEventEmitter struct {
	mu sync.Mutex

	PoolCreated   []*types.StakePoolCreatedEvent
	StakeCreated  []*types.StakeCreatedEvent
	RewardClaimed []*types.RewardClaimedEvent

	// Err, when set, fails every publish.
	Err error
}

func NewFakeEventEmitter() *FakeEventEmitter {
	return &FakeEventEmitter{}
}

func (f *FakeEventEmitter) PushStakePoolCreatedEvent(ctx context.Context, event *types.StakePoolCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.PoolCreated = append(f.PoolCreated, event)
	return nil
}

func (f *FakeEventEmitter) PushStakeCreatedEvent(ctx context.Context, event *types.StakeCreatedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.StakeCreated = append(f.StakeCreated, event)
	return nil
}

func (f *FakeEventEmitter) PushRewardClaimedEvent(ctx context.Context, event *types.RewardClaimedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.RewardClaimed = append(f.RewardClaimed, event)
	return nil
}
