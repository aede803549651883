package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/stakelab-io/staking-pool-engine/internal/db"
	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
)

// InMemoryStore is a deterministic db.DbInterface for unit tests:
// maps and slices behind a mutex, with the same error semantics as the
// mongo-backed Database.
type InMemoryStore struct {
	mu     sync.Mutex
	pools  map[string]*model.StakePoolDocument
	stakes []*model.StakeDocument

	// FailApplyClaimUpdates makes every ApplyClaimUpdates call fail,
	// for exercising the post-payout settlement path.
	FailApplyClaimUpdates bool

	// FailSaveNewStake makes every SaveNewStake call fail, for
	// exercising the post-pull refund path.
	FailSaveNewStake bool
}

var _ db.DbInterface = (*InMemoryStore)(nil)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		pools: make(map[string]*model.StakePoolDocument),
	}
}

func (s *InMemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *InMemoryStore) SaveNewStakePool(ctx context.Context, poolDoc *model.StakePoolDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pools[poolDoc.ID]; exists {
		return &db.DuplicateKeyError{
			Key:     poolDoc.ID,
			Message: "stake pool already exists",
		}
	}

	cp := *poolDoc
	s.pools[poolDoc.ID] = &cp
	return nil
}

func (s *InMemoryStore) GetStakePoolByID(ctx context.Context, poolID string) (*model.StakePoolDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	poolDoc, exists := s.pools[poolID]
	if !exists {
		return nil, &db.NotFoundError{
			Key:     poolID,
			Message: "stake pool not found",
		}
	}

	cp := *poolDoc
	return &cp, nil
}

func (s *InMemoryStore) StakePoolExists(ctx context.Context, poolID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, exists := s.pools[poolID]
	return exists, nil
}

func (s *InMemoryStore) SaveNewStake(ctx context.Context, stakeDoc *model.StakeDocument, poolTotalStaked string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSaveNewStake {
		return fmt.Errorf("stake insert rejected")
	}

	poolDoc, exists := s.pools[stakeDoc.PoolID]
	if !exists {
		return &db.NotFoundError{
			Key:     stakeDoc.PoolID,
			Message: "stake pool not found",
		}
	}

	cp := *stakeDoc
	s.stakes = append(s.stakes, &cp)
	poolDoc.TotalStaked = poolTotalStaked
	return nil
}

func (s *InMemoryStore) GetStakesByPool(ctx context.Context, poolID string) ([]*model.StakeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*model.StakeDocument
	for _, stakeDoc := range s.stakes {
		if stakeDoc.PoolID == poolID {
			cp := *stakeDoc
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *InMemoryStore) GetStakesByPoolAndStaker(ctx context.Context, poolID, stakerAddress string) ([]*model.StakeDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*model.StakeDocument
	for _, stakeDoc := range s.stakes {
		if stakeDoc.PoolID == poolID && stakeDoc.StakerAddress == stakerAddress {
			cp := *stakeDoc
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *InMemoryStore) CountStakesByPool(ctx context.Context, poolID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count uint64
	for _, stakeDoc := range s.stakes {
		if stakeDoc.PoolID == poolID {
			count++
		}
	}
	return count, nil
}

func (s *InMemoryStore) ApplyClaimUpdates(ctx context.Context, updates []model.ClaimUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailApplyClaimUpdates {
		return fmt.Errorf("claim updates rejected")
	}

	for _, update := range updates {
		found := false
		for _, stakeDoc := range s.stakes {
			if stakeDoc.ID == update.StakeID {
				stakeDoc.ClaimedReward = update.NewClaimedReward
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("stake %s not found", update.StakeID)
		}
	}
	return nil
}
