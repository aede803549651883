package types

type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventStakePoolCreated EventTypes = "staking.pool_created"
	EventStakeCreated     EventTypes = "staking.stake_created"
	EventRewardClaimed    EventTypes = "staking.reward_claimed"
)

// StakePoolCreatedEvent is published to the queue when a pool is
// registered, for external indexers.
type StakePoolCreatedEvent struct {
	EventType      string `json:"event_type"`
	EventID        string `json:"event_id"`
	Timestamp      int64  `json:"timestamp"`
	PoolID         string `json:"pool_id"`
	Name           string `json:"name"`
	StartTime      int64  `json:"start_time"`
	EndTime        int64  `json:"end_time"`
	ApyBasisPoints int64  `json:"apy_basis_points"`
	MinStake       string `json:"min_stake"`
	MaxStake       string `json:"max_stake"`
}

type StakeCreatedEvent struct {
	EventType      string `json:"event_type"`
	EventID        string `json:"event_id"`
	Timestamp      int64  `json:"timestamp"`
	StakeID        string `json:"stake_id"`
	PoolID         string `json:"pool_id"`
	StakerAddress  string `json:"staker_address"`
	StakeAmount    string `json:"stake_amount"`
	StartTimestamp int64  `json:"start_timestamp"`
}

type RewardClaimedEvent struct {
	EventType     string `json:"event_type"`
	EventID       string `json:"event_id"`
	Timestamp     int64  `json:"timestamp"`
	PoolID        string `json:"pool_id"`
	StakerAddress string `json:"staker_address"`
	Amount        string `json:"amount"`
	StakesSettled int    `json:"stakes_settled"`
}
