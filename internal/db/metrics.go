package db

import (
	"context"
	"time"

	"github.com/stakelab-io/staking-pool-engine/internal/db/model"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewStakePool(ctx context.Context, poolDoc *model.StakePoolDocument) error {
	return d.run("SaveNewStakePool", func() error {
		return d.db.SaveNewStakePool(ctx, poolDoc)
	})
}

func (d *DbWithMetrics) GetStakePoolByID(ctx context.Context, poolID string) (result *model.StakePoolDocument, err error) {
	//nolint:errcheck
	d.run("GetStakePoolByID", func() error {
		result, err = d.db.GetStakePoolByID(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) StakePoolExists(ctx context.Context, poolID string) (result bool, err error) {
	//nolint:errcheck
	d.run("StakePoolExists", func() error {
		result, err = d.db.StakePoolExists(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) SaveNewStake(ctx context.Context, stakeDoc *model.StakeDocument, poolTotalStaked string) error {
	return d.run("SaveNewStake", func() error {
		return d.db.SaveNewStake(ctx, stakeDoc, poolTotalStaked)
	})
}

func (d *DbWithMetrics) GetStakesByPool(ctx context.Context, poolID string) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakesByPool", func() error {
		result, err = d.db.GetStakesByPool(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) GetStakesByPoolAndStaker(ctx context.Context, poolID, stakerAddress string) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakesByPoolAndStaker", func() error {
		result, err = d.db.GetStakesByPoolAndStaker(ctx, poolID, stakerAddress)
		return err
	})

	return
}

func (d *DbWithMetrics) CountStakesByPool(ctx context.Context, poolID string) (result uint64, err error) {
	//nolint:errcheck
	d.run("CountStakesByPool", func() error {
		result, err = d.db.CountStakesByPool(ctx, poolID)
		return err
	})

	return
}

func (d *DbWithMetrics) ApplyClaimUpdates(ctx context.Context, updates []model.ClaimUpdate) error {
	return d.run("ApplyClaimUpdates", func() error {
		return d.db.ApplyClaimUpdates(ctx, updates)
	})
}

func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
