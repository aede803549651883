package testutil

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// FakeTokenMover is an in-memory token ledger standing in for the
// external custody service. Transfer pays out of CustodyAddress, which
// mirrors the engine pulling deposits into custody and pushing claims
// back out of it.
type FakeTokenMover struct {
	mu             sync.Mutex
	balances       map[string]sdkmath.Int
	CustodyAddress string

	// FailTransferFrom / FailTransfer simulate mover failures.
	FailTransferFrom bool
	FailTransfer     bool
}

func NewFakeTokenMover(custodyAddress string) *FakeTokenMover {
	return &FakeTokenMover{
		balances:       make(map[string]sdkmath.Int),
		CustodyAddress: custodyAddress,
	}
}

func (f *FakeTokenMover) SetBalance(account string, amount sdkmath.Int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.balances[account] = amount
}

func (f *FakeTokenMover) TransferFrom(ctx context.Context, from, to string, amount sdkmath.Int) error {
	if f.FailTransferFrom {
		return fmt.Errorf("transfer-from rejected")
	}
	return f.move(from, to, amount)
}

func (f *FakeTokenMover) Transfer(ctx context.Context, to string, amount sdkmath.Int) error {
	if f.FailTransfer {
		return fmt.Errorf("transfer rejected")
	}
	return f.move(f.CustodyAddress, to, amount)
}

func (f *FakeTokenMover) BalanceOf(ctx context.Context, account string) (sdkmath.Int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.balance(account), nil
}

func (f *FakeTokenMover) move(from, to string, amount sdkmath.Int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fromBalance := f.balance(from)
	if fromBalance.LT(amount) {
		return fmt.Errorf("insufficient balance: %s has %s, needs %s", from, fromBalance, amount)
	}
	f.balances[from] = fromBalance.Sub(amount)
	f.balances[to] = f.balance(to).Add(amount)
	return nil
}

func (f *FakeTokenMover) balance(account string) sdkmath.Int {
	if b, ok := f.balances[account]; ok {
		return b
	}
	return sdkmath.ZeroInt()
}
