package tokenclient

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// TokenInterface is the external token mover. The engine depends on it
// for custody movement: pulling deposits in and pushing claims out. Any
// failure aborts the calling operation with no state change.
type TokenInterface interface {
	TransferFrom(ctx context.Context, from, to string, amount sdkmath.Int) error
	Transfer(ctx context.Context, to string, amount sdkmath.Int) error
	BalanceOf(ctx context.Context, account string) (sdkmath.Int, error)
}
