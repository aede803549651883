package authclient

import "context"

// AuthInterface is the external authorization provider gating
// privileged operations. The engine treats it as a yes/no gate.
type AuthInterface interface {
	IsAuthorized(ctx context.Context, caller string) (bool, error)
}
