package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeJSON(w, status, &errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, &errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, http.StatusBadRequest, &errorResponse{Error: fmt.Sprintf(format, args...)})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, types.ErrPoolNotFound), errors.Is(err, types.ErrNoStakes):
		return http.StatusNotFound
	case errors.Is(err, types.ErrDuplicatePool),
		errors.Is(err, types.ErrWindowClosed),
		errors.Is(err, types.ErrNothingToClaim):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidWindow), errors.Is(err, types.ErrInvalidBounds):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, types.ErrOutOfBounds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, types.ErrTokenMoveFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// parseAmount parses a decimal token amount from a request. Amounts
// travel as strings because they do not fit in a float or an int64.
func parseAmount(raw string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(raw)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}
