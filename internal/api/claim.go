package api

import (
	"encoding/json"
	"net/http"
)

type claimRequest struct {
	StakerAddress string `json:"staker_address"`
	PoolID        string `json:"pool_id"`
}

func (s *Server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if req.StakerAddress == "" || req.PoolID == "" {
		writeBadRequest(w, "missing staker_address or pool_id")
		return
	}

	amount, err := s.svc.ClaimReward4Total(r.Context(), req.StakerAddress, req.PoolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"amount": amount.String()})
}
