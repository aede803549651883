package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

type createStakeRequest struct {
	StakerAddress string `json:"staker_address"`
	PoolID        string `json:"pool_id"`
	Amount        string `json:"amount"`
}

type stakeResponse struct {
	ID             string `json:"id"`
	PoolID         string `json:"pool_id"`
	StakerAddress  string `json:"staker_address"`
	StakeAmount    string `json:"stake_amount"`
	StartTimestamp int64  `json:"start_timestamp"`
	ClaimedReward  string `json:"claimed_reward"`
	Active         bool   `json:"active"`
	StakeIndex     uint64 `json:"stake_index"`
}

func toStakeResponse(stake *types.Stake) *stakeResponse {
	return &stakeResponse{
		ID:             stake.ID,
		PoolID:         stake.PoolID,
		StakerAddress:  stake.StakerAddress,
		StakeAmount:    stake.StakeAmount.String(),
		StartTimestamp: stake.StartTimestamp,
		ClaimedReward:  stake.ClaimedReward.String(),
		Active:         stake.Active,
		StakeIndex:     stake.StakeIndex,
	}
}

func toStakeResponses(stakes []*types.Stake) []*stakeResponse {
	out := make([]*stakeResponse, 0, len(stakes))
	for _, stake := range stakes {
		out = append(out, toStakeResponse(stake))
	}
	return out
}

func (s *Server) handleCreateStake(w http.ResponseWriter, r *http.Request) {
	var req createStakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if req.StakerAddress == "" || req.PoolID == "" {
		writeBadRequest(w, "missing staker_address or pool_id")
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeBadRequest(w, "amount: %v", err)
		return
	}

	stake, err := s.svc.StakeToken(r.Context(), req.StakerAddress, amount, req.PoolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStakeResponse(stake))
}

func (s *Server) handleListStakes(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	var stakes []*types.Stake
	var err error
	if staker := r.URL.Query().Get("staker"); staker != "" {
		stakes, err = s.svc.GetAllUserStakesByStakePoolsId(r.Context(), poolID, staker)
	} else {
		stakes, err = s.svc.ListAllStakesInPool(r.Context(), poolID)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"stakes": toStakeResponses(stakes)})
}

func (s *Server) handleCountStakes(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	count, err := s.svc.LengthStakesInPool(r.Context(), poolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]uint64{"count": count})
}

func (s *Server) handleRewardQuote(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	amount, err := parseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		writeBadRequest(w, "amount: %v", err)
		return
	}

	reward, err := s.svc.CalculateStakeRewardWithDefinedAmount(r.Context(), poolID, amount)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reward": reward.String()})
}

func (s *Server) handleUserRewards(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	staker := r.URL.Query().Get("staker")
	if staker == "" {
		writeBadRequest(w, "missing staker query parameter")
		return
	}

	total, err := s.svc.GetTotalRewardsInThePoolOfUser(r.Context(), staker, poolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"total": total.String()})
}
