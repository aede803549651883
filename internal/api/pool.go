package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stakelab-io/staking-pool-engine/internal/types"
)

const callerHeader = "X-Caller-Address"

type createStakePoolRequest struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartTime      int64  `json:"start_time"`
	EndTime        int64  `json:"end_time"`
	ApyBasisPoints int64  `json:"apy_basis_points"`
	MinStake       string `json:"min_stake"`
	MaxStake       string `json:"max_stake"`
}

type stakePoolResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StartTime      int64  `json:"start_time"`
	EndTime        int64  `json:"end_time"`
	ApyBasisPoints int64  `json:"apy_basis_points"`
	MinStake       string `json:"min_stake"`
	MaxStake       string `json:"max_stake"`
	TotalStaked    string `json:"total_staked"`
	CreatedAt      int64  `json:"created_at"`
}

func toStakePoolResponse(pool *types.StakePool) *stakePoolResponse {
	return &stakePoolResponse{
		ID:             pool.ID,
		Name:           pool.Name,
		StartTime:      pool.StartTime,
		EndTime:        pool.EndTime,
		ApyBasisPoints: pool.ApyBasisPoints,
		MinStake:       pool.MinStake.String(),
		MaxStake:       pool.MaxStake.String(),
		TotalStaked:    pool.TotalStaked.String(),
		CreatedAt:      pool.CreatedAt,
	}
}

func (s *Server) handleCreateStakePool(w http.ResponseWriter, r *http.Request) {
	caller := r.Header.Get(callerHeader)
	if caller == "" {
		writeBadRequest(w, "missing %s header", callerHeader)
		return
	}

	var req createStakePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: %v", err)
		return
	}
	if req.ID == "" {
		writeBadRequest(w, "missing pool id")
		return
	}

	minStake, err := parseAmount(req.MinStake)
	if err != nil {
		writeBadRequest(w, "min_stake: %v", err)
		return
	}
	maxStake, err := parseAmount(req.MaxStake)
	if err != nil {
		writeBadRequest(w, "max_stake: %v", err)
		return
	}

	pool := &types.StakePool{
		ID:             req.ID,
		Name:           req.Name,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		ApyBasisPoints: req.ApyBasisPoints,
		MinStake:       minStake,
		MaxStake:       maxStake,
	}

	if err := s.svc.CreateStakePool(r.Context(), caller, pool); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toStakePoolResponse(pool))
}

func (s *Server) handleGetStakePool(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	pool, err := s.svc.GetStakePoolById(r.Context(), poolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toStakePoolResponse(pool))
}

func (s *Server) handleStakePoolExists(w http.ResponseWriter, r *http.Request) {
	poolID := chi.URLParam(r, "poolID")

	exists, err := s.svc.CheckIsPoolExists(r.Context(), poolID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}
