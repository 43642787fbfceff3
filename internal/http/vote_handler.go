package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"voting-service/internal/domain/vote"
	"voting-service/internal/platform/apperr"
	"voting-service/internal/worker"
)

type voteRequest struct {
	Choice *string `json:"choice"`
}

func (r voteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Choice, validation.Required),
	)
}

type voteResponse struct {
	Message string `json:"message"`
}

// @Summary     Cast a vote
// @Tags        votes
// @Accept      json
// @Produce     json
// @Param       request  body      voteRequest        true  "Vote payload"
// @Success     200      {object}  voteResponse
// @Failure     400      {object}  map[string]string  "invalid body or missing choice"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Failure     500      {object}  map[string]string  "database connection failed"
// @Router      /api/vote [post]
func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, r, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}
	if err := req.Validate(); err != nil {
		h.errorResponse(w, r, apperr.BadRequest("invalid_input", vote.ErrChoiceRequired.Error(), err))
		return
	}

	v, err := h.voteSvc.Vote(r.Context(), *req.Choice)
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	select {
	case h.voteCh <- worker.VoteEvent{VoteID: v.ID, Choice: v.Choice}:
	default:
	}

	writeJSON(w, http.StatusOK, voteResponse{
		Message: fmt.Sprintf("Vote for %s recorded!", v.Choice),
	})
}

// @Summary     Vote counts per choice
// @Description Only choices with at least one vote are listed.
// @Tags        votes
// @Produce     json
// @Success     200  {object}  map[string]int64
// @Failure     500  {object}  map[string]string  "database connection failed"
// @Router      /api/results [get]
func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	res, err := h.voteSvc.Results(r.Context())
	if err != nil {
		h.errorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}
