package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mawadda-app/agency-backend/internal/matching"
	"github.com/mawadda-app/agency-backend/internal/usecase/matchmaking"
)

type MatchmakingHandler struct {
	matchmakingUseCase *matchmaking.UseCase
}

func NewMatchmakingHandler(matchmakingUseCase *matchmaking.UseCase) *MatchmakingHandler {
	return &MatchmakingHandler{matchmakingUseCase: matchmakingUseCase}
}

// ScoreRequest selects the reference profile and an optional hard filter.
type ScoreRequest struct {
	ReferenceID int                 `json:"reference_id" binding:"required"`
	Filter      matching.FilterSpec `json:"filter"`
}

type SuggestRequest struct {
	ReferenceID int `json:"reference_id" binding:"required"`
	CandidateID int `json:"candidate_id" binding:"required"`
}

// Score ranks candidates for a reference profile
// @Summary Score candidates
// @Description Filter the eligible pool and rank it by compatibility
// @Tags matchmaking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ScoreRequest true "Reference and filter"
// @Success 200 {array} matchmaking.CandidateResult
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /matchmaking/score [post]
func (h *MatchmakingHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	results, err := h.matchmakingUseCase.ScoreCandidates(c.Request.Context(), req.ReferenceID, req.Filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// Suggest drafts an introduction message for a pair
// @Summary Suggest introduction
// @Tags matchmaking
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SuggestRequest true "Pair"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /matchmaking/suggest-introduction [post]
func (h *MatchmakingHandler) Suggest(c *gin.Context) {
	var req SuggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	text, err := h.matchmakingUseCase.SuggestIntroduction(c.Request.Context(), req.ReferenceID, req.CandidateID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: text})
}
