package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mawadda-app/agency-backend/internal/usecase/proposition"
)

type PropositionHandler struct {
	propositionUseCase *proposition.UseCase
}

func NewPropositionHandler(propositionUseCase *proposition.UseCase) *PropositionHandler {
	return &PropositionHandler{propositionUseCase: propositionUseCase}
}

// Propose sends a proposition to one or both parties
// @Summary Create proposition
// @Description Send an introduction proposition to the selected recipients
// @Tags propositions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body proposition.ProposeRequest true "Pair, message and recipients"
// @Success 201 {array} domain.Proposition
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /propositions [post]
func (h *PropositionHandler) Propose(c *gin.Context) {
	var req proposition.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rows, err := h.propositionUseCase.Propose(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rows)
}

// Respond answers a pending proposition
// @Summary Respond to proposition
// @Tags propositions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Proposition ID"
// @Param request body proposition.RespondRequest true "Decision"
// @Success 200 {object} domain.Proposition
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /propositions/{id}/respond [post]
func (h *PropositionHandler) Respond(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req proposition.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.propositionUseCase.Respond(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// SendToOther forwards an accepted one-sided proposition
// @Summary Send to other party
// @Tags propositions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body proposition.SendToOtherRequest true "Group key"
// @Success 201 {object} domain.Proposition
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /propositions/send-to-other [post]
func (h *PropositionHandler) SendToOther(c *gin.Context) {
	var req proposition.SendToOtherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.propositionUseCase.SendToOther(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Group returns the derived status across both recipients
// @Summary Get proposition group
// @Tags propositions
// @Security BearerAuth
// @Produce json
// @Param reference_id query int true "Reference profile ID"
// @Param candidate_id query int true "Candidate profile ID"
// @Param message query string true "Group message"
// @Success 200 {object} proposition.GroupView
// @Failure 404 {object} ErrorResponse
// @Router /propositions/group [get]
func (h *PropositionHandler) Group(c *gin.Context) {
	referenceID, err := strconv.Atoi(c.Query("reference_id"))
	if err != nil || referenceID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reference_id"})
		return
	}
	candidateID, err := strconv.Atoi(c.Query("candidate_id"))
	if err != nil || candidateID <= 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid candidate_id"})
		return
	}
	message := c.Query("message")
	if message == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
		return
	}

	group, err := h.propositionUseCase.Group(c.Request.Context(), referenceID, candidateID, message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, group)
}

// ListSent returns propositions the caller sent
// @Summary List sent propositions
// @Tags propositions
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} proposition.MemberView
// @Router /propositions/sent [get]
func (h *PropositionHandler) ListSent(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.propositionUseCase.ListSent(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
