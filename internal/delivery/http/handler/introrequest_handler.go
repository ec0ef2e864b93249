package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mawadda-app/agency-backend/internal/usecase/introrequest"
)

type IntroRequestHandler struct {
	requestUseCase *introrequest.UseCase
}

func NewIntroRequestHandler(requestUseCase *introrequest.UseCase) *IntroRequestHandler {
	return &IntroRequestHandler{requestUseCase: requestUseCase}
}

// Create asks another matchmaker for permission to propose
// @Summary Create proposition request
// @Tags proposition-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body introrequest.CreateRequest true "Pair and message"
// @Success 201 {object} domain.PropositionRequest
// @Failure 400 {object} ErrorResponse
// @Router /proposition-requests [post]
func (h *IntroRequestHandler) Create(c *gin.Context) {
	var req introrequest.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.requestUseCase.Create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// Respond accepts or rejects a pending request
// @Summary Respond to proposition request
// @Description Accepting names an organizer and grants the requester a one-time proposal right
// @Tags proposition-requests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param request body introrequest.RespondRequest true "Decision"
// @Success 200 {object} domain.PropositionRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /proposition-requests/{id}/respond [post]
func (h *IntroRequestHandler) Respond(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req introrequest.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.requestUseCase.Respond(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// ListIncoming returns requests addressed to the caller
// @Summary List incoming requests
// @Tags proposition-requests
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.PropositionRequest
// @Router /proposition-requests/incoming [get]
func (h *IntroRequestHandler) ListIncoming(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.requestUseCase.ListIncoming(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ListOutgoing returns requests the caller opened
// @Summary List outgoing requests
// @Tags proposition-requests
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.PropositionRequest
// @Router /proposition-requests/outgoing [get]
func (h *IntroRequestHandler) ListOutgoing(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.requestUseCase.ListOutgoing(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
