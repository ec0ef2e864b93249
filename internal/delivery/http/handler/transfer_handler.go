package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mawadda-app/agency-backend/internal/usecase/transfer"
)

type TransferHandler struct {
	transferUseCase *transfer.UseCase
}

func NewTransferHandler(transferUseCase *transfer.UseCase) *TransferHandler {
	return &TransferHandler{transferUseCase: transferUseCase}
}

// Create opens a transfer of a person to another matchmaker
// @Summary Create transfer request
// @Tags transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body transfer.CreateRequest true "Person, target and reason"
// @Success 201 {object} domain.TransferRequest
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /transfers [post]
func (h *TransferHandler) Create(c *gin.Context) {
	var req transfer.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.transferUseCase.Create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// Accept takes ownership of the transferred person
// @Summary Accept transfer
// @Tags transfers
// @Security BearerAuth
// @Produce json
// @Param id path int true "Transfer request ID"
// @Success 200 {object} domain.TransferRequest
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transfers/{id}/accept [post]
func (h *TransferHandler) Accept(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	r, err := h.transferUseCase.Accept(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// Reject declines a transfer with a reason
// @Summary Reject transfer
// @Tags transfers
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Transfer request ID"
// @Param request body transfer.RejectRequest true "Rejection reason"
// @Success 200 {object} domain.TransferRequest
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /transfers/{id}/reject [post]
func (h *TransferHandler) Reject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req transfer.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	r, err := h.transferUseCase.Reject(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// ListIncoming returns transfers addressed to the caller
// @Summary List incoming transfers
// @Tags transfers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.TransferRequest
// @Router /transfers/incoming [get]
func (h *TransferHandler) ListIncoming(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.transferUseCase.ListIncoming(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// ListOutgoing returns transfers the caller opened
// @Summary List outgoing transfers
// @Tags transfers
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.TransferRequest
// @Router /transfers/outgoing [get]
func (h *TransferHandler) ListOutgoing(c *gin.Context) {
	limit, offset := pagination(c)

	rows, err := h.transferUseCase.ListOutgoing(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}
