package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mawadda-app/agency-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.UseCase
}

func NewProfileHandler(profileUseCase *profile.UseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// Create registers a new prospect
// @Summary Create profile
// @Description Register a new prospect assigned to the calling matchmaker
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Profile data"
// @Success 201 {object} domain.Profile
// @Failure 400 {object} ErrorResponse
// @Router /profiles [post]
func (h *ProfileHandler) Create(c *gin.Context) {
	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.Create(c.Request.Context(), actorID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// Get returns one profile with completeness
// @Summary Get profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} profile.ProfileResponse
// @Failure 404 {object} ErrorResponse
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.profileUseCase.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update applies one wizard step
// @Summary Update profile
// @Description Apply one wizard step's fields; only provided fields change
// @Tags profiles
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Profile ID"
// @Param request body profile.UpdateProfileRequest true "Step fields"
// @Success 200 {object} profile.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /profiles/{id} [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.profileUseCase.Update(c.Request.Context(), actorID(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Validate promotes a prospect to member
// @Summary Validate profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.Profile
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /profiles/{id}/validate [post]
func (h *ProfileHandler) Validate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.profileUseCase.Validate(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Archive retires a profile
// @Summary Archive profile
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param id path int true "Profile ID"
// @Success 200 {object} domain.Profile
// @Failure 403 {object} ErrorResponse
// @Router /profiles/{id}/archive [post]
func (h *ProfileHandler) Archive(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	p, err := h.profileUseCase.Archive(c.Request.Context(), actorID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ListMine returns the caller's assigned profiles
// @Summary List my profiles
// @Tags profiles
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} profile.ProfileResponse
// @Router /profiles [get]
func (h *ProfileHandler) ListMine(c *gin.Context) {
	limit, offset := pagination(c)

	profiles, err := h.profileUseCase.ListMine(c.Request.Context(), actorID(c), limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profiles)
}
