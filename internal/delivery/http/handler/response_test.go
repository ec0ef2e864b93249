package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mawadda-app/agency-backend/internal/domain"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError("bad input"), http.StatusBadRequest},
		{"authorization", domain.ErrNotPermitted, http.StatusForbidden},
		{"state", domain.ErrAlreadyResponded, http.StatusConflict},
		{"not found", domain.ErrProfileNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			respondError(c, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	respondError(c, errors.New("pq: connection refused"))

	assert.NotContains(t, rec.Body.String(), "connection refused")
}
