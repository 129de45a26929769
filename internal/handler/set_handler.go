package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-internship-api/internal/models"
	"github.com/noah-isme/sma-internship-api/pkg/response"
)

type setService interface {
	Get(ctx context.Context, id string) (*models.Set, error)
	List(ctx context.Context) ([]models.Set, error)
}

// SetHandler exposes the read-only cohort endpoints.
type SetHandler struct {
	sets setService
}

// NewSetHandler constructs the handler.
func NewSetHandler(sets setService) *SetHandler {
	return &SetHandler{sets: sets}
}

// List godoc
// @Summary List cohorts
// @Tags Sets
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sets [get]
func (h *SetHandler) List(c *gin.Context) {
	sets, err := h.sets.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sets, nil)
}

// Get godoc
// @Summary Cohort detail
// @Tags Sets
// @Produce json
// @Param id path string true "Set ID"
// @Success 200 {object} response.Envelope
// @Router /sets/{id} [get]
func (h *SetHandler) Get(c *gin.Context) {
	set, err := h.sets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, set, nil)
}
