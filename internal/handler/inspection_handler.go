package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
	"github.com/noah-isme/sma-internship-api/pkg/response"
)

type inspectionService interface {
	Create(ctx context.Context, internshipID string, req dto.CreateInspectionRequest, actor *models.JWTClaims) (*models.Inspection, error)
	ListByInternship(ctx context.Context, internshipID string) ([]models.Inspection, error)
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

// InspectionHandler exposes the placement inspection history.
type InspectionHandler struct {
	inspections inspectionService
}

// NewInspectionHandler constructs the handler.
func NewInspectionHandler(inspections inspectionService) *InspectionHandler {
	return &InspectionHandler{inspections: inspections}
}

// Create godoc
// @Summary Record a placement inspection
// @Tags Inspections
// @Accept json
// @Produce json
// @Param id path string true "Internship ID"
// @Param payload body dto.CreateInspectionRequest true "Inspection"
// @Success 201 {object} response.Envelope
// @Router /internships/{id}/inspections [post]
func (h *InspectionHandler) Create(c *gin.Context) {
	var req dto.CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date and result are required"))
		return
	}
	inspection, err := h.inspections.Create(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inspection)
}

// List godoc
// @Summary Inspection history of an internship
// @Tags Inspections
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} response.Envelope
// @Router /internships/{id}/inspections [get]
func (h *InspectionHandler) List(c *gin.Context) {
	inspections, err := h.inspections.ListByInternship(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inspections, nil)
}

// Delete godoc
// @Summary Delete an inspection (creator only)
// @Tags Inspections
// @Param id path string true "Inspection ID"
// @Success 204
// @Router /inspections/{id} [delete]
func (h *InspectionHandler) Delete(c *gin.Context) {
	if err := h.inspections.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
