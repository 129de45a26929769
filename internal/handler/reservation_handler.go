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

type reservationService interface {
	ClaimSingle(ctx context.Context, internshipID, inspectorID string, actor *models.JWTClaims) (*models.Internship, error)
	ClaimAllUnreservedAtLocation(ctx context.Context, locationID, inspectorID string, activeOnly bool, actor *models.JWTClaims) (int, error)
	SetHighlighted(ctx context.Context, internshipID string, value bool, actor *models.JWTClaims) (*models.Internship, error)
}

// ReservationHandler exposes the inspection claim protocol and the
// highlight flag.
type ReservationHandler struct {
	reservations reservationService
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(reservations reservationService) *ReservationHandler {
	return &ReservationHandler{reservations: reservations}
}

// ClaimSingle godoc
// @Summary Claim inspection ownership of an internship
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Internship ID"
// @Param payload body dto.ClaimRequest false "Optional inspector override"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /internships/{id}/reservation [post]
func (h *ReservationHandler) ClaimSingle(c *gin.Context) {
	var req dto.ClaimRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid claim payload"))
			return
		}
	}
	internship, err := h.reservations.ClaimSingle(c.Request.Context(), c.Param("id"), req.InspectorID, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, internship, nil)
}

// BulkClaim godoc
// @Summary Claim every unreserved internship at a location
// @Tags Reservations
// @Accept json
// @Produce json
// @Param payload body dto.BulkClaimRequest true "Location and scope"
// @Success 200 {object} response.Envelope
// @Router /reservations/bulk-claim [post]
func (h *ReservationHandler) BulkClaim(c *gin.Context) {
	var req dto.BulkClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "location_id is required"))
		return
	}
	claimed, err := h.reservations.ClaimAllUnreservedAtLocation(c.Request.Context(), req.LocationID, req.InspectorID, req.ActiveOnly, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.BulkClaimResponse{Claimed: claimed}, nil)
}

// SetHighlighted godoc
// @Summary Toggle the priority flag on an internship
// @Tags Reservations
// @Accept json
// @Produce json
// @Param id path string true "Internship ID"
// @Param payload body dto.SetHighlightedRequest true "Flag value"
// @Success 200 {object} response.Envelope
// @Router /internships/{id}/highlighted [patch]
func (h *ReservationHandler) SetHighlighted(c *gin.Context) {
	var req dto.SetHighlightedRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "value is required"))
		return
	}
	internship, err := h.reservations.SetHighlighted(c.Request.Context(), c.Param("id"), *req.Value, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, internship, nil)
}
