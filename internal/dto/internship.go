package dto

import (
	"time"

	"github.com/noah-isme/sma-internship-api/internal/models"
)

// ChangeStateRequest asks to move an internship to a new lifecycle state.
type ChangeStateRequest struct {
	State models.State `json:"state" binding:"required"`
}

// SetHighlightedRequest toggles the advisory priority flag.
type SetHighlightedRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// ClaimRequest claims inspection ownership of a single internship. The
// inspector defaults to the acting user; admins may claim on behalf of a
// teacher by setting InspectorID.
type ClaimRequest struct {
	InspectorID string `json:"inspector_id"`
}

// BulkClaimRequest claims every unreserved internship at a location.
type BulkClaimRequest struct {
	LocationID  string `json:"location_id" binding:"required"`
	InspectorID string `json:"inspector_id"`
	ActiveOnly  bool   `json:"active_only"`
}

// BulkClaimResponse reports how many internships the claim actually won.
type BulkClaimResponse struct {
	Claimed int `json:"claimed"`
}

// NextStatesResponse lists the legal next steps for presentation layers.
type NextStatesResponse struct {
	Current  models.State   `json:"current"`
	Next     []models.State `json:"next"`
	Terminal bool           `json:"terminal"`
}

// CreateInspectionRequest records a placement visit.
type CreateInspectionRequest struct {
	Date   time.Time               `json:"date" binding:"required"`
	Result models.InspectionResult `json:"result" binding:"required"`
	Kind   string                  `json:"kind"`
	Note   string                  `json:"note"`
}

// CreateDiaryEntryRequest adds a dated diary note to an internship.
type CreateDiaryEntryRequest struct {
	Date time.Time `json:"date" binding:"required"`
	Text string    `json:"text" binding:"required"`
}
