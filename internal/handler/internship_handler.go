package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-internship-api/internal/dto"
	"github.com/noah-isme/sma-internship-api/internal/models"
	appErrors "github.com/noah-isme/sma-internship-api/pkg/errors"
	"github.com/noah-isme/sma-internship-api/pkg/response"
)

type internshipService interface {
	Get(ctx context.Context, id string, actor *models.JWTClaims) (*models.InternshipDetail, error)
	List(ctx context.Context, filter models.InternshipFilter, actor *models.JWTClaims) ([]models.Internship, *models.Pagination, error)
	AddDiaryEntry(ctx context.Context, internshipID string, req dto.CreateDiaryEntryRequest, actor *models.JWTClaims) (*models.DiaryEntry, error)
	ListDiary(ctx context.Context, internshipID string, actor *models.JWTClaims) ([]models.DiaryEntry, error)
}

type lifecycleService interface {
	Transition(ctx context.Context, internshipID string, requested models.State, actor *models.JWTClaims) (*models.Internship, error)
	AllowedNext(current models.State) []models.State
}

// InternshipHandler exposes the internship read surface, the lifecycle
// endpoints, and the student diary.
type InternshipHandler struct {
	internships internshipService
	lifecycle   lifecycleService
}

// NewInternshipHandler constructs the handler.
func NewInternshipHandler(internships internshipService, lifecycle lifecycleService) *InternshipHandler {
	return &InternshipHandler{internships: internships, lifecycle: lifecycle}
}

// List godoc
// @Summary List internships
// @Tags Internships
// @Produce json
// @Param setId query string false "Set ID"
// @Param state query string false "Lifecycle state"
// @Param classname query string false "Classname"
// @Param locationId query string false "Location ID"
// @Param reserved query boolean false "Reservation filter"
// @Param activeOnly query boolean false "Active cohorts only"
// @Param page query integer false "Page"
// @Param pageSize query integer false "Page size"
// @Success 200 {object} response.Envelope
// @Router /internships [get]
func (h *InternshipHandler) List(c *gin.Context) {
	filter := models.InternshipFilter{
		SetID:      c.Query("setId"),
		LocationID: c.Query("locationId"),
		Classname:  c.Query("classname"),
		State:      models.State(c.Query("state")),
		ActiveOnly: c.Query("activeOnly") == "true",
	}
	if raw := c.Query("reserved"); raw != "" {
		reserved := raw == "true"
		filter.Reserved = &reserved
	}
	filter.Page, _ = strconv.Atoi(c.Query("page"))
	filter.PageSize, _ = strconv.Atoi(c.Query("pageSize"))

	internships, pagination, err := h.internships.List(c.Request.Context(), filter, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, internships, pagination)
}

// Get godoc
// @Summary Internship detail
// @Tags Internships
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} response.Envelope
// @Router /internships/{id} [get]
func (h *InternshipHandler) Get(c *gin.Context) {
	detail, err := h.internships.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// NextStates godoc
// @Summary Legal next lifecycle states
// @Tags Internships
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} response.Envelope
// @Router /internships/{id}/next-states [get]
func (h *InternshipHandler) NextStates(c *gin.Context) {
	detail, err := h.internships.Get(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	next := h.lifecycle.AllowedNext(detail.State)
	response.JSON(c, http.StatusOK, dto.NextStatesResponse{
		Current:  detail.State,
		Next:     next,
		Terminal: len(next) == 0,
	}, nil)
}

// ChangeState godoc
// @Summary Move an internship to a new lifecycle state
// @Tags Internships
// @Accept json
// @Produce json
// @Param id path string true "Internship ID"
// @Param payload body dto.ChangeStateRequest true "Requested state"
// @Success 200 {object} response.Envelope
// @Router /internships/{id}/state [patch]
func (h *InternshipHandler) ChangeState(c *gin.Context) {
	var req dto.ChangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "state is required"))
		return
	}
	internship, err := h.lifecycle.Transition(c.Request.Context(), c.Param("id"), req.State, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, internship, nil)
}

// AddDiaryEntry godoc
// @Summary Add a diary entry
// @Tags Internships
// @Accept json
// @Produce json
// @Param id path string true "Internship ID"
// @Param payload body dto.CreateDiaryEntryRequest true "Entry"
// @Success 201 {object} response.Envelope
// @Router /internships/{id}/diary [post]
func (h *InternshipHandler) AddDiaryEntry(c *gin.Context) {
	var req dto.CreateDiaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date and text are required"))
		return
	}
	entry, err := h.internships.AddDiaryEntry(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// ListDiary godoc
// @Summary Internship diary
// @Tags Internships
// @Produce json
// @Param id path string true "Internship ID"
// @Success 200 {object} response.Envelope
// @Router /internships/{id}/diary [get]
func (h *InternshipHandler) ListDiary(c *gin.Context) {
	entries, err := h.internships.ListDiary(c.Request.Context(), c.Param("id"), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
