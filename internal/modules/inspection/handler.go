package inspection

import (
	"errors"
	"net/http"
	"strconv"

	"mms/internal/domain"
	"mms/internal/pkg/response"
	"mms/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/inspections")
	{
		g.GET("", h.List)
		g.GET("/templates", h.ListTemplates)
		g.POST("/templates", h.CreateTemplate)
		g.PUT("/templates/:id", h.UpdateTemplate)
		g.GET("/:id", h.Get)
		g.POST("", h.Create)
		g.PUT("/:id/journey", h.SaveJourney)
		g.POST("/:id/complete", h.Complete)
		g.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	equipmentID, _ := strconv.ParseInt(c.Query("equipment"), 10, 64)
	assignedTo, _ := strconv.ParseInt(c.Query("assigned_to"), 10, 64)

	f := repository.InspectionFilter{
		EquipmentID: equipmentID,
		Status:      domain.InspectionStatus(c.Query("status")),
		Type:        c.Query("type"),
		AssignedTo:  assignedTo,
		Search:      c.Query("search"),
		Page:        page,
		Limit:       limit,
	}

	items, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	i, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	i, err := h.service.Create(c.Request.Context(), req, h.userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, i)
}

func (h *Handler) SaveJourney(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req SaveJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	i, err := h.service.SaveJourney(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req CompleteInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.service.Complete(c.Request.Context(), id, req, h.userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	i, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}

func (h *Handler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.CreateTemplate(c.Request.Context(), req, h.userID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) UpdateTemplate(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req UpdateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	t, err := h.service.UpdateTemplate(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) ListTemplates(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") == "true"

	templates, err := h.service.ListTemplates(c.Request.Context(), activeOnly)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, templates)
}

func (h *Handler) paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) userID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrEquipmentNotFound), errors.Is(err, ErrTemplateNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrIncompleteSafetyChecks):
		response.Error(c, http.StatusBadRequest, "INCOMPLETE_SAFETY_CHECKS", err.Error())
	case errors.Is(err, ErrIncompleteMandatoryCheckpoints):
		response.Error(c, http.StatusBadRequest, "INCOMPLETE_MANDATORY_CHECKPOINTS", err.Error())
	case errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrCancelled):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
