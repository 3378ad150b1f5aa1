package equipment

import (
	"errors"
	"net/http"
	"strconv"

	"mms/internal/domain"
	"mms/internal/middleware"
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
	g := rg.Group("/equipment")
	{
		g.GET("", h.List)
		g.GET("/hierarchy", h.Hierarchy)
		g.GET("/:id", h.Get)
		g.GET("/:id/children", h.Children)
		g.GET("/:id/path", h.FullPath)
		g.POST("", h.Create)
		g.PUT("/:id", h.Update)
		g.PUT("/:id/parent", h.SetParent)
		g.POST("/:id/health/recalculate", h.RecalculateHealth)
		g.DELETE("/:id", middleware.RequireRole(string(domain.RoleAdmin)), h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	level, _ := strconv.Atoi(c.Query("level"))

	f := repository.EquipmentFilter{
		Search:      c.Query("search"),
		Level:       level,
		Criticality: domain.Criticality(c.Query("criticality")),
		Status:      domain.EquipmentStatus(c.Query("status")),
		Type:        domain.EquipmentType(c.Query("type")),
		Page:        page,
		Limit:       limit,
	}
	if v := c.Query("parent"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ParentID = &id
		}
	}

	items, total, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"total": total,
		"page":  page,
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	e, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Children(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	children, err := h.service.Children(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, children)
}

func (h *Handler) FullPath(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	path, err := h.service.FullPath(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"path": path})
}

func (h *Handler) Hierarchy(c *gin.Context) {
	tree, err := h.service.Hierarchy(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tree)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	e, err := h.service.Create(c.Request.Context(), req, currentUserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, e)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	e, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) SetParent(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req SetParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	e, err := h.service.SetParent(c.Request.Context(), id, req.ParentID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) RecalculateHealth(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	e, err := h.service.RecalculateHealth(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, e)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

func currentUserID(c *gin.Context) int64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrHierarchyViolation):
		response.Error(c, http.StatusBadRequest, "HIERARCHY_VIOLATION", err.Error())
	case errors.Is(err, ErrHasActiveChildren):
		response.Error(c, http.StatusBadRequest, "HAS_ACTIVE_CHILDREN", err.Error())
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}
