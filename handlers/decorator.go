package handlers

import (
	"net/http"

	"decorhub/models"
	"decorhub/services/decorator"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
)

// DecoratorHandler exposes decorator applications and their administration.
type DecoratorHandler struct {
	Svc *decorator.Service
}

func NewDecoratorHandler(svc *decorator.Service) *DecoratorHandler {
	return &DecoratorHandler{Svc: svc}
}

// Apply handles POST /become-decorator.
func (h *DecoratorHandler) Apply(c *gin.Context) {
	var app decorator.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	d, err := h.Svc.Apply(c.Request.Context(), app, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// ListDecorators handles GET /decorators?status=&workStatus=&district=.
func (h *DecoratorHandler) ListDecorators(c *gin.Context) {
	f := models.DecoratorFilter{District: c.Query("district")}
	if raw := c.Query("status"); raw != "" {
		st, err := models.ParseDecoratorStatus(raw)
		if err != nil {
			respondError(c, utils.Validation("%v", err))
			return
		}
		f.Status = st
	}
	if raw := c.Query("workStatus"); raw != "" {
		ws, err := models.ParseWorkStatus(raw)
		if err != nil {
			respondError(c, utils.Validation("%v", err))
			return
		}
		f.WorkStatus = ws
	}
	items, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetDecorator handles GET /decorators/:id.
func (h *DecoratorHandler) GetDecorator(c *gin.Context) {
	d, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UpdateStatus handles PATCH /decorators/:id.
func (h *DecoratorHandler) UpdateStatus(c *gin.Context) {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	d, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), in.Status, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DeleteDecorator handles DELETE /decorators/:id.
func (h *DecoratorHandler) DeleteDecorator(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), currentEmail(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
