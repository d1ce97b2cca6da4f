package handlers

import (
	"net/http"
	"strconv"

	"decorhub/models"
	"decorhub/services/catalog"
	"decorhub/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes catalog CRUD and search.
type CatalogHandler struct {
	Svc *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// CreateService handles POST /services.
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	created, err := h.Svc.Create(c.Request.Context(), &svc, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// SearchServices handles GET /services?search=&category=&minPrice=&maxPrice=.
func (h *CatalogHandler) SearchServices(c *gin.Context) {
	f := models.ServiceFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	var err error
	if f.MinPrice, err = queryPrice(c, "minPrice"); err != nil {
		respondError(c, err)
		return
	}
	if f.MaxPrice, err = queryPrice(c, "maxPrice"); err != nil {
		respondError(c, err)
		return
	}
	items, err := h.Svc.Search(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func queryPrice(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, utils.Validation("%s must be a non-negative number", name)
	}
	return &v, nil
}

// GetService handles GET /services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// UpdateService handles PATCH /services/:id.
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var upd models.ServiceUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		badRequest(c, "invalid input", err)
		return
	}
	svc, err := h.Svc.Update(c.Request.Context(), c.Param("id"), upd, currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// DeleteService handles DELETE /services/:id.
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), currentEmail(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Categories handles GET /services/categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.Svc.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// MyProjects handles GET /my-projects.
func (h *CatalogHandler) MyProjects(c *gin.Context) {
	items, err := h.Svc.ListByDecorator(c.Request.Context(), currentEmail(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
