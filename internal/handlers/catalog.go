package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/team-management-api/internal/dto"
	apierrors "github.com/yukikurage/team-management-api/internal/errors"
	"github.com/yukikurage/team-management-api/internal/models"
	"github.com/yukikurage/team-management-api/internal/services"
)

// CatalogHandler serves one lookup table: positions, task types or tags.
type CatalogHandler[T models.CatalogEntry] struct {
	service *services.CatalogService[T]
}

func NewCatalogHandler[T models.CatalogEntry](service *services.CatalogService[T]) *CatalogHandler[T] {
	return &CatalogHandler[T]{service: service}
}

func (h *CatalogHandler[T]) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": dto.Map(entries, dto.ToCatalogItem[T])})
}

func (h *CatalogHandler[T]) Create(c *gin.Context) {
	var req services.CatalogInput
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCatalogItem(*entry))
}

func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
