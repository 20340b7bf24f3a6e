package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportsbook/internal/service"
)

type SportHandler struct {
	Service *service.SportService
	Logger  *zap.Logger
}

func (h *SportHandler) Register(r *gin.Engine) {
	group := r.Group("/api/sports")
	group.POST("", h.create)
	group.GET("", h.search)
	group.PUT("/:name", h.update)
	group.DELETE("/:name", h.remove)
}

// @Summary Create a sport
// @Tags sports
// @Param name query string true "sport name"
// @Param slug query string false "slug (derived from name when absent)"
// @Param active query bool false "active flag"
// @Success 201 {object} apiResponse
// @Router /api/sports [post]
func (h *SportHandler) create(c *gin.Context) {
	record, err := h.Service.Create(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Created(c, record)
}

// @Summary Search sports
// @Tags sports
// @Param min-events query int false "minimum active events"
// @Param name-start query string false "name prefix"
// @Param name-end query string false "name suffix"
// @Param name-contains query string false "name substring"
// @Param name query string false "exact name"
// @Param slug query string false "exact slug"
// @Param active query bool false "active flag"
// @Success 200 {object} apiResponse
// @Router /api/sports [get]
func (h *SportHandler) search(c *gin.Context) {
	records, err := h.Service.Search(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, records, map[string]any{"total": len(records)})
}

// @Summary Update a sport
// @Tags sports
// @Param name path string true "sport name"
// @Param slug query string false "new slug"
// @Param active query bool false "new active flag"
// @Success 200 {object} apiResponse
// @Router /api/sports/{name} [put]
func (h *SportHandler) update(c *gin.Context) {
	record, err := h.Service.Update(c.Request.Context(), c.Param("name"), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, record, nil)
}

// @Summary Delete a sport
// @Tags sports
// @Param name path string true "sport name"
// @Success 200 {object} apiResponse
// @Router /api/sports/{name} [delete]
func (h *SportHandler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, nil, nil)
}
