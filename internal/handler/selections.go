package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportsbook/internal/service"
)

type SelectionHandler struct {
	Service *service.SelectionService
	Logger  *zap.Logger
}

func (h *SelectionHandler) Register(r *gin.Engine) {
	group := r.Group("/api/selections")
	group.POST("", h.create)
	group.GET("", h.search)
	group.PUT("/:name", h.update)
	group.DELETE("/:name", h.remove)
}

// @Summary Create a selection
// @Tags selections
// @Param name query string true "selection name"
// @Param event query string true "parent event name"
// @Param price query number true "price, rendered with two fraction digits"
// @Param active query bool false "active flag"
// @Success 201 {object} apiResponse
// @Router /api/selections [post]
func (h *SelectionHandler) create(c *gin.Context) {
	record, err := h.Service.Create(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Created(c, record)
}

// @Summary Search selections
// @Tags selections
// @Param min-price query number false "minimum price"
// @Param max-price query number false "maximum price"
// @Param name-start query string false "name prefix"
// @Param name-end query string false "name suffix"
// @Param name-contains query string false "name substring"
// @Param name query string false "exact name"
// @Param event query string false "exact parent event"
// @Param price query number false "exact price"
// @Param active query bool false "active flag"
// @Param outcome query string false "Unsettled|Win|Lose|Void"
// @Success 200 {object} apiResponse
// @Router /api/selections [get]
func (h *SelectionHandler) search(c *gin.Context) {
	records, err := h.Service.Search(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, records, map[string]any{"total": len(records)})
}

// @Summary Update a selection
// @Tags selections
// @Param name path string true "selection name"
// @Param price query number false "new price"
// @Param active query bool false "new active flag"
// @Param outcome query string false "new outcome (terminal once settled)"
// @Success 200 {object} apiResponse
// @Router /api/selections/{name} [put]
func (h *SelectionHandler) update(c *gin.Context) {
	record, err := h.Service.Update(c.Request.Context(), c.Param("name"), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, record, nil)
}

// @Summary Delete a selection
// @Tags selections
// @Param name path string true "selection name"
// @Success 200 {object} apiResponse
// @Router /api/selections/{name} [delete]
func (h *SelectionHandler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, nil, nil)
}
