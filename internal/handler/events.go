package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportsbook/internal/service"
)

type EventHandler struct {
	Service *service.EventService
	Logger  *zap.Logger
}

func (h *EventHandler) Register(r *gin.Engine) {
	group := r.Group("/api/events")
	group.POST("", h.create)
	group.GET("", h.search)
	group.PUT("/:name", h.update)
	group.DELETE("/:name", h.remove)
}

// @Summary Create an event
// @Tags events
// @Param name query string true "event name"
// @Param sport query string true "parent sport name"
// @Param scheduled-start query string true "scheduled start (RFC3339, stored UTC)"
// @Param slug query string false "slug (derived from name when absent)"
// @Param active query bool false "active flag"
// @Success 201 {object} apiResponse
// @Router /api/events [post]
func (h *EventHandler) create(c *gin.Context) {
	record, err := h.Service.Create(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Created(c, record)
}

// @Summary Search events
// @Tags events
// @Param min-selections query int false "minimum active selections"
// @Param timeframe query string false "scheduled to start between now and this timestamp"
// @Param name-start query string false "name prefix"
// @Param name-end query string false "name suffix"
// @Param name-contains query string false "name substring"
// @Param name query string false "exact name"
// @Param slug query string false "exact slug"
// @Param sport query string false "exact parent sport"
// @Param active query bool false "active flag"
// @Param type query string false "Preplay|Inplay"
// @Param status query string false "Pending|Started|Ended|Cancelled"
// @Success 200 {object} apiResponse
// @Router /api/events [get]
func (h *EventHandler) search(c *gin.Context) {
	records, err := h.Service.Search(c.Request.Context(), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, records, map[string]any{"total": len(records)})
}

// @Summary Update an event
// @Tags events
// @Param name path string true "event name"
// @Param slug query string false "new slug"
// @Param active query bool false "new active flag"
// @Param status query string false "new status"
// @Param scheduled-start query string false "new scheduled start"
// @Success 200 {object} apiResponse
// @Router /api/events/{name} [put]
func (h *EventHandler) update(c *gin.Context) {
	record, err := h.Service.Update(c.Request.Context(), c.Param("name"), queryParams(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, record, nil)
}

// @Summary Delete an event
// @Tags events
// @Param name path string true "event name"
// @Success 200 {object} apiResponse
// @Router /api/events/{name} [delete]
func (h *EventHandler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("name")); err != nil {
		fail(c, h.Logger, err)
		return
	}
	Ok(c, nil, nil)
}
