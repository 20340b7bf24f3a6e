// Package cascade re-derives the "active" flags up the selection→event→sport
// hierarchy after a child-level write. The cascade only ever switches activity
// off; switching a row back on is always a direct update to that row.
package cascade

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// Store is the slice of the entity store the engine needs. All calls run on
// the caller's transaction handle so a failed propagation rolls back the
// triggering update with it.
type Store interface {
	GetEventTx(ctx context.Context, tx *gorm.DB, name string) (*models.Event, error)
	GetSportTx(ctx context.Context, tx *gorm.DB, name string) (*models.Sport, error)
	CountActiveSelectionsTx(ctx context.Context, tx *gorm.DB, event string) (int64, error)
	CountActiveEventsTx(ctx context.Context, tx *gorm.DB, sport string) (int64, error)
	UpdateEventTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error
	UpdateSportTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error
}

// SettlementDeactivates reports whether an outcome transition forces the
// selection inactive. Any outcome other than Unsettled does.
func SettlementDeactivates(outcome models.SelectionOutcome) bool {
	return outcome.Settled()
}

// ParentRemainsActive is the recompute rule shared by both levels: a parent
// keeps its flag while at least one direct child is active. A parent with no
// children is never reached here, because the recompute only runs in response
// to a child write.
func ParentRemainsActive(activeChildren int64) bool {
	return activeChildren > 0
}

// StatusEffects returns the field writes a status transition forces alongside
// the status itself: Started stamps the actual start and flips the event
// in-play; the terminal states force the event inactive.
func StatusEffects(next models.EventStatus, now time.Time) map[string]any {
	switch {
	case next == models.StatusStarted:
		return map[string]any{
			"actual_start": now.UTC(),
			"type":         models.TypeInplay,
		}
	case next.Terminal():
		return map[string]any{"active": false}
	}
	return nil
}

type Engine struct {
	Store  Store
	Logger *zap.Logger
}

// SelectionChanged recomputes the parent event after a selection's activity or
// outcome changed. If the event loses its last active selection it is
// deactivated and the sport is recomputed in turn.
func (e *Engine) SelectionChanged(ctx context.Context, tx *gorm.DB, eventName string) error {
	active, err := e.Store.CountActiveSelectionsTx(ctx, tx, eventName)
	if err != nil {
		return err
	}
	if ParentRemainsActive(active) {
		return nil
	}
	event, err := e.Store.GetEventTx(ctx, tx, eventName)
	if err != nil {
		return err
	}
	if event == nil || !event.Active {
		return nil
	}
	if err := e.Store.UpdateEventTx(ctx, tx, eventName, map[string]any{"active": false}); err != nil {
		return err
	}
	if e.Logger != nil {
		e.Logger.Info("event deactivated by cascade",
			zap.String("event", eventName),
			zap.String("sport", event.Sport),
		)
	}
	return e.EventDeactivated(ctx, tx, event.Sport)
}

// EventDeactivated recomputes the sport after one of its events went inactive,
// whether through settlement, a terminal status, or a direct update.
func (e *Engine) EventDeactivated(ctx context.Context, tx *gorm.DB, sportName string) error {
	active, err := e.Store.CountActiveEventsTx(ctx, tx, sportName)
	if err != nil {
		return err
	}
	if ParentRemainsActive(active) {
		return nil
	}
	sport, err := e.Store.GetSportTx(ctx, tx, sportName)
	if err != nil {
		return err
	}
	if sport == nil || !sport.Active {
		return nil
	}
	if err := e.Store.UpdateSportTx(ctx, tx, sportName, map[string]any{"active": false}); err != nil {
		return err
	}
	if e.Logger != nil {
		e.Logger.Info("sport deactivated by cascade", zap.String("sport", sportName))
	}
	return nil
}
