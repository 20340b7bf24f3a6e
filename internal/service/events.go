package service

import (
	"context"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/apperr"
	"sportsbook/internal/cascade"
	"sportsbook/internal/filter"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type EventService struct {
	Repo    repository.Repository
	Cascade *cascade.Engine
	Logger  *zap.Logger

	// Now is swappable so transition stamps are deterministic in tests.
	Now func() time.Time
}

func (s *EventService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Create inserts a new event under an existing sport. Status and type always
// start at Pending/Preplay; the actual start is stamped later, when the event
// starts.
func (s *EventService) Create(ctx context.Context, fields map[string]string) (map[string]any, error) {
	name := strings.TrimSpace(fields["name"])
	sport := strings.TrimSpace(fields["sport"])
	scheduledRaw := strings.TrimSpace(fields["scheduled-start"])
	if scheduledRaw == "" {
		scheduledRaw = strings.TrimSpace(fields["scheduled_start"])
	}
	if name == "" || sport == "" || scheduledRaw == "" {
		return nil, apperr.Validation("name, sport and scheduled start of event are required")
	}
	scheduledStart, err := filter.ParseTimestamp(scheduledRaw)
	if err != nil {
		return nil, err
	}
	slugValue := strings.TrimSpace(fields["slug"])
	if slugValue == "" {
		slugValue = slug.Make(name)
	}
	active := false
	if raw, ok := fields["active"]; ok && raw != "" {
		parsed, err := filter.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		active = parsed
	}

	parent, err := s.Repo.GetSport(ctx, sport)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if parent == nil {
		return nil, apperr.Validation("unknown sport %q", sport)
	}
	existing, err := s.Repo.GetEvent(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("event %q already exists", name)
	}

	item := &models.Event{
		Name:           name,
		Slug:           slugValue,
		Active:         active,
		Type:           models.TypePreplay,
		Sport:          sport,
		Status:         models.StatusPending,
		ScheduledStart: scheduledStart,
	}
	if err := s.Repo.CreateEvent(ctx, item); err != nil {
		return nil, storeErr(err, "event %q already exists", name)
	}
	if s.Logger != nil {
		s.Logger.Info("event created", zap.String("name", name), zap.String("sport", sport))
	}
	return item.Record(), nil
}

func (s *EventService) Search(ctx context.Context, params map[string]string) ([]map[string]any, error) {
	listParams, err := filter.Events(params)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListEvents(ctx, listParams)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, item.Record())
	}
	return records, nil
}

// Update applies a partial field delta and runs the cascade in the same
// transaction when the write deactivates the event. Name and sport are
// immutable keys; type and actual_start only ever change as status side
// effects.
func (s *EventService) Update(ctx context.Context, name string, delta map[string]string) (map[string]any, error) {
	if len(delta) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	current, err := s.Repo.GetEvent(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if current == nil {
		return nil, apperr.NotFound("event %q not found", name)
	}

	fields := map[string]any{}
	var nextStatus *models.EventStatus
	deactivated := false
	for key, value := range delta {
		switch columnName(key) {
		case "slug":
			fields["slug"] = value
		case "active":
			parsed, err := filter.ParseBool(value)
			if err != nil {
				return nil, err
			}
			fields["active"] = parsed
			if !parsed {
				deactivated = true
			}
		case "status":
			parsed, err := models.ParseEventStatus(value)
			if err != nil {
				return nil, apperr.Validation("%s", err.Error())
			}
			if current.Status.Terminal() && parsed != current.Status {
				return nil, apperr.Validation("status %q is terminal", current.Status)
			}
			fields["status"] = parsed
			if parsed != current.Status {
				nextStatus = &parsed
			}
		case "scheduled_start":
			parsed, err := filter.ParseTimestamp(value)
			if err != nil {
				return nil, err
			}
			fields["scheduled_start"] = parsed
		case "name":
			return nil, apperr.Validation("name cannot be updated")
		case "sport":
			return nil, apperr.Validation("sport cannot be updated")
		case "type", "actual_start":
			return nil, apperr.Validation("%s changes only as a status side effect", columnName(key))
		default:
			return nil, apperr.Validation("unknown event field %q", key)
		}
	}

	if nextStatus != nil {
		for column, value := range cascade.StatusEffects(*nextStatus, s.now()) {
			fields[column] = value
		}
		if nextStatus.Terminal() {
			deactivated = true
		}
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateEventTx(ctx, tx, name, fields); err != nil {
			return err
		}
		if deactivated {
			return s.Cascade.EventDeactivated(ctx, tx, current.Sport)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	updated, err := s.Repo.GetEvent(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("event %q not found", name)
	}
	return updated.Record(), nil
}

// Delete removes an event unless selections still reference it. Unknown names
// delete as a no-op.
func (s *EventService) Delete(ctx context.Context, name string) error {
	children, err := s.Repo.CountSelectionsByEvent(ctx, name)
	if err != nil {
		return apperr.Storage(err)
	}
	if children > 0 {
		return apperr.Conflict("event %q still has selections", name)
	}
	if _, err := s.Repo.DeleteEvent(ctx, name); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
