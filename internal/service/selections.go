package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/apperr"
	"sportsbook/internal/cascade"
	"sportsbook/internal/filter"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type SelectionService struct {
	Repo    repository.Repository
	Cascade *cascade.Engine
	Logger  *zap.Logger
}

// Create inserts a new selection under an existing event. Every selection
// starts unsettled; the price is normalized to two fraction digits.
func (s *SelectionService) Create(ctx context.Context, fields map[string]string) (map[string]any, error) {
	name := strings.TrimSpace(fields["name"])
	event := strings.TrimSpace(fields["event"])
	priceRaw := strings.TrimSpace(fields["price"])
	if name == "" || event == "" || priceRaw == "" {
		return nil, apperr.Validation("name, event and price of selection are required")
	}
	price, err := filter.ParsePrice(priceRaw)
	if err != nil {
		return nil, err
	}
	active := false
	if raw, ok := fields["active"]; ok && raw != "" {
		parsed, err := filter.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		active = parsed
	}

	parent, err := s.Repo.GetEvent(ctx, event)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if parent == nil {
		return nil, apperr.Validation("unknown event %q", event)
	}
	existing, err := s.Repo.GetSelection(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("selection %q already exists", name)
	}

	item := &models.Selection{
		Name:    name,
		Event:   event,
		Price:   price,
		Active:  active,
		Outcome: models.OutcomeUnsettled,
	}
	if err := s.Repo.CreateSelection(ctx, item); err != nil {
		return nil, storeErr(err, "selection %q already exists", name)
	}
	if s.Logger != nil {
		s.Logger.Info("selection created", zap.String("name", name), zap.String("event", event))
	}
	return item.Record(), nil
}

func (s *SelectionService) Search(ctx context.Context, params map[string]string) ([]map[string]any, error) {
	listParams, err := filter.Selections(params)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListSelections(ctx, listParams)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, item.Record())
	}
	return records, nil
}

// Update applies a partial field delta. Settling a selection forces it
// inactive regardless of what else the delta says, and any activity or
// outcome change recomputes the parent chain inside the same transaction.
func (s *SelectionService) Update(ctx context.Context, name string, delta map[string]string) (map[string]any, error) {
	if len(delta) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	current, err := s.Repo.GetSelection(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if current == nil {
		return nil, apperr.NotFound("selection %q not found", name)
	}

	fields := map[string]any{}
	settled := false
	activityTouched := false
	for key, value := range delta {
		switch columnName(key) {
		case "price":
			parsed, err := filter.ParsePrice(value)
			if err != nil {
				return nil, err
			}
			fields["price"] = parsed
		case "active":
			parsed, err := filter.ParseBool(value)
			if err != nil {
				return nil, err
			}
			fields["active"] = parsed
			activityTouched = true
		case "outcome":
			parsed, err := models.ParseSelectionOutcome(value)
			if err != nil {
				return nil, apperr.Validation("%s", err.Error())
			}
			if current.Outcome.Settled() && parsed != current.Outcome {
				return nil, apperr.Validation("outcome %q is terminal", current.Outcome)
			}
			fields["outcome"] = parsed
			if parsed != current.Outcome {
				activityTouched = true
				settled = cascade.SettlementDeactivates(parsed)
			}
		case "name":
			return nil, apperr.Validation("name cannot be updated")
		case "event":
			return nil, apperr.Validation("event cannot be updated")
		default:
			return nil, apperr.Validation("unknown selection field %q", key)
		}
	}
	if settled {
		fields["active"] = false
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.UpdateSelectionTx(ctx, tx, name, fields); err != nil {
			return err
		}
		if activityTouched {
			return s.Cascade.SelectionChanged(ctx, tx, current.Event)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	updated, err := s.Repo.GetSelection(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("selection %q not found", name)
	}
	return updated.Record(), nil
}

// Delete removes a selection; unknown names delete as a no-op.
func (s *SelectionService) Delete(ctx context.Context, name string) error {
	if _, err := s.Repo.DeleteSelection(ctx, name); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
