package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sportsbook/internal/apperr"
	"sportsbook/internal/filter"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type SportService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

// Create inserts a new sport. The slug is derived from the name when absent;
// a new sport starts inactive unless the caller says otherwise.
func (s *SportService) Create(ctx context.Context, fields map[string]string) (map[string]any, error) {
	name := strings.TrimSpace(fields["name"])
	if name == "" {
		return nil, apperr.Validation("name of sport is required")
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

	existing, err := s.Repo.GetSport(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("sport %q already exists", name)
	}

	item := &models.Sport{Name: name, Slug: slugValue, Active: active}
	if err := s.Repo.CreateSport(ctx, item); err != nil {
		return nil, storeErr(err, "sport %q already exists", name)
	}
	if s.Logger != nil {
		s.Logger.Info("sport created", zap.String("name", name))
	}
	return item.Record(), nil
}

// Search lists sports matching the given filter parameters.
func (s *SportService) Search(ctx context.Context, params map[string]string) ([]map[string]any, error) {
	listParams, err := filter.Sports(params)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListSports(ctx, listParams)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	records := make([]map[string]any, 0, len(items))
	for _, item := range items {
		records = append(records, item.Record())
	}
	return records, nil
}

// Update applies a partial field delta. The name is the primary key and can
// never change. A sport's activity only moves by direct update; the cascade
// never runs from here because sports have no parent.
func (s *SportService) Update(ctx context.Context, name string, delta map[string]string) (map[string]any, error) {
	if len(delta) == 0 {
		return nil, apperr.Validation("no fields to update")
	}
	current, err := s.Repo.GetSport(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if current == nil {
		return nil, apperr.NotFound("sport %q not found", name)
	}

	fields := map[string]any{}
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
		case "name":
			return nil, apperr.Validation("name cannot be updated")
		default:
			return nil, apperr.Validation("unknown sport field %q", key)
		}
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.UpdateSportTx(ctx, tx, name, fields)
	})
	if err != nil {
		return nil, apperr.Storage(err)
	}

	updated, err := s.Repo.GetSport(ctx, name)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("sport %q not found", name)
	}
	return updated.Record(), nil
}

// Delete removes a sport. Deleting a sport that still owns events is a
// referential-integrity conflict; deleting an unknown name is a no-op.
func (s *SportService) Delete(ctx context.Context, name string) error {
	children, err := s.Repo.CountEventsBySport(ctx, name)
	if err != nil {
		return apperr.Storage(err)
	}
	if children > 0 {
		return apperr.Conflict("sport %q still has events", name)
	}
	if _, err := s.Repo.DeleteSport(ctx, name); err != nil {
		return apperr.Storage(err)
	}
	return nil
}
