package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// Slices keep insertion order; list filters are not applied because the
// services under test only consume what comes back.
type stubRepo struct {
	sports     []*models.Sport
	events     []*models.Event
	selections []*models.Selection
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) CreateSport(ctx context.Context, item *models.Sport) error {
	if existing, _ := s.GetSport(ctx, item.Name); existing != nil {
		return gorm.ErrDuplicatedKey
	}
	s.sports = append(s.sports, item)
	return nil
}

func (s *stubRepo) GetSport(ctx context.Context, name string) (*models.Sport, error) {
	for _, item := range s.sports {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) GetSportTx(ctx context.Context, tx *gorm.DB, name string) (*models.Sport, error) {
	return s.GetSport(ctx, name)
}

func (s *stubRepo) ListSports(ctx context.Context, params repository.ListSportsParams) ([]models.Sport, error) {
	out := make([]models.Sport, 0, len(s.sports))
	for _, item := range s.sports {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubRepo) UpdateSportTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	item, _ := s.GetSport(ctx, name)
	if item == nil {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "slug":
			item.Slug = value.(string)
		case "active":
			item.Active = value.(bool)
		}
	}
	return nil
}

func (s *stubRepo) DeleteSport(ctx context.Context, name string) (int64, error) {
	for i, item := range s.sports {
		if item.Name == name {
			s.sports = append(s.sports[:i], s.sports[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubRepo) CreateEvent(ctx context.Context, item *models.Event) error {
	if existing, _ := s.GetEvent(ctx, item.Name); existing != nil {
		return gorm.ErrDuplicatedKey
	}
	s.events = append(s.events, item)
	return nil
}

func (s *stubRepo) GetEvent(ctx context.Context, name string) (*models.Event, error) {
	for _, item := range s.events {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) GetEventTx(ctx context.Context, tx *gorm.DB, name string) (*models.Event, error) {
	return s.GetEvent(ctx, name)
}

func (s *stubRepo) ListEvents(ctx context.Context, params repository.ListEventsParams) ([]models.Event, error) {
	out := make([]models.Event, 0, len(s.events))
	for _, item := range s.events {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubRepo) UpdateEventTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	item, _ := s.GetEvent(ctx, name)
	if item == nil {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "slug":
			item.Slug = value.(string)
		case "active":
			item.Active = value.(bool)
		case "status":
			item.Status = value.(models.EventStatus)
		case "type":
			item.Type = value.(models.EventType)
		case "scheduled_start":
			item.ScheduledStart = value.(time.Time)
		case "actual_start":
			ts := value.(time.Time)
			item.ActualStart = &ts
		}
	}
	return nil
}

func (s *stubRepo) DeleteEvent(ctx context.Context, name string) (int64, error) {
	for i, item := range s.events {
		if item.Name == name {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubRepo) CreateSelection(ctx context.Context, item *models.Selection) error {
	if existing, _ := s.GetSelection(ctx, item.Name); existing != nil {
		return gorm.ErrDuplicatedKey
	}
	s.selections = append(s.selections, item)
	return nil
}

func (s *stubRepo) GetSelection(ctx context.Context, name string) (*models.Selection, error) {
	for _, item := range s.selections {
		if item.Name == name {
			return item, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListSelections(ctx context.Context, params repository.ListSelectionsParams) ([]models.Selection, error) {
	out := make([]models.Selection, 0, len(s.selections))
	for _, item := range s.selections {
		out = append(out, *item)
	}
	return out, nil
}

func (s *stubRepo) UpdateSelectionTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	item, _ := s.GetSelection(ctx, name)
	if item == nil {
		return nil
	}
	for key, value := range fields {
		switch key {
		case "price":
			item.Price = value.(decimal.Decimal)
		case "active":
			item.Active = value.(bool)
		case "outcome":
			item.Outcome = value.(models.SelectionOutcome)
		}
	}
	return nil
}

func (s *stubRepo) DeleteSelection(ctx context.Context, name string) (int64, error) {
	for i, item := range s.selections {
		if item.Name == name {
			s.selections = append(s.selections[:i], s.selections[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *stubRepo) CountEventsBySport(ctx context.Context, sport string) (int64, error) {
	var n int64
	for _, item := range s.events {
		if item.Sport == sport {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) CountSelectionsByEvent(ctx context.Context, event string) (int64, error) {
	var n int64
	for _, item := range s.selections {
		if item.Event == event {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) CountActiveEventsTx(ctx context.Context, tx *gorm.DB, sport string) (int64, error) {
	var n int64
	for _, item := range s.events {
		if item.Sport == sport && item.Active {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) CountActiveSelectionsTx(ctx context.Context, tx *gorm.DB, event string) (int64, error) {
	var n int64
	for _, item := range s.selections {
		if item.Event == event && item.Active {
			n++
		}
	}
	return n, nil
}

func (s *stubRepo) ListActiveSports(ctx context.Context) ([]models.Sport, error) {
	var out []models.Sport
	for _, item := range s.sports {
		if item.Active {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	for _, item := range s.events {
		if item.Active {
			out = append(out, *item)
		}
	}
	return out, nil
}
