package gormrepository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// conn picks the transaction handle when one is in flight.
func (s *Store) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx.WithContext(ctx)
	}
	return s.db.WithContext(ctx)
}

// --- sports -----------------------------------------------------------------

func (s *Store) CreateSport(ctx context.Context, item *models.Sport) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetSport(ctx context.Context, name string) (*models.Sport, error) {
	return s.GetSportTx(ctx, nil, name)
}

func (s *Store) GetSportTx(ctx context.Context, tx *gorm.DB, name string) (*models.Sport, error) {
	var item models.Sport
	if err := s.conn(ctx, tx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSports(ctx context.Context, params repository.ListSportsParams) ([]models.Sport, error) {
	query := s.db.WithContext(ctx).Model(&models.Sport{})
	if params.MinEvents != nil {
		sub := s.db.Model(&models.Event{}).
			Select("sport").
			Group("sport").
			Having("SUM((active)::int) >= ?", *params.MinEvents)
		query = query.Where("name IN (?)", sub)
	}
	query = applyNameMatch(query, params.NameStart, params.NameEnd, params.NameContains)
	if params.Name != nil {
		query = query.Where("name = ?", *params.Name)
	}
	if params.Slug != nil {
		query = query.Where("slug = ?", *params.Slug)
	}
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}
	query = applyTimestamps(query, params.CreatedAt, params.UpdatedAt)
	var items []models.Sport
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateSportTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	return s.conn(ctx, tx).Model(&models.Sport{}).Where("name = ?", name).Updates(fields).Error
}

func (s *Store) DeleteSport(ctx context.Context, name string) (int64, error) {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Sport{})
	return res.RowsAffected, res.Error
}

// --- events -----------------------------------------------------------------

func (s *Store) CreateEvent(ctx context.Context, item *models.Event) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetEvent(ctx context.Context, name string) (*models.Event, error) {
	return s.GetEventTx(ctx, nil, name)
}

func (s *Store) GetEventTx(ctx context.Context, tx *gorm.DB, name string) (*models.Event, error) {
	var item models.Event
	if err := s.conn(ctx, tx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListEvents(ctx context.Context, params repository.ListEventsParams) ([]models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if params.MinSelections != nil {
		sub := s.db.Model(&models.Selection{}).
			Select("event").
			Group("event").
			Having("SUM((active)::int) >= ?", *params.MinSelections)
		query = query.Where("name IN (?)", sub)
	}
	if params.TimeframeUntil != nil {
		query = query.Where("scheduled_start BETWEEN ? AND ?", time.Now().UTC(), params.TimeframeUntil.UTC())
	}
	query = applyNameMatch(query, params.NameStart, params.NameEnd, params.NameContains)
	if params.Name != nil {
		query = query.Where("name = ?", *params.Name)
	}
	if params.Slug != nil {
		query = query.Where("slug = ?", *params.Slug)
	}
	if params.Sport != nil {
		query = query.Where("sport = ?", *params.Sport)
	}
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.ScheduledStart != nil {
		query = query.Where("scheduled_start = ?", params.ScheduledStart.UTC())
	}
	if params.ActualStart != nil {
		query = query.Where("actual_start = ?", params.ActualStart.UTC())
	}
	query = applyTimestamps(query, params.CreatedAt, params.UpdatedAt)
	var items []models.Event
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateEventTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	return s.conn(ctx, tx).Model(&models.Event{}).Where("name = ?", name).Updates(fields).Error
}

func (s *Store) DeleteEvent(ctx context.Context, name string) (int64, error) {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Event{})
	return res.RowsAffected, res.Error
}

// --- selections -------------------------------------------------------------

func (s *Store) CreateSelection(ctx context.Context, item *models.Selection) error {
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetSelection(ctx context.Context, name string) (*models.Selection, error) {
	var item models.Selection
	if err := s.db.WithContext(ctx).First(&item, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSelections(ctx context.Context, params repository.ListSelectionsParams) ([]models.Selection, error) {
	query := s.db.WithContext(ctx).Model(&models.Selection{})
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	query = applyNameMatch(query, params.NameStart, params.NameEnd, params.NameContains)
	if params.Name != nil {
		query = query.Where("name = ?", *params.Name)
	}
	if params.Event != nil {
		query = query.Where("event = ?", *params.Event)
	}
	if params.Price != nil {
		query = query.Where("price = ?", *params.Price)
	}
	if params.Active != nil {
		query = query.Where("active = ?", *params.Active)
	}
	if params.Outcome != nil {
		query = query.Where("outcome = ?", *params.Outcome)
	}
	query = applyTimestamps(query, params.CreatedAt, params.UpdatedAt)
	var items []models.Selection
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateSelectionTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error {
	return s.conn(ctx, tx).Model(&models.Selection{}).Where("name = ?", name).Updates(fields).Error
}

func (s *Store) DeleteSelection(ctx context.Context, name string) (int64, error) {
	res := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Selection{})
	return res.RowsAffected, res.Error
}

// --- child counts -----------------------------------------------------------

func (s *Store) CountEventsBySport(ctx context.Context, sport string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Event{}).Where("sport = ?", sport).Count(&total).Error
	return total, err
}

func (s *Store) CountSelectionsByEvent(ctx context.Context, event string) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&models.Selection{}).Where("event = ?", event).Count(&total).Error
	return total, err
}

func (s *Store) CountActiveEventsTx(ctx context.Context, tx *gorm.DB, sport string) (int64, error) {
	var total int64
	err := s.conn(ctx, tx).Model(&models.Event{}).
		Where("sport = ?", sport).
		Where("active = ?", true).
		Count(&total).Error
	return total, err
}

func (s *Store) CountActiveSelectionsTx(ctx context.Context, tx *gorm.DB, event string) (int64, error) {
	var total int64
	err := s.conn(ctx, tx).Model(&models.Selection{}).
		Where("event = ?", event).
		Where("active = ?", true).
		Count(&total).Error
	return total, err
}

// --- audit sweeps -----------------------------------------------------------

func (s *Store) ListActiveSports(ctx context.Context) ([]models.Sport, error) {
	var items []models.Sport
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListActiveEvents(ctx context.Context) ([]models.Event, error) {
	var items []models.Event
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyTimestamps(query *gorm.DB, createdAt, updatedAt *time.Time) *gorm.DB {
	if createdAt != nil {
		query = query.Where("created_at = ?", createdAt.UTC())
	}
	if updatedAt != nil {
		query = query.Where("updated_at = ?", updatedAt.UTC())
	}
	return query
}

func applyNameMatch(query *gorm.DB, start, end, contains *string) *gorm.DB {
	if start != nil {
		query = query.Where("name LIKE ?", *start+"%")
	}
	if end != nil {
		query = query.Where("name LIKE ?", "%"+*end)
	}
	if contains != nil {
		query = query.Where("name LIKE ?", "%"+*contains+"%")
	}
	return query
}
