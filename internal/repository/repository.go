package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// ListSportsParams is the typed predicate compiled by the filter translator.
// Nil fields are absent filters; everything set is ANDed together.
type ListSportsParams struct {
	MinEvents    *int
	NameStart    *string
	NameEnd      *string
	NameContains *string
	Name         *string
	Slug         *string
	Active       *bool
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

type ListEventsParams struct {
	MinSelections  *int
	TimeframeUntil *time.Time
	NameStart      *string
	NameEnd        *string
	NameContains   *string
	Name           *string
	Slug           *string
	Sport          *string
	Active         *bool
	Type           *models.EventType
	Status         *models.EventStatus
	ScheduledStart *time.Time
	ActualStart    *time.Time
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

type ListSelectionsParams struct {
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	NameStart    *string
	NameEnd      *string
	NameContains *string
	Name         *string
	Event        *string
	Price        *decimal.Decimal
	Active       *bool
	Outcome      *models.SelectionOutcome
	CreatedAt    *time.Time
	UpdatedAt    *time.Time
}

// Repository is the entity store. Writes that participate in a cascade take an
// explicit transaction handle; InTx scopes a unit of work so a failed cascade
// rolls back the triggering update with it.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	CreateSport(ctx context.Context, item *models.Sport) error
	GetSport(ctx context.Context, name string) (*models.Sport, error)
	GetSportTx(ctx context.Context, tx *gorm.DB, name string) (*models.Sport, error)
	ListSports(ctx context.Context, params ListSportsParams) ([]models.Sport, error)
	UpdateSportTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error
	DeleteSport(ctx context.Context, name string) (int64, error)

	CreateEvent(ctx context.Context, item *models.Event) error
	GetEvent(ctx context.Context, name string) (*models.Event, error)
	GetEventTx(ctx context.Context, tx *gorm.DB, name string) (*models.Event, error)
	ListEvents(ctx context.Context, params ListEventsParams) ([]models.Event, error)
	UpdateEventTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error
	DeleteEvent(ctx context.Context, name string) (int64, error)

	CreateSelection(ctx context.Context, item *models.Selection) error
	GetSelection(ctx context.Context, name string) (*models.Selection, error)
	ListSelections(ctx context.Context, params ListSelectionsParams) ([]models.Selection, error)
	UpdateSelectionTx(ctx context.Context, tx *gorm.DB, name string, fields map[string]any) error
	DeleteSelection(ctx context.Context, name string) (int64, error)

	CountEventsBySport(ctx context.Context, sport string) (int64, error)
	CountSelectionsByEvent(ctx context.Context, event string) (int64, error)

	CountActiveEventsTx(ctx context.Context, tx *gorm.DB, sport string) (int64, error)
	CountActiveSelectionsTx(ctx context.Context, tx *gorm.DB, event string) (int64, error)

	ListActiveSports(ctx context.Context) ([]models.Sport, error)
	ListActiveEvents(ctx context.Context) ([]models.Event, error)
}
