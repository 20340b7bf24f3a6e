package models

import (
	"fmt"
	"strings"
	"time"
)

type EventType string

type EventStatus string

const (
	TypePreplay EventType = "Preplay"
	TypeInplay  EventType = "Inplay"

	StatusPending   EventStatus = "Pending"
	StatusStarted   EventStatus = "Started"
	StatusEnded     EventStatus = "Ended"
	StatusCancelled EventStatus = "Cancelled"
)

func ParseEventType(value string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "preplay":
		return TypePreplay, nil
	case "inplay":
		return TypeInplay, nil
	}
	return "", fmt.Errorf("invalid event type %q", value)
}

func ParseEventStatus(value string) (EventStatus, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "pending":
		return StatusPending, nil
	case "started":
		return StatusStarted, nil
	case "ended":
		return StatusEnded, nil
	case "cancelled":
		return StatusCancelled, nil
	}
	return "", fmt.Errorf("invalid event status %q", value)
}

// Terminal reports whether a status permits no further transitions.
func (s EventStatus) Terminal() bool {
	return s == StatusEnded || s == StatusCancelled
}

type Event struct {
	Name           string      `gorm:"primaryKey;type:text"`
	Slug           string      `gorm:"type:text;not null"`
	Active         bool        `gorm:"not null;default:false"`
	Type           EventType   `gorm:"type:text;not null;default:Preplay"`
	Sport          string      `gorm:"type:text;index;not null"`
	Status         EventStatus `gorm:"type:text;not null;default:Pending"`
	ScheduledStart time.Time   `gorm:"type:timestamptz;not null"`
	ActualStart    *time.Time  `gorm:"type:timestamptz"`
	CreatedAt      time.Time   `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt      time.Time   `gorm:"type:timestamptz;autoUpdateTime"`

	SportRef *Sport `gorm:"foreignKey:Sport;references:Name;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Event) TableName() string {
	return "events"
}

func (e Event) Record() map[string]any {
	var actualStart any
	if e.ActualStart != nil {
		actualStart = e.ActualStart.UTC().Format(time.RFC3339)
	}
	return map[string]any{
		"name":            e.Name,
		"slug":            e.Slug,
		"active":          e.Active,
		"type":            string(e.Type),
		"sport":           e.Sport,
		"status":          string(e.Status),
		"scheduled_start": e.ScheduledStart.UTC().Format(time.RFC3339),
		"actual_start":    actualStart,
	}
}
