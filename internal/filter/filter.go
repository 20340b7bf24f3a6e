// Package filter turns the flat key→value maps arriving at the boundary into
// the typed list parameters the store compiles to parameterized queries.
// Recognized key families win over the exact-column fallback; every provided
// key contributes one ANDed predicate.
package filter

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"sportsbook/internal/apperr"
	"sportsbook/internal/models"
	"sportsbook/internal/repository"
)

// Sports translates search parameters for the sports collection.
func Sports(params map[string]string) (repository.ListSportsParams, error) {
	var out repository.ListSportsParams
	for key, value := range params {
		switch key {
		case "min-events":
			n, err := parseCount(key, value)
			if err != nil {
				return out, err
			}
			out.MinEvents = &n
		case "name-start":
			out.NameStart = ptr(value)
		case "name-end":
			out.NameEnd = ptr(value)
		case "name-contains":
			out.NameContains = ptr(value)
		default:
			switch column(key) {
			case "name":
				out.Name = ptr(value)
			case "slug":
				out.Slug = ptr(value)
			case "active":
				b, err := ParseBool(value)
				if err != nil {
					return out, err
				}
				out.Active = &b
			case "created_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.CreatedAt = &ts
			case "updated_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.UpdatedAt = &ts
			default:
				return out, apperr.Validation("unknown sport filter %q", key)
			}
		}
	}
	return out, nil
}

// Events translates search parameters for the events collection.
func Events(params map[string]string) (repository.ListEventsParams, error) {
	var out repository.ListEventsParams
	for key, value := range params {
		switch key {
		case "min-selections":
			n, err := parseCount(key, value)
			if err != nil {
				return out, err
			}
			out.MinSelections = &n
		case "timeframe":
			ts, err := ParseTimestamp(value)
			if err != nil {
				return out, err
			}
			out.TimeframeUntil = &ts
		case "name-start":
			out.NameStart = ptr(value)
		case "name-end":
			out.NameEnd = ptr(value)
		case "name-contains":
			out.NameContains = ptr(value)
		default:
			switch column(key) {
			case "name":
				out.Name = ptr(value)
			case "slug":
				out.Slug = ptr(value)
			case "sport":
				out.Sport = ptr(value)
			case "active":
				b, err := ParseBool(value)
				if err != nil {
					return out, err
				}
				out.Active = &b
			case "type":
				t, err := models.ParseEventType(value)
				if err != nil {
					return out, apperr.Validation("%s", err.Error())
				}
				out.Type = &t
			case "status":
				st, err := models.ParseEventStatus(value)
				if err != nil {
					return out, apperr.Validation("%s", err.Error())
				}
				out.Status = &st
			case "scheduled_start":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.ScheduledStart = &ts
			case "actual_start":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.ActualStart = &ts
			case "created_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.CreatedAt = &ts
			case "updated_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.UpdatedAt = &ts
			default:
				return out, apperr.Validation("unknown event filter %q", key)
			}
		}
	}
	return out, nil
}

// Selections translates search parameters for the selections collection.
func Selections(params map[string]string) (repository.ListSelectionsParams, error) {
	var out repository.ListSelectionsParams
	for key, value := range params {
		switch key {
		case "min-price":
			p, err := ParsePrice(value)
			if err != nil {
				return out, err
			}
			out.MinPrice = &p
		case "max-price":
			p, err := ParsePrice(value)
			if err != nil {
				return out, err
			}
			out.MaxPrice = &p
		case "name-start":
			out.NameStart = ptr(value)
		case "name-end":
			out.NameEnd = ptr(value)
		case "name-contains":
			out.NameContains = ptr(value)
		default:
			switch column(key) {
			case "name":
				out.Name = ptr(value)
			case "event":
				out.Event = ptr(value)
			case "price":
				p, err := ParsePrice(value)
				if err != nil {
					return out, err
				}
				out.Price = &p
			case "active":
				b, err := ParseBool(value)
				if err != nil {
					return out, err
				}
				out.Active = &b
			case "outcome":
				o, err := models.ParseSelectionOutcome(value)
				if err != nil {
					return out, apperr.Validation("%s", err.Error())
				}
				out.Outcome = &o
			case "created_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.CreatedAt = &ts
			case "updated_at":
				ts, err := ParseTimestamp(value)
				if err != nil {
					return out, err
				}
				out.UpdatedAt = &ts
			default:
				return out, apperr.Validation("unknown selection filter %q", key)
			}
		}
	}
	return out, nil
}

// ParseBool follows the boundary convention: true/false and 1/0, any case.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, apperr.Validation("active must be either true or false")
}

// ParsePrice parses a decimal price, rounded to the two fraction digits every
// price is stored and rendered with.
func ParsePrice(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("invalid price %q", value)
	}
	return d.Round(2), nil
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the common wire layouts and normalizes to UTC.
func ParseTimestamp(value string) (time.Time, error) {
	raw := strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, apperr.Validation("invalid timestamp %q", value)
}

func parseCount(key, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, apperr.Validation("%s must be an integer", key)
	}
	return n, nil
}

// column maps a filter key onto its column name; hyphens arrive from the
// query string where the schema uses underscores.
func column(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

func ptr(value string) *string {
	v := value
	return &v
}
