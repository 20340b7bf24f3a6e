package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type SelectionOutcome string

const (
	OutcomeUnsettled SelectionOutcome = "Unsettled"
	OutcomeWin       SelectionOutcome = "Win"
	OutcomeLose      SelectionOutcome = "Lose"
	OutcomeVoid      SelectionOutcome = "Void"
)

func ParseSelectionOutcome(value string) (SelectionOutcome, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "unsettled":
		return OutcomeUnsettled, nil
	case "win":
		return OutcomeWin, nil
	case "lose":
		return OutcomeLose, nil
	case "void":
		return OutcomeVoid, nil
	}
	return "", fmt.Errorf("invalid outcome %q", value)
}

// Settled reports whether the outcome has left Unsettled; a settled selection
// can never be unsettled again.
func (o SelectionOutcome) Settled() bool {
	return o != "" && o != OutcomeUnsettled
}

type Selection struct {
	Name      string           `gorm:"primaryKey;type:text"`
	Event     string           `gorm:"type:text;index;not null"`
	Price     decimal.Decimal  `gorm:"type:numeric(10,2);not null"`
	Active    bool             `gorm:"not null;default:false"`
	Outcome   SelectionOutcome `gorm:"type:text;not null;default:Unsettled"`
	CreatedAt time.Time        `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"type:timestamptz;autoUpdateTime"`

	EventRef *Event `gorm:"foreignKey:Event;references:Name;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Selection) TableName() string {
	return "selections"
}

// Record renders the row for the wire; prices always carry two fraction digits.
func (s Selection) Record() map[string]any {
	return map[string]any{
		"name":    s.Name,
		"event":   s.Event,
		"price":   s.Price.StringFixed(2),
		"active":  s.Active,
		"outcome": string(s.Outcome),
	}
}
