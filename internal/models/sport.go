package models

import "time"

// Sport is the root of the hierarchy. A sport is only active while at least
// one of its events is; the cascade engine clears the flag, never sets it.
type Sport struct {
	Name      string    `gorm:"primaryKey;type:text"`
	Slug      string    `gorm:"type:text;not null"`
	Active    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Sport) TableName() string {
	return "sports"
}

// Record renders the row as the flat field map the boundary layer serializes.
func (s Sport) Record() map[string]any {
	return map[string]any{
		"name":   s.Name,
		"slug":   s.Slug,
		"active": s.Active,
	}
}
