package models

import "time"

// Bloqueio de agenda: PONTUAL (data específica) ou RECORRENTE (dia da semana).
type BlackoutRule struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index" json:"tenant_id"`

	Kind string `gorm:"size:20;not null" json:"kind"`

	// Weekday só para RECORRENTE (0-6), SpecificDate só para PONTUAL.
	Weekday      *int       `json:"weekday"`
	SpecificDate *time.Time `json:"specific_date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	FullDay   bool   `gorm:"default:false" json:"full_day"`

	Reason string `gorm:"size:255" json:"reason"`
	Active bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
