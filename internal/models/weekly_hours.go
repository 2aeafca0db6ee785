package models

import "time"

// Template semanal de funcionamento: uma linha por (tenant, weekday).
// Inativo ou sem horários = fechado naquele dia.
type WeeklyHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index:idx_weekly_hours_day,unique" json:"tenant_id"`

	Weekday int `gorm:"index:idx_weekly_hours_day,unique" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	Active    bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
