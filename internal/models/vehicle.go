package models

import "time"

// Veículo pertence a exatamente um cliente do mesmo tenant.
type Vehicle struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index:idx_vehicle_plate,unique" json:"tenant_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"customer"`

	Brand    string `gorm:"size:50;not null" json:"brand"`
	Model    string `gorm:"size:50;not null" json:"model"`
	Year     int    `json:"year"`
	Plate    string `gorm:"size:10;index:idx_vehicle_plate,unique" json:"plate"`
	Color    string `gorm:"size:30" json:"color"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
