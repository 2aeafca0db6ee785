package models

import "time"

type Customer struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	TenantID uint `gorm:"index:idx_customer_phone,unique" json:"tenant_id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Phone    string `gorm:"size:20;index:idx_customer_phone,unique" json:"phone"`
	Whatsapp string `gorm:"size:20" json:"whatsapp"`
	Email    string `gorm:"size:100" json:"email"`
	Notes    string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
