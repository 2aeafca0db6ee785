package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	PublicID uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"public_id"`

	TenantID uint `gorm:"index:idx_tenant_start" json:"tenant_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	VehicleID *uint    `json:"vehicle_id"`
	Vehicle   *Vehicle `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"vehicle,omitempty"`

	// Janela de conflito [StartTime, EndTime). DurationMin é a soma das
	// durações dos serviços, congelada no momento da criação.
	StartTime   time.Time `gorm:"index:idx_tenant_start" json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`

	Status string `gorm:"size:20;default:'PENDENTE'" json:"status"`

	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"size:500" json:"notes"`

	PaymentStatus string   `gorm:"size:20;default:'PENDENTE'" json:"payment_status"`
	PaymentMethod string   `gorm:"size:20" json:"payment_method"`
	PaidAmount    *float64 `json:"paid_amount"`
	PaymentLink   string   `gorm:"size:500" json:"payment_link"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Linha de serviço do agendamento, com preço e duração congelados
// no momento da reserva.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}
