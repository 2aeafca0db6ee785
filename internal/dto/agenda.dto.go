package dto

import "time"

// Item enxuto da agenda do dia, sem o grafo completo do agendamento.
type AgendaItemDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	Vehicle      string    `json:"vehicle"`
	Services     []string  `json:"services"`
	TotalPrice   float64   `json:"total_price"`
}
