package scheduling

import (
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ApplyStatus transiciona o agendamento validando a máquina de estados
// e carimbando os instantes de cancelamento/conclusão.
func ApplyStatus(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return err
	}

	ap.Status = string(to)

	switch to {
	case StatusCancelled:
		if ap.CancelledAt == nil {
			ap.CancelledAt = &now
		}
	case StatusCompleted:
		if ap.CompletedAt == nil {
			ap.CompletedAt = &now
		}
	}

	return nil
}

// Cancel é o soft-delete do agendamento: nunca removemos a linha.
// Cancelar algo já cancelado é no-op.
func Cancel(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) == StatusCancelled {
		return nil
	}
	return ApplyStatus(ap, StatusCancelled, now)
}

// ===============================
// Line items
// ===============================

// RequestedService é um serviço solicitado com o preço acordado no momento
// da reserva. O preço enviado é o congelado na linha; mudanças futuras de
// catálogo nunca alteram agendamentos existentes.
type RequestedService struct {
	ServiceID uint
	Price     float64
}

// BuildLineItems monta as linhas do agendamento a partir dos serviços
// resolvidos do catálogo, somando duração e preço total.
func BuildLineItems(
	requested []RequestedService,
	resolved map[uint]*models.Service,
) (items []models.AppointmentService, durationMin int, totalPrice float64) {

	items = make([]models.AppointmentService, 0, len(requested))
	for _, rs := range requested {
		svc := resolved[rs.ServiceID]
		items = append(items, models.AppointmentService{
			ServiceID:   rs.ServiceID,
			Price:       rs.Price,
			DurationMin: svc.DurationMin,
		})
		durationMin += svc.DurationMin
		totalPrice += rs.Price
	}

	return items, durationMin, totalPrice
}
