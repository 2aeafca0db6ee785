package appointment

import (
	"context"

	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	tenantID uint,
	filter domain.AppointmentFilter,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	return uc.repo.ListAppointments(ctx, tenantID, filter, page, limit)
}
