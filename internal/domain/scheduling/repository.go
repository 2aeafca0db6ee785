package scheduling

import (
	"context"
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

// AppointmentFilter é o predicado de listagem. Struct de campos opcionais,
// nunca um mapa: cada filtro suportado é enumerável em tempo de compilação.
type AppointmentFilter struct {
	Status     *Status
	CustomerID *uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Cliente / Veículo --------
	GetCustomer(
		ctx context.Context,
		tenantID uint,
		customerID uint,
	) (*models.Customer, error)

	GetVehicle(
		ctx context.Context,
		tenantID uint,
		vehicleID uint,
	) (*models.Vehicle, error)

	// -------- Catálogo --------
	GetServicesByIDs(
		ctx context.Context,
		tenantID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Template semanal --------
	GetWeeklyHours(
		ctx context.Context,
		tenantID uint,
		weekday int,
	) (*models.WeeklyHours, error)

	// -------- Bloqueios --------
	ListBlackoutsForDate(
		ctx context.Context,
		tenantID uint,
		date time.Time,
	) ([]models.BlackoutRule, error)

	// -------- Agendamentos --------
	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	ListAppointmentsForDay(
		ctx context.Context,
		tenantID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		tenantID uint,
		filter AppointmentFilter,
		page int,
		limit int,
	) ([]models.Appointment, int64, error)

	// CreateAppointment verifica conflito e insere na mesma transação,
	// com lock das linhas concorrentes. Janela ocupada → slot_taken.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveAppointment persiste mudanças sem reverificar conflito
	// (status, observações, pagamento).
	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// SaveAppointmentChecked persiste uma remarcação reverificando
	// conflito na transação, excluindo o próprio agendamento.
	SaveAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
