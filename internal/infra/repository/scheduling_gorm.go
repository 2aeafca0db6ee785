package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Tenant
// --------------------------------------------------

func (r *SchedulingGormRepository) GetTenantByID(
	ctx context.Context,
	id uint,
) (*models.Tenant, error) {

	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, id).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// --------------------------------------------------
// Cliente / Veículo
// --------------------------------------------------

func (r *SchedulingGormRepository) GetCustomer(
	ctx context.Context,
	tenantID uint,
	customerID uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *SchedulingGormRepository) GetVehicle(
	ctx context.Context,
	tenantID uint,
	vehicleID uint,
) (*models.Vehicle, error) {

	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", vehicleID, tenantID).
		First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *SchedulingGormRepository) GetServicesByIDs(
	ctx context.Context,
	tenantID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Template semanal
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWeeklyHours(
	ctx context.Context,
	tenantID uint,
	weekday int,
) (*models.WeeklyHours, error) {

	var wh models.WeeklyHours
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND weekday = ?", tenantID, weekday).
		First(&wh).Error
	if err == gorm.ErrRecordNotFound {
		// sem entrada = fechado; não é erro
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Bloqueios
// --------------------------------------------------

func (r *SchedulingGormRepository) ListBlackoutsForDate(
	ctx context.Context,
	tenantID uint,
	date time.Time,
) ([]models.BlackoutRule, error) {

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var rules []models.BlackoutRule
	err := r.db.WithContext(ctx).
		Where(
			`tenant_id = ? AND active = ?
             AND ((kind = ? AND specific_date >= ? AND specific_date < ?)
               OR (kind = ? AND weekday = ?))`,
			tenantID, true,
			domain.BlackoutOneOff, dayStart, dayEnd,
			domain.BlackoutRecurring, int(date.Weekday()),
		).
		Order("kind ASC, specific_date ASC, weekday ASC").
		Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// --------------------------------------------------
// Agendamentos
// --------------------------------------------------

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	tenantID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Vehicle").
		Preload("Services.Service").
		Where("id = ? AND tenant_id = ?", appointmentID, tenantID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *SchedulingGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	tenantID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "tenant_id", "start_time", "end_time", "status").
		Where(
			"tenant_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
			tenantID,
			[]string{string(domain.StatusCancelled), string(domain.StatusNoShow)},
			dayEnd, dayStart,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *SchedulingGormRepository) ListAppointments(
	ctx context.Context,
	tenantID uint,
	filter domain.AppointmentFilter,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("tenant_id = ?", tenantID)

	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.CustomerID != nil {
		q = q.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.DateFrom != nil {
		q = q.Where("start_time >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("start_time <= ?", *filter.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Customer").
		Preload("Vehicle").
		Preload("Services.Service").
		Order("start_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

// Classe do advisory lock que serializa escrita de agenda por tenant.
const agendaLockClass = 4201

// lockTenantAgenda segura um pg_advisory_xact_lock por tenant até o fim da
// transação. FOR UPDATE só tranca linhas já existentes: duas inserções
// simultâneas com horários sobrepostos mas start_time distintos não se
// enxergam sem essa serialização.
func lockTenantAgenda(tx *gorm.DB, tenantID uint) error {
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(?, ?)",
		agendaLockClass, int32(tenantID),
	).Error
}

// CreateAppointment: verificação de conflito e insert na MESMA transação,
// serializada por tenant via advisory lock. O índice parcial em
// (tenant_id, start_time) segue como rede de segurança; a violação vira
// slot_taken.
func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := lockTenantAgenda(tx, ap.TenantID); err != nil {
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.TenantID,
				[]string{string(domain.StatusCancelled), string(domain.StatusNoShow)},
				ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Create(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

func (r *SchedulingGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).
		Omit("Customer", "Vehicle", "Services").
		Save(ap).Error
}

// SaveAppointmentChecked: remarcação reverifica conflito excluindo o
// próprio agendamento, na mesma transação do save.
func (r *SchedulingGormRepository) SaveAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := lockTenantAgenda(tx, ap.TenantID); err != nil {
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"tenant_id = ? AND id <> ? AND status NOT IN ? AND start_time < ? AND end_time > ?",
				ap.TenantID, ap.ID,
				[]string{string(domain.StatusCancelled), string(domain.StatusNoShow)},
				ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("slot_taken")
		}

		return tx.Omit("Customer", "Vehicle", "Services").Save(ap).Error
	})

	if err != nil && httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness("slot_taken")
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*SchedulingGormRepository)(nil)
