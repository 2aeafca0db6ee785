package appointment

import (
	"context"
	"sort"
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/audit"
	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"gorm.io/gorm"
)

// fakeRepo guarda tudo em memória e reproduz a semântica de conflito do
// repositório real: a janela só é recusada contra agendamentos que ocupam
// horário, com sobreposição real de intervalos.
type fakeRepo struct {
	tenants   map[uint]*models.Tenant
	customers map[uint]*models.Customer
	vehicles  map[uint]*models.Vehicle
	services  map[uint]*models.Service

	weeklyHours map[uint]map[int]*models.WeeklyHours
	blackouts   map[uint][]models.BlackoutRule

	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tenants:      map[uint]*models.Tenant{},
		customers:    map[uint]*models.Customer{},
		vehicles:     map[uint]*models.Vehicle{},
		services:     map[uint]*models.Service{},
		weeklyHours:  map[uint]map[int]*models.WeeklyHours{},
		blackouts:    map[uint][]models.BlackoutRule{},
		appointments: map[uint]*models.Appointment{},
		nextID:       1,
	}
}

func (r *fakeRepo) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeRepo) GetCustomer(_ context.Context, tenantID, customerID uint) (*models.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *fakeRepo) GetVehicle(_ context.Context, tenantID, vehicleID uint) (*models.Vehicle, error) {
	v, ok := r.vehicles[vehicleID]
	if !ok || v.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *fakeRepo) GetServicesByIDs(_ context.Context, tenantID uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok && s.TenantID == tenantID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetWeeklyHours(_ context.Context, tenantID uint, weekday int) (*models.WeeklyHours, error) {
	if wh, ok := r.weeklyHours[tenantID][weekday]; ok {
		return wh, nil
	}
	return nil, nil
}

func (r *fakeRepo) ListBlackoutsForDate(_ context.Context, tenantID uint, _ time.Time) ([]models.BlackoutRule, error) {
	return r.blackouts[tenantID], nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, tenantID, appointmentID uint) (*models.Appointment, error) {
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.TenantID != tenantID {
		return nil, gorm.ErrRecordNotFound
	}

	out := *ap
	if c, ok := r.customers[ap.CustomerID]; ok {
		out.Customer = *c
	}
	return &out, nil
}

func (r *fakeRepo) ListAppointmentsForDay(
	_ context.Context,
	tenantID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]models.Appointment, error) {

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if !domain.Blocks(domain.Status(ap.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, dayStart, dayEnd) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *fakeRepo) ListAppointments(
	_ context.Context,
	tenantID uint,
	filter domain.AppointmentFilter,
	page int,
	limit int,
) ([]models.Appointment, int64, error) {

	var all []models.Appointment
	for _, ap := range r.appointments {
		if ap.TenantID != tenantID {
			continue
		}
		if filter.Status != nil && ap.Status != string(*filter.Status) {
			continue
		}
		if filter.CustomerID != nil && ap.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.DateFrom != nil && ap.StartTime.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && !ap.StartTime.Before(*filter.DateTo) {
			continue
		}
		all = append(all, *ap)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartTime.Before(all[j].StartTime) })

	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []models.Appointment{}, total, nil
	}
	endIdx := offset + limit
	if endIdx > len(all) {
		endIdx = len(all)
	}
	return all[offset:endIdx], total, nil
}

func (r *fakeRepo) hasConflict(ap *models.Appointment, excludeID uint) bool {
	for _, other := range r.appointments {
		if other.TenantID != ap.TenantID || other.ID == excludeID {
			continue
		}
		if !domain.Blocks(domain.Status(other.Status)) {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, other.StartTime, other.EndTime) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if r.hasConflict(ap, 0) {
		return httperr.ErrBusiness("slot_taken")
	}

	ap.ID = r.nextID
	r.nextID++

	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) SaveAppointmentChecked(_ context.Context, ap *models.Appointment) error {
	if r.hasConflict(ap, ap.ID) {
		return httperr.ErrBusiness("slot_taken")
	}
	return r.SaveAppointment(context.Background(), ap)
}

var _ domain.Repository = (*fakeRepo)(nil)

// ------------------------------------------------------
// Dublês auxiliares
// ------------------------------------------------------

type recordingNotifier struct {
	phones   []string
	messages []string
}

func (n *recordingNotifier) Notify(phone string, message string) {
	n.phones = append(n.phones, phone)
	n.messages = append(n.messages, message)
}

type fakeLinker struct {
	link  string
	err   error
	calls int
}

func (l *fakeLinker) CreateLink(_ context.Context, _ string, _ string, _ float64) (string, error) {
	l.calls++
	return l.link, l.err
}

// ------------------------------------------------------
// Fixture padrão: tenant ativo em São Paulo, aberto seg-sáb 08-18,
// um cliente com veículo e dois serviços no catálogo.
// ------------------------------------------------------

const testTZ = "America/Sao_Paulo"

func newFixture() *fakeRepo {
	repo := newFakeRepo()

	repo.tenants[1] = &models.Tenant{
		ID: 1, Name: "Estética Brilho", Slug: "brilho",
		Timezone: testTZ, Active: true,
	}
	repo.tenants[2] = &models.Tenant{
		ID: 2, Name: "Outra Estética", Slug: "outra",
		Timezone: testTZ, Active: true,
	}

	repo.customers[10] = &models.Customer{ID: 10, TenantID: 1, Name: "João", Phone: "11999990000"}
	repo.customers[20] = &models.Customer{ID: 20, TenantID: 2, Name: "Maria", Phone: "11888880000"}

	repo.vehicles[100] = &models.Vehicle{ID: 100, TenantID: 1, CustomerID: 10, Brand: "Fiat", Model: "Argo"}
	repo.vehicles[101] = &models.Vehicle{ID: 101, TenantID: 1, CustomerID: 11, Brand: "VW", Model: "Polo"}

	repo.services[1] = &models.Service{ID: 1, TenantID: 1, Name: "Lavagem Completa", DurationMin: 60, Price: 100, Active: true}
	repo.services[2] = &models.Service{ID: 2, TenantID: 1, Name: "Enceramento", DurationMin: 30, Price: 80, Active: true}
	repo.services[3] = &models.Service{ID: 3, TenantID: 1, Name: "Polimento", DurationMin: 120, Price: 300, Active: false}

	for _, tenantID := range []uint{1, 2} {
		repo.weeklyHours[tenantID] = map[int]*models.WeeklyHours{}
		for wd := 1; wd <= 6; wd++ { // domingo fechado
			repo.weeklyHours[tenantID][wd] = &models.WeeklyHours{
				TenantID: tenantID, Weekday: wd,
				StartTime: "08:00", EndTime: "18:00", Active: true,
			}
		}
	}

	return repo
}

func newCreateUC(repo *fakeRepo, notifier *recordingNotifier) *CreateAppointment {
	return NewCreateAppointment(repo, audit.NewDispatcher(nil), notifier, nil, nil)
}
