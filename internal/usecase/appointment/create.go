package appointment

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/agendaestetica/detailing-scheduler/internal/audit"
	"github.com/agendaestetica/detailing-scheduler/internal/cache"
	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"github.com/agendaestetica/detailing-scheduler/internal/notify"
	"github.com/agendaestetica/detailing-scheduler/internal/payments"
	"github.com/agendaestetica/detailing-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID uint
	UserID   uint

	CustomerID uint
	VehicleID  *uint

	Date string
	Time string

	Services []domain.RequestedService
	Notes    string

	PaymentStatus string
	PaymentMethod string
	PaidAmount    *float64
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.Notifier
	linker   payments.Linker
	cache    *cache.AvailabilityCache
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notifier notify.Notifier,
	linker payments.Linker,
	availCache *cache.AvailabilityCache,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		audit:    auditDisp,
		notifier: notifier,
		linker:   linker,
		cache:    availCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.Active {
		return nil, httperr.ErrBusiness("tenant_inactive")
	}

	start, err := timezone.ParseDateTime(tenant.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// 1. cliente existe e pertence ao tenant
	customer, err := uc.repo.GetCustomer(ctx, in.TenantID, in.CustomerID)
	if err != nil {
		return nil, httperr.ErrBusiness("customer_not_found")
	}

	// 2. veículo (se informado) pertence ao tenant E ao cliente
	if in.VehicleID != nil {
		vehicle, err := uc.repo.GetVehicle(ctx, in.TenantID, *in.VehicleID)
		if err != nil {
			return nil, httperr.ErrBusiness("vehicle_not_found")
		}
		if vehicle.CustomerID != in.CustomerID {
			return nil, httperr.ErrBusiness("vehicle_customer_mismatch")
		}
	}

	// 3. todos os serviços existem, pertencem ao tenant e estão ativos
	if len(in.Services) == 0 {
		return nil, httperr.ErrBusiness("no_services")
	}

	ids := make([]uint, 0, len(in.Services))
	for _, rs := range in.Services {
		ids = append(ids, rs.ServiceID)
	}

	found, err := uc.repo.GetServicesByIDs(ctx, in.TenantID, ids)
	if err != nil {
		return nil, err
	}

	resolved := make(map[uint]*models.Service, len(found))
	for i := range found {
		resolved[found[i].ID] = &found[i]
	}

	for _, rs := range in.Services {
		svc, ok := resolved[rs.ServiceID]
		if !ok {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if !svc.Active {
			return nil, httperr.ErrBusiness("service_inactive")
		}
	}

	// 4. data estritamente futura
	now := timezone.NowIn(tenant.Timezone)
	if !start.After(now) {
		return nil, httperr.ErrBusiness("past_date")
	}

	// 5. duração total e janela de conflito [start, end)
	items, durationMin, totalPrice := domain.BuildLineItems(in.Services, resolved)
	end := start.Add(time.Duration(durationMin) * time.Minute)

	// horário de funcionamento do dia + bloqueios
	wh, err := uc.repo.GetWeeklyHours(ctx, in.TenantID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil, httperr.ErrBusiness("closed_day")
	}

	open := domain.AtTime(start, wh.StartTime)
	close := domain.AtTime(start, wh.EndTime)
	if start.Before(open) || !start.Before(close) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	blackouts, err := uc.repo.ListBlackoutsForDate(ctx, in.TenantID, start)
	if err != nil {
		return nil, err
	}
	if domain.BlackoutBlocks(blackouts, start, start, end) {
		return nil, httperr.ErrBusiness("blackout")
	}

	if err := validatePayment(in.PaymentStatus, in.PaymentMethod, in.PaidAmount); err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		PublicID:    uuid.New(),
		TenantID:    in.TenantID,
		CustomerID:  in.CustomerID,
		VehicleID:   in.VehicleID,
		StartTime:   start,
		EndTime:     end,
		DurationMin: durationMin,
		Status:      string(domain.StatusPending),
		TotalPrice:  totalPrice,
		Notes:       in.Notes,
		Services:    items,

		PaymentStatus: paymentStatusOrDefault(in.PaymentStatus),
		PaymentMethod: in.PaymentMethod,
		PaidAmount:    in.PaidAmount,
	}

	// 6. verificação de conflito + insert atômicos (repo)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// link de pagamento só depois da reserva garantida: criar antes deixaria
	// preferências órfãs no gateway a cada slot_taken. Best-effort: sem link
	// não se perde a reserva.
	if uc.linker != nil && ap.PaymentStatus == string(domain.PaymentPending) {
		link, err := uc.linker.CreateLink(
			ctx,
			ap.PublicID.String(),
			"Agendamento "+tenant.Name,
			totalPrice,
		)
		if err != nil {
			log.Println("payment link error:", err)
		} else {
			ap.PaymentLink = link
			if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
				log.Println("payment link save error:", err)
			}
		}
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.TenantID, start)
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	serviceNames := make([]string, 0, len(items))
	for _, item := range items {
		serviceNames = append(serviceNames, resolved[item.ServiceID].Name)
	}
	uc.notifier.Notify(
		customer.Phone,
		notify.ConfirmationMessage(customer.Name, start, serviceNames, totalPrice),
	)

	return uc.repo.GetAppointment(ctx, in.TenantID, ap.ID)
}

// ======================================================
// HELPERS
// ======================================================

func paymentStatusOrDefault(s string) string {
	if s == "" {
		return string(domain.PaymentPending)
	}
	return s
}

func validatePayment(status string, method string, paidAmount *float64) error {
	if status != "" && !domain.IsValidPaymentStatus(domain.PaymentStatus(status)) {
		return httperr.ErrBusiness("invalid_payment_status")
	}
	if method != "" && !domain.IsValidPaymentMethod(domain.PaymentMethod(method)) {
		return httperr.ErrBusiness("invalid_payment_method")
	}
	if status == string(domain.PaymentPaid) {
		if method == "" || paidAmount == nil {
			return httperr.ErrBusiness("missing_payment_fields")
		}
	}
	return nil
}
