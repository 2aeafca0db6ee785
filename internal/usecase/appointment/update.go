package appointment

import (
	"context"
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/audit"
	"github.com/agendaestetica/detailing-scheduler/internal/cache"
	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
	"github.com/agendaestetica/detailing-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

// Patch parcial: só os campos não-nil são aplicados.
type UpdateAppointmentInput struct {
	TenantID      uint
	UserID        uint
	AppointmentID uint

	Status *string

	Date *string
	Time *string

	VehicleID *uint
	Notes     *string

	PaymentStatus *string
	PaymentMethod *string
	PaidAmount    *float64
}

// ======================================================
// USE CASE
// ======================================================

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewUpdateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	availCache *cache.AvailabilityCache,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: auditDisp,
		cache: availCache,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.TenantID, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(tenant.Timezone)
	oldStart := ap.StartTime
	rescheduled := false

	// remarcação: revalida futuro, expediente, bloqueios e conflito
	if in.Date != nil && in.Time != nil {
		start, err := timezone.ParseDateTime(tenant.Timezone, *in.Date, *in.Time)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
		if !start.After(now) {
			return nil, httperr.ErrBusiness("past_date")
		}

		end := start.Add(time.Duration(ap.DurationMin) * time.Minute)

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

		ap.StartTime = start
		ap.EndTime = end
		rescheduled = true
	} else if in.Date != nil || in.Time != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.Status != nil {
		to := domain.Status(*in.Status)
		if !domain.IsValidStatus(to) {
			return nil, httperr.ErrBusiness("invalid_status")
		}
		if err := domain.ApplyStatus(ap, to, now); err != nil {
			return nil, err
		}
	}

	if in.VehicleID != nil {
		vehicle, err := uc.repo.GetVehicle(ctx, in.TenantID, *in.VehicleID)
		if err != nil {
			return nil, httperr.ErrBusiness("vehicle_not_found")
		}
		if vehicle.CustomerID != ap.CustomerID {
			return nil, httperr.ErrBusiness("vehicle_customer_mismatch")
		}
		ap.VehicleID = in.VehicleID
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if in.PaymentStatus != nil || in.PaymentMethod != nil || in.PaidAmount != nil {
		status := ap.PaymentStatus
		if in.PaymentStatus != nil {
			status = *in.PaymentStatus
		}
		method := ap.PaymentMethod
		if in.PaymentMethod != nil {
			method = *in.PaymentMethod
		}
		paid := ap.PaidAmount
		if in.PaidAmount != nil {
			paid = in.PaidAmount
		}

		if err := validatePayment(status, method, paid); err != nil {
			return nil, err
		}

		ap.PaymentStatus = status
		ap.PaymentMethod = method
		ap.PaidAmount = paid
	}

	if rescheduled {
		// conflito reverificado na transação, excluindo o próprio id
		if err := uc.repo.SaveAppointmentChecked(ctx, ap); err != nil {
			return nil, err
		}
	} else {
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	if uc.cache != nil {
		uc.cache.Invalidate(ctx, in.TenantID, oldStart)
		if rescheduled {
			uc.cache.Invalidate(ctx, in.TenantID, ap.StartTime)
		}
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   &in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return uc.repo.GetAppointment(ctx, in.TenantID, ap.ID)
}
