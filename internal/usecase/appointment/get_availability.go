package appointment

import (
	"context"
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/cache"
	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	availCache *cache.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availCache,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	tenantID uint,
	dateStr string,
) ([]time.Time, error) {

	tenant, err := uc.repo.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(tenant.Timezone, dateStr)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	if uc.cache != nil {
		if slots, ok := uc.cache.Get(ctx, tenantID, date); ok {
			return slots, nil
		}
	}

	wh, err := uc.repo.GetWeeklyHours(ctx, tenantID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}

	blackouts, err := uc.repo.ListBlackoutsForDate(ctx, tenantID, date)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		tenantID,
		dayStart,
		dayStart.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(tenant.Timezone)
	slots := domain.FreeSlots(date, wh, blackouts, appointments, now)

	if uc.cache != nil {
		uc.cache.Set(ctx, tenantID, date, slots)
	}

	return slots, nil
}
