package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

var (
	testDay = time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC) // segunda
	farPast = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
)

func dayHours(start, end string) *models.WeeklyHours {
	return &models.WeeklyHours{
		Weekday:   int(testDay.Weekday()),
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
}

func slotAt(h, m int) time.Time {
	return time.Date(2030, 6, 3, h, m, 0, 0, time.UTC)
}

func TestFreeSlots_FullOpenDay(t *testing.T) {
	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), nil, nil, farPast)

	// 08:00..17:30 de 30 em 30
	require.Len(t, slots, 20)
	assert.Equal(t, slotAt(8, 0), slots[0])
	assert.Equal(t, slotAt(17, 30), slots[19])
}

func TestFreeSlots_ClosedDay(t *testing.T) {
	assert.Empty(t, FreeSlots(testDay, nil, nil, nil, farPast))

	inactive := dayHours("08:00", "18:00")
	inactive.Active = false
	assert.Empty(t, FreeSlots(testDay, inactive, nil, nil, farPast))

	blank := dayHours("", "")
	assert.Empty(t, FreeSlots(testDay, blank, nil, nil, farPast))
}

func TestFreeSlots_PastSlotsSkipped(t *testing.T) {
	now := slotAt(16, 0)
	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), nil, nil, now)

	require.Len(t, slots, 4)
	assert.Equal(t, slotAt(16, 0), slots[0])
	assert.Equal(t, slotAt(17, 30), slots[3])
}

func TestFreeSlots_AppointmentBlocksWholeWindow(t *testing.T) {
	// 90 minutos em 14:00 ocupam 14:00, 14:30 e 15:00; 15:30 continua livre
	booked := []models.Appointment{{
		Status:    string(StatusConfirmed),
		StartTime: slotAt(14, 0),
		EndTime:   slotAt(15, 30),
	}}

	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), nil, booked, farPast)

	assert.NotContains(t, slots, slotAt(14, 0))
	assert.NotContains(t, slots, slotAt(14, 30))
	assert.NotContains(t, slots, slotAt(15, 0))
	assert.Contains(t, slots, slotAt(13, 30))
	assert.Contains(t, slots, slotAt(15, 30))
}

func TestFreeSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	booked := []models.Appointment{
		{Status: string(StatusCancelled), StartTime: slotAt(10, 0), EndTime: slotAt(11, 0)},
		{Status: string(StatusNoShow), StartTime: slotAt(11, 0), EndTime: slotAt(12, 0)},
	}

	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), nil, booked, farPast)

	assert.Contains(t, slots, slotAt(10, 0))
	assert.Contains(t, slots, slotAt(10, 30))
	assert.Contains(t, slots, slotAt(11, 30))
}

func TestFreeSlots_BlackoutExcluded(t *testing.T) {
	lunch := models.BlackoutRule{
		Kind:      BlackoutRecurring,
		Weekday:   intPtr(int(testDay.Weekday())),
		StartTime: "12:00",
		EndTime:   "13:00",
		Active:    true,
	}

	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), []models.BlackoutRule{lunch}, nil, farPast)

	assert.NotContains(t, slots, slotAt(12, 0))
	assert.NotContains(t, slots, slotAt(12, 30))
	assert.Contains(t, slots, slotAt(11, 30))
	assert.Contains(t, slots, slotAt(13, 0))
}

func TestFreeSlots_FullDayBlackout(t *testing.T) {
	holiday := models.BlackoutRule{
		Kind:         BlackoutOneOff,
		SpecificDate: timePtr(testDay),
		FullDay:      true,
		Active:       true,
	}

	slots := FreeSlots(testDay, dayHours("08:00", "18:00"), []models.BlackoutRule{holiday}, nil, farPast)
	assert.Empty(t, slots)
}

func TestFreeSlots_NeverNil(t *testing.T) {
	slots := FreeSlots(testDay, nil, nil, nil, farPast)
	assert.NotNil(t, slots)
}
