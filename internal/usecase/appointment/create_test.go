package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaestetica/detailing-scheduler/internal/audit"
	domain "github.com/agendaestetica/detailing-scheduler/internal/domain/scheduling"
	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

// segunda-feira distante o bastante para nunca virar passado
const (
	testDate = "2030-06-03"
	sunday   = "2030-06-09"
)

func uintPtr(v uint) *uint { return &v }

func float64Ptr(v float64) *float64 { return &v }

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		TenantID:   1,
		UserID:     1,
		CustomerID: 10,
		Date:       testDate,
		Time:       "14:00",
		Services:   []domain.RequestedService{{ServiceID: 1, Price: 100}},
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	repo := newFixture()
	notifier := &recordingNotifier{}
	uc := newCreateUC(repo, notifier)

	in := baseInput()
	in.VehicleID = uintPtr(100)
	in.Services = []domain.RequestedService{
		{ServiceID: 1, Price: 100},
		{ServiceID: 2, Price: 80},
	}

	ap, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, string(domain.PaymentPending), ap.PaymentStatus)
	assert.Equal(t, 90, ap.DurationMin)
	assert.Equal(t, 180.0, ap.TotalPrice)
	assert.NotEqual(t, uuid.Nil, ap.PublicID)

	// janela [14:00, 15:30) no fuso do tenant
	loc, _ := time.LoadLocation(testTZ)
	assert.Equal(t, time.Date(2030, 6, 3, 14, 0, 0, 0, loc), ap.StartTime.In(loc))
	assert.Equal(t, time.Date(2030, 6, 3, 15, 30, 0, 0, loc), ap.EndTime.In(loc))

	// notificação de confirmação para o telefone do cliente
	require.Len(t, notifier.phones, 1)
	assert.Equal(t, "11999990000", notifier.phones[0])
	assert.Contains(t, notifier.messages[0], "João")
}

func TestCreateAppointment_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	require.Equal(t, 100.0, ap.TotalPrice)

	// mudança de catálogo depois da reserva não toca no agendamento
	repo.services[1].Price = 250
	repo.services[1].DurationMin = 240

	stored, err := repo.GetAppointment(context.Background(), 1, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, stored.TotalPrice)
	assert.Equal(t, 60, stored.DurationMin)
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	// mesmo horário exato
	_, err = uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))
}

func TestCreateAppointment_PartialOverlapConflicts(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	// 14:00 + 90min ocupa até 15:30
	in := baseInput()
	in.Services = []domain.RequestedService{
		{ServiceID: 1, Price: 100},
		{ServiceID: 2, Price: 80},
	}
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// 14:30 cai dentro da janela, não no mesmo instante
	overlapping := baseInput()
	overlapping.Time = "14:30"
	_, err = uc.Execute(context.Background(), overlapping)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// 15:00 ainda dentro
	overlapping.Time = "15:00"
	_, err = uc.Execute(context.Background(), overlapping)
	assert.True(t, httperr.IsBusiness(err, "slot_taken"))

	// 15:30 encosta no fim e é permitido
	adjacent := baseInput()
	adjacent.Time = "15:30"
	_, err = uc.Execute(context.Background(), adjacent)
	assert.NoError(t, err)
}

func TestCreateAppointment_TenantIsolation(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	// tenant 2 reservado no mesmo horário não interfere no tenant 1
	other := CreateAppointmentInput{
		TenantID:   2,
		UserID:     2,
		CustomerID: 20,
		Date:       testDate,
		Time:       "14:00",
		Services:   []domain.RequestedService{{ServiceID: 1, Price: 100}},
	}
	repo.services[4] = &models.Service{ID: 4, TenantID: 2, Name: "Lavagem", DurationMin: 60, Price: 90, Active: true}
	other.Services = []domain.RequestedService{{ServiceID: 4, Price: 90}}

	_, err := uc.Execute(context.Background(), other)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), baseInput())
	assert.NoError(t, err)
}

func TestCreateAppointment_ClosedSunday(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	in := baseInput()
	in.Date = sunday

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "closed_day"))
}

func TestCreateAppointment_OutsideBusinessHours(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	for _, hm := range []string{"07:30", "18:00", "19:00"} {
		in := baseInput()
		in.Time = hm
		_, err := uc.Execute(context.Background(), in)
		assert.True(t, httperr.IsBusiness(err, "outside_business_hours"), "time %s", hm)
	}
}

func TestCreateAppointment_RecurringBlackout(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	monday := 1
	repo.blackouts[1] = []models.BlackoutRule{{
		TenantID: 1, Kind: domain.BlackoutRecurring,
		Weekday: &monday, StartTime: "12:00", EndTime: "13:00", Active: true,
	}}

	in := baseInput()
	in.Time = "12:30"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "blackout"))

	// 11:00+60min encosta no bloqueio e passa
	in.Time = "11:00"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_OneOffBlackout(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	loc, _ := time.LoadLocation(testTZ)
	day := time.Date(2030, 6, 3, 0, 0, 0, 0, loc)
	repo.blackouts[1] = []models.BlackoutRule{{
		TenantID: 1, Kind: domain.BlackoutOneOff,
		SpecificDate: &day, StartTime: "10:00", EndTime: "12:00", Active: true,
	}}

	in := baseInput()
	in.Time = "10:30"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "blackout"))

	// mesmo horário em outro dia passa
	in.Date = "2030-06-04"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_PastDate(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	in := baseInput()
	in.Date = "2020-06-01"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "past_date"))
}

func TestCreateAppointment_ValidationErrors(t *testing.T) {
	repo := newFixture()
	uc := newCreateUC(repo, &recordingNotifier{})

	cases := []struct {
		name string
		mut  func(*CreateAppointmentInput)
		code string
	}{
		{"cliente de outro tenant", func(in *CreateAppointmentInput) { in.CustomerID = 20 }, "customer_not_found"},
		{"veículo inexistente", func(in *CreateAppointmentInput) { in.VehicleID = uintPtr(999) }, "vehicle_not_found"},
		{"veículo de outro cliente", func(in *CreateAppointmentInput) { in.VehicleID = uintPtr(101) }, "vehicle_customer_mismatch"},
		{"sem serviços", func(in *CreateAppointmentInput) { in.Services = nil }, "no_services"},
		{"serviço inexistente", func(in *CreateAppointmentInput) {
			in.Services = []domain.RequestedService{{ServiceID: 999, Price: 10}}
		}, "service_not_found"},
		{"serviço inativo", func(in *CreateAppointmentInput) {
			in.Services = []domain.RequestedService{{ServiceID: 3, Price: 300}}
		}, "service_inactive"},
		{"data malformada", func(in *CreateAppointmentInput) { in.Date = "03/06/2030" }, "invalid_date_or_time"},
		{"pagamento inválido", func(in *CreateAppointmentInput) { in.PaymentStatus = "QUITADO" }, "invalid_payment_status"},
		{"forma inválida", func(in *CreateAppointmentInput) { in.PaymentMethod = "CHEQUE" }, "invalid_payment_method"},
		{"pago sem valor", func(in *CreateAppointmentInput) {
			in.PaymentStatus = string(domain.PaymentPaid)
			in.PaymentMethod = string(domain.PaymentPix)
		}, "missing_payment_fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			tc.mut(&in)
			_, err := uc.Execute(context.Background(), in)
			assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
		})
	}
}

func TestCreateAppointment_TenantInactive(t *testing.T) {
	repo := newFixture()
	repo.tenants[1].Active = false
	uc := newCreateUC(repo, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "tenant_inactive"))
}

func TestCreateAppointment_PaymentLink(t *testing.T) {
	repo := newFixture()
	linker := &fakeLinker{link: "https://mp.example/pref/123"}
	uc := NewCreateAppointment(repo, audit.NewDispatcher(nil), &recordingNotifier{}, linker, nil)

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/pref/123", ap.PaymentLink)

	// já pago na criação → sem link
	paid := baseInput()
	paid.Time = "16:00"
	paid.PaymentStatus = string(domain.PaymentPaid)
	paid.PaymentMethod = string(domain.PaymentCash)
	paid.PaidAmount = float64Ptr(100)

	ap2, err := uc.Execute(context.Background(), paid)
	require.NoError(t, err)
	assert.Empty(t, ap2.PaymentLink)
}

func TestCreateAppointment_NoPaymentLinkOnConflict(t *testing.T) {
	repo := newFixture()
	linker := &fakeLinker{link: "https://mp.example/pref/123"}
	uc := NewCreateAppointment(repo, audit.NewDispatcher(nil), &recordingNotifier{}, linker, nil)

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, "https://mp.example/pref/123", ap.PaymentLink)
	assert.Equal(t, 1, linker.calls)

	// reserva recusada não pode gerar preferência no gateway
	_, err = uc.Execute(context.Background(), baseInput())
	require.True(t, httperr.IsBusiness(err, "slot_taken"))
	assert.Equal(t, 1, linker.calls)
}

func TestCreateAppointment_LinkFailureKeepsBooking(t *testing.T) {
	repo := newFixture()
	linker := &fakeLinker{err: assert.AnError}
	uc := NewCreateAppointment(repo, audit.NewDispatcher(nil), &recordingNotifier{}, linker, nil)

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Empty(t, ap.PaymentLink)
	assert.Equal(t, 1, linker.calls)
}
