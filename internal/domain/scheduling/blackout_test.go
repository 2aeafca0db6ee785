package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestValidateBlackout(t *testing.T) {
	monday := intPtr(1)
	date := timePtr(time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC))

	cases := []struct {
		name string
		rule models.BlackoutRule
		code string
	}{
		{"pontual ok", models.BlackoutRule{Kind: BlackoutOneOff, SpecificDate: date, FullDay: true}, ""},
		{"recorrente ok", models.BlackoutRule{Kind: BlackoutRecurring, Weekday: monday, StartTime: "12:00", EndTime: "13:00"}, ""},
		{"pontual sem data", models.BlackoutRule{Kind: BlackoutOneOff, FullDay: true}, "missing_specific_date"},
		{"recorrente sem weekday", models.BlackoutRule{Kind: BlackoutRecurring, FullDay: true}, "invalid_weekday"},
		{"weekday fora da faixa", models.BlackoutRule{Kind: BlackoutRecurring, Weekday: intPtr(7), FullDay: true}, "invalid_weekday"},
		{"tipo desconhecido", models.BlackoutRule{Kind: "FERIADO"}, "invalid_blackout_kind"},
		{"faixa invertida", models.BlackoutRule{Kind: BlackoutRecurring, Weekday: monday, StartTime: "14:00", EndTime: "12:00"}, "invalid_time_range"},
		{"hora malformada", models.BlackoutRule{Kind: BlackoutRecurring, Weekday: monday, StartTime: "25:00", EndTime: "26:00"}, "invalid_time_range"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateBlackout(&tc.rule)
			if tc.code == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			}
		})
	}
}

func TestMatchesDate(t *testing.T) {
	monday := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)

	oneOff := models.BlackoutRule{
		Kind:         BlackoutOneOff,
		SpecificDate: timePtr(monday),
		FullDay:      true,
		Active:       true,
	}
	assert.True(t, MatchesDate(&oneOff, monday))
	assert.False(t, MatchesDate(&oneOff, tuesday))

	recurring := models.BlackoutRule{
		Kind:    BlackoutRecurring,
		Weekday: intPtr(1), // segunda
		FullDay: true,
		Active:  true,
	}
	assert.True(t, MatchesDate(&recurring, monday))
	assert.False(t, MatchesDate(&recurring, tuesday))

	// regra inativa nunca atinge
	recurring.Active = false
	assert.False(t, MatchesDate(&recurring, monday))
}

func TestBlackoutWindow_FullDay(t *testing.T) {
	date := time.Date(2030, 6, 3, 14, 30, 0, 0, time.UTC)
	rule := models.BlackoutRule{Kind: BlackoutOneOff, FullDay: true}

	start, end := BlackoutWindow(&rule, date)
	assert.Equal(t, time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC), end)
}

func TestBlackoutBlocks(t *testing.T) {
	monday := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	lunch := models.BlackoutRule{
		Kind:      BlackoutRecurring,
		Weekday:   intPtr(1),
		StartTime: "12:00",
		EndTime:   "13:00",
		Active:    true,
	}
	rules := []models.BlackoutRule{lunch}

	at := func(h, m int) time.Time {
		return time.Date(2030, 6, 3, h, m, 0, 0, time.UTC)
	}

	assert.True(t, BlackoutBlocks(rules, monday, at(12, 0), at(12, 30)))
	assert.True(t, BlackoutBlocks(rules, monday, at(11, 30), at(12, 30)))
	assert.True(t, BlackoutBlocks(rules, monday, at(12, 30), at(13, 30)))

	// janelas adjacentes não conflitam (semiaberto)
	assert.False(t, BlackoutBlocks(rules, monday, at(11, 0), at(12, 0)))
	assert.False(t, BlackoutBlocks(rules, monday, at(13, 0), at(14, 0)))

	// outro dia da semana
	tuesday := time.Date(2030, 6, 4, 0, 0, 0, 0, time.UTC)
	assert.False(t, BlackoutBlocks(rules, tuesday,
		time.Date(2030, 6, 4, 12, 0, 0, 0, time.UTC),
		time.Date(2030, 6, 4, 12, 30, 0, 0, time.UTC)))
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2030, 6, 3, h, m, 0, 0, time.UTC)
	}

	// 14:00+90min encosta em 15:30 mas não conflita
	assert.True(t, Overlaps(at(14, 0), at(15, 30), at(14, 30), at(15, 0)))
	assert.True(t, Overlaps(at(14, 30), at(15, 0), at(14, 0), at(15, 30)))
	assert.False(t, Overlaps(at(14, 0), at(15, 30), at(15, 30), at(16, 0)))
	assert.False(t, Overlaps(at(13, 30), at(14, 0), at(14, 0), at(15, 30)))
}
