package scheduling

import (
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/httperr"
	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

// ===============================
// Bloqueios de agenda
// ===============================

const (
	BlackoutOneOff    = "PONTUAL"
	BlackoutRecurring = "RECORRENTE"
)

// ValidateBlackout valida os campos obrigatórios por tipo.
func ValidateBlackout(rule *models.BlackoutRule) error {
	switch rule.Kind {
	case BlackoutOneOff:
		if rule.SpecificDate == nil {
			return httperr.ErrBusiness("missing_specific_date")
		}
	case BlackoutRecurring:
		if rule.Weekday == nil || *rule.Weekday < 0 || *rule.Weekday > 6 {
			return httperr.ErrBusiness("invalid_weekday")
		}
	default:
		return httperr.ErrBusiness("invalid_blackout_kind")
	}

	if !rule.FullDay {
		if !IsValidHM(rule.StartTime) || !IsValidHM(rule.EndTime) {
			return httperr.ErrBusiness("invalid_time_range")
		}
		if !AtTime(time.Now(), rule.StartTime).Before(AtTime(time.Now(), rule.EndTime)) {
			return httperr.ErrBusiness("invalid_time_range")
		}
	}

	return nil
}

// MatchesDate decide se a regra atinge o dia: PONTUAL compara o dia do
// calendário, RECORRENTE compara o dia da semana.
func MatchesDate(rule *models.BlackoutRule, date time.Time) bool {
	if !rule.Active {
		return false
	}

	switch rule.Kind {
	case BlackoutOneOff:
		if rule.SpecificDate == nil {
			return false
		}
		// SpecificDate é ancorada à meia-noite no fuso do tenant; convertida de
		// volta para esse fuso recupera o dia de calendário pretendido
		d := rule.SpecificDate.In(date.Location())
		return d.Year() == date.Year() && d.Month() == date.Month() && d.Day() == date.Day()
	case BlackoutRecurring:
		return rule.Weekday != nil && *rule.Weekday == int(date.Weekday())
	}

	return false
}

// BlackoutWindow materializa a janela bloqueada da regra no dia informado.
// Dia inteiro vira [00:00, 24:00).
func BlackoutWindow(rule *models.BlackoutRule, date time.Time) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if rule.FullDay {
		return dayStart, dayStart.Add(24 * time.Hour)
	}
	return AtTime(date, rule.StartTime), AtTime(date, rule.EndTime)
}

// BlackoutBlocks testa se alguma regra aplicável ao dia intersecta [start, end).
func BlackoutBlocks(rules []models.BlackoutRule, date time.Time, start, end time.Time) bool {
	for i := range rules {
		rule := &rules[i]
		if !MatchesDate(rule, date) {
			continue
		}
		bStart, bEnd := BlackoutWindow(rule, date)
		if Overlaps(start, end, bStart, bEnd) {
			return true
		}
	}
	return false
}
