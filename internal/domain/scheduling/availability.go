package scheduling

import (
	"time"

	"github.com/agendaestetica/detailing-scheduler/internal/models"
)

// FreeSlots enumera os horários livres de um dia. Função pura: recebe o
// template do dia, os bloqueios e os agendamentos do dia já carregados
// (uma busca por faixa cada, nunca uma consulta por slot).
//
// Regras:
//   - dia fechado (template ausente/inativo/sem horas) → vazio
//   - candidatos de 30 em 30 minutos em [abertura, fechamento)
//   - candidatos no passado em relação a now são descartados
//   - candidato cai fora se [cand, cand+passo) intersecta um bloqueio do dia
//     ou a janela [start, end) de um agendamento que ocupa horário
func FreeSlots(
	date time.Time,
	wh *models.WeeklyHours,
	blackouts []models.BlackoutRule,
	appointments []models.Appointment,
	now time.Time,
) []time.Time {

	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []time.Time{}
	}

	open := AtTime(date, wh.StartTime)
	close := AtTime(date, wh.EndTime)
	if !open.Before(close) {
		return []time.Time{}
	}

	slots := []time.Time{}

	for cur := open; cur.Before(close); cur = cur.Add(SlotStep) {
		if cur.Before(now) {
			continue
		}

		slotEnd := cur.Add(SlotStep)

		if BlackoutBlocks(blackouts, date, cur, slotEnd) {
			continue
		}

		conflict := false
		for i := range appointments {
			ap := &appointments[i]
			if !Blocks(Status(ap.Status)) {
				continue
			}
			if Overlaps(cur, slotEnd, ap.StartTime, ap.EndTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, cur)
		}
	}

	return slots
}
