package scheduling

import "time"

// Passo fixo de enumeração de horários.
const SlotStep = 30 * time.Minute

// AtTime ancora um horário "15:04" no dia/fuso de date.
func AtTime(date time.Time, hm string) time.Time {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

func IsValidHM(hm string) bool {
	_, err := time.Parse("15:04", hm)
	return err == nil
}

// Overlaps testa interseção de janelas semiabertas [aStart,aEnd) e [bStart,bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
