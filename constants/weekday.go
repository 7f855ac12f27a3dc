package constants

import "time"

// Weekdays maps normalized Spanish weekday names (uppercase, no diacritics)
// to Go weekdays. Keys must match what schedule.CleanToken produces.
var Weekdays = map[string]time.Weekday{
	"LUNES":     time.Monday,
	"MARTES":    time.Tuesday,
	"MIERCOLES": time.Wednesday,
	"JUEVES":    time.Thursday,
	"VIERNES":   time.Friday,
	"SABADO":    time.Saturday,
	"DOMINGO":   time.Sunday,
}

// IsWeekday reports whether token is a known weekday name.
func IsWeekday(token string) bool {
	_, ok := Weekdays[token]
	return ok
}
