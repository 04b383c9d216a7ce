package oidc

import (
	"fmt"
	"time"
)

// Date es una fecha de calendario sin hora, para claims tipo birthdate.
// El serializador la emite como YYYY-MM-DD.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf toma la fecha de calendario de un time.Time.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String implementa fmt.Stringer con formato YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
