// Package clock provides the shop's wall clock.
//
// The shop runs on a fixed UTC-3 offset with no daylight-saving adjustment.
// Every timestamp and every calendar date ("fecha") in the system is derived
// from this zone, never from the host's local time zone.
package clock

import (
	"fmt"
	"time"
)

// LayoutFecha is the calendar date format used for storage and query params.
const LayoutFecha = "2006-01-02"

// Zona is the fixed UTC-3 zone.
var Zona = time.FixedZone("UTC-3", -3*60*60)

// Clock returns the current instant. Services depend on it so tests can pin time.
type Clock interface {
	Now() time.Time
}

type sistema struct{}

// Sistema returns the real clock expressed in Zona.
func Sistema() Clock { return sistema{} }

func (sistema) Now() time.Time { return time.Now().In(Zona) }

// Fijo is a Clock frozen at a given instant.
type Fijo struct{ T time.Time }

func (f Fijo) Now() time.Time { return f.T.In(Zona) }

// Fecha returns the calendar date of t in Zona.
func Fecha(t time.Time) string { return t.In(Zona).Format(LayoutFecha) }

// ParseFecha parses a YYYY-MM-DD date as midnight in Zona.
func ParseFecha(s string) (time.Time, error) {
	t, err := time.ParseInLocation(LayoutFecha, s, Zona)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: se espera AAAA-MM-DD", s)
	}
	return t, nil
}

// Hoy is a shortcut for Fecha(c.Now()).
func Hoy(c Clock) string { return Fecha(c.Now()) }
