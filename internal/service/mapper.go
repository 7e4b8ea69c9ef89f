package service

import (
	"time"

	"kioscopos/internal/clock"

	"github.com/google/uuid"
)

// hora renders a timestamp in the shop's zone for API responses.
func hora(t time.Time) string { return t.In(clock.Zona).Format(time.RFC3339) }

func uuidOpcional(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// parseUUIDOpcional parses an optional id field; blank means absent.
func parseUUIDOpcional(campo string, s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, validacion(campo, "no es un identificador válido")
	}
	return &id, nil
}

// fechaOHoy validates a YYYY-MM-DD date, defaulting to today.
func fechaOHoy(c clock.Clock, fecha string) (string, error) {
	if fecha == "" {
		return clock.Hoy(c), nil
	}
	if _, err := clock.ParseFecha(fecha); err != nil {
		return "", validacion("fecha", "%s", err.Error())
	}
	return fecha, nil
}
