package worker

// cierre_worker.go
// Prints the close report to PDF and mails it to the shop owner.

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"kioscopos/internal/infra"

	"github.com/rs/zerolog/log"
)

// CierreJobPayload is the job envelope sent to QueueCierres.
type CierreJobPayload struct {
	Fecha   string `json:"fecha"`
	Ciclo   int    `json:"ciclo"`
	Reporte string `json:"reporte"`
}

// Mailer is the subset of infra.Mailer the close worker needs.
type Mailer interface {
	Send(to, subject, body, attachPath string) error
}

type CierreWorker struct {
	mailer   Mailer
	to       string
	dir      string
	shopName string
}

// NewCierreWorker wires the close worker. A nil mailer or empty recipient only writes the PDF.
func NewCierreWorker(mailer Mailer, ownerEmail, pdfStoragePath, shopName string) *CierreWorker {
	return &CierreWorker{
		mailer:   mailer,
		to:       ownerEmail,
		dir:      filepath.Join(pdfStoragePath, "cierres"),
		shopName: shopName,
	}
}

func (w *CierreWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload CierreJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("cierre_worker: invalid payload")
		return nil
	}

	path, err := infra.GenerateCierrePDF(payload.Fecha, payload.Ciclo, payload.Reporte, w.dir)
	if err != nil {
		return err
	}
	log.Info().Str("fecha", payload.Fecha).Str("pdf", path).Msg("cierre_worker: report generated")

	if w.mailer == nil || w.to == "" {
		log.Debug().Msg("cierre_worker: mail disabled, skipping send")
		return nil
	}
	subject := fmt.Sprintf("%s - Cierre de caja %s", w.shopName, payload.Fecha)
	if err := w.mailer.Send(w.to, subject, payload.Reporte, path); err != nil {
		return fmt.Errorf("cierre_worker: send mail: %w", err)
	}
	log.Info().Str("to", w.to).Msg("cierre_worker: report sent")
	return nil
}
