package worker

// ticket_worker.go
// Renders the PDF receipt of a committed sale into PDF_STORAGE_PATH/tickets.

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"kioscopos/internal/infra"
	"kioscopos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketJobPayload is the job envelope sent to QueueTickets.
type TicketJobPayload struct {
	VentaID string `json:"venta_id"`
}

type TicketWorker struct {
	ventaRepo repository.VentaRepository
	dir       string
	shopName  string
}

func NewTicketWorker(ventaRepo repository.VentaRepository, pdfStoragePath, shopName string) *TicketWorker {
	return &TicketWorker{
		ventaRepo: ventaRepo,
		dir:       filepath.Join(pdfStoragePath, "tickets"),
		shopName:  shopName,
	}
}

// Process loads the sale with its lines and writes the receipt.
// A malformed or unknown venta_id is logged and dropped, never retried.
func (w *TicketWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload TicketJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return nil
	}
	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("ticket_worker: invalid venta_id")
		return nil
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("ticket_worker: load venta: %w", err)
	}
	if venta == nil {
		log.Warn().Str("venta_id", payload.VentaID).Msg("ticket_worker: venta not found")
		return nil
	}

	path, err := infra.GenerateTicketPDF(venta, w.dir, w.shopName)
	if err != nil {
		return err
	}
	log.Info().Str("venta_id", payload.VentaID).Str("pdf", path).Msg("ticket_worker: ticket generated")
	return nil
}
