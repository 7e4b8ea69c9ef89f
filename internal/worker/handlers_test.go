package worker

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"kioscopos/internal/infra"
	"kioscopos/internal/model"
	"kioscopos/internal/repository"
	"kioscopos/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mailerFake struct {
	to, subject, body, adjunto string
	err                        error
}

func (m *mailerFake) Send(to, subject, body, attachPath string) error {
	m.to, m.subject, m.body, m.adjunto = to, subject, body, attachPath
	return m.err
}

func payload(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestCierreWorker_GeneraPDFYEnviaMail(t *testing.T) {
	dir := t.TempDir()
	m := &mailerFake{}
	w := NewCierreWorker(m, "duenio@example.com", dir, "Kiosco Central")

	err := w.Process(context.Background(), payload(t, CierreJobPayload{Fecha: "2024-05-01", Ciclo: 1, Reporte: "CIERRE"}))

	require.NoError(t, err)
	assert.Equal(t, "duenio@example.com", m.to)
	assert.Equal(t, "Kiosco Central - Cierre de caja 2024-05-01", m.subject)
	assert.Equal(t, "CIERRE", m.body)
	assert.Equal(t, filepath.Join(dir, "cierres", "cierre_2024-05-01_1.pdf"), m.adjunto)
	assert.FileExists(t, m.adjunto)
}

func TestCierreWorker_SinMailerSoloPDF(t *testing.T) {
	dir := t.TempDir()
	w := NewCierreWorker(nil, "", dir, "Kiosco")

	require.NoError(t, w.Process(context.Background(), payload(t, CierreJobPayload{Fecha: "2024-05-01", Ciclo: 2})))
	assert.FileExists(t, filepath.Join(dir, "cierres", "cierre_2024-05-01_2.pdf"))
}

func TestCierreWorker_ErrorDeEnvioSeReintenta(t *testing.T) {
	w := NewCierreWorker(&mailerFake{err: errors.New("smtp down")}, "a@example.com", t.TempDir(), "K")
	err := w.Process(context.Background(), payload(t, CierreJobPayload{Fecha: "2024-05-01", Ciclo: 1}))
	assert.ErrorContains(t, err, "smtp down")
}

func TestTicketWorker_GeneraTicket(t *testing.T) {
	db := testutil.NuevaDB(t)
	repo := repository.NewVentaRepository(db)
	venta := &model.Venta{
		Total: decimal.NewFromInt(300), MetodoPago: model.MetodoEfectivo,
		EstadoPago: model.EstadoPagado, TipoCliente: model.ConsumidorFinal, Fecha: "2024-05-01",
	}
	require.NoError(t, repo.CreateTx(db, venta))
	require.NoError(t, repo.CreateItemTx(db, &model.VentaItem{
		VentaID: venta.ID, NombreProducto: "Chicle", Cantidad: 3,
		PrecioUnitario: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(300),
	}))

	dir := t.TempDir()
	w := NewTicketWorker(repo, dir, "Kiosco")
	require.NoError(t, w.Process(context.Background(), payload(t, TicketJobPayload{VentaID: venta.ID.String()})))
	assert.FileExists(t, filepath.Join(dir, "tickets", "ticket_"+venta.ID.String()+".pdf"))
}

func TestTicketWorker_IDInvalidoNoReintenta(t *testing.T) {
	db := testutil.NuevaDB(t)
	w := NewTicketWorker(repository.NewVentaRepository(db), t.TempDir(), "Kiosco")

	assert.NoError(t, w.Process(context.Background(), payload(t, TicketJobPayload{VentaID: "no-uuid"})))
	assert.NoError(t, w.Process(context.Background(), payload(t, TicketJobPayload{VentaID: uuid.NewString()})))
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{`)))
}

type snapshotFake struct {
	err    error
	llamas int
}

func (s *snapshotFake) Ejecutar(context.Context) (string, error) {
	s.llamas++
	return "/tmp/x.db", s.err
}

func TestBackupWorker(t *testing.T) {
	ok := &snapshotFake{}
	assert.NoError(t, NewBackupWorker(ok).Process(context.Background(), payload(t, BackupJobPayload{Motivo: "cierre"})))
	assert.Equal(t, 1, ok.llamas)

	noSoportado := &snapshotFake{err: infra.ErrBackupNoSoportado}
	assert.NoError(t, NewBackupWorker(noSoportado).Process(context.Background(), nil))

	falla := &snapshotFake{err: errors.New("disk full")}
	assert.Error(t, NewBackupWorker(falla).Process(context.Background(), nil))
}
