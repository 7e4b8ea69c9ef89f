package infra_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kioscopos/internal/infra"
	"kioscopos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildVentaConItems() *model.Venta {
	return &model.Venta{
		ID:          uuid.New(),
		Total:       decimal.NewFromInt(1500),
		MetodoPago:  model.MetodoEfectivo,
		EstadoPago:  model.EstadoPagado,
		TipoCliente: model.ConsumidorFinal,
		CreatedAt:   time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
		Items: []model.VentaItem{
			{NombreProducto: "Alfajor Triple de Dulce de Leche con Baño", Cantidad: 2, PrecioUnitario: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(1000)},
			{NombreProducto: "Agua 500ml", Cantidad: 1, PrecioUnitario: decimal.NewFromInt(500), Subtotal: decimal.NewFromInt(500)},
		},
	}
}

func TestGenerateTicketPDF_Exitoso(t *testing.T) {
	tmpDir := t.TempDir()
	venta := buildVentaConItems()

	pdfPath, err := infra.GenerateTicketPDF(venta, tmpDir, "Kiosco Don Pepe")

	require.NoError(t, err)
	info, statErr := os.Stat(pdfPath)
	require.NoError(t, statErr)
	assert.Greater(t, info.Size(), int64(100), "PDF should have content > 100 bytes")
}

func TestGenerateTicketPDF_NombreArchivo(t *testing.T) {
	tmpDir := t.TempDir()
	venta := buildVentaConItems()

	pdfPath, err := infra.GenerateTicketPDF(venta, tmpDir, "Kiosco")

	require.NoError(t, err)
	assert.Equal(t, "ticket_"+venta.ID.String()+".pdf", filepath.Base(pdfPath))
}

func TestGenerateTicketPDF_CreaDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "tickets")

	_, err := infra.GenerateTicketPDF(buildVentaConItems(), dir, "Kiosco")

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestGenerateCierrePDF(t *testing.T) {
	tmpDir := t.TempDir()
	reporte := "==========\nCIERRE DE CAJA\nMonto Total: $ 1.234,56\n=========="

	pdfPath, err := infra.GenerateCierrePDF("2024-03-05", 2, reporte, tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "cierre_2024-03-05_2.pdf", filepath.Base(pdfPath))
	assert.FileExists(t, pdfPath)
}
