package service

import (
	"fmt"
	"strings"
	"time"

	"kioscopos/internal/format"
	"kioscopos/internal/repository"

	"github.com/shopspring/decimal"
)

const anchoInforme = 60

// datosCierre is everything the close report prints. It is archival only:
// TotalIngresos is computed separately and never parsed back from the text.
type datosCierre struct {
	Comercio          string
	Fecha             string
	Ciclo             int
	Emitido           time.Time
	Resumen           repository.ResumenVentas
	ProductosVendidos int64
	TotalIngresos     decimal.Decimal
	Top               []repository.ProductoVendido
	Inventario        repository.MetricasInventario
	Notas             string
}

func informeCierre(d datosCierre) string {
	var b strings.Builder
	banner := strings.Repeat("=", anchoInforme)
	seccion := func(titulo string) {
		b.WriteString("\n" + banner + "\n")
		b.WriteString(format.Centrar(titulo, anchoInforme) + "\n")
		b.WriteString(banner + "\n\n")
	}

	b.WriteString(banner + "\n")
	b.WriteString(format.Centrar(strings.ToUpper(d.Comercio)+" - CIERRE DE CAJA", anchoInforme) + "\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "Fecha: %s (ciclo %d)\n", d.Fecha, d.Ciclo)
	fmt.Fprintf(&b, "Emitido: %s\n", d.Emitido.Format("02/01/2006 15:04:05"))

	seccion("RESUMEN DE VENTAS")
	fmt.Fprintf(&b, "• Total de Ventas: %d\n", d.Resumen.Cantidad)
	fmt.Fprintf(&b, "• Monto Total de Ventas: %s\n", format.Moneda(d.Resumen.Total))
	fmt.Fprintf(&b, "• Ticket Promedio: %s\n", format.Moneda(d.Resumen.Promedio))
	fmt.Fprintf(&b, "• Clientes Atendidos: %d\n", d.Resumen.TiposClienteUnico)
	fmt.Fprintf(&b, "• Productos Vendidos: %d\n", d.ProductosVendidos)

	seccion("INGRESOS MONETARIOS")
	fmt.Fprintf(&b, "• Total de Ingresos (Efectivo/Transferencias/Abonos): %s\n", format.Moneda(d.TotalIngresos))

	seccion("PRODUCTOS MÁS VENDIDOS")
	if len(d.Top) == 0 {
		b.WriteString("No hay datos de productos vendidos.\n")
	}
	for i, p := range d.Top {
		fmt.Fprintf(&b, "%d. %-30s %3d unidades  %10s\n", i+1, p.Nombre, p.Cantidad, format.Moneda(p.Monto))
	}

	seccion("ESTADO DEL INVENTARIO")
	fmt.Fprintf(&b, "• Total de Productos: %d\n", d.Inventario.TotalProductos)
	fmt.Fprintf(&b, "• Valor Total del Inventario: %s\n", format.Moneda(d.Inventario.ValorInventario))
	fmt.Fprintf(&b, "• Productos con Stock Bajo: %d\n", d.Inventario.StockBajo)
	fmt.Fprintf(&b, "• Productos Agotados: %d\n", d.Inventario.SinStock)

	if d.Notas != "" {
		seccion("NOTAS")
		b.WriteString(d.Notas + "\n")
	}

	b.WriteString("\n" + banner + "\n")
	b.WriteString(format.Centrar("CIERRE DE CAJA COMPLETADO", anchoInforme) + "\n")
	b.WriteString(banner + "\n")
	return b.String()
}
