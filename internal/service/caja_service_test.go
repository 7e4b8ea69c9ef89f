package service_test

import (
	"context"
	"testing"

	"kioscopos/internal/dto"
	"kioscopos/internal/model"
	"kioscopos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbrirCaja_DosVecesSinCierre(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	a, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-01-01", MontoInicial: dec("500")})
	require.NoError(t, err)
	assert.Equal(t, 1, a.Ciclo)
	assert.True(t, dec("500").Equal(a.MontoInicial))

	_, err = e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-01-01", MontoInicial: dec("200")})
	assert.ErrorIs(t, err, service.ErrCajaYaAbierta)
}

func TestAbrirCaja_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	_, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{MontoInicial: dec("-1")})
	var v *service.ValidacionError
	assert.ErrorAs(t, err, &v)

	_, err = e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-13-01"})
	assert.ErrorAs(t, err, &v)
}

func TestEstadoCaja_Ciclo(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	est, err := e.caja.Estado(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaNoAbierta), est.Estado)
	assert.Equal(t, "2024-01-01", est.Fecha)
	assert.Nil(t, est.MontoInicial)

	_, err = e.caja.Abrir(ctx, dto.AbrirCajaRequest{MontoInicial: dec("1000")})
	require.NoError(t, err)
	est, err = e.caja.Estado(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaAbierta), est.Estado)
	require.NotNil(t, est.MontoInicial)
	assert.True(t, dec("1000").Equal(*est.MontoInicial))
	assert.Nil(t, est.TotalIngresos)

	_, err = e.caja.Cerrar(ctx, dto.CerrarCajaRequest{})
	require.NoError(t, err)
	est, err = e.caja.Estado(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaCerrada), est.Estado)
	require.NotNil(t, est.TotalIngresos)
}

func TestCerrarCaja_ExcluyeVentasACuentaCorriente(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cola := e.producto(t, "001", "Cola", "50", "100", 10)
	juan := e.cliente(t, "Juan")

	e.vender(t, "Cuenta Corriente", ptr(juan.ID), linea(cola, 3))
	e.vender(t, "Efectivo", nil, linea(cola, 1))

	ing, err := e.caja.IngresosDelDia(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(ing.VentasPagadas), ing.VentasPagadas.String())
	assert.True(t, ing.Abonos.IsZero())
	assert.True(t, dec("100").Equal(ing.Total))

	c, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(c.TotalIngresos), c.TotalIngresos.String())
}

func TestCerrarCaja_IncluyeAbonos(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cola := e.producto(t, "001", "Cola", "50", "100", 10)
	juan := e.cliente(t, "Juan")
	e.vender(t, "Cuenta Corriente", ptr(juan.ID), linea(cola, 5))

	a, err := e.clientes.RegistrarAbono(ctx, uuid.MustParse(juan.ID), dto.RegistrarAbonoRequest{
		Monto: dec("150"), MetodoPago: "Cash",
	})
	require.NoError(t, err)
	assert.True(t, dec("350").Equal(a.SaldoRestante))

	c, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2024-01-01"})
	require.NoError(t, err)
	assert.True(t, dec("150").Equal(c.TotalIngresos), c.TotalIngresos.String())
}

func TestCerrarCaja_DuplicadoYReapertura(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cola := e.producto(t, "001", "Cola", "50", "100", 10)

	_, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{MontoInicial: dec("100")})
	require.NoError(t, err)
	e.vender(t, "Efectivo", nil, linea(cola, 1))
	c1, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, c1.Ciclo)

	_, err = e.caja.Cerrar(ctx, dto.CerrarCajaRequest{})
	assert.ErrorIs(t, err, service.ErrCierreDuplicado)

	a2, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{MontoInicial: dec("50")})
	require.NoError(t, err)
	assert.Equal(t, 2, a2.Ciclo)

	est, err := e.caja.Estado(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaAbierta), est.Estado)
	assert.Equal(t, 2, est.Ciclo)

	e.vender(t, "Efectivo", nil, linea(cola, 2))
	c2, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, c2.Ciclo)
	// Income is always the whole date.
	assert.True(t, dec("300").Equal(c2.TotalIngresos), c2.TotalIngresos.String())
}

func TestCerrarCaja_SinApertura(t *testing.T) {
	e := nuevoEntorno(t)
	c, err := e.caja.Cerrar(context.Background(), dto.CerrarCajaRequest{Fecha: "2024-02-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Ciclo)
	assert.True(t, c.TotalIngresos.IsZero())
}

func TestAbrirCaja_DespuesDeCierreSinApertura(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	c1, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2024-01-01"})
	require.NoError(t, err)
	require.Equal(t, 1, c1.Ciclo)

	a, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: "2024-01-01", MontoInicial: dec("500")})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Ciclo)

	est, err := e.caja.Estado(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaAbierta), est.Estado)
	assert.Equal(t, 2, est.Ciclo)

	c2, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Fecha: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 2, c2.Ciclo)

	est, err = e.caja.Estado(ctx, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, string(model.CajaCerrada), est.Estado)
}

func TestCerrarCaja_InformeEnNotas(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	cola := e.producto(t, "001", "Cola", "50", "1000", 10)
	e.producto(t, "002", "Agotado", "10", "20", 0)
	e.vender(t, "Efectivo", nil, linea(cola, 2))

	c, err := e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Notas: ptr("faltó cambio")})
	require.NoError(t, err)
	require.NotNil(t, c.Notas)
	informe := *c.Notas

	assert.Contains(t, informe, "KIOSCO TEST - CIERRE DE CAJA")
	assert.Contains(t, informe, "Fecha: 2024-01-01 (ciclo 1)")
	assert.Contains(t, informe, "• Total de Ventas: 1")
	assert.Contains(t, informe, "• Monto Total de Ventas: $ 2.000,00")
	assert.Contains(t, informe, "• Total de Ingresos (Efectivo/Transferencias/Abonos): $ 2.000,00")
	assert.Contains(t, informe, "1. Cola")
	assert.Contains(t, informe, "• Productos Agotados: 1")
	assert.Contains(t, informe, "faltó cambio")
	assert.Contains(t, informe, "CIERRE DE CAJA COMPLETADO")
}

func TestHistorialCaja(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	for _, f := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		_, err := e.caja.Abrir(ctx, dto.AbrirCajaRequest{Fecha: f, MontoInicial: dec("10")})
		require.NoError(t, err)
		_, err = e.caja.Cerrar(ctx, dto.CerrarCajaRequest{Fecha: f})
		require.NoError(t, err)
	}

	h, err := e.caja.Historial(ctx, dto.RangoQuery{Desde: "2024-01-02", Hasta: "2024-01-03"})
	require.NoError(t, err)
	require.Len(t, h.Aperturas, 2)
	require.Len(t, h.Cierres, 2)
	assert.Equal(t, "2024-01-03", h.Aperturas[0].Fecha)

	todo, err := e.caja.Historial(ctx, dto.RangoQuery{})
	require.NoError(t, err)
	assert.Len(t, todo.Aperturas, 3)

	_, err = e.caja.Historial(ctx, dto.RangoQuery{Desde: "2024-01-02"})
	var v *service.ValidacionError
	assert.ErrorAs(t, err, &v)

	_, err = e.caja.Historial(ctx, dto.RangoQuery{Desde: "2024-01-03", Hasta: "2024-01-01"})
	assert.ErrorAs(t, err, &v)
}
