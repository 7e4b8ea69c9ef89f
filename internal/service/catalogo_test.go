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

// ── Productos ────────────────────────────────────────────────────────────────

func TestCrearProducto_Defaults(t *testing.T) {
	e := nuevoEntorno(t)
	p, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "  Alfajor  ",
		PrecioCosto: dec("150"),
		PrecioVenta: dec("300"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alfajor", p.Nombre)
	assert.Nil(t, p.Codigo)
	assert.Equal(t, 0, p.StockActual)
	assert.Equal(t, model.StockMinimoPorDefecto, p.StockMinimo)
	assert.True(t, p.SinStock)
	assert.False(t, p.StockBajo)
}

func TestCrearProducto_CodigoDuplicado(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "001", "Cola", "50", "100", 10)

	_, err := e.productos.Crear(context.Background(), dto.CrearProductoRequest{
		Codigo: ptr("001"), Nombre: "Otra", PrecioCosto: dec("1"), PrecioVenta: dec("2"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrCodigoDuplicado)

	var conf *service.ConflictoError
	require.ErrorAs(t, err, &conf)
	assert.Equal(t, "001", conf.Valor)
}

func TestCrearProducto_SinCodigoNoColisiona(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "", "Chicle", "10", "20", 5)
	e.producto(t, "", "Caramelo", "10", "20", 5)

	list, err := e.productos.Listar(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCrearProducto_Validaciones(t *testing.T) {
	e := nuevoEntorno(t)
	casos := map[string]dto.CrearProductoRequest{
		"nombre vacío":    {Nombre: "  ", PrecioCosto: dec("1"), PrecioVenta: dec("1")},
		"costo negativo":  {Nombre: "X", PrecioCosto: dec("-1"), PrecioVenta: dec("1")},
		"venta negativa":  {Nombre: "X", PrecioCosto: dec("1"), PrecioVenta: dec("-1")},
		"stock negativo":  {Nombre: "X", PrecioCosto: dec("1"), PrecioVenta: dec("1"), StockActual: ptr(-1)},
		"mínimo negativo": {Nombre: "X", PrecioCosto: dec("1"), PrecioVenta: dec("1"), StockMinimo: ptr(-2)},
	}
	for nombre, req := range casos {
		t.Run(nombre, func(t *testing.T) {
			_, err := e.productos.Crear(context.Background(), req)
			var v *service.ValidacionError
			assert.ErrorAs(t, err, &v)
		})
	}
}

func TestCrearProducto_CategoriaImplicita(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Agua", Categoria: ptr("Bebidas"), PrecioCosto: dec("100"), PrecioVenta: dec("200"),
	})
	require.NoError(t, err)
	require.NotNil(t, p.Categoria)
	assert.Equal(t, "Bebidas", *p.Categoria)

	// Same category name reuses the existing row.
	_, err = e.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Soda", Categoria: ptr("bebidas"), PrecioCosto: dec("100"), PrecioVenta: dec("200"),
	})
	require.NoError(t, err)

	cats, err := e.categorias.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1)
}

func TestObtenerProducto_Ausente(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()

	p, err := e.productos.ObtenerPorID(ctx, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = e.productos.ObtenerPorCodigo(ctx, "no-existe")
	assert.NoError(t, err)
	assert.Nil(t, p)
}

func TestObtenerPorCodigo(t *testing.T) {
	e := nuevoEntorno(t)
	creado := e.producto(t, "779", "Galletitas", "200", "350", 4)

	p, err := e.productos.ObtenerPorCodigo(context.Background(), " 779 ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, creado.ID, p.ID)
	assert.True(t, p.StockBajo)
}

func TestActualizarStock(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	p := e.producto(t, "001", "Cola", "50", "100", 10)

	actualizado, err := e.productos.ActualizarStock(ctx, uuid.MustParse(p.ID), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, actualizado.StockActual)

	ausente, err := e.productos.ActualizarStock(ctx, uuid.New(), 1)
	assert.NoError(t, err)
	assert.Nil(t, ausente)

	_, err = e.productos.ActualizarStock(ctx, uuid.MustParse(p.ID), -1)
	var v *service.ValidacionError
	assert.ErrorAs(t, err, &v)
}

func TestEliminarProducto_ConservaLineasDeVenta(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	p := e.producto(t, "001", "Cola", "50", "100", 10)
	v := e.vender(t, "Efectivo", nil, linea(p, 2))

	ok, err := e.productos.Eliminar(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.productos.Eliminar(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	assert.False(t, ok)

	guardada, err := e.ventas.ObtenerPorID(ctx, uuid.MustParse(v.ID))
	require.NoError(t, err)
	require.Len(t, guardada.Items, 1)
	assert.Equal(t, "Cola", guardada.Items[0].NombreProducto)
	assert.True(t, dec("100").Equal(guardada.Items[0].PrecioUnitario))
}

func TestMetricasInventario_ConjuntosDisjuntos(t *testing.T) {
	e := nuevoEntorno(t)
	e.producto(t, "", "Agotado", "10", "20", 0)
	e.producto(t, "", "Bajo", "10", "20", 5)  // 5 <= mínimo 5
	e.producto(t, "", "Normal", "10", "20", 6) // sobre el mínimo

	m, err := e.productos.Metricas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), m.TotalProductos)
	assert.Equal(t, int64(1), m.SinStock)
	assert.Equal(t, int64(1), m.StockBajo)
	assert.True(t, dec("110").Equal(m.ValorInventario), m.ValorInventario.String())
}

// ── Categorías ───────────────────────────────────────────────────────────────

func TestCategorias_OrdenAlfabetico(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	for _, n := range []string{"Snacks", "Almacén", "Bebidas"} {
		_, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: n})
		require.NoError(t, err)
	}
	list, err := e.categorias.Listar(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Almacén", list[0].Nombre)
	assert.Equal(t, "Bebidas", list[1].Nombre)
	assert.Equal(t, "Snacks", list[2].Nombre)
}

func TestCategorias_Duplicada(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	_, err := e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: "Bebidas"})
	require.NoError(t, err)

	_, err = e.categorias.Crear(ctx, dto.CrearCategoriaRequest{Nombre: " Bebidas "})
	assert.ErrorIs(t, err, service.ErrCategoriaDuplicada)
}

func TestCategorias_EliminarEnUso(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	p, err := e.productos.Crear(ctx, dto.CrearProductoRequest{
		Nombre: "Agua", Categoria: ptr("Bebidas"), PrecioCosto: dec("1"), PrecioVenta: dec("2"),
	})
	require.NoError(t, err)

	_, err = e.categorias.Eliminar(ctx, uuid.MustParse(*p.CategoriaID))
	var enUso *service.CategoriaEnUsoError
	require.ErrorAs(t, err, &enUso)
	assert.Equal(t, int64(1), enUso.Productos)

	ok, err := e.productos.Eliminar(ctx, uuid.MustParse(p.ID))
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = e.categorias.Eliminar(ctx, uuid.MustParse(*p.CategoriaID))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = e.categorias.Eliminar(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategorias_SembrarSoloUnaVez(t *testing.T) {
	e := nuevoEntorno(t)
	ctx := context.Background()
	require.NoError(t, e.categorias.SembrarPorDefecto(ctx))
	require.NoError(t, e.categorias.SembrarPorDefecto(ctx))

	list, err := e.categorias.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, list, len(model.CategoriasPorDefecto))
}
