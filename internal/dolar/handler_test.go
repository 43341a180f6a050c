package dolar

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"proveedores-backend/internal/database"
	"proveedores-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func setupApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Get("/api/dolar/listar", ListarHandler(db))
	app.Post("/api/dolar/cargar/:id_proveedor", CargarProveedorHandler(db))
	app.Post("/api/dolar/oficial/cargar", CargarOficialHandler(db))
	app.Delete("/api/dolar/oficial/:fecha/eliminar", EliminarOficialHandler(db))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCargarDolarProveedor(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	require.NoError(t, db.Create(&models.Proveedor{Nombre: "Acme"}).Error)

	t.Run("valor negativo", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": -5}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("valor cero", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": 0}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("proveedor inexistente", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/cargar/99", `{"valor": 1200}`)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	var cantidad int64
	require.NoError(t, db.Model(&models.DolarProveedor{}).Count(&cantidad).Error)
	require.Equal(t, int64(0), cantidad, "ninguna fila escrita hasta acá")

	t.Run("carga válida", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": 1200.50}`)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var registro models.DolarProveedor
		require.NoError(t, db.First(&registro, "id_proveedor = ?", 1).Error)
		assert.True(t, registro.Valor.Equal(decimal.NewFromFloat(1200.50)))
		assert.False(t, registro.UltimaActualizacion.IsZero())
	})
}

func TestCargarDolarProveedorConservaHistorico(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	require.NoError(t, db.Create(&models.Proveedor{Nombre: "Acme"}).Error)

	// Cotización de un día anterior ya registrada
	ayer := fechaDia(time.Now().AddDate(0, 0, -1))
	require.NoError(t, db.Create(&models.DolarProveedor{
		ProveedorID:         1,
		Valor:               decimal.NewFromInt(1100),
		Fecha:               ayer,
		UltimaActualizacion: ayer,
	}).Error)

	resp := doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": 1200}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var cantidad int64
	require.NoError(t, db.Model(&models.DolarProveedor{}).Where("id_proveedor = ?", 1).Count(&cantidad).Error)
	assert.Equal(t, int64(2), cantidad, "la fila del día anterior se conserva")

	// Recargar el mismo día pisa el valor del día, sin fila nueva
	resp = doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": 1250}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.NoError(t, db.Model(&models.DolarProveedor{}).Where("id_proveedor = ?", 1).Count(&cantidad).Error)
	assert.Equal(t, int64(2), cantidad)

	var hoy models.DolarProveedor
	require.NoError(t, db.First(&hoy, "id_proveedor = ? AND fecha = ?", 1, fechaDia(time.Now())).Error)
	assert.True(t, hoy.Valor.Equal(decimal.NewFromInt(1250)))
}

func TestCargarDolarOficial(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	t.Run("valor negativo no escribe", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": -5, "fecha": "2024-01-01"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var cantidad int64
		require.NoError(t, db.Model(&models.DolarOficial{}).Count(&cantidad).Error)
		assert.Equal(t, int64(0), cantidad)
	})

	t.Run("fecha faltante", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1200}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("fecha inválida", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1200, "fecha": "01/01/2024"}`)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("upsert por fecha", func(t *testing.T) {
		resp := doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1200, "fecha": "2024-01-01"}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp = doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1300, "fecha": "2024-01-01"}`)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var cantidad int64
		require.NoError(t, db.Model(&models.DolarOficial{}).Count(&cantidad).Error)
		assert.Equal(t, int64(1), cantidad, "una sola fila para la fecha")

		var registro models.DolarOficial
		require.NoError(t, db.First(&registro).Error)
		assert.True(t, registro.TipoCambio.Equal(decimal.NewFromInt(1300)), "gana la última carga")
	})
}

func TestEliminarDolarOficial(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	resp := doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1200, "fecha": "2024-01-01"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	t.Run("fecha existente", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/dolar/oficial/2024-01-01/eliminar", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var cantidad int64
		require.NoError(t, db.Model(&models.DolarOficial{}).Count(&cantidad).Error)
		assert.Equal(t, int64(0), cantidad)
	})

	t.Run("fecha inexistente", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/dolar/oficial/2024-01-02/eliminar", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("fecha mal formada", func(t *testing.T) {
		resp := doJSON(t, app, "DELETE", "/api/dolar/oficial/ayer/eliminar", "")
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestListarDolar(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)
	require.NoError(t, db.Create(&models.Proveedor{Nombre: "Acme"}).Error)

	resp := doJSON(t, app, "POST", "/api/dolar/cargar/1", `{"valor": 1200}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	resp = doJSON(t, app, "POST", "/api/dolar/oficial/cargar", `{"valor": 1150, "fecha": "2024-01-01"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/dolar/listar", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cuerpo struct {
		DolarProveedor []DolarProveedorResponse `json:"dolar_proveedor"`
		DolarOficial   []DolarOficialResponse   `json:"dolar_oficial"`
		Proveedores    []struct {
			ID     uint   `json:"id"`
			Nombre string `json:"nombre"`
		} `json:"proveedores"`
	}
	datos, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(datos, &cuerpo))

	require.Len(t, cuerpo.DolarProveedor, 1)
	assert.Equal(t, "Acme", cuerpo.DolarProveedor[0].Proveedor)
	assert.True(t, cuerpo.DolarProveedor[0].Valor.Equal(decimal.NewFromInt(1200)))

	require.Len(t, cuerpo.DolarOficial, 1)
	assert.Equal(t, "2024-01-01", cuerpo.DolarOficial[0].Fecha)
	assert.True(t, cuerpo.DolarOficial[0].Valor.Equal(decimal.NewFromInt(1150)))

	require.Len(t, cuerpo.Proveedores, 1)
}
