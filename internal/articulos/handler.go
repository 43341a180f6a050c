package articulos

import (
	"errors"
	"strings"
	"time"

	"proveedores-backend/internal/models"
	"proveedores-backend/internal/proveedores"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CrearArticuloRequest struct {
	ProveedorID *uint            `json:"id_proveedor"`
	Marca       string           `json:"marca"`     // Opcional
	Categoria   string           `json:"categoria"` // Opcional
	Producto    string           `json:"producto"`
	SKU         string           `json:"sku"`
	IVA         *decimal.Decimal `json:"iva"`
	CostoConIVA *decimal.Decimal `json:"costo_c_iva"`
	TipoMoneda  string           `json:"tipo_moneda"`
}

type ArticuloResponse struct {
	ID        uint            `json:"id"`
	Producto  string          `json:"producto"`
	SKU       string          `json:"sku"`
	Marca     string          `json:"marca"`
	Categoria string          `json:"categoria"`
	Proveedor string          `json:"proveedor"`
	Costo     decimal.Decimal `json:"costo"`
	Moneda    string          `json:"moneda"`
	IVA       decimal.Decimal `json:"iva"`
}

// listarArticulos trae los artículos con el nombre del proveedor ya
// resuelto, ordenados por producto.
func listarArticulos(db *gorm.DB) ([]ArticuloResponse, error) {
	var filas []ArticuloResponse
	err := db.Table("articulos").
		Select("articulos.id_articulo AS id, articulos.producto, articulos.sku, articulos.marca, articulos.categoria, proveedores.nombre_proveedor AS proveedor, articulos.costo_c_iva AS costo, articulos.tipo_moneda AS moneda, articulos.iva").
		Joins("INNER JOIN proveedores ON proveedores.id_proveedor = articulos.id_proveedor").
		Order("articulos.producto asc").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}
	return filas, nil
}

// GET /api/articulos/listar (también montado en GET /articulos)
// Devuelve además la lista de proveedores para el dropdown del cliente.
func ListarHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filas, err := listarArticulos(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los artículos")
		}

		provs, err := proveedores.ListarProveedores(db)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los proveedores")
		}

		return c.JSON(fiber.Map{
			"articulos":   filas,
			"proveedores": provs,
		})
	}
}

// POST /api/articulos/crear
func CrearHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CrearArticuloRequest
		if err := c.BodyParser(&body); err != nil {
			// iva/costo no numéricos caen acá
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		if body.ProveedorID == nil || *body.ProveedorID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El proveedor es requerido")
		}
		if strings.TrimSpace(body.Producto) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El producto es requerido")
		}
		if strings.TrimSpace(body.SKU) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El SKU es requerido")
		}
		if body.IVA == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El IVA es requerido")
		}
		if body.CostoConIVA == nil {
			return fiber.NewError(fiber.StatusBadRequest, "El costo es requerido")
		}
		if strings.TrimSpace(body.TipoMoneda) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "El tipo de moneda es requerido")
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Verificar el proveedor dentro de la misma transacción para
			// distinguir proveedor inexistente de un error de escritura
			var prov models.Proveedor
			if err := tx.First(&prov, "id_proveedor = ?", *body.ProveedorID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "El proveedor no existe")
				}
				return err
			}

			art := models.Articulo{
				ProveedorID:             *body.ProveedorID,
				Marca:                   strings.TrimSpace(body.Marca),
				Categoria:               strings.TrimSpace(body.Categoria),
				Producto:                strings.TrimSpace(body.Producto),
				SKU:                     strings.TrimSpace(body.SKU),
				IVA:                     *body.IVA,
				CostoConIVA:             *body.CostoConIVA,
				TipoMoneda:              strings.TrimSpace(body.TipoMoneda),
				FechaUltimaModificacion: time.Now(),
			}
			return tx.Create(&art).Error
		})
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return fe
			}
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el artículo")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
	}
}
