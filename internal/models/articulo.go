package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Articulo - producto comprable, siempre asociado a un proveedor.
type Articulo struct {
	ID                      uint            `gorm:"column:id_articulo;primaryKey"`
	ProveedorID             uint            `gorm:"column:id_proveedor;index;not null"`
	Proveedor               Proveedor       `gorm:"foreignKey:ProveedorID"`
	Marca                   string          `gorm:"column:marca;size:100"`
	Categoria               string          `gorm:"column:categoria;size:100"`
	Producto                string          `gorm:"column:producto;size:200;not null"`
	SKU                     string          `gorm:"column:sku;size:50;index"`
	IVA                     decimal.Decimal `gorm:"column:iva;type:decimal(5,2);not null"`
	CostoConIVA             decimal.Decimal `gorm:"column:costo_c_iva;type:decimal(12,2);not null"`
	TipoMoneda              string          `gorm:"column:tipo_moneda;size:10;not null"`
	FechaUltimaModificacion time.Time       `gorm:"column:fecha_ultima_modificacion"`
}

func (Articulo) TableName() string { return "articulos" }
