package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DescuentoProveedor - esquema de descuentos negociado con un proveedor.
// A lo sumo una fila por proveedor: la clave primaria es el id del proveedor.
type DescuentoProveedor struct {
	ProveedorID       uint            `gorm:"column:id_proveedor;primaryKey;autoIncrement:false"`
	Proveedor         Proveedor       `gorm:"foreignKey:ProveedorID"`
	Descuento1        decimal.Decimal `gorm:"column:descuento_1;type:decimal(5,2);not null"`
	Descuento2        decimal.Decimal `gorm:"column:descuento_2;type:decimal(5,2);not null"`
	PagoContado       decimal.Decimal `gorm:"column:pago_contado;type:decimal(5,2);not null"`
	DtoFinanciero     decimal.Decimal `gorm:"column:dto_financiero;type:decimal(5,2);not null"`
	FechaModificacion time.Time       `gorm:"column:fecha_modificacion"`
}

func (DescuentoProveedor) TableName() string { return "descuentos_proveedor" }
