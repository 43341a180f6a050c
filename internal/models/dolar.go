package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DolarProveedor - cotización del dólar informada por un proveedor.
// Histórico por fecha: una fila por proveedor por día calendario.
type DolarProveedor struct {
	ID                  uint            `gorm:"column:id;primaryKey"`
	ProveedorID         uint            `gorm:"column:id_proveedor;not null;uniqueIndex:idx_dolar_proveedor_fecha"`
	Proveedor           Proveedor       `gorm:"foreignKey:ProveedorID"`
	Valor               decimal.Decimal `gorm:"column:dolar_proveedor;type:decimal(12,4);not null"`
	Fecha               time.Time       `gorm:"column:fecha;uniqueIndex:idx_dolar_proveedor_fecha"`
	UltimaActualizacion time.Time       `gorm:"column:ultima_actualizacion"`
}

func (DolarProveedor) TableName() string { return "dolar_proveedor" }

// DolarOficial - cotización oficial, una fila por fecha.
type DolarOficial struct {
	Fecha      time.Time       `gorm:"column:fecha;primaryKey"`
	TipoCambio decimal.Decimal `gorm:"column:tipo_cambio;type:decimal(12,4);not null"`
}

func (DolarOficial) TableName() string { return "hist_dolar_oficial" }
