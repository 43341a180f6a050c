package models

// Proveedor - entidad desde la que se compran artículos.
// El id lo genera la base de datos.
type Proveedor struct {
	ID     uint   `gorm:"column:id_proveedor;primaryKey"`
	Nombre string `gorm:"column:nombre_proveedor;size:200;not null"`
}

func (Proveedor) TableName() string { return "proveedores" }
