package database

import (
	"fmt"
	"time"

	"proveedores-backend/internal/config"
	"proveedores-backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init abre la conexión a Postgres, configura el pool y corre las
// migraciones. El *gorm.DB devuelto es el único handle del proceso y se
// inyecta en los handlers.
func Init(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a la base de datos: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("no se pudo obtener el pool de conexiones: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("error de migración: %w", err)
	}

	log.Info("conexión a la base de datos establecida, migración completada")
	return db, nil
}

// Migrate crea/actualiza el esquema. Separado de Init para poder usarlo
// también contra la base en memoria de los tests.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Proveedor{},
		&models.Articulo{},
		&models.DescuentoProveedor{},
		&models.DolarProveedor{},
		&models.DolarOficial{},
	)
}
