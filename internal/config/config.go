package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string
	LogLevel    string
}

// defaultDSN usa autenticación integrada: sin campos de credenciales.
const defaultDSN = "host=localhost dbname=gestion_proveedores port=5432 sslmode=disable"

// Load lee primero un archivo .env si existe y después las variables de
// entorno. Los avisos por valores por defecto los emite main con el logger
// ya construido (ver Warnings).
func Load() *Config {
	// .env es opcional, en producción se configura por entorno
	_ = godotenv.Load()

	return &Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN", defaultDSN),
		CORSOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

// Warnings devuelve los avisos de configuración a loguear en el arranque.
func (c *Config) Warnings() []string {
	var avisos []string
	if c.DatabaseDSN == defaultDSN {
		avisos = append(avisos, "DATABASE_DSN usa el valor por defecto, definí la conexión propia para producción")
	}
	if c.CORSOrigins == "http://localhost:5173" {
		avisos = append(avisos, "CORS_ALLOWED_ORIGINS usa el valor por defecto, definí el dominio propio para producción")
	}
	return avisos
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
