/*
 * @module service/init
 * @description Inicialización del servicio: conexión al almacén de documentos,
 * caché de reportes, notificador de eventos y programador de tareas
 * @architecture Arquitectura en capas - capa de servicio
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Conexión a base de datos -> migración -> servicios -> programador
 * @rules Un fallo de conexión no detiene el arranque: el motor de calidad responde
 * success=false hasta que el almacén esté disponible
 * @dependencies gorm.io/gorm, gorm.io/driver/postgres
 * @refs api/routes.go
 */

package service

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gestor-proyecto-service/logger"
	"gestor-proyecto-service/service/cache"
	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/event"
	"gestor-proyecto-service/service/quality"
	"gestor-proyecto-service/service/scheduler"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB                    *gorm.DB
	GlobalStore           docstore.Store
	GlobalQualityService  *quality.Service
	GlobalReportScheduler *scheduler.ReportScheduler
	GlobalReportNotifier  *event.ReportNotifier
)

func init() {
	logger.InitLogger()
	initDocumentStore()
	initServices()
}

// initDocumentStore conecta el almacén de documentos. El fallo se registra pero no
// detiene el arranque: el motor de calidad responde con el camino de fallo
// estructurado hasta que haya conexión.
func initDocumentStore() {
	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{})
	if err != nil {
		slog.Error("conexión al almacén de documentos fallida", "error", err)
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("error obteniendo la conexión subyacente", "error", err)
		return
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	store, err := docstore.NewGormStore(db)
	if err != nil {
		slog.Error("error inicializando el almacén de documentos", "error", err)
		return
	}

	DB = db
	GlobalStore = store
	slog.Info("almacén de documentos inicializado")
}

// initServices construye el motor de calidad y sus colaboradores
func initServices() {
	GlobalQualityService = quality.NewService(GlobalStore, cache.NewFromEnv())

	if GlobalReportNotifier = event.NewReportNotifierFromEnv(); GlobalReportNotifier != nil {
		GlobalQualityService.SetNotifier(GlobalReportNotifier)
	}

	GlobalReportScheduler = scheduler.NewReportScheduler(GlobalQualityService)
	if GlobalStore != nil {
		if err := GlobalReportScheduler.Start(); err != nil {
			slog.Error("error iniciando el programador de reportes", "error", err)
		}
	}
}

// databaseDSN construye el DSN: DATABASE_URL tiene prioridad sobre las partes
func databaseDSN() string {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		return databaseURL
	}

	host := getEnvWithDefault("DB_HOST", "localhost")
	port := getEnvWithDefault("DB_PORT", "5432")
	user := getEnvWithDefault("DB_USER", "postgres")
	password := getEnvWithDefault("DB_PASSWORD", "postgres")
	name := getEnvWithDefault("DB_NAME", "gestor_proyecto")
	sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslmode)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
