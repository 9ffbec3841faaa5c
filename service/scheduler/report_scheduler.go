/*
 * @module service/scheduler/report_scheduler
 * @description Programador del reporte de calidad: regenera el reporte con una
 * expresión cron (por defecto a las 03:00) invalidando la caché previa
 * @architecture Arquitectura en capas - servicio de programación
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Arranque del cron -> disparo programado -> regeneración del reporte
 * @rules Una sola entrada cron; la expresión se configura con QUALITY_REPORT_CRON
 * @dependencies github.com/robfig/cron/v3
 * @refs service/quality/service.go, service/init.go
 */

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gestor-proyecto-service/service/quality"

	"github.com/robfig/cron/v3"
)

const defaultCronSpec = "0 0 3 * * *"

// ReportScheduler regenera el reporte de calidad de forma programada
type ReportScheduler struct {
	cron    *cron.Cron
	quality *quality.Service
	spec    string
	started bool
}

// NewReportScheduler crea el programador; la expresión cron (con segundos) se lee
// de QUALITY_REPORT_CRON
func NewReportScheduler(qualityService *quality.Service) *ReportScheduler {
	spec := os.Getenv("QUALITY_REPORT_CRON")
	if spec == "" {
		spec = defaultCronSpec
	}

	return &ReportScheduler{
		cron:    cron.New(cron.WithSeconds()),
		quality: qualityService,
		spec:    spec,
	}
}

// Start registra la tarea y arranca el cron
func (s *ReportScheduler) Start() error {
	if s.started {
		return fmt.Errorf("el programador ya está iniciado")
	}

	if _, err := s.cron.AddFunc(s.spec, s.runScheduledReport); err != nil {
		return fmt.Errorf("expresión cron inválida %q: %w", s.spec, err)
	}

	s.cron.Start()
	s.started = true
	slog.Info("programador del reporte de calidad iniciado", "cron", s.spec)
	return nil
}

// Stop detiene el cron y espera las tareas en curso
func (s *ReportScheduler) Stop() {
	if !s.started {
		return
	}
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.started = false
	slog.Info("programador del reporte de calidad detenido")
}

// runScheduledReport regenera el reporte global con un tiempo límite
func (s *ReportScheduler) runScheduledReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	slog.Info("regeneración programada del reporte de calidad")
	if err := s.quality.RefreshReport(ctx); err != nil {
		slog.Error("regeneración programada fallida", "error", err)
	}
}
