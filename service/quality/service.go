/*
 * @module service/quality/service
 * @description Servicio del motor de calidad de datos: orquesta el pipeline
 * escaneo -> evaluación -> agregación -> clasificación -> persistencia en una sola
 * ejecución secuencial por invocación, con caché de resultados de 24 horas
 * @architecture Arquitectura en capas - servicio de dominio
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Solicitud -> caché -> pipeline -> persistencia -> notificación
 * @rules La corrida es una instantánea puntual sin garantía de consistencia frente
 * a escritores concurrentes de las colecciones fuente; un fallo de escaneo aborta
 * el reporte completo
 * @dependencies service/docstore, service/cache, service/models
 * @refs service/quality/scanner.go, service/quality/persister.go
 */

package quality

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gestor-proyecto-service/service/cache"
	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"

	"github.com/google/uuid"
)

// ReportCacheTTL vigencia del reporte cacheado
const ReportCacheTTL = 24 * time.Hour

const (
	reportFramework = "ISO 8000 / ISO 25012 / DAMA-DMBOK"
	reportVersion   = "1.0"
)

// Mensaje del único camino de fallo documentado hacia el cliente
const storeUnavailableMsg = "No se pudo conectar al almacén de documentos"

// Notifier publica el resumen de un reporte generado (mejor esfuerzo)
type Notifier interface {
	PublishReport(ctx context.Context, summary models.ReportSummary) error
}

// Service motor de calidad de datos de unidades de proyecto
type Service struct {
	store     docstore.Store
	persister *Persister
	cache     cache.ReportCache
	notifier  Notifier
}

// NewService crea el servicio de calidad. El almacén puede ser nil cuando la
// conexión falló en el arranque: las solicitudes retornan success=false.
func NewService(store docstore.Store, reportCache cache.ReportCache) *Service {
	svc := &Service{store: store, cache: reportCache}
	if store != nil {
		svc.persister = NewPersister(store)
	}
	return svc
}

// SetNotifier registra el notificador de reportes generados
func (s *Service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// GetQualityMetrics operación expuesta del motor: retorna el reporte completo de
// calidad, servido desde caché cuando hay un resultado vigente. El filtro de
// centro gestor restringe únicamente el desglose por_centro_gestor; el DQS global
// siempre escanea todos los documentos.
func (s *Service) GetQualityMetrics(ctx context.Context, nombreCentroGestor string, historyLimit int) (models.JSONB, error) {
	// El límite se acota al mínimo, no se sustituye por el valor por defecto:
	// el controlador ya aplica el defecto cuando el parámetro está ausente
	if historyLimit < 1 {
		historyLimit = 1
	}

	if s.store == nil || s.store.Ping(ctx) != nil {
		return unavailablePayload(), nil
	}

	key := cacheKey(nombreCentroGestor, historyLimit)
	return s.cache.GetOrCompute(ctx, key, ReportCacheTTL, func(ctx context.Context) (models.JSONB, error) {
		report, err := s.generateReport(ctx, nombreCentroGestor, historyLimit)
		if err != nil {
			return nil, err
		}
		return reportToJSONB(report)
	})
}

// History retorna las instantáneas históricas resumidas para tendencias
func (s *Service) History(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if s.persister == nil {
		return nil, errors.New(storeUnavailableMsg)
	}
	return s.persister.History(ctx, limit)
}

// RefreshReport invalida la caché global y regenera el reporte; usado por el
// programador de tareas
func (s *Service) RefreshReport(ctx context.Context) error {
	key := cacheKey("", DefaultHistoryLimit)
	if err := s.cache.Invalidate(ctx, key); err != nil {
		slog.Warn("error invalidando la caché del reporte", "error", err)
	}

	payload, err := s.GetQualityMetrics(ctx, "", DefaultHistoryLimit)
	if err != nil {
		return err
	}
	if success, ok := payload["success"].(bool); ok && !success {
		return errors.New(storeUnavailableMsg)
	}
	return nil
}

// generateReport ejecuta el pipeline completo y persiste el resultado
func (s *Service) generateReport(ctx context.Context, nombreCentroGestor string, historyLimit int) (*models.QualityReport, error) {
	started := time.Now()
	slog.Info("generando reporte de calidad de datos",
		"centro_gestor", nombreCentroGestor,
		"history_limit", historyLimit)

	snap, err := BuildSnapshot(ctx, s.store)
	if err != nil {
		reportRuns.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("error escaneando las colecciones: %w", err)
	}

	rules := EvaluateRules(snap)
	dqsScore := ComputeDQS(rules)
	classification, color := Classify(dqsScore)

	report := &models.QualityReport{
		Success:     true,
		ReportID:    newReportID(started),
		GeneratedAt: started.UTC().Format(time.RFC3339),
		DQS: models.DQSResult{
			Score:          dqsScore,
			Classification: classification,
			Color:          color,
		},
		Rules:           rules,
		Collections:     collectionBreakdowns(snap, rules),
		Priorities:      priorityCounts(rules),
		Dimensiones:     DimensionRollup(rules),
		PorCentroGestor: CentroGestorRollup(snap, nombreCentroGestor),
	}

	totalIssues := 0
	for _, rule := range rules {
		totalIssues += rule.AffectedRecords
	}
	report.Overall = models.OverallSummary{
		QualityScore: dqsScore,
		TotalRecords: len(snap.Units) + len(snap.Interventions),
		TotalIssues:  totalIssues,
	}
	report.Resumen = buildResumen(report)
	report.EstadisticasGlobales = globalStats(snap, rules)

	// El historial embebido refleja corridas anteriores, no la actual
	history, err := s.persister.History(ctx, historyLimit)
	if err != nil {
		reportRuns.WithLabelValues("error").Inc()
		return nil, err
	}
	report.Historial = history

	report.Metadatos = models.ReportMetadata{
		Framework:   reportFramework,
		Version:     reportVersion,
		Collections: []string{CollectionUnidades, CollectionIntervenciones},
		Dimensions: []models.Dimension{
			models.DimensionCompletitud, models.DimensionExactitud,
			models.DimensionConsistencia, models.DimensionValidez,
			models.DimensionUnicidad, models.DimensionOportunidad,
		},
		DurationMs: time.Since(started).Milliseconds(),
	}

	if err := s.persister.SaveReport(ctx, report); err != nil {
		// Fallo de persistencia: se propaga sin reintento ni reporte parcial
		reportRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	s.notify(report)

	reportRuns.WithLabelValues("success").Inc()
	reportDuration.Observe(time.Since(started).Seconds())
	lastDQS.Set(dqsScore)

	slog.Info("reporte de calidad generado",
		"report_id", report.ReportID,
		"dqs", dqsScore,
		"clasificacion", classification,
		"duracion_ms", report.Metadatos.DurationMs)
	return report, nil
}

// notify publica el resumen del reporte de mejor esfuerzo
func (s *Service) notify(report *models.QualityReport) {
	if s.notifier == nil {
		return
	}
	summary := models.ReportSummary{
		ReportID:       report.ReportID,
		GeneratedAt:    report.GeneratedAt,
		Score:          report.DQS.Score,
		Classification: report.DQS.Classification,
		TotalIssues:    report.Overall.TotalIssues,
		Priorities:     report.Priorities,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.PublishReport(ctx, summary); err != nil {
			slog.Warn("error publicando la notificación del reporte", "error", err)
		}
	}()
}

// collectionBreakdowns desglosa los problemas detectados por colección
func collectionBreakdowns(snap *Snapshot, rules []models.RuleResult) map[string]models.CollectionBreakdown {
	totals := map[string]int{
		CollectionUnidades:       len(snap.Units),
		CollectionIntervenciones: len(snap.Interventions),
	}

	breakdowns := make(map[string]models.CollectionBreakdown, len(totals))
	for collection, total := range totals {
		breakdown := models.CollectionBreakdown{
			TotalRecords: total,
			Issues:       make([]models.IssueSummary, 0),
		}
		for _, rule := range rules {
			if rule.Collection != collection || rule.AffectedRecords == 0 {
				continue
			}
			breakdown.TotalIssues += rule.AffectedRecords
			breakdown.Issues = append(breakdown.Issues, models.IssueSummary{
				RuleID:          rule.RuleID,
				Name:            rule.Name,
				Dimension:       rule.Dimension,
				AffectedRecords: rule.AffectedRecords,
			})
		}
		breakdowns[collection] = breakdown
	}
	return breakdowns
}

// priorityCounts cuenta reglas por código de prioridad
func priorityCounts(rules []models.RuleResult) map[string]int {
	counts := map[string]int{"P1": 0, "P2": 0, "P3": 0, "P4": 0, "P5": 0}
	for _, rule := range rules {
		counts[string(rule.Priority.Code)]++
	}
	return counts
}

// buildResumen construye el espejo del reporte orientado al usuario final
func buildResumen(report *models.QualityReport) models.ReportResumen {
	resumen := models.ReportResumen{
		PuntajeCalidad:     report.DQS.Score,
		Clasificacion:      report.DQS.Classification,
		TotalProblemas:     report.Overall.TotalIssues,
		ReglasPrioritarias: make([]string, 0),
	}
	if len(report.Dimensiones) > 0 {
		resumen.DimensionCritica = string(report.Dimensiones[0].Dimension)
	}
	for _, rule := range report.Rules {
		if rule.Priority.Code == models.PriorityP1 {
			resumen.ReglasPrioritarias = append(resumen.ReglasPrioritarias, rule.RuleID)
		}
	}
	return resumen
}

// globalStats estadísticas globales de las colecciones escaneadas
func globalStats(snap *Snapshot, rules []models.RuleResult) models.GlobalStats {
	stats := models.GlobalStats{
		TotalUnidades:       len(snap.Units),
		TotalIntervenciones: len(snap.Interventions),
	}

	// Presencia de geometría en cualquiera de sus formas, válida o no
	for _, unit := range snap.Units {
		if !hasGeometry(unit.Data) {
			stats.UnidadesSinGeometria++
		}
	}

	centros := make(map[string]struct{})
	for _, intervention := range snap.Interventions {
		centros[ResolveCentroGestor(intervention, snap)] = struct{}{}
	}
	stats.CentrosGestores = len(centros)

	for _, rule := range rules {
		switch rule.RuleID {
		case "UP-CONS-001":
			stats.UnidadesSinIntervencion = rule.AffectedRecords
		case "INT-CONS-002":
			stats.IntervencionesHuerfanas = rule.AffectedRecords
		}
	}
	return stats
}

// unavailablePayload respuesta estructurada del único camino de fallo documentado
func unavailablePayload() models.JSONB {
	return models.JSONB{
		"success": false,
		"error":   storeUnavailableMsg,
	}
}

// cacheKey clave derivada del nombre de la operación y sus argumentos
func cacheKey(nombreCentroGestor string, historyLimit int) string {
	return fmt.Sprintf("quality_metrics:unidades_proyecto:%s:%d", nombreCentroGestor, historyLimit)
}

// newReportID identificador con prefijo de fecha y sufijo aleatorio
func newReportID(t time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("DQ-%s-%s", t.UTC().Format("20060102"), suffix)
}

// ReportFromPayload reconstruye el reporte tipado desde el documento dinámico
func ReportFromPayload(payload models.JSONB) (*models.QualityReport, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var report models.QualityReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
