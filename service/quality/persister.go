/*
 * @module service/quality/persister
 * @description Persistencia de reportes de calidad: anexa cada reporte al historial
 * inmutable y sobrescribe el documento "latest"; expone la lectura acotada de
 * instantáneas históricas para tendencias
 * @architecture Arquitectura en capas - servicio de dominio (etapa 5 del pipeline)
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Reporte calculado -> anexo al historial -> sobrescritura de latest
 * @rules Dos escrituras independientes sin transacción: el reporte es un artefacto
 * analítico, no dato transaccional de negocio
 * @dependencies service/docstore, service/models
 * @refs service/quality/service.go
 */

package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"
)

// Colecciones de persistencia del reporte
const (
	CollectionHistorial = "unidades_proyecto_quality_historial"
	CollectionLatest    = "unidades_proyecto_quality_metrics"
	latestDocID         = "latest"
)

// DefaultHistoryLimit número de instantáneas históricas retornadas por defecto
const DefaultHistoryLimit = 30

// Persister persiste y recupera reportes de calidad
type Persister struct {
	store docstore.Store
}

// NewPersister crea el persistidor de reportes
func NewPersister(store docstore.Store) *Persister {
	return &Persister{store: store}
}

// SaveReport anexa el reporte al historial y sobrescribe el documento latest.
// Las dos escrituras son independientes; un fallo se propaga sin rollback.
func (p *Persister) SaveReport(ctx context.Context, report *models.QualityReport) error {
	payload, err := reportToJSONB(report)
	if err != nil {
		return fmt.Errorf("error serializando el reporte: %w", err)
	}

	if _, err := p.store.Add(ctx, CollectionHistorial, payload); err != nil {
		return fmt.Errorf("error anexando el reporte al historial: %w", err)
	}

	if err := p.store.Set(ctx, CollectionLatest, latestDocID, payload); err != nil {
		return fmt.Errorf("error sobrescribiendo el reporte latest: %w", err)
	}

	return nil
}

// History retorna las instantáneas más recientes del historial, proyectadas a su
// resumen, más recientes primero por comparación de cadenas de generated_at
func (p *Persister) History(ctx context.Context, limit int) ([]models.ReportSummary, error) {
	if limit < 1 {
		limit = 1
	}

	docs, err := p.store.Stream(ctx, CollectionHistorial)
	if err != nil {
		return nil, fmt.Errorf("error leyendo el historial de reportes: %w", err)
	}

	summaries := make([]models.ReportSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, summarize(doc.Data))
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].GeneratedAt > summaries[j].GeneratedAt
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

// summarize proyecta el documento de reporte a los campos del resumen histórico
func summarize(doc models.JSONB) models.ReportSummary {
	summary := models.ReportSummary{
		Priorities: make(map[string]int),
	}
	if v, ok := doc["report_id"].(string); ok {
		summary.ReportID = v
	}
	if v, ok := doc["generated_at"].(string); ok {
		summary.GeneratedAt = v
	}
	if dqs, ok := doc["dqs"].(map[string]interface{}); ok {
		if score, ok := dqs["score"].(float64); ok {
			summary.Score = score
		}
		if classification, ok := dqs["clasificacion"].(string); ok {
			summary.Classification = classification
		}
	}
	if overall, ok := doc["overall"].(map[string]interface{}); ok {
		if issues, ok := overall["total_problemas"].(float64); ok {
			summary.TotalIssues = int(issues)
		}
	}
	if priorities, ok := doc["priorities"].(map[string]interface{}); ok {
		for code, count := range priorities {
			if n, ok := count.(float64); ok {
				summary.Priorities[code] = int(n)
			}
		}
	}
	return summary
}

// reportToJSONB serializa el reporte a un documento dinámico
func reportToJSONB(report *models.QualityReport) (models.JSONB, error) {
	raw, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}
	var payload models.JSONB
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
