/*
 * @module service/quality/persister_test
 * @description Pruebas de la persistencia de reportes: anexo al historial,
 * sobrescritura del documento latest y lectura acotada de instantáneas
 * @architecture Capa de pruebas
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Guardado de reportes -> verificación de colecciones -> lectura histórica
 * @dependencies testing, stretchr/testify
 */

package quality

import (
	"context"
	"testing"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(reportID, generatedAt string, score float64) *models.QualityReport {
	classification, color := Classify(score)
	return &models.QualityReport{
		Success:     true,
		ReportID:    reportID,
		GeneratedAt: generatedAt,
		DQS: models.DQSResult{
			Score:          score,
			Classification: classification,
			Color:          color,
		},
		Overall:    models.OverallSummary{QualityScore: score, TotalIssues: 3},
		Priorities: map[string]int{"P1": 1, "P2": 0, "P3": 2, "P4": 0, "P5": 0},
	}
}

// TestSaveReportAppendAndOverwrite cada guardado anexa al historial y sobrescribe
// el documento latest
func TestSaveReportAppendAndOverwrite(t *testing.T) {
	store := docstore.NewMemoryStore()
	persister := NewPersister(store)
	ctx := context.Background()

	require.NoError(t, persister.SaveReport(ctx, sampleReport("DQ-20250101-aaaa1111", "2025-01-01T03:00:00Z", 92.5)))
	require.NoError(t, persister.SaveReport(ctx, sampleReport("DQ-20250102-bbbb2222", "2025-01-02T03:00:00Z", 94.1)))

	assert.Equal(t, 2, store.Count(CollectionHistorial))
	assert.Equal(t, 1, store.Count(CollectionLatest))

	latest, err := store.Stream(ctx, CollectionLatest)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "DQ-20250102-bbbb2222", latest[0].Data["report_id"])
}

// TestSaveReportStoreFailure el fallo de escritura se propaga sin rollback
func TestSaveReportStoreFailure(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.SetFailing(true)
	persister := NewPersister(store)

	err := persister.SaveReport(context.Background(), sampleReport("DQ-20250101-cccc3333", "2025-01-01T03:00:00Z", 90))
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrStoreUnavailable)
}

// TestHistoryOrderAndCap más recientes primero, recortado al límite
func TestHistoryOrderAndCap(t *testing.T) {
	store := docstore.NewMemoryStore()
	persister := NewPersister(store)
	ctx := context.Background()

	require.NoError(t, persister.SaveReport(ctx, sampleReport("DQ-1", "2025-01-01T03:00:00Z", 90)))
	require.NoError(t, persister.SaveReport(ctx, sampleReport("DQ-3", "2025-01-03T03:00:00Z", 94)))
	require.NoError(t, persister.SaveReport(ctx, sampleReport("DQ-2", "2025-01-02T03:00:00Z", 92)))

	history, err := persister.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "DQ-3", history[0].ReportID)
	assert.Equal(t, "DQ-2", history[1].ReportID)

	// Límite inferior acotado a una instantánea
	clamped, err := persister.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, clamped, 1)
}

// TestSummarizeProjection proyección del documento dinámico al resumen histórico
func TestSummarizeProjection(t *testing.T) {
	doc := models.JSONB{
		"report_id":    "DQ-20250115-dddd4444",
		"generated_at": "2025-01-15T03:00:00Z",
		"dqs": map[string]interface{}{
			"score":         88.25,
			"clasificacion": "aceptable",
		},
		"overall": map[string]interface{}{
			"total_problemas": 7.0,
		},
		"priorities": map[string]interface{}{
			"P1": 2.0,
			"P3": 1.0,
		},
	}

	summary := summarize(doc)
	assert.Equal(t, "DQ-20250115-dddd4444", summary.ReportID)
	assert.Equal(t, "2025-01-15T03:00:00Z", summary.GeneratedAt)
	assert.Equal(t, 88.25, summary.Score)
	assert.Equal(t, "aceptable", summary.Classification)
	assert.Equal(t, 7, summary.TotalIssues)
	assert.Equal(t, map[string]int{"P1": 2, "P3": 1}, summary.Priorities)
}

// TestSummarizeMalformed un documento sin los campos esperados no rompe la proyección
func TestSummarizeMalformed(t *testing.T) {
	summary := summarize(models.JSONB{"otro_campo": true})
	assert.Empty(t, summary.ReportID)
	assert.Zero(t, summary.Score)
	assert.NotNil(t, summary.Priorities)
}

// TestReportJSONBRoundTrip el reporte tipado sobrevive el viaje por el documento
// dinámico
func TestReportJSONBRoundTrip(t *testing.T) {
	original := sampleReport("DQ-20250120-eeee5555", "2025-01-20T03:00:00Z", 96.4)

	payload, err := reportToJSONB(original)
	require.NoError(t, err)
	assert.Equal(t, "DQ-20250120-eeee5555", payload["report_id"])

	restored, err := ReportFromPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, original.ReportID, restored.ReportID)
	assert.Equal(t, original.DQS.Score, restored.DQS.Score)
	assert.Equal(t, original.Priorities, restored.Priorities)
}
