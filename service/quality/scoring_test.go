/*
 * @module service/quality/scoring_test
 * @description Pruebas del agregador de puntajes: DQS ponderado, umbrales de
 * clasificación y consolidados por dimensión y por centro gestor
 * @architecture Capa de pruebas
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Resultados sintéticos -> agregación -> verificación de orden y puntajes
 * @dependencies testing, stretchr/testify
 */

package quality

import (
	"testing"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"
	"gestor-proyecto-service/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeDQSWeighted puntaje calculado a mano con los cuatro pesos
func TestComputeDQSWeighted(t *testing.T) {
	rules := []models.RuleResult{
		{Severity: models.SeverityS1, CompliancePct: 90},
		{Severity: models.SeverityS2, CompliancePct: 80},
		{Severity: models.SeverityS3, CompliancePct: 70},
		{Severity: models.SeverityS4, CompliancePct: 60},
	}
	// (90×0.40 + 80×0.30 + 70×0.20 + 60×0.10) / 1.00 = 80.00
	assert.Equal(t, 80.0, ComputeDQS(rules))
}

// TestComputeDQSRounding redondeo a dos decimales
func TestComputeDQSRounding(t *testing.T) {
	rules := []models.RuleResult{
		{Severity: models.SeverityS1, CompliancePct: 33.333},
		{Severity: models.SeverityS1, CompliancePct: 66.667},
	}
	assert.Equal(t, 50.0, ComputeDQS(rules))

	uneven := []models.RuleResult{
		{Severity: models.SeverityS1, CompliancePct: 95.555},
		{Severity: models.SeverityS2, CompliancePct: 84.125},
	}
	// (95.555×0.40 + 84.125×0.30) / 0.70 = 90.657...
	assert.Equal(t, 90.66, ComputeDQS(uneven))
}

// TestComputeDQSEmpty sin reglas el puntaje es vacuamente perfecto
func TestComputeDQSEmpty(t *testing.T) {
	assert.Equal(t, 100.0, ComputeDQS(nil))
	assert.Equal(t, 100.0, ComputeDQS([]models.RuleResult{}))
}

// TestClassifyThresholds umbrales inclusivos de la clasificación semafórica
func TestClassifyThresholds(t *testing.T) {
	cases := []struct {
		score          float64
		classification string
		color          string
	}{
		{100, "optimo", "verde"},
		{95, "optimo", "verde"},
		{94.99, "aceptable", "amarillo"},
		{85, "aceptable", "amarillo"},
		{84.99, "critico", "rojo"},
		{0, "critico", "rojo"},
	}

	for _, tc := range cases {
		classification, color := Classify(tc.score)
		assert.Equal(t, tc.classification, classification, "score=%v", tc.score)
		assert.Equal(t, tc.color, color, "score=%v", tc.score)
	}
}

// TestDimensionRollup agrupación, promedio y orden con la peor dimensión primero
func TestDimensionRollup(t *testing.T) {
	rules := []models.RuleResult{
		{Dimension: models.DimensionCompletitud, CompliancePct: 90, AffectedRecords: 5},
		{Dimension: models.DimensionCompletitud, CompliancePct: 70, AffectedRecords: 3},
		{Dimension: models.DimensionUnicidad, CompliancePct: 100, AffectedRecords: 0},
		{Dimension: models.DimensionConsistencia, CompliancePct: 60, AffectedRecords: 12},
	}

	scores := DimensionRollup(rules)
	require.Len(t, scores, 3)

	assert.Equal(t, models.DimensionConsistencia, scores[0].Dimension)
	assert.Equal(t, 60.0, scores[0].AvgCompliancePct)

	assert.Equal(t, models.DimensionCompletitud, scores[1].Dimension)
	assert.Equal(t, 80.0, scores[1].AvgCompliancePct)
	assert.Equal(t, 8, scores[1].AffectedRecords)
	assert.Equal(t, 2, scores[1].RuleCount)

	assert.Equal(t, models.DimensionUnicidad, scores[2].Dimension)
	assert.Equal(t, 100.0, scores[2].AvgCompliancePct)
}

func rollupSnapshot() *Snapshot {
	// Centro A: una intervención limpia. Centro B: dos intervenciones, una con
	// avance fuera de rango. Una intervención sin centro resoluble.
	snap := &Snapshot{
		Interventions: []docstore.Document{
			{ID: "i1", Data: testutil.Intervencion("INT-1", "UNP-1", "En ejecucion", 40, 1000)},
			{ID: "i2", Data: testutil.Intervencion("INT-2", "UNP-2", "En ejecucion", 40, 1000)},
			{ID: "i3", Data: testutil.Intervencion("INT-3", "UNP-2", "En ejecucion", 150, 1000)},
			{ID: "i4", Data: testutil.Intervencion("INT-4", "UNP-9", "En ejecucion", 40, 1000)},
		},
		UnitKeys: map[string]struct{}{"UNP-1": {}, "UNP-2": {}},
		CentroGestorPorUPID: map[string]string{
			"UNP-1": "Secretaría de Salud",
			"UNP-2": "Secretaría de Infraestructura",
		},
		IntervencionesPorUPID: map[string]int{"UNP-1": 1, "UNP-2": 2, "UNP-9": 1},
	}
	return snap
}

// TestCentroGestorRollupOrdering el peor centro primero, cinco reglas por centro
func TestCentroGestorRollupOrdering(t *testing.T) {
	scores := CentroGestorRollup(rollupSnapshot(), "")
	require.Len(t, scores, 3)

	// El centro con la intervención inválida queda al frente
	assert.Equal(t, "Secretaría de Infraestructura", scores[0].CentroGestor)
	assert.Equal(t, 2, scores[0].TotalIntervenciones)
	assert.Less(t, scores[0].Score, scores[1].Score)

	for _, centro := range scores {
		assert.Len(t, centro.Rules, 5)
		assert.NotEmpty(t, centro.Classification)
		assert.NotEmpty(t, centro.Color)
	}
}

// TestCentroGestorRollupFallbackLabel intervenciones sin centro resoluble se agrupan
// bajo la etiqueta de no resuelto
func TestCentroGestorRollupFallbackLabel(t *testing.T) {
	scores := CentroGestorRollup(rollupSnapshot(), "")

	var labels []string
	for _, centro := range scores {
		labels = append(labels, centro.CentroGestor)
	}
	assert.Contains(t, labels, SinCentroGestor)
}

// TestCentroGestorRollupFilter el filtro restringe el desglose a un solo centro
func TestCentroGestorRollupFilter(t *testing.T) {
	scores := CentroGestorRollup(rollupSnapshot(), "Secretaría de Salud")
	require.Len(t, scores, 1)
	assert.Equal(t, "Secretaría de Salud", scores[0].CentroGestor)
	assert.Equal(t, 1, scores[0].TotalIntervenciones)
	assert.Equal(t, 100.0, scores[0].Score)
}

// TestCentroGestorRollupTieBreak en empate de puntaje gana el centro con más
// intervenciones
func TestCentroGestorRollupTieBreak(t *testing.T) {
	snap := &Snapshot{
		Interventions: []docstore.Document{
			{ID: "i1", Data: testutil.Intervencion("INT-1", "UNP-1", "En ejecucion", 40, 1000)},
			{ID: "i2", Data: testutil.Intervencion("INT-2", "UNP-2", "En ejecucion", 40, 1000)},
			{ID: "i3", Data: testutil.Intervencion("INT-3", "UNP-2", "Terminado", 100, 2000)},
		},
		UnitKeys: map[string]struct{}{"UNP-1": {}, "UNP-2": {}},
		CentroGestorPorUPID: map[string]string{
			"UNP-1": "Secretaría de Salud",
			"UNP-2": "Secretaría de Infraestructura",
		},
		IntervencionesPorUPID: map[string]int{"UNP-1": 1, "UNP-2": 2},
	}

	scores := CentroGestorRollup(snap, "")
	require.Len(t, scores, 2)
	assert.Equal(t, scores[0].Score, scores[1].Score)
	assert.Equal(t, "Secretaría de Infraestructura", scores[0].CentroGestor)
	assert.Equal(t, 2, scores[0].TotalIntervenciones)
}
