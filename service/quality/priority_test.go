/*
 * @module service/quality/priority_test
 * @description Pruebas del clasificador de prioridades: totalidad de la matriz,
 * bordes de las bandas de volumen y etiquetas
 * @architecture Capa de pruebas
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Combinación severidad×banda -> prioridad esperada
 * @dependencies testing, stretchr/testify
 */

package quality

import (
	"testing"

	"gestor-proyecto-service/service/models"

	"github.com/stretchr/testify/assert"
)

// TestVolumeBandEdges bordes de las bandas de volumen
func TestVolumeBandEdges(t *testing.T) {
	assert.Equal(t, models.VolumeAlto, VolumeBandFor(10.01))
	assert.Equal(t, models.VolumeAlto, VolumeBandFor(100))
	assert.Equal(t, models.VolumeMedio, VolumeBandFor(10))
	assert.Equal(t, models.VolumeMedio, VolumeBandFor(1))
	assert.Equal(t, models.VolumeBajo, VolumeBandFor(0.99))
	assert.Equal(t, models.VolumeBajo, VolumeBandFor(0))
}

// TestPriorityMatrixTotal las doce combinaciones de la matriz
func TestPriorityMatrixTotal(t *testing.T) {
	cases := []struct {
		severity models.Severity
		pct      float64
		code     models.PriorityCode
		band     models.VolumeBand
	}{
		{models.SeverityS1, 50, models.PriorityP1, models.VolumeAlto},
		{models.SeverityS1, 5, models.PriorityP1, models.VolumeMedio},
		{models.SeverityS1, 0.5, models.PriorityP2, models.VolumeBajo},
		{models.SeverityS2, 50, models.PriorityP1, models.VolumeAlto},
		{models.SeverityS2, 5, models.PriorityP2, models.VolumeMedio},
		{models.SeverityS2, 0.5, models.PriorityP3, models.VolumeBajo},
		{models.SeverityS3, 50, models.PriorityP2, models.VolumeAlto},
		{models.SeverityS3, 5, models.PriorityP3, models.VolumeMedio},
		{models.SeverityS3, 0.5, models.PriorityP4, models.VolumeBajo},
		{models.SeverityS4, 50, models.PriorityP3, models.VolumeAlto},
		{models.SeverityS4, 5, models.PriorityP4, models.VolumeMedio},
		{models.SeverityS4, 0.5, models.PriorityP5, models.VolumeBajo},
	}

	for _, tc := range cases {
		got := ClassifyPriority(tc.severity, tc.pct)
		assert.Equal(t, tc.code, got.Code, "severidad=%s pct=%v", tc.severity, tc.pct)
		assert.Equal(t, tc.band, got.VolumeBand, "severidad=%s pct=%v", tc.severity, tc.pct)
		assert.NotEmpty(t, got.Label)
	}
}

// TestPriorityLabels etiquetas legibles de los cinco códigos
func TestPriorityLabels(t *testing.T) {
	expected := map[models.PriorityCode]string{
		models.PriorityP1: "Urgente",
		models.PriorityP2: "Alta",
		models.PriorityP3: "Media",
		models.PriorityP4: "Baja",
		models.PriorityP5: "Backlog",
	}
	for code, label := range expected {
		assert.Equal(t, label, priorityLabels[code])
	}
}
