/*
 * @module service/quality/rules
 * @description Evaluador de reglas de calidad: conjunto fijo de reglas por colección
 * que computa (registros_evaluados, registros_afectados) y deriva el porcentaje de
 * cumplimiento por regla
 * @architecture Arquitectura en capas - servicio de dominio (etapa 2 del pipeline)
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Snapshot -> predicados por regla -> resultados de regla
 * @rules Las reglas son descriptores de valor construidos por corrida, sin estado
 * compartido; la recomputación es total, nunca incremental
 * @dependencies service/docstore, service/models, service/utils
 * @refs service/quality/scoring.go, service/quality/priority.go
 */

package quality

import (
	"math"
	"strings"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"
	"gestor-proyecto-service/service/utils"
)

// Campos requeridos por colección
var (
	requiredUnitFields = []string{
		"upid", "nombre_up", "nombre_centro_gestor",
		"clase_up", "tipo_equipamiento", "comuna_corregimiento",
	}
	requiredInterventionFields = []string{
		"upid", "estado", "tipo_intervencion", "presupuesto_base", "avance_obra",
	}
)

// Estados de intervención reconocidos por la regla estado/avance
const (
	estadoAlistamiento = "En alistamiento"
	estadoEjecucion    = "En ejecucion"
	estadoTerminado    = "Terminado"
)

// ruleDef descriptor inmutable de una regla de calidad
type ruleDef struct {
	ID          string
	Name        string
	Description string
	Dimension   models.Dimension
	Severity    models.Severity
	Collection  string
	Evaluate    func(snap *Snapshot) (evaluated, affected int)
}

// ruleCatalog construye el catálogo ordenado de reglas para una corrida.
// Se construye por corrida para evitar estado mutable entre solicitudes.
func ruleCatalog() []ruleDef {
	return []ruleDef{
		{
			ID:          "UP-COMP-001",
			Name:        "Campos requeridos de unidades de proyecto",
			Description: "Campos obligatorios ausentes en unidades_proyecto",
			Dimension:   models.DimensionCompletitud,
			Severity:    models.SeverityS2,
			Collection:  CollectionUnidades,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalRequiredFields(snap.Units, requiredUnitFields)
			},
		},
		{
			ID:          "UP-VAL-001",
			Name:        "Coordenadas válidas de unidades de proyecto",
			Description: "Coordenadas fuera del bounding box municipal o en (0,0)",
			Dimension:   models.DimensionValidez,
			Severity:    models.SeverityS2,
			Collection:  CollectionUnidades,
			Evaluate: func(snap *Snapshot) (int, int) {
				affected := 0
				for _, unit := range snap.Units {
					if !HasValidCoordinates(unit.Data) {
						affected++
					}
				}
				return len(snap.Units), affected
			},
		},
		{
			ID:          "UP-UNI-001",
			Name:        "Unicidad de upid",
			Description: "Valores de upid repetidos en unidades_proyecto",
			Dimension:   models.DimensionUnicidad,
			Severity:    models.SeverityS1,
			Collection:  CollectionUnidades,
			Evaluate: func(snap *Snapshot) (int, int) {
				keys := make([]string, 0, len(snap.Units))
				for _, unit := range snap.Units {
					if upid, ok := FieldAsString(unit.Data, "upid"); ok {
						keys = append(keys, upid)
					}
				}
				return len(snap.Units), countDuplicates(keys)
			},
		},
		{
			ID:          "UP-CONS-001",
			Name:        "Unidades sin intervenciones",
			Description: "Unidades de proyecto sin ninguna intervención asociada",
			Dimension:   models.DimensionConsistencia,
			Severity:    models.SeverityS3,
			Collection:  CollectionUnidades,
			Evaluate: func(snap *Snapshot) (int, int) {
				affected := 0
				for _, unit := range snap.Units {
					upid, ok := FieldAsString(unit.Data, "upid")
					if !ok || snap.IntervencionesPorUPID[upid] == 0 {
						affected++
					}
				}
				return len(snap.Units), affected
			},
		},
		{
			ID:          "INT-COMP-001",
			Name:        "Campos requeridos de intervenciones",
			Description: "Campos obligatorios ausentes en intervenciones",
			Dimension:   models.DimensionCompletitud,
			Severity:    models.SeverityS2,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalRequiredFields(snap.Interventions, requiredInterventionFields)
			},
		},
		{
			ID:          "INT-VAL-001",
			Name:        "Rangos numéricos de intervenciones",
			Description: "avance_obra fuera de [0,100] o presupuesto_base negativo",
			Dimension:   models.DimensionValidez,
			Severity:    models.SeverityS2,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalNumericRanges(snap.Interventions)
			},
		},
		{
			ID:          "INT-CONS-001",
			Name:        "Coherencia estado vs avance de obra",
			Description: "Estado del ciclo de vida incoherente con el porcentaje de avance",
			Dimension:   models.DimensionConsistencia,
			Severity:    models.SeverityS2,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalEstadoAvance(snap.Interventions)
			},
		},
		{
			ID:          "INT-UNI-001",
			Name:        "Unicidad de intervencion_id",
			Description: "Identificadores de intervención repetidos",
			Dimension:   models.DimensionUnicidad,
			Severity:    models.SeverityS1,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalInterventionUniqueness(snap.Interventions)
			},
		},
		{
			ID:          "INT-CONS-002",
			Name:        "Integridad referencial de upid",
			Description: "Intervenciones cuyo upid no existe en unidades_proyecto",
			Dimension:   models.DimensionConsistencia,
			Severity:    models.SeverityS1,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				affected := 0
				for _, intervention := range snap.Interventions {
					upid, ok := FieldAsString(intervention.Data, "upid")
					if !ok {
						affected++
						continue
					}
					if _, exists := snap.UnitKeys[upid]; !exists {
						affected++
					}
				}
				return len(snap.Interventions), affected
			},
		},
		{
			ID:          "INT-TIME-001",
			Name:        "Fechas de intervención registradas",
			Description: "fecha_inicio o fecha_fin ausentes en intervenciones",
			Dimension:   models.DimensionOportunidad,
			Severity:    models.SeverityS3,
			Collection:  CollectionIntervenciones,
			Evaluate: func(snap *Snapshot) (int, int) {
				return evalRequiredFields(snap.Interventions, []string{"fecha_inicio", "fecha_fin"})
			},
		},
	}
}

// EvaluateRules ejecuta el catálogo completo de reglas sobre el snapshot
func EvaluateRules(snap *Snapshot) []models.RuleResult {
	catalog := ruleCatalog()
	results := make([]models.RuleResult, 0, len(catalog))
	for _, def := range catalog {
		evaluated, affected := def.Evaluate(snap)
		results = append(results, finalizeRule(def, evaluated, affected))
	}
	return results
}

// finalizeRule deriva porcentajes y prioridad a partir de los conteos
func finalizeRule(def ruleDef, evaluated, affected int) models.RuleResult {
	affectedPct := 0.0
	if evaluated > 0 {
		affectedPct = float64(affected) / float64(evaluated) * 100
	}
	compliancePct := math.Max(0, 100-affectedPct)

	return models.RuleResult{
		RuleID:           def.ID,
		Name:             def.Name,
		Description:      def.Description,
		Dimension:        def.Dimension,
		Severity:         def.Severity,
		Collection:       def.Collection,
		EvaluatedRecords: evaluated,
		AffectedRecords:  affected,
		AffectedPct:      round2(affectedPct),
		CompliancePct:    round2(compliancePct),
		Priority:         ClassifyPriority(def.Severity, affectedPct),
	}
}

// evalRequiredFields cuenta campos ausentes: evalúa documentos × campos requeridos
func evalRequiredFields(docs []docstore.Document, fields []string) (int, int) {
	affected := 0
	for _, doc := range docs {
		for _, field := range fields {
			if FieldMissing(doc.Data, field) {
				affected++
			}
		}
	}
	return len(docs) * len(fields), affected
}

// evalNumericRanges valida avance_obra en [0,100] y presupuesto_base >= 0.
// Los valores no interpretables se excluyen de la verificación de rango.
func evalNumericRanges(docs []docstore.Document) (int, int) {
	affected := 0
	for _, doc := range docs {
		invalid := false
		if avance, ok := utils.ParseNumeric(GetField(doc.Data, "avance_obra")); ok {
			if avance < 0 || avance > 100 {
				invalid = true
			}
		}
		if presupuesto, ok := utils.ParseNumeric(GetField(doc.Data, "presupuesto_base")); ok {
			if presupuesto < 0 {
				invalid = true
			}
		}
		if invalid {
			affected++
		}
	}
	return len(docs), affected
}

// evalEstadoAvance verifica la coherencia semántica entre estado y avance_obra
func evalEstadoAvance(docs []docstore.Document) (int, int) {
	affected := 0
	for _, doc := range docs {
		avance, ok := utils.ParseNumeric(GetField(doc.Data, "avance_obra"))
		if !ok {
			// Avance no interpretable: no se marca como incoherente
			continue
		}
		estado, _ := FieldAsString(doc.Data, "estado")
		if estadoAvanceInconsistente(estado, avance) {
			affected++
		}
	}
	return len(docs), affected
}

// estadoAvanceInconsistente reglas de coherencia del ciclo de vida:
//   - avance 0 exige "En alistamiento"
//   - avance >= 100 exige "Terminado"
//   - avance en (0,100) exige "En ejecucion" (con o sin tilde)
//
// El avance negativo es coherente con cualquier estado: es un problema de rango,
// no de ciclo de vida, y lo reporta la regla de rangos numéricos.
func estadoAvanceInconsistente(estado string, avance float64) bool {
	switch {
	case avance == 0:
		return estado != estadoAlistamiento
	case avance >= 100:
		return estado != estadoTerminado
	case avance > 0 && avance < 100:
		return utils.RemoveDiacritics(estado) != estadoEjecucion
	default:
		return false
	}
}

// evalInterventionUniqueness cuenta identificadores repetidos (segunda ocurrencia
// en adelante); el id ausente cae al id del documento
func evalInterventionUniqueness(docs []docstore.Document) (int, int) {
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		keys = append(keys, InterventionID(doc))
	}
	return len(docs), countDuplicates(keys)
}

// countDuplicates cuenta las ocurrencias posteriores a la primera de cada clave
func countDuplicates(keys []string) int {
	seen := make(map[string]struct{}, len(keys))
	duplicates := 0
	for _, key := range keys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := seen[key]; exists {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
