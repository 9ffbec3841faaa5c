/*
 * @module service/quality/scoring
 * @description Agregador de puntajes: combina los resultados de reglas en el puntaje
 * compuesto de calidad de datos (DQS) ponderado por severidad, con consolidados por
 * dimensión y por centro gestor
 * @architecture Arquitectura en capas - servicio de dominio (etapa 3 del pipeline)
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Resultados de reglas -> DQS ponderado -> consolidados ordenados
 * @rules DQS = Σ(cumplimiento × peso) / Σ(peso); sin reglas que aporten peso el
 * puntaje es 100.0
 * @dependencies service/docstore, service/models
 * @refs service/quality/rules.go, service/quality/service.go
 */

package quality

import (
	"sort"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"
)

// Umbrales de clasificación del DQS
const (
	dqsOptimo    = 95.0
	dqsAceptable = 85.0
)

// ComputeDQS calcula el puntaje compuesto ponderado por severidad
func ComputeDQS(rules []models.RuleResult) float64 {
	totalScore := 0.0
	totalWeight := 0.0
	for _, rule := range rules {
		weight := rule.Severity.Weight()
		totalScore += rule.CompliancePct * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		// Sin reglas que aporten peso el puntaje es vacuamente perfecto
		return 100.0
	}
	return round2(totalScore / totalWeight)
}

// Classify clasifica el DQS y asigna su color semafórico
func Classify(score float64) (string, string) {
	switch {
	case score >= dqsOptimo:
		return "optimo", "verde"
	case score >= dqsAceptable:
		return "aceptable", "amarillo"
	default:
		return "critico", "rojo"
	}
}

// DimensionRollup agrupa las reglas por dimensión, promedia el cumplimiento y suma
// los registros afectados; ordena con la peor dimensión primero
func DimensionRollup(rules []models.RuleResult) []models.DimensionScore {
	grouped := make(map[models.Dimension][]models.RuleResult)
	order := make([]models.Dimension, 0)
	for _, rule := range rules {
		if _, seen := grouped[rule.Dimension]; !seen {
			order = append(order, rule.Dimension)
		}
		grouped[rule.Dimension] = append(grouped[rule.Dimension], rule)
	}

	scores := make([]models.DimensionScore, 0, len(order))
	for _, dimension := range order {
		group := grouped[dimension]
		sum := 0.0
		affected := 0
		for _, rule := range group {
			sum += rule.CompliancePct
			affected += rule.AffectedRecords
		}
		scores = append(scores, models.DimensionScore{
			Dimension:        dimension,
			AvgCompliancePct: round2(sum / float64(len(group))),
			AffectedRecords:  affected,
			RuleCount:        len(group),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].AvgCompliancePct < scores[j].AvgCompliancePct
	})
	return scores
}

// centroRuleDef regla del subconjunto reducido aplicado por centro gestor
type centroRuleDef struct {
	ID        string
	Name      string
	Dimension models.Dimension
	Severity  models.Severity
	Evaluate  func(docs []docstore.Document) (int, int)
}

// centroRuleCatalog subconjunto de 5 reglas re-ejecutado por centro gestor
func centroRuleCatalog() []centroRuleDef {
	return []centroRuleDef{
		{
			ID:        "INT-COMP-001",
			Name:      "Campos requeridos de intervenciones",
			Dimension: models.DimensionCompletitud,
			Severity:  models.SeverityS2,
			Evaluate: func(docs []docstore.Document) (int, int) {
				return evalRequiredFields(docs, requiredInterventionFields)
			},
		},
		{
			ID:        "INT-VAL-001",
			Name:      "Rangos numéricos de intervenciones",
			Dimension: models.DimensionValidez,
			Severity:  models.SeverityS2,
			Evaluate:  evalNumericRanges,
		},
		{
			ID:        "INT-CONS-001",
			Name:      "Coherencia estado vs avance de obra",
			Dimension: models.DimensionConsistencia,
			Severity:  models.SeverityS2,
			Evaluate:  evalEstadoAvance,
		},
		{
			ID:        "INT-TIME-001",
			Name:      "Fechas de intervención registradas",
			Dimension: models.DimensionOportunidad,
			Severity:  models.SeverityS3,
			Evaluate: func(docs []docstore.Document) (int, int) {
				return evalRequiredFields(docs, []string{"fecha_inicio", "fecha_fin"})
			},
		},
		{
			ID:        "INT-UNI-001",
			Name:      "Unicidad de intervencion_id",
			Dimension: models.DimensionUnicidad,
			Severity:  models.SeverityS1,
			Evaluate:  evalInterventionUniqueness,
		},
	}
}

// CentroGestorRollup re-ejecuta el subconjunto reducido de reglas sobre las
// intervenciones de cada centro gestor observado (incluida la etiqueta de no
// resuelto) y computa un DQS independiente por centro. El filtro opcional
// restringe el desglose a un solo centro, nunca el cómputo global.
func CentroGestorRollup(snap *Snapshot, filter string) []models.CentroGestorScore {
	grouped := make(map[string][]docstore.Document)
	for _, intervention := range snap.Interventions {
		centro := ResolveCentroGestor(intervention, snap)
		grouped[centro] = append(grouped[centro], intervention)
	}

	scores := make([]models.CentroGestorScore, 0, len(grouped))
	for centro, docs := range grouped {
		if filter != "" && centro != filter {
			continue
		}

		rules := make([]models.RuleResult, 0, 5)
		for _, def := range centroRuleCatalog() {
			evaluated, affected := def.Evaluate(docs)
			rules = append(rules, finalizeRule(ruleDef{
				ID:         def.ID,
				Name:       def.Name,
				Dimension:  def.Dimension,
				Severity:   def.Severity,
				Collection: CollectionIntervenciones,
			}, evaluated, affected))
		}

		score := ComputeDQS(rules)
		classification, color := Classify(score)
		scores = append(scores, models.CentroGestorScore{
			CentroGestor:        centro,
			Score:               score,
			Classification:      classification,
			Color:               color,
			TotalIntervenciones: len(docs),
			Rules:               rules,
		})
	}

	// Peor centro primero; empates por mayor número de intervenciones
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].TotalIntervenciones > scores[j].TotalIntervenciones
	})
	return scores
}
