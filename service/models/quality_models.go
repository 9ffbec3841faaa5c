/*
 * @module service/models/quality_models
 * @description Modelos del motor de calidad de datos: reglas, dimensiones, severidades,
 * prioridades y el reporte agregado de calidad (DQS)
 * @architecture Arquitectura en capas - modelos de dominio
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Escaneo de colecciones -> evaluación de reglas -> agregación -> reporte
 * @rules Marco alineado a ISO 8000 / ISO 25012 / DAMA-DMBOK
 * @dependencies encoding/json
 * @refs service/quality
 */

package models

// Dimension categoría de calidad ISO/DAMA a la que pertenece una regla
type Dimension string

const (
	DimensionCompletitud  Dimension = "completitud"
	DimensionExactitud    Dimension = "exactitud"
	DimensionConsistencia Dimension = "consistencia"
	DimensionValidez      Dimension = "validez_conformidad"
	DimensionUnicidad     Dimension = "unicidad"
	DimensionOportunidad  Dimension = "oportunidad_actualidad"
)

// Severity nivel de criticidad fijo de una regla (S1 el más crítico)
type Severity string

const (
	SeverityS1 Severity = "S1"
	SeverityS2 Severity = "S2"
	SeverityS3 Severity = "S3"
	SeverityS4 Severity = "S4"
)

// Weight peso de la severidad en la fórmula del DQS
func (s Severity) Weight() float64 {
	switch s {
	case SeverityS1:
		return 0.40
	case SeverityS2:
		return 0.30
	case SeverityS3:
		return 0.20
	case SeverityS4:
		return 0.10
	}
	return 0
}

// VolumeBand banda de volumen afectado usada por la matriz de prioridades
type VolumeBand string

const (
	VolumeAlto  VolumeBand = "alto"
	VolumeMedio VolumeBand = "medio"
	VolumeBajo  VolumeBand = "bajo"
)

// PriorityCode código de prioridad de acción P1..P5
type PriorityCode string

const (
	PriorityP1 PriorityCode = "P1"
	PriorityP2 PriorityCode = "P2"
	PriorityP3 PriorityCode = "P3"
	PriorityP4 PriorityCode = "P4"
	PriorityP5 PriorityCode = "P5"
)

// PriorityAssignment prioridad derivada de (severidad, banda de volumen)
type PriorityAssignment struct {
	Code       PriorityCode `json:"codigo"`
	Label      string       `json:"etiqueta"`
	VolumeBand VolumeBand   `json:"banda_volumen"`
}

// RuleResult resultado de la evaluación de una regla de calidad en una corrida
type RuleResult struct {
	RuleID           string             `json:"rule_id"`
	Name             string             `json:"nombre"`
	Description      string             `json:"descripcion,omitempty"`
	Dimension        Dimension          `json:"dimension"`
	Severity         Severity           `json:"severidad"`
	Collection       string             `json:"coleccion"`
	EvaluatedRecords int                `json:"registros_evaluados"`
	AffectedRecords  int                `json:"registros_afectados"`
	AffectedPct      float64            `json:"porcentaje_afectado"`
	CompliancePct    float64            `json:"porcentaje_cumplimiento"`
	Priority         PriorityAssignment `json:"prioridad"`
}

// DimensionScore consolidado por dimensión de calidad
type DimensionScore struct {
	Dimension        Dimension `json:"dimension"`
	AvgCompliancePct float64   `json:"cumplimiento_promedio"`
	AffectedRecords  int       `json:"registros_afectados"`
	RuleCount        int       `json:"total_reglas"`
}

// CentroGestorScore consolidado de calidad por centro gestor
type CentroGestorScore struct {
	CentroGestor        string       `json:"nombre_centro_gestor"`
	Score               float64      `json:"puntaje_calidad"`
	Classification      string       `json:"clasificacion"`
	Color               string       `json:"color"`
	TotalIntervenciones int          `json:"total_intervenciones"`
	Rules               []RuleResult `json:"reglas"`
}

// IssueSummary problema detectado en una colección
type IssueSummary struct {
	RuleID          string    `json:"rule_id"`
	Name            string    `json:"nombre"`
	Dimension       Dimension `json:"dimension"`
	AffectedRecords int       `json:"registros_afectados"`
}

// CollectionBreakdown desglose de problemas por colección
type CollectionBreakdown struct {
	TotalRecords int            `json:"total_registros"`
	TotalIssues  int            `json:"total_problemas"`
	Issues       []IssueSummary `json:"problemas"`
}

// DQSResult puntaje compuesto de calidad de datos y su clasificación
type DQSResult struct {
	Score          float64 `json:"score"`
	Classification string  `json:"clasificacion"`
	Color          string  `json:"color"`
}

// OverallSummary resumen global del reporte
type OverallSummary struct {
	QualityScore float64 `json:"quality_score"`
	TotalRecords int     `json:"total_registros"`
	TotalIssues  int     `json:"total_problemas"`
}

// ReportSummary proyección resumida de un reporte histórico
type ReportSummary struct {
	ReportID       string         `json:"report_id"`
	GeneratedAt    string         `json:"generated_at"`
	Score          float64        `json:"score"`
	Classification string         `json:"clasificacion"`
	TotalIssues    int            `json:"total_problemas"`
	Priorities     map[string]int `json:"prioridades"`
}

// ReportMetadata metadatos de la corrida del reporte
type ReportMetadata struct {
	Framework   string      `json:"framework"`
	Version     string      `json:"version"`
	Collections []string    `json:"colecciones"`
	Dimensions  []Dimension `json:"dimensiones"`
	DurationMs  int64       `json:"duracion_ms"`
}

// GlobalStats estadísticas globales de las colecciones escaneadas
type GlobalStats struct {
	TotalUnidades           int `json:"total_unidades_proyecto"`
	TotalIntervenciones     int `json:"total_intervenciones"`
	UnidadesSinIntervencion int `json:"unidades_sin_intervencion"`
	UnidadesSinGeometria    int `json:"unidades_sin_georreferenciacion"`
	IntervencionesHuerfanas int `json:"intervenciones_huerfanas"`
	CentrosGestores         int `json:"centros_gestores"`
}

// ReportResumen resumen orientado al usuario final
type ReportResumen struct {
	PuntajeCalidad     float64  `json:"puntaje_calidad"`
	Clasificacion      string   `json:"clasificacion"`
	TotalProblemas     int      `json:"total_problemas"`
	DimensionCritica   string   `json:"dimension_critica,omitempty"`
	ReglasPrioritarias []string `json:"reglas_prioritarias"`
}

// QualityReport reporte agregado de calidad de datos, inmutable una vez persistido
type QualityReport struct {
	Success              bool                           `json:"success"`
	Error                string                         `json:"error,omitempty"`
	ReportID             string                         `json:"report_id,omitempty"`
	GeneratedAt          string                         `json:"generated_at,omitempty"`
	Overall              OverallSummary                 `json:"overall"`
	DQS                  DQSResult                      `json:"dqs"`
	Rules                []RuleResult                   `json:"rules"`
	Collections          map[string]CollectionBreakdown `json:"collections"`
	Priorities           map[string]int                 `json:"priorities"`
	Dimensiones          []DimensionScore               `json:"dimensiones"`
	Resumen              ReportResumen                  `json:"resumen"`
	PorCentroGestor      []CentroGestorScore            `json:"por_centro_gestor"`
	Historial            []ReportSummary                `json:"historial"`
	Metadatos            ReportMetadata                 `json:"metadatos"`
	EstadisticasGlobales GlobalStats                    `json:"estadisticas_globales"`
}
