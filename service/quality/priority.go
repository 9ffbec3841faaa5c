/*
 * @module service/quality/priority
 * @description Clasificador de prioridades: mapea (severidad, banda de volumen
 * afectado) a un código de prioridad de acción P1..P5
 * @architecture Arquitectura en capas - servicio de dominio (etapa 4 del pipeline)
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Porcentaje afectado -> banda de volumen -> matriz -> prioridad
 * @rules Tabla de búsqueda total y determinista para toda combinación observada
 * @dependencies service/models
 * @refs service/quality/rules.go
 */

package quality

import "gestor-proyecto-service/service/models"

// priorityMatrix matriz severidad × banda de volumen -> prioridad
var priorityMatrix = map[models.Severity]map[models.VolumeBand]models.PriorityCode{
	models.SeverityS1: {
		models.VolumeAlto:  models.PriorityP1,
		models.VolumeMedio: models.PriorityP1,
		models.VolumeBajo:  models.PriorityP2,
	},
	models.SeverityS2: {
		models.VolumeAlto:  models.PriorityP1,
		models.VolumeMedio: models.PriorityP2,
		models.VolumeBajo:  models.PriorityP3,
	},
	models.SeverityS3: {
		models.VolumeAlto:  models.PriorityP2,
		models.VolumeMedio: models.PriorityP3,
		models.VolumeBajo:  models.PriorityP4,
	},
	models.SeverityS4: {
		models.VolumeAlto:  models.PriorityP3,
		models.VolumeMedio: models.PriorityP4,
		models.VolumeBajo:  models.PriorityP5,
	},
}

// priorityLabels etiqueta legible de cada prioridad
var priorityLabels = map[models.PriorityCode]string{
	models.PriorityP1: "Urgente",
	models.PriorityP2: "Alta",
	models.PriorityP3: "Media",
	models.PriorityP4: "Baja",
	models.PriorityP5: "Backlog",
}

// VolumeBandFor clasifica el porcentaje afectado en su banda de volumen
func VolumeBandFor(affectedPct float64) models.VolumeBand {
	switch {
	case affectedPct > 10:
		return models.VolumeAlto
	case affectedPct >= 1:
		return models.VolumeMedio
	default:
		return models.VolumeBajo
	}
}

// ClassifyPriority deriva la prioridad de acción de una regla
func ClassifyPriority(severity models.Severity, affectedPct float64) models.PriorityAssignment {
	band := VolumeBandFor(affectedPct)
	code := priorityMatrix[severity][band]
	return models.PriorityAssignment{
		Code:       code,
		Label:      priorityLabels[code],
		VolumeBand: band,
	}
}
