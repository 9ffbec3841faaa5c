/*
 * @module api/controllers/quality_controller
 * @description Controlador del motor de calidad de datos de unidades de proyecto:
 * reporte completo de métricas y consulta del historial de tendencias
 * @architecture Arquitectura en capas - capa de controladores
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Flujo de procesamiento de solicitudes HTTP
 * @rules Manejo de errores y formato de respuesta unificados
 * @dependencies service/quality, github.com/go-chi/render
 * @refs service/quality/service.go
 */

package controllers

import (
	"net/http"
	"strconv"

	"gestor-proyecto-service/service/quality"

	"github.com/go-chi/render"
)

// QualityController controlador de métricas de calidad de datos
type QualityController struct {
	qualityService *quality.Service
}

// NewQualityController crea el controlador de calidad
func NewQualityController(qualityService *quality.Service) *QualityController {
	return &QualityController{qualityService: qualityService}
}

// GetQualityMetrics reporte completo de calidad de datos
// @Summary Métricas de calidad de unidades de proyecto
// @Description Genera (o sirve desde caché) el reporte completo de calidad de datos
// @Tags calidad-datos
// @Produce json
// @Param nombre_centro_gestor query string false "Restringe el desglose por centro gestor a un solo centro"
// @Param history_limit query int false "Máximo de instantáneas históricas incluidas" default(30)
// @Success 200 {object} APIResponse{data=models.QualityReport} "Reporte generado"
// @Failure 500 {object} APIResponse "Error interno del servidor"
// @Router /unidades-proyecto/quality-metrics [get]
func (c *QualityController) GetQualityMetrics(w http.ResponseWriter, r *http.Request) {
	nombreCentroGestor := r.URL.Query().Get("nombre_centro_gestor")

	historyLimit := quality.DefaultHistoryLimit
	if raw := r.URL.Query().Get("history_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			render.JSON(w, r, BadRequestResponse("history_limit inválido", err))
			return
		}
		historyLimit = parsed
	}

	report, err := c.qualityService.GetQualityMetrics(r.Context(), nombreCentroGestor, historyLimit)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("error generando el reporte de calidad", err))
		return
	}

	render.JSON(w, r, SuccessResponse("reporte de calidad generado", report))
}

// GetQualityHistory historial de reportes de calidad
// @Summary Historial de reportes de calidad
// @Description Retorna las instantáneas históricas resumidas, más recientes primero
// @Tags calidad-datos
// @Produce json
// @Param limit query int false "Máximo de instantáneas retornadas" default(30)
// @Success 200 {object} APIResponse{data=[]models.ReportSummary} "Historial consultado"
// @Failure 500 {object} APIResponse "Error interno del servidor"
// @Router /unidades-proyecto/quality-metrics/historial [get]
func (c *QualityController) GetQualityHistory(w http.ResponseWriter, r *http.Request) {
	limit := quality.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			render.JSON(w, r, BadRequestResponse("limit inválido", err))
			return
		}
		limit = parsed
	}

	history, err := c.qualityService.History(r.Context(), limit)
	if err != nil {
		render.JSON(w, r, InternalErrorResponse("error consultando el historial de calidad", err))
		return
	}

	render.JSON(w, r, SuccessResponse("historial consultado", history))
}
