/*
 * @module api/controllers/health_controller
 * @description Controlador de verificación de salud del servicio
 * @architecture Arquitectura MVC - capa de controladores
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Flujo de procesamiento de solicitudes HTTP
 * @rules Verificación simple para chequeos de contenedor y balanceo de carga
 * @dependencies net/http
 * @refs api/routes.go
 */

package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthController controlador de verificación de salud
type HealthController struct{}

// NewHealthController crea el controlador de salud
func NewHealthController() *HealthController {
	return &HealthController{}
}

// HealthResponse estructura de la respuesta de salud
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	Version   string    `json:"version" example:"1.0.0"`
	Service   string    `json:"service" example:"gestor-proyecto-service"`
}

// Health verificación de salud
// @Summary Verificación de salud
// @Description Verifica el estado de salud del servicio
// @Tags sistema
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "gestor-proyecto-service",
	}

	render.JSON(w, r, response)
}

// Ready verificación de disponibilidad
// @Summary Verificación de disponibilidad
// @Description Verifica si el servicio está listo para recibir tráfico
// @Tags sistema
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /ready [get]
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Service:   "gestor-proyecto-service",
	}

	render.JSON(w, r, response)
}
