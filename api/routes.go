/*
 * @module api/routes
 * @description Configuración de rutas de la API: middleware base, CORS y montaje
 * de los controladores
 * @architecture API RESTful
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Procesamiento HTTP sin estado
 * @rules Diseño RESTful con manejo de errores y formato de respuesta unificados
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"gestor-proyecto-service/api/controllers"
	"gestor-proyecto-service/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
)

// InitRoute inicializa todas las rutas de la API
func InitRoute(r *chi.Mux) {
	// Middleware base
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// Configuración de CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Verificación de salud
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// Métricas de calidad de datos de unidades de proyecto
	r.Route("/unidades-proyecto", func(r chi.Router) {
		qualityController := controllers.NewQualityController(service.GlobalQualityService)
		r.Get("/quality-metrics", qualityController.GetQualityMetrics)
		r.Get("/quality-metrics/historial", qualityController.GetQualityHistory)
	})
}
