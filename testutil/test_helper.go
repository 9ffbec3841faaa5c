/*
 * @module testutil/test_helper
 * @description Utilidades de prueba: base de datos sqlite en memoria, almacén de
 * documentos de prueba y fábricas de documentos de unidades e intervenciones
 * @architecture Infraestructura de pruebas
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Inicialización del entorno -> siembra de datos -> ejecución -> limpieza
 * @rules Las fábricas producen documentos completos; cada prueba muta lo que necesita
 * @dependencies gorm, sqlite, testify
 * @refs service/docstore, service/quality
 */

package testutil

import (
	"context"
	"fmt"
	"testing"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB crea una base de datos sqlite en memoria
func NewTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("error conectando la base de datos de prueba: %v", err))
	}
	return db
}

// NewTestStore crea un almacén de documentos GORM sobre sqlite en memoria
func NewTestStore(t *testing.T) *docstore.GormStore {
	t.Helper()
	store, err := docstore.NewGormStore(NewTestDB())
	require.NoError(t, err)
	return store
}

// Seed inserta un documento en una colección del almacén
func Seed(t *testing.T, store docstore.Store, collection, docID string, data models.JSONB) {
	t.Helper()
	require.NoError(t, store.Set(context.Background(), collection, docID, data))
}

// UnidadProyecto fábrica de documentos de unidad de proyecto con todos los campos
// requeridos presentes y coordenadas en campos lat/lon
func UnidadProyecto(upid, centroGestor string, lat, lon float64) models.JSONB {
	return models.JSONB{
		"upid":                 upid,
		"nombre_up":            "Unidad " + upid,
		"nombre_centro_gestor": centroGestor,
		"clase_up":             "Equipamiento",
		"tipo_equipamiento":    "Parque",
		"comuna_corregimiento": "Comuna 1",
		"lat":                  lat,
		"lon":                  lon,
		"fecha_inicio":         "2024-01-15",
		"fecha_fin":            "2025-06-30",
	}
}

// Intervencion fábrica de documentos de intervención con todos los campos
// requeridos presentes
func Intervencion(intervencionID, upid, estado string, avance, presupuesto float64) models.JSONB {
	return models.JSONB{
		"intervencion_id":   intervencionID,
		"upid":              upid,
		"estado":            estado,
		"tipo_intervencion": "Obra civil",
		"presupuesto_base":  presupuesto,
		"avance_obra":       avance,
		"fecha_inicio":      "2024-02-01",
		"fecha_fin":         "2025-03-31",
	}
}
