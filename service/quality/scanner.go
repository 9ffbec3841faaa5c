/*
 * @module service/quality/scanner
 * @description Escáner de colecciones: recorre unidades_proyecto e
 * intervenciones_unidades_proyecto una sola vez por corrida, extrae valores de campo
 * tolerando los dos layouts heredados (raíz o anidado bajo properties) y construye
 * las estructuras de búsqueda para la evaluación de reglas
 * @architecture Arquitectura en capas - servicio de dominio (etapa 1 del pipeline)
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Stream de colecciones -> extracción de campos -> estructuras de búsqueda
 * @rules Nunca ramificar por layout fuera de GetField; un documento malformado no
 * aborta el escaneo
 * @dependencies service/docstore, service/utils
 * @refs service/quality/rules.go
 */

package quality

import (
	"context"
	"strings"

	"gestor-proyecto-service/service/docstore"
	"gestor-proyecto-service/service/models"
	"gestor-proyecto-service/service/utils"

	"github.com/spf13/cast"
)

// Nombres de las colecciones fuente
const (
	CollectionUnidades       = "unidades_proyecto"
	CollectionIntervenciones = "intervenciones_unidades_proyecto"
)

// SinCentroGestor etiqueta usada cuando una intervención no resuelve centro gestor
const SinCentroGestor = "Sin centro gestor"

// Límites geográficos del municipio para validar coordenadas
const (
	latMin = 2.0
	latMax = 5.0
	lonMin = -78.0
	lonMax = -75.0
)

// Snapshot vista puntual de ambas colecciones con las estructuras de búsqueda
// que requieren las etapas posteriores del pipeline
type Snapshot struct {
	Units         []docstore.Document
	Interventions []docstore.Document

	// UnitKeys conjunto de upid de unidades de proyecto (integridad referencial)
	UnitKeys map[string]struct{}
	// CentroGestorPorUPID centro gestor dueño de cada unidad, usado como fallback
	// para intervenciones sin nombre_centro_gestor propio
	CentroGestorPorUPID map[string]string
	// IntervencionesPorUPID número de intervenciones asociadas a cada unidad
	IntervencionesPorUPID map[string]int
}

// BuildSnapshot recorre ambas colecciones exactamente una vez y construye el snapshot
func BuildSnapshot(ctx context.Context, store docstore.Store) (*Snapshot, error) {
	units, err := store.Stream(ctx, CollectionUnidades)
	if err != nil {
		return nil, err
	}

	interventions, err := store.Stream(ctx, CollectionIntervenciones)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Units:                 units,
		Interventions:         interventions,
		UnitKeys:              make(map[string]struct{}),
		CentroGestorPorUPID:   make(map[string]string),
		IntervencionesPorUPID: make(map[string]int),
	}

	for _, unit := range units {
		upid, ok := FieldAsString(unit.Data, "upid")
		if !ok {
			continue
		}
		snap.UnitKeys[upid] = struct{}{}
		if centro, ok := FieldAsString(unit.Data, "nombre_centro_gestor"); ok {
			snap.CentroGestorPorUPID[upid] = centro
		}
	}

	for _, intervention := range interventions {
		if upid, ok := FieldAsString(intervention.Data, "upid"); ok {
			snap.IntervencionesPorUPID[upid]++
		}
	}

	return snap, nil
}

// GetField retorna el valor de un campo: primero a nivel raíz y, si no está presente
// o es nulo, anidado bajo el mapa properties. Retorna nil si no existe en ninguno.
func GetField(doc models.JSONB, name string) interface{} {
	if doc == nil {
		return nil
	}
	if value, ok := doc[name]; ok && value != nil {
		return value
	}
	if props, ok := doc["properties"].(map[string]interface{}); ok {
		if value, ok := props[name]; ok && value != nil {
			return value
		}
	}
	return nil
}

// IsMissing determina si un valor se considera ausente: nil, cadenas en blanco y
// los tokens "null"/"none"/"nan" sin distinción de mayúsculas
func IsMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return true
		}
		switch strings.ToLower(trimmed) {
		case "null", "none", "nan":
			return true
		}
	}
	return false
}

// FieldMissing indica si el campo está ausente según el contrato de GetField + IsMissing
func FieldMissing(doc models.JSONB, name string) bool {
	return IsMissing(GetField(doc, name))
}

// FieldAsString retorna el campo como cadena recortada, con ok=false si está ausente
func FieldAsString(doc models.JSONB, name string) (string, bool) {
	value := GetField(doc, name)
	if IsMissing(value) {
		return "", false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s), true
	}
	// Claves numéricas heredadas: algunos upid llegan como número
	if s, err := cast.ToStringE(value); err == nil && s != "" {
		return s, true
	}
	return "", false
}

// Coordinates extrae la pareja (lat, lon) tolerando las tres formas heredadas:
// campos lat/lon, arreglo coordinates [lon, lat] o geometry.coordinates [lon, lat]
func Coordinates(doc models.JSONB) (float64, float64, bool) {
	lat, latOK := utils.ParseNumeric(GetField(doc, "lat"))
	lon, lonOK := utils.ParseNumeric(GetField(doc, "lon"))
	if latOK && lonOK {
		return lat, lon, true
	}

	if pair, ok := coordinatePair(GetField(doc, "coordinates")); ok {
		return pair[1], pair[0], true
	}

	if geometry, ok := GetField(doc, "geometry").(map[string]interface{}); ok {
		if pair, ok := coordinatePair(geometry["coordinates"]); ok {
			return pair[1], pair[0], true
		}
	}

	return 0, 0, false
}

// coordinatePair interpreta un arreglo [lon, lat]
func coordinatePair(value interface{}) ([2]float64, bool) {
	raw, ok := value.([]interface{})
	if !ok || len(raw) < 2 {
		return [2]float64{}, false
	}
	lon, lonOK := utils.ParseNumeric(raw[0])
	lat, latOK := utils.ParseNumeric(raw[1])
	if !lonOK || !latOK {
		return [2]float64{}, false
	}
	return [2]float64{lon, lat}, true
}

// HasValidCoordinates indica si la unidad tiene coordenadas dentro del bounding box
// del municipio y distintas del marcador de posición (0,0)
func HasValidCoordinates(doc models.JSONB) bool {
	lat, lon, ok := Coordinates(doc)
	if !ok {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= latMin && lat <= latMax && lon >= lonMin && lon <= lonMax
}

// hasGeometry indica si la unidad registra geometría en cualquiera de sus formas,
// sin importar su validez. Es una señal más débil que HasValidCoordinates y alimenta
// la estadística de unidades sin georreferenciación.
func hasGeometry(doc models.JSONB) bool {
	if GetField(doc, "geometry") != nil || GetField(doc, "coordinates") != nil {
		return true
	}
	return GetField(doc, "lat") != nil && GetField(doc, "lon") != nil
}

// InterventionID retorna el identificador de la intervención; cuando el campo
// intervencion_id está ausente se usa el id del documento
func InterventionID(doc docstore.Document) string {
	if id, ok := FieldAsString(doc.Data, "intervencion_id"); ok {
		return id
	}
	return doc.ID
}

// ResolveCentroGestor resuelve el centro gestor de una intervención: campo propio,
// luego el de la unidad dueña, y por último la etiqueta de no resuelto
func ResolveCentroGestor(doc docstore.Document, snap *Snapshot) string {
	if centro, ok := FieldAsString(doc.Data, "nombre_centro_gestor"); ok {
		return centro
	}
	if upid, ok := FieldAsString(doc.Data, "upid"); ok {
		if centro, ok := snap.CentroGestorPorUPID[upid]; ok && centro != "" {
			return centro
		}
	}
	return SinCentroGestor
}
