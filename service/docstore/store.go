/*
 * @module service/docstore/store
 * @description Abstracción del almacén de documentos: colecciones de documentos
 * dinámicos con lectura por streaming, escritura por upsert y anexado con id automático
 * @architecture Patrón repositorio - capa de acceso a datos
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Conexión -> lectura/escritura de colecciones
 * @rules Los documentos son mapas dinámicos; el esquema lo interpreta el consumidor
 * @dependencies service/models
 * @refs service/docstore/gorm_store.go, service/quality
 */

package docstore

import (
	"context"

	"gestor-proyecto-service/service/models"
)

// Document documento de una colección, con su id y contenido dinámico
type Document struct {
	ID   string
	Data models.JSONB
}

// Store acceso a colecciones de documentos
type Store interface {
	// Stream retorna todos los documentos de una colección
	Stream(ctx context.Context, collection string) ([]Document, error)
	// Set escribe un documento con id conocido (upsert, reemplazo completo)
	Set(ctx context.Context, collection, docID string, data models.JSONB) error
	// Add anexa un documento con id generado automáticamente
	Add(ctx context.Context, collection string, data models.JSONB) (string, error)
	// Ping verifica la disponibilidad del almacén
	Ping(ctx context.Context) error
}
