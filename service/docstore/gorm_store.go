/*
 * @module service/docstore/gorm_store
 * @description Implementación del almacén de documentos sobre GORM: cada documento
 * se guarda como fila (coleccion, doc_id, data JSONB)
 * @architecture Patrón repositorio - capa de acceso a datos
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Conexión -> migración -> lectura/escritura
 * @rules El upsert reemplaza el contenido completo del documento, no hace merge
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/init.go
 */

package docstore

import (
	"context"
	"fmt"

	"gestor-proyecto-service/service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentRecord fila de la tabla de documentos
type DocumentRecord struct {
	ID         uint         `gorm:"primaryKey"`
	Collection string       `gorm:"column:collection;uniqueIndex:idx_collection_doc;size:128;not null"`
	DocID      string       `gorm:"column:doc_id;uniqueIndex:idx_collection_doc;size:128;not null"`
	Data       models.JSONB `gorm:"column:data;type:jsonb"`
	CreatedAt  int64        `gorm:"autoCreateTime:milli"`
	UpdatedAt  int64        `gorm:"autoUpdateTime:milli"`
}

// TableName nombre de la tabla de documentos
func (DocumentRecord) TableName() string {
	return "documents"
}

// GormStore almacén de documentos respaldado por GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore crea el almacén y ejecuta la migración de la tabla de documentos
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&DocumentRecord{}); err != nil {
		return nil, fmt.Errorf("error migrando la tabla de documentos: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Stream retorna todos los documentos de una colección
func (s *GormStore) Stream(ctx context.Context, collection string) ([]Document, error) {
	var records []DocumentRecord
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error leyendo la colección %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(records))
	for _, record := range records {
		docs = append(docs, Document{ID: record.DocID, Data: record.Data})
	}
	return docs, nil
}

// Set escribe un documento con id conocido, reemplazando su contenido completo
func (s *GormStore) Set(ctx context.Context, collection, docID string, data models.JSONB) error {
	record := DocumentRecord{
		Collection: collection,
		DocID:      docID,
		Data:       data,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("error escribiendo el documento %s/%s: %w", collection, docID, err)
	}
	return nil
}

// Add anexa un documento con id generado automáticamente
func (s *GormStore) Add(ctx context.Context, collection string, data models.JSONB) (string, error) {
	docID := uuid.NewString()
	if err := s.Set(ctx, collection, docID, data); err != nil {
		return "", err
	}
	return docID, nil
}

// Ping verifica la conexión subyacente
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("error obteniendo la conexión: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
