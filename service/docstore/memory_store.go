package docstore

import (
	"context"
	"errors"
	"sync"

	"gestor-proyecto-service/service/models"

	"github.com/google/uuid"
)

// ErrStoreUnavailable el almacén de documentos no está disponible
var ErrStoreUnavailable = errors.New("almacén de documentos no disponible")

// MemoryStore almacén de documentos en memoria, usado en pruebas
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	failing     bool
}

// NewMemoryStore crea un almacén en memoria vacío
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

// SetFailing simula indisponibilidad del almacén
func (s *MemoryStore) SetFailing(failing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = failing
}

func (s *MemoryStore) Stream(ctx context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return nil, ErrStoreUnavailable
	}

	docs := make([]Document, len(s.collections[collection]))
	copy(docs, s.collections[collection])
	return docs, nil
}

func (s *MemoryStore) Set(ctx context.Context, collection, docID string, data models.JSONB) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreUnavailable
	}

	for i, doc := range s.collections[collection] {
		if doc.ID == docID {
			s.collections[collection][i].Data = data
			return nil
		}
	}
	s.collections[collection] = append(s.collections[collection], Document{ID: docID, Data: data})
	return nil
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data models.JSONB) (string, error) {
	docID := uuid.NewString()
	if err := s.Set(ctx, collection, docID, data); err != nil {
		return "", err
	}
	return docID, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failing {
		return ErrStoreUnavailable
	}
	return nil
}

// Count retorna el número de documentos de una colección
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection])
}
