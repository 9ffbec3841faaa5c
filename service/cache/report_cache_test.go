/*
 * @module service/cache/report_cache_test
 * @description Pruebas de la caché de reportes en proceso: cómputo único por clave,
 * vigencia, invalidación y colapso de solicitantes concurrentes
 * @architecture Capa de pruebas
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Consulta -> cómputo -> verificación de conteos de cómputo
 * @dependencies testing, stretchr/testify
 */

package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gestor-proyecto-service/service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryCacheComputeOnce la segunda consulta sirve el valor cacheado
func TestMemoryCacheComputeOnce(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	computes := 0

	compute := func(ctx context.Context) (models.JSONB, error) {
		computes++
		return models.JSONB{"valor": computes}, nil
	}

	first, err := c.GetOrCompute(ctx, "reporte", time.Minute, compute)
	require.NoError(t, err)
	second, err := c.GetOrCompute(ctx, "reporte", time.Minute, compute)
	require.NoError(t, err)

	assert.Equal(t, 1, computes)
	assert.Equal(t, first, second)
}

// TestMemoryCacheKeysIndependent claves distintas computan por separado
func TestMemoryCacheKeysIndependent(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	computes := 0

	compute := func(ctx context.Context) (models.JSONB, error) {
		computes++
		return models.JSONB{"valor": computes}, nil
	}

	_, err := c.GetOrCompute(ctx, "a", time.Minute, compute)
	require.NoError(t, err)
	_, err = c.GetOrCompute(ctx, "b", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computes)
}

// TestMemoryCacheTTLExpiry la clave vencida se recomputa
func TestMemoryCacheTTLExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	computes := 0

	compute := func(ctx context.Context) (models.JSONB, error) {
		computes++
		return models.JSONB{"valor": computes}, nil
	}

	_, err := c.GetOrCompute(ctx, "efimero", 20*time.Millisecond, compute)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	value, err := c.GetOrCompute(ctx, "efimero", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computes)
	assert.Equal(t, 2, value["valor"])
}

// TestMemoryCacheInvalidate la clave invalidada se recomputa
func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	computes := 0

	compute := func(ctx context.Context) (models.JSONB, error) {
		computes++
		return models.JSONB{"valor": computes}, nil
	}

	_, err := c.GetOrCompute(ctx, "reporte", time.Minute, compute)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "reporte"))

	_, err = c.GetOrCompute(ctx, "reporte", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, computes)
}

// TestMemoryCacheComputeError el error no puebla la caché
func TestMemoryCacheComputeError(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	boom := errors.New("fuente indisponible")

	_, err := c.GetOrCompute(ctx, "reporte", time.Minute, func(ctx context.Context) (models.JSONB, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	value, err := c.GetOrCompute(ctx, "reporte", time.Minute, func(ctx context.Context) (models.JSONB, error) {
		return models.JSONB{"valor": "ok"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value["valor"])
}

// TestMemoryCacheConcurrentCollapse solicitantes concurrentes de la misma clave
// colapsan en un solo cómputo
func TestMemoryCacheConcurrentCollapse(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()
	var computes int32

	compute := func(ctx context.Context) (models.JSONB, error) {
		atomic.AddInt32(&computes, 1)
		// Cómputo lento: los concurrentes deben esperar, no recomputar
		time.Sleep(30 * time.Millisecond)
		return models.JSONB{"valor": "compartido"}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrCompute(ctx, "concurrente", time.Minute, compute)
			assert.NoError(t, err)
			assert.Equal(t, "compartido", value["valor"])
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&computes))
}
