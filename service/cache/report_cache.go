/*
 * @module service/cache/report_cache
 * @description Caché de resultados con TTL y exclusión mutua por clave: el primer
 * solicitante computa, los concurrentes esperan y reciben el mismo resultado
 * @architecture Capa utilitaria - caché de resultados
 * @documentReference dev_docs/calidad_datos_req.md
 * @stateFlow Consulta -> acierto/fallo -> bloqueo por clave -> cómputo -> poblado
 * @rules El backend Redis usa SET NX como candado de cómputo; sin Redis configurado
 * se usa una caché en proceso
 * @dependencies github.com/go-redis/redis/v8, github.com/patrickmn/go-cache
 * @refs service/quality/service.go, service/init.go
 */

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"gestor-proyecto-service/service/models"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"github.com/spf13/cast"
)

// ComputeFunc función de cómputo cuyo resultado se almacena en la caché
type ComputeFunc func(ctx context.Context) (models.JSONB, error)

// ReportCache caché de resultados con colapso de cómputos concurrentes por clave
type ReportCache interface {
	// GetOrCompute retorna el valor cacheado o lo computa y lo almacena con el TTL dado
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) (models.JSONB, error)
	// Invalidate elimina una clave de la caché
	Invalidate(ctx context.Context, key string) error
}

// NewFromEnv selecciona el backend: Redis cuando REDIS_HOST está configurado,
// caché en proceso en caso contrario
func NewFromEnv() ReportCache {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		slog.Info("caché de reportes en memoria (REDIS_HOST no configurado)")
		return NewMemoryCache()
	}

	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		db = cast.ToInt(raw)
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", host, port),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("conexión a Redis fallida, usando caché en memoria", "error", err)
		return NewMemoryCache()
	}

	slog.Info("caché de reportes sobre Redis", "host", host, "port", port)
	return NewRedisCache(client)
}

// MemoryCache caché en proceso con candado por clave
type MemoryCache struct {
	store *gocache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewMemoryCache crea la caché en proceso
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, 10*time.Minute),
		locks: make(map[string]*sync.Mutex),
	}
}

// keyLock retorna el mutex asociado a la clave, creándolo si no existe
func (c *MemoryCache) keyLock(key string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	if lock, ok := c.locks[key]; ok {
		return lock
	}
	lock := &sync.Mutex{}
	c.locks[key] = lock
	return lock
}

func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) (models.JSONB, error) {
	if cached, ok := c.store.Get(key); ok {
		return cached.(models.JSONB), nil
	}

	// Candado por clave: el primer solicitante computa, el resto espera
	lock := c.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if cached, ok := c.store.Get(key); ok {
		return cached.(models.JSONB), nil
	}

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, value, ttl)
	return value, nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, key string) error {
	c.store.Delete(key)
	return nil
}

// RedisCache caché compartida entre instancias con candado de cómputo SET NX
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache crea la caché sobre un cliente Redis existente
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

const (
	computeLockTTL  = 2 * time.Minute
	lockPollEvery   = 200 * time.Millisecond
	lockWaitTimeout = 90 * time.Second
)

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) (models.JSONB, error) {
	if value, ok, err := c.get(ctx, key); err != nil {
		return nil, err
	} else if ok {
		return value, nil
	}

	lockKey := key + ":lock"
	acquired, err := c.client.SetNX(ctx, lockKey, "1", computeLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("error adquiriendo el candado de cómputo: %w", err)
	}

	if !acquired {
		// Otro solicitante está computando: esperar a que pueble la caché
		return c.waitForValue(ctx, key, ttl, compute)
	}

	defer func() {
		if delErr := c.client.Del(context.Background(), lockKey).Err(); delErr != nil {
			slog.Warn("error liberando el candado de cómputo", "key", lockKey, "error", delErr)
		}
	}()

	value, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("error serializando el valor cacheado: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		slog.Warn("error poblando la caché", "key", key, "error", err)
	}
	return value, nil
}

// waitForValue sondea la clave hasta que el solicitante que posee el candado la
// pueble; si el candado expira sin valor, computa localmente
func (c *RedisCache) waitForValue(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) (models.JSONB, error) {
	deadline := time.Now().Add(lockWaitTimeout)
	ticker := time.NewTicker(lockPollEvery)
	defer ticker.Stop()

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if value, ok, err := c.get(ctx, key); err != nil {
			return nil, err
		} else if ok {
			return value, nil
		}

		exists, err := c.client.Exists(ctx, key+":lock").Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			break
		}
	}

	return compute(ctx)
}

func (c *RedisCache) get(ctx context.Context, key string) (models.JSONB, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error consultando la caché: %w", err)
	}

	var value models.JSONB
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, false, fmt.Errorf("error deserializando el valor cacheado: %w", err)
	}
	return value, true, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
