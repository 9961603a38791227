package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storeadmin/src/domain"
)

// EntityCache é o subconjunto do RedisClient usado pelo decorator.
type EntityCache interface {
	SetWithRegistry(ctx context.Context, cacheKey string, cacheValue string, registryKeys []string) error
	GetKey(ctx context.Context, key string) (string, bool, error)
	GetSetMembers(ctx context.Context, key string) ([]string, error)
	InvalidateKeys(ctx context.Context, keys []string) error
}

// CachedEntityRepository guarda o resultado de FindOne no Redis.
// Cada chave gravada entra no registry da entidade, usado para invalidação em massa.
type CachedEntityRepository[T any] struct {
	logger *slog.Logger
	schema domain.EntitySchema
	store  EntityStore[T]
	cache  EntityCache

	mu      sync.Mutex
	pending map[string]*pendingFill
}

// pendingFill conta os sets em voo de uma chave; a invalidação espera por eles.
type pendingFill struct {
	wg    sync.WaitGroup
	count int
}

func NewCachedEntityRepository[T any](
	logger *slog.Logger,
	schema domain.EntitySchema,
	store EntityStore[T],
	cache EntityCache,
) *CachedEntityRepository[T] {
	return &CachedEntityRepository[T]{
		logger: logger,
		schema: schema,
		store:   store,
		cache:   cache,
		pending: make(map[string]*pendingFill),
	}
}

func EntityCacheKey(entity string, id string) string {
	return fmt.Sprintf("entity:%s:%s", entity, id)
}

func RegistryKey(entity string) string {
	return fmt.Sprintf("registry:entity:%s", entity)
}

func (r *CachedEntityRepository[T]) FindOne(ctx context.Context, id string) (*T, error) {
	cacheKey := EntityCacheKey(r.schema.Name, id)

	cached, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		r.logger.Debug("Cache HIT", "key", cacheKey)
		return cached, nil
	}

	if err != nil {
		// Erro de cache não derruba a leitura, segue para o PostgreSQL
		r.logger.Warn("Cache error", "key", cacheKey, "error", err)
	}

	r.logger.Debug("Cache MISS", "key", cacheKey)

	// O set é registrado antes da leitura: uma escrita que comece depois
	// desta leitura espera o set terminar antes de invalidar.
	done := r.beginFill(cacheKey)

	record, err := r.store.FindOne(ctx, id)
	if err != nil {
		done()
		return nil, err
	}

	go func() {
		defer done()

		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, record)
	}()

	return record, nil
}

// FindOneUncached lê direto do store sem aquecer o cache.
// Usado pelas checagens de existência que antecedem uma escrita.
func (r *CachedEntityRepository[T]) FindOneUncached(ctx context.Context, id string) (*T, error) {
	return r.store.FindOne(ctx, id)
}

func (r *CachedEntityRepository[T]) FindMany(ctx context.Context, args domain.FindManyArgs) ([]T, error) {
	return r.store.FindMany(ctx, args)
}

func (r *CachedEntityRepository[T]) Create(ctx context.Context, input domain.Input) (*T, error) {
	record, err := r.store.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, nil, input.Relations, false)
	return record, nil
}

func (r *CachedEntityRepository[T]) Update(ctx context.Context, id string, input domain.Input) (*T, error) {
	record, err := r.store.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, []string{EntityCacheKey(r.schema.Name, id)}, input.Relations, false)
	return record, nil
}

func (r *CachedEntityRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	record, err := r.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, []string{EntityCacheKey(r.schema.Name, id)}, nil, true)
	return record, nil
}

func (r *CachedEntityRepository[T]) getFromCache(ctx context.Context, cacheKey string) (*T, bool, error) {
	cachedJSON, found, err := r.cache.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return nil, found, err
	}

	var record T
	if err := json.Unmarshal([]byte(cachedJSON), &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return &record, true, nil
}

func (r *CachedEntityRepository[T]) setInCache(ctx context.Context, cacheKey string, record *T) {
	dataJSON, err := json.Marshal(record)
	if err != nil {
		r.logger.Error("Failed to marshal cache data", "key", cacheKey, "error", err)
		return
	}

	registryKeys := []string{RegistryKey(r.schema.Name)}

	if err := r.cache.SetWithRegistry(ctx, cacheKey, string(dataJSON), registryKeys); err != nil {
		r.logger.Error("Failed to set cache with registry", "key", cacheKey, "error", err)
		return
	}

	r.logger.Debug("Cache SET with registry", "key", cacheKey)
}

// invalidate remove as chaves afetadas por uma escrita.
// connect/disconnect derrubam só os alvos citados; set e delete alteram alvos não listados,
// então derrubam o registry inteiro das entidades relacionadas.
func (r *CachedEntityRepository[T]) invalidate(ctx context.Context, keys []string, changes []domain.RelationChange, deleted bool) {
	var registries []string

	for _, change := range changes {
		target := change.Relation.Target
		if change.Replace {
			registries = append(registries, RegistryKey(target))
			continue
		}
		for _, id := range change.AffectedIDs() {
			keys = append(keys, EntityCacheKey(target, id))
		}
	}

	if deleted {
		for _, relation := range r.schema.ToManyRelations() {
			registries = append(registries, RegistryKey(relation.Target))
		}
	}

	for _, registryKey := range registries {
		members, err := r.cache.GetSetMembers(ctx, registryKey)
		if err != nil {
			r.logger.Warn("Failed to read cache registry", "key", registryKey, "error", err)
			continue
		}
		keys = append(keys, members...)
		keys = append(keys, registryKey)
	}

	if len(keys) == 0 {
		return
	}

	r.waitFills(keys)

	if err := r.cache.InvalidateKeys(ctx, keys); err != nil {
		r.logger.Warn("Failed to invalidate cache keys", "keys", len(keys), "error", err)
		return
	}

	r.logger.Debug("Cache invalidated", "entity", r.schema.Name, "keys", len(keys))
}

func (r *CachedEntityRepository[T]) beginFill(cacheKey string) func() {
	r.mu.Lock()
	fill, ok := r.pending[cacheKey]
	if !ok {
		fill = &pendingFill{}
		r.pending[cacheKey] = fill
	}
	fill.count++
	fill.wg.Add(1)
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			fill.count--
			if fill.count == 0 {
				delete(r.pending, cacheKey)
			}
			r.mu.Unlock()
			fill.wg.Done()
		})
	}
}

func (r *CachedEntityRepository[T]) waitFills(keys []string) {
	var fills []*pendingFill

	r.mu.Lock()
	for _, key := range keys {
		if fill, ok := r.pending[key]; ok {
			fills = append(fills, fill)
		}
	}
	r.mu.Unlock()

	for _, fill := range fills {
		fill.wg.Wait()
	}
}
