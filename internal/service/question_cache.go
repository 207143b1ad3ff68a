package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"asha-platform/internal/domain"
)

// QuestionCache guarda páginas del catálogo por un TTL corto. Los errores de
// cache nunca se propagan: se degrada a leer la base.
type QuestionCache interface {
	Get(ctx context.Context, filter domain.QuestionFilter, page, pageSize int) (domain.QuestionPage, bool)
	Set(ctx context.Context, filter domain.QuestionFilter, page, pageSize int, value domain.QuestionPage)
}

func questionCacheKey(filter domain.QuestionFilter, page, pageSize int) string {
	norm := func(v string) string {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "all" {
			return ""
		}
		return v
	}
	return fmt.Sprintf("questions:page:%s|%s|%s|%s|%s|%d|%d",
		norm(filter.Search), norm(filter.Type), norm(filter.Category),
		norm(filter.Difficulty), norm(filter.Company), page, pageSize)
}

type memoryQuestionCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	value     domain.QuestionPage
	expiresAt time.Time
}

// NewMemoryQuestionCache crea un cache en memoria, útil en tests y en
// despliegues sin redis.
func NewMemoryQuestionCache(ttl time.Duration) QuestionCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &memoryQuestionCache{
		ttl:   ttl,
		items: make(map[string]memoryCacheEntry),
	}
}

func (c *memoryQuestionCache) Get(_ context.Context, filter domain.QuestionFilter, page, pageSize int) (domain.QuestionPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[questionCacheKey(filter, page, pageSize)]
	if !ok {
		return domain.QuestionPage{}, false
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(c.items, questionCacheKey(filter, page, pageSize))
		return domain.QuestionPage{}, false
	}
	return entry.value, true
}

func (c *memoryQuestionCache) Set(_ context.Context, filter domain.QuestionFilter, page, pageSize int, value domain.QuestionPage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[questionCacheKey(filter, page, pageSize)] = memoryCacheEntry{
		value:     value,
		expiresAt: time.Now().UTC().Add(c.ttl),
	}
}

type redisQuestionCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisQuestionCache crea un cache respaldado por redis.
func NewRedisQuestionCache(client *redis.Client, ttl time.Duration) QuestionCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisQuestionCache{
		client: client,
		ttl:    ttl,
		prefix: "catalog:",
	}
}

func (c *redisQuestionCache) Get(ctx context.Context, filter domain.QuestionFilter, page, pageSize int) (domain.QuestionPage, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	raw, err := c.client.Get(ctx, c.prefix+questionCacheKey(filter, page, pageSize)).Bytes()
	if err != nil {
		return domain.QuestionPage{}, false
	}
	var value domain.QuestionPage
	if err := json.Unmarshal(raw, &value); err != nil {
		return domain.QuestionPage{}, false
	}
	return value, true
}

func (c *redisQuestionCache) Set(ctx context.Context, filter domain.QuestionFilter, page, pageSize int, value domain.QuestionPage) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	_ = c.client.Set(ctx, c.prefix+questionCacheKey(filter, page, pageSize), raw, c.ttl).Err()
}
