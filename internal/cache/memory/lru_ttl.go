package memory

import (
	"container/list"
	"sync"
	"time"

	"github.com/Gunvolt24/orders-backoffice/pkg/metrics"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRUCacheTTL — потокобезопасный LRU-кэш с TTL. ttl <= 0 — без истечения.
// Значения клонируются функцией clone на входе и на выходе.
type LRUCacheTTL[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	clone    func(V) V
	now      func() time.Time

	ll    *list.List
	index map[K]*list.Element

	mu sync.Mutex
}

// NewLRUCacheTTL — конструктор; capacity <= 0 трактуется как 1, nil clone — копирование по значению.
func NewLRUCacheTTL[K comparable, V any](capacity int, ttl time.Duration, clone func(V) V) *LRUCacheTTL[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &LRUCacheTTL[K, V]{
		capacity: capacity,
		ttl:      ttl,
		clone:    clone,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[K]*list.Element),
	}
}

// Get — значение по ключу; попадание продлевает TTL и делает запись самой свежей.
func (c *LRUCacheTTL[K, V]) Get(key K) (V, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.index[key]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return zero, false
	}
	ent := elem.Value.(*entry[K, V])
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(c.ll.Len()))
		return zero, false
	}
	c.ll.MoveToFront(elem)
	ent.expiresAt = c.expiryFrom(now)

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return c.clone(ent.value), true
}

// Set — сохранить/обновить значение; при переполнении вытесняется наименее используемая запись.
func (c *LRUCacheTTL[K, V]) Set(key K, value V) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry[K, V])
		ent.value = c.clone(value)
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	c.index[key] = c.ll.PushFront(&entry[K, V]{
		key:       key,
		value:     c.clone(value),
		expiresAt: c.expiryFrom(now),
	})
	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(c.ll.Len()))
}

// Len — текущее число записей (включая ещё не вычищенные просроченные).
func (c *LRUCacheTTL[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// evictLRU — удаляет наименее используемый элемент.
func (c *LRUCacheTTL[K, V]) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *LRUCacheTTL[K, V]) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry[K, V])
	delete(c.index, ent.key)
	c.ll.Remove(elem)
}

func (c *LRUCacheTTL[K, V]) isExpired(ent *entry[K, V], now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *LRUCacheTTL[K, V]) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет просроченные записи с хвоста до первой актуальной.
func (c *LRUCacheTTL[K, V]) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for back := c.ll.Back(); back != nil; back = c.ll.Back() {
		if !c.isExpired(back.Value.(*entry[K, V]), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
	}
}
