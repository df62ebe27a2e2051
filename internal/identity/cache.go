package identity

import (
	"time"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache holds user records by id. Implementations must be safe for concurrent use.
type Cache interface {
	Get(id string) (model.UserRecord, bool)
	Add(id string, u model.UserRecord)
}

type lruCache struct {
	lru *expirable.LRU[string, model.UserRecord]
}

// NewCache returns an LRU-backed cache. size 0 means unbounded and ttl 0 means
// entries never expire.
func NewCache(size int, ttl time.Duration) Cache {
	return &lruCache{lru: expirable.NewLRU[string, model.UserRecord](size, nil, ttl)}
}

func (c *lruCache) Get(id string) (model.UserRecord, bool) {
	return c.lru.Get(id)
}

func (c *lruCache) Add(id string, u model.UserRecord) {
	c.lru.Add(id, u)
}
