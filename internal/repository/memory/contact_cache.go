package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"teamchat-be/internal/entity"
)

// ContactCache holds the per-role contact directory for a short window.
// The directory changes only on registration, so a brief TTL keeps the
// available-users listing off the hot query path without a shared cache.
type ContactCache struct {
	cache *cache.Cache
}

func NewContactCache() *ContactCache {
	c := cache.New(1*time.Minute, 5*time.Minute)
	return &ContactCache{
		cache: c,
	}
}

func (r *ContactCache) Save(role entity.UserRole, contacts []*entity.User) {
	r.cache.Set(string(role), contacts, cache.DefaultExpiration)
}

func (r *ContactCache) Get(role entity.UserRole) ([]*entity.User, bool) {
	if x, found := r.cache.Get(string(role)); found {
		return x.([]*entity.User), true
	}
	return nil, false
}

// Invalidate drops every cached directory; called when the user set or
// a listed profile changes.
func (r *ContactCache) Invalidate() {
	r.cache.Flush()
}
