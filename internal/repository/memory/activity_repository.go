package memory

import (
	"time"

	"ai-chat-be/pkg/events"

	"github.com/patrickmn/go-cache"
)

const maxEventsPerUser = 50

// ActivityRepository keeps a bounded, per-user window of recent chat events.
// Entries expire after an hour of inactivity; this is a convenience view,
// not durable state.
type ActivityRepository struct {
	cache *cache.Cache
}

func NewActivityRepository() *ActivityRepository {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ActivityRepository{
		cache: c,
	}
}

func (r *ActivityRepository) Append(userId string, event events.BaseEvent) {
	var window []events.BaseEvent
	if x, found := r.cache.Get(userId); found {
		window = x.([]events.BaseEvent)
	}
	window = append(window, event)
	if len(window) > maxEventsPerUser {
		window = window[len(window)-maxEventsPerUser:]
	}
	r.cache.Set(userId, window, cache.DefaultExpiration)
}

func (r *ActivityRepository) Recent(userId string) []events.BaseEvent {
	if x, found := r.cache.Get(userId); found {
		return x.([]events.BaseEvent)
	}
	return nil
}
