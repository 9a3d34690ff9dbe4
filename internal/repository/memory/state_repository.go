package memory

import (
	"time"

	"idea-passport-be/pkg/passport/state"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// StateRepository caches conversation state between turns so a request does
// not have to rebuild it from the field rows. The database stays the source
// of truth; a cache miss is always recoverable.
type StateRepository struct {
	cache *cache.Cache
}

func NewStateRepository(ttl time.Duration) *StateRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &StateRepository{
		cache: c,
	}
}

func (r *StateRepository) Save(s state.State) {
	r.cache.Set(s.SessionId.String(), s, cache.DefaultExpiration)
}

func (r *StateRepository) Get(sessionId uuid.UUID) (state.State, bool) {
	if x, found := r.cache.Get(sessionId.String()); found {
		return x.(state.State), true
	}
	return state.State{}, false
}

func (r *StateRepository) Delete(sessionId uuid.UUID) {
	r.cache.Delete(sessionId.String())
}
