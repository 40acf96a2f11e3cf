package memory

import (
	"time"

	"notehub-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const schoolsKey = "schools"

// SchoolRepository keeps the school directory in memory between reads.
type SchoolRepository struct {
	cache *cache.Cache
}

func NewSchoolRepository(ttl time.Duration) *SchoolRepository {
	// Expired entries are purged every two TTLs.
	c := cache.New(ttl, 2*ttl)
	return &SchoolRepository{
		cache: c,
	}
}

func (r *SchoolRepository) Save(schools []*entity.School) {
	r.cache.Set(schoolsKey, schools, cache.DefaultExpiration)
}

func (r *SchoolRepository) Get() ([]*entity.School, bool) {
	if x, found := r.cache.Get(schoolsKey); found {
		return x.([]*entity.School), true
	}
	return nil, false
}

func (r *SchoolRepository) Invalidate() {
	r.cache.Delete(schoolsKey)
}
