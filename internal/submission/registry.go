package submission

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
)

// DefaultInstanceTTL is how long an untouched form instance is remembered
const DefaultInstanceTTL = 2 * time.Hour

// Registry holds one Machine per form instance ID
type Registry struct {
	cache          *gocache.Cache
	ttl            time.Duration
	persistTimeout time.Duration
}

// NewRegistry creates a registry whose instances expire after ttl without use
func NewRegistry(ttl, persistTimeout time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultInstanceTTL
	}
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}

	r := &Registry{cache: gocache.New(ttl, cleanup), ttl: ttl, persistTimeout: persistTimeout}
	r.cache.OnEvicted(func(key string, _ interface{}) {
		r.syncGauge()
		logger.Debug("Form instance expired", zap.String("instance_id", key))
	})
	return r
}

// Machine returns the machine of an instance, creating it on first use. An empty
// id gets a machine that is not remembered.
func (r *Registry) Machine(instanceID string) *Machine {
	if instanceID == "" {
		return NewMachine(r.persistTimeout)
	}

	m, ok := r.get(instanceID)
	if !ok {
		m = NewMachine(r.persistTimeout)
		if err := r.cache.Add(instanceID, m, r.ttl); err != nil {
			// another request created it first
			if existing, found := r.get(instanceID); found {
				m = existing
			}
		}
	}

	// sliding expiry; also puts back an instance the janitor dropped after get
	r.cache.Set(instanceID, m, r.ttl)
	r.syncGauge()
	return m
}

// syncGauge mirrors the item count instead of counting adds and evictions,
// which go-cache does not pair up when an expired key is overwritten
func (r *Registry) syncGauge() {
	metrics.SubmissionInstances.Set(float64(r.cache.ItemCount()))
}

// Len is the number of remembered instances
func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

func (r *Registry) get(instanceID string) (*Machine, bool) {
	v, ok := r.cache.Get(instanceID)
	if !ok {
		return nil, false
	}
	m, ok := v.(*Machine)
	return m, ok
}
