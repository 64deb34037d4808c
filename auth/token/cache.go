package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/buysimply/buysimply/logger"
)

// CacheConfig holds configuration for the verifying cache
type CacheConfig struct {
	// CacheMaxCost is the maximum cost of cache (in entries)
	CacheMaxCost int64

	// CacheNumCounters is the number of keys to track frequency
	CacheNumCounters int64

	// EnableMetrics enables collection of operational metrics
	EnableMetrics bool
}

// DefaultCacheConfig returns a production-ready default configuration
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		CacheMaxCost:     1 << 16,
		CacheNumCounters: 1e6,
		EnableMetrics:    true,
	}
}

// CacheMetrics tracks operational statistics
type CacheMetrics struct {
	mu             sync.RWMutex
	TokensVerified int64
	TokensRejected int64
	CacheHits      int64
	CacheMisses    int64
}

func (m *CacheMetrics) IncrementTokensVerified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokensVerified++
}

func (m *CacheMetrics) IncrementTokensRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TokensRejected++
}

func (m *CacheMetrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *CacheMetrics) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *CacheMetrics) GetSnapshot() map[string]int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return map[string]int64{
		"tokens_verified": m.TokensVerified,
		"tokens_rejected": m.TokensRejected,
		"cache_hits":      m.CacheHits,
		"cache_misses":    m.CacheMisses,
	}
}

// VerifyingCache fronts a Codec with a TTL'd cache of resolved principals,
// so repeated requests with the same bearer token skip signature
// verification. Each entry expires when its token does, and the cache never
// stands in for the revocation check, which the guard performs after
// resolution on every request.
type VerifyingCache struct {
	codec   *Codec
	cache   *ristretto.Cache[string, Principal]
	config  *CacheConfig
	logger  logger.Logger
	metrics *CacheMetrics
}

// NewVerifyingCache creates a verifying cache around the given codec.
func NewVerifyingCache(codec *Codec, log logger.Logger, config *CacheConfig) (*VerifyingCache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, Principal]{
		NumCounters: config.CacheNumCounters,
		MaxCost:     config.CacheMaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	log.Info("principal cache initialized",
		logger.Bool("metrics_enabled", config.EnableMetrics))

	return &VerifyingCache{
		codec:   codec,
		cache:   cache,
		config:  config,
		logger:  log,
		metrics: &CacheMetrics{},
	}, nil
}

// Verify resolves a token to its principal, serving from cache when the
// token has been verified before and is still within its lifetime.
func (c *VerifyingCache) Verify(tokenString string) (Principal, error) {
	if p, found := c.cache.Get(tokenString); found {
		if c.config.EnableMetrics {
			c.metrics.IncrementCacheHits()
		}
		return p, nil
	}
	if c.config.EnableMetrics {
		c.metrics.IncrementCacheMisses()
	}

	claims, err := c.codec.verifyClaims(tokenString)
	if err != nil {
		if c.config.EnableMetrics {
			c.metrics.IncrementTokensRejected()
		}
		return Principal{}, err
	}

	p := Principal{
		UserID: claims.UserID,
		Role:   claims.Role,
	}

	// Entry lives exactly as long as the token itself.
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			c.cache.SetWithTTL(tokenString, p, 1, remaining)
		}
	}

	if c.config.EnableMetrics {
		c.metrics.IncrementTokensVerified()
	}

	return p, nil
}

// GetMetrics returns a snapshot of current metrics
func (c *VerifyingCache) GetMetrics() map[string]int64 {
	if !c.config.EnableMetrics {
		return nil
	}
	return c.metrics.GetSnapshot()
}

// Close releases the underlying cache resources.
func (c *VerifyingCache) Close() {
	c.cache.Close()
}
