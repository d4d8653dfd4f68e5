package lexical

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/meghashyamc/lexisearch/clients/thesauri"
	"github.com/meghashyamc/lexisearch/db/kvdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/prometheus/client_golang/prometheus"
)

// store is the part of the key-value database the cache uses.
type store interface {
	Get(bucket string, key string) ([]byte, error)
	Put(bucket string, key string, value []byte) error
	Delete(bucket string, key string) error
}

type cacheEntry[T any] struct {
	Value    T         `json:"value"`
	StoredAt time.Time `json:"stored_at"`
}

// CachedLookup keeps successful lexical lookups in a key-value store so
// repeated words skip the network. Failures are never cached, and a broken
// cache falls through to the inner lookup.
type CachedLookup struct {
	inner      Lookup
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     logger.Logger
	now        func() time.Time
}

// NewCachedLookup wraps inner. cacheTotal has a single "result" label
// ("hit"/"miss") and may be nil.
func NewCachedLookup(inner Lookup, s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger logger.Logger) *CachedLookup {
	return &CachedLookup{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
		now:        time.Now,
	}
}

func (c *CachedLookup) PartOfSpeech(ctx context.Context, word string) (thesauri.PartOfSpeechFlags, error) {
	if flags, ok := getCached[thesauri.PartOfSpeechFlags](c, kvdb.PartOfSpeechBucket, word); ok {
		return flags, nil
	}

	flags, err := c.inner.PartOfSpeech(ctx, word)
	if err != nil {
		return thesauri.PartOfSpeechFlags{}, err
	}

	putCached(c, kvdb.PartOfSpeechBucket, word, flags)
	return flags, nil
}

func (c *CachedLookup) Synonyms(ctx context.Context, pos string, word string) ([]string, error) {
	key := pos + "/" + word
	if synonyms, ok := getCached[[]string](c, kvdb.SynonymsBucket, key); ok {
		return synonyms, nil
	}

	synonyms, err := c.inner.Synonyms(ctx, pos, word)
	if err != nil {
		return nil, err
	}

	putCached(c, kvdb.SynonymsBucket, key, synonyms)
	return synonyms, nil
}

func getCached[T any](c *CachedLookup, bucket string, key string) (T, bool) {
	var zero T

	raw, err := c.store.Get(bucket, key)
	if err != nil {
		if !errors.Is(err, kvdb.ErrNotFound) {
			c.logger.Warn("lookup cache read failed", "bucket", bucket, "key", key, "err", err.Error())
		}
		c.incCache("miss")
		return zero, false
	}

	var entry cacheEntry[T]
	if err := json.Unmarshal(raw, &entry); err != nil {
		c.logger.Warn("discarding corrupt lookup cache entry", "bucket", bucket, "key", key, "err", err.Error())
		c.evict(bucket, key)
		c.incCache("miss")
		return zero, false
	}

	if c.ttl > 0 && c.now().Sub(entry.StoredAt) > c.ttl {
		c.evict(bucket, key)
		c.incCache("miss")
		return zero, false
	}

	c.incCache("hit")
	return entry.Value, true
}

func putCached[T any](c *CachedLookup, bucket string, key string, value T) {
	data, err := json.Marshal(cacheEntry[T]{Value: value, StoredAt: c.now().UTC()})
	if err != nil {
		c.logger.Warn("could not encode lookup cache entry", "bucket", bucket, "key", key, "err", err.Error())
		return
	}

	if err := c.store.Put(bucket, key, data); err != nil {
		c.logger.Warn("lookup cache write failed", "bucket", bucket, "key", key, "err", err.Error())
	}
}

func (c *CachedLookup) evict(bucket string, key string) {
	if err := c.store.Delete(bucket, key); err != nil {
		c.logger.Warn("could not evict lookup cache entry", "bucket", bucket, "key", key, "err", err.Error())
	}
}

func (c *CachedLookup) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
