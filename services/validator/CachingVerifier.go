package validator

import (
	"time"

	"github.com/bsv-blockchain/go-bt/v2"
	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/bsv-blockchain/txhandler/errors"
	"github.com/jellydator/ttlcache/v3"
)

// CachingVerifier remembers the verdicts of a wrapped verifier for a limited time. A
// verdict depends only on the (pubKey, message, signature) triple, so cached verdicts are
// always equal to what the wrapped verifier would return.
type CachingVerifier struct {
	verifier SignatureVerifier
	cache    *ttlcache.Cache[chainhash.Hash, bool]
}

// NewCachingVerifier wraps verifier with a cache of at most size verdicts, each kept for ttl.
// The size must be positive.
func NewCachingVerifier(verifier SignatureVerifier, size int, ttl time.Duration) (*CachingVerifier, error) {
	capacity, err := safeconversion.IntToUint64(size)
	if err != nil {
		return nil, errors.NewConfigurationError("invalid signature cache size %d", size, err)
	}

	if capacity == 0 {
		return nil, errors.NewConfigurationError("signature cache size must be positive")
	}

	initPrometheusMetrics()

	cache := ttlcache.New[chainhash.Hash, bool](
		ttlcache.WithTTL[chainhash.Hash, bool](ttl),
		ttlcache.WithCapacity[chainhash.Hash, bool](capacity),
		ttlcache.WithDisableTouchOnHit[chainhash.Hash, bool](),
	)

	return &CachingVerifier{
		verifier: verifier,
		cache:    cache,
	}, nil
}

func (c *CachingVerifier) Verify(pubKey, message, signature []byte) bool {
	key := verdictKey(pubKey, message, signature)

	if item := c.cache.Get(key); item != nil {
		prometheusSignatureCacheHits.Inc()
		return item.Value()
	}

	prometheusSignatureCacheMisses.Inc()

	valid := c.verifier.Verify(pubKey, message, signature)
	c.cache.Set(key, valid, ttlcache.DefaultTTL)

	return valid
}

// Len returns the number of cached verdicts, including expired ones not yet evicted.
func (c *CachingVerifier) Len() int {
	return c.cache.Len()
}

// Purge drops all cached verdicts.
func (c *CachingVerifier) Purge() {
	c.cache.DeleteAll()
}

// verdictKey hashes a length prefixed encoding of the triple, so that no two distinct
// triples share a key.
func verdictKey(pubKey, message, signature []byte) chainhash.Hash {
	buf := make([]byte, 0, len(pubKey)+len(message)+len(signature)+27)

	buf = append(buf, bt.VarInt(uint64(len(pubKey))).Bytes()...)
	buf = append(buf, pubKey...)
	buf = append(buf, bt.VarInt(uint64(len(message))).Bytes()...)
	buf = append(buf, message...)
	buf = append(buf, bt.VarInt(uint64(len(signature))).Bytes()...)
	buf = append(buf, signature...)

	return chainhash.HashH(buf)
}
