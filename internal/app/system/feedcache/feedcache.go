// Package feedcache serves rendered feed pages from a process-wide cache
// for a short fixed interval.
//
// Entries are never invalidated on write: a post created or deleted while a
// page is cached does not appear on that page until the TTL expires. The
// cache absorbs anonymous read traffic on the global feed, where a few
// seconds of lag is acceptable.
package feedcache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/dalemusser/plume/internal/app/system/auth"
	"github.com/dgraph-io/ristretto/v2"
)

// DefaultTTL is how long a rendered feed page may be served stale.
const DefaultTTL = 20 * time.Second

type entry struct {
	status int
	header http.Header
	body   []byte
}

// Cache holds rendered pages keyed by feed identity (path + query).
type Cache struct {
	c   *ristretto.Cache[string, *entry]
	ttl time.Duration
}

// New builds a Cache with the given TTL. A non-positive ttl falls back to
// DefaultTTL.
func New(ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *entry]{
		NumCounters: 1 << 12,
		MaxCost:     16 << 20, // 16 MiB of rendered pages
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, ttl: ttl}, nil
}

// TTL returns the configured staleness window.
func (fc *Cache) TTL() time.Duration { return fc.ttl }

// get returns the cached entry for key, if present and unexpired.
func (fc *Cache) get(key string) (*entry, bool) {
	return fc.c.Get(key)
}

// put stores a rendered page under key for the cache TTL.
func (fc *Cache) put(key string, e *entry) {
	fc.c.SetWithTTL(key, e, int64(len(e.body)), fc.ttl)
}

// Wait blocks until buffered writes are applied. Test helper; production
// callers tolerate the cache's eventual visibility.
func (fc *Cache) Wait() { fc.c.Wait() }

// Middleware caches successful GET responses for anonymous visitors.
//
// Signed-in users bypass the cache entirely (their page chrome differs and
// must never be served to another session) and do not populate it.
func (fc *Cache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		if _, signedIn := auth.CurrentUser(r); signedIn {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.RequestURI()
		if e, ok := fc.get(key); ok {
			copyHeader(w.Header(), e.header)
			w.WriteHeader(e.status)
			w.Write(e.body)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			fc.put(key, &entry{
				status: rec.status,
				header: rec.Header().Clone(),
				body:   rec.buf.Bytes(),
			})
		}
	})
}

// recorder tees the response body so it can be cached after serving.
type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.buf.Write(p)
	return r.ResponseWriter.Write(p)
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
