package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	logging "github.com/ipfs/go-log/v2"
	gocache "github.com/patrickmn/go-cache"
)

var log = logging.Logger("auth")

// DefaultJWKSTTL is the default cache freshness window before a refetch
// is forced, per §4.7's "older than its TTL (default 1 hour)".
const DefaultJWKSTTL = time.Hour

const jwksCacheKey = "jwks"

// jwtService validates bearer tokens against a JWKS endpoint, caching
// the fetched key set in a process-wide patrickmn/go-cache handle
// (single-writer, many-reader per §4.7).
type jwtService struct {
	jwksURL    string
	ttl        time.Duration
	httpClient *http.Client

	mu    sync.Mutex
	cache *gocache.Cache
}

var _ Service = (*jwtService)(nil)

// NewJWT builds a JWT auth Service against the given JWKS URL.
func NewJWT(jwksURL string, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = DefaultJWKSTTL
	}
	return &jwtService{
		jwksURL:    jwksURL,
		ttl:        ttl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      gocache.New(ttl, ttl*2),
	}
}

func (s *jwtService) keySet(ctx context.Context) (jwkSet, error) {
	if cached, ok := s.cache.Get(jwksCacheKey); ok {
		return cached.(jwkSet), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check after acquiring the lock: another goroutine may have
	// refreshed the cache while we waited.
	if cached, ok := s.cache.Get(jwksCacheKey); ok {
		return cached.(jwkSet), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.jwksURL, nil)
	if err != nil {
		return jwkSet{}, fmt.Errorf("building jwks request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return jwkSet{}, fmt.Errorf("fetching jwks: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return jwkSet{}, fmt.Errorf("reading jwks response: %w", err)
	}
	set, err := decodeJWKSet(body)
	if err != nil {
		return jwkSet{}, err
	}

	s.cache.Set(jwksCacheKey, set, s.ttl)
	return set, nil
}

// Authenticate implements §4.7's JWT variant: decode the JWS header for
// kid, resolve the matching JWK (refetching the JWKS if the cache is
// stale), and verify the signature under RS256.
func (s *jwtService) Authenticate(ctx context.Context, token string) error {
	if token == "" {
		log.Debug("jwt auth: missing token")
		return ErrUnauthenticated
	}

	var kid string
	_, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		kidVal, ok := t.Header["kid"].(string)
		if !ok || kidVal == "" {
			return nil, fmt.Errorf("missing kid")
		}
		kid = kidVal

		set, err := s.keySet(ctx)
		if err != nil {
			return nil, err
		}
		for _, k := range set.Keys {
			if k.Kid == kid {
				return k.publicKey()
			}
		}
		return nil, fmt.Errorf("no jwk matching kid %q", kid)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		log.Debugf("jwt auth: verification failed: %s", err)
		return ErrUnauthenticated
	}
	return nil
}
