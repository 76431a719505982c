// Package auth implements the two auth variants of §4.7. None always
// succeeds; JWT validates a bearer token against a JWKS endpoint with a
// process-wide, single-writer/many-reader cache, grounded on the
// teacher's echo-jwt + golang-jwt/v4 pairing (pkg/pdp/httpapi/server's
// NewPDPHandler), generalized from a single static signing key to a
// JWKS-resolved key set keyed by `kid`.
package auth

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned for every failure mode named in §4.7:
// missing token, missing kid, no matching JWK, signature failure. The
// gateway API layer maps it to HTTP 401 without inspecting the cause.
var ErrUnauthenticated = errors.New("auth: unauthenticated")

// Service authenticates a single bearer token value (without the
// "Bearer " prefix).
type Service interface {
	Authenticate(ctx context.Context, token string) error
}
