package gatewayapi

import "errors"

var (
	errInvalidDirection  = errors.New("direction must be ASC or DESC")
	errInvalidOffset     = errors.New("offset must be a non-negative integer")
	errInvalidLimit      = errors.New("limit must be a positive integer")
	errMissingProviderID = errors.New("provider_id is required")
	errUnsupportedMedia  = errors.New("unsupported content-type")
	errNoResolvableRoute = errors.New("no route resolved to readable bytes")
	errNoEligibleWriter  = errors.New("no eligible writable provider for this cid")
)
