package routestore

import "errors"

// ErrAlreadyIndexed is returned by InsertRoute/InsertStub when the
// provider has already listed this CID or URL, per §3 invariants 1 and 2.
// It is not a fatal error — §7 treats it as a no-op outcome.
var ErrAlreadyIndexed = errors.New("routestore: already indexed")

// ErrNotFound is returned when a lookup by id finds no row.
var ErrNotFound = errors.New("routestore: not found")

// ErrStubNotFound is returned by CompleteStub when no stub exists under
// the given id.
var ErrStubNotFound = errors.New("routestore: stub not found")
