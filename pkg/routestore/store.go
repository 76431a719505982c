// Package routestore implements the persistent route index of §4.3: a
// single embedded relational table holding both route stubs and completed
// routes, with the uniqueness and visibility invariants of §3.
//
// Writes are serialized behind a single mutex, matching the teacher's
// single-SQLite-connection model (pkg/fx/database's
// configureSQLiteConnection: "there can only be ONE connection or sqlite
// throws a massive tantrum"). Reads are not serialized; SQLite's own
// single-writer semantics combined with WAL journaling give readers a
// consistent snapshot without blocking on the write lock.
package routestore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	logging "github.com/ipfs/go-log/v2"
	"gorm.io/gorm"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/route"
)

var log = logging.Logger("routestore")

// Store is the route index. It is safe for concurrent use by the gateway
// API and the background indexer.
type Store struct {
	db      *gorm.DB
	writeMu sync.Mutex
}

// New wraps an already-opened *gorm.DB and migrates the routes table on
// it. Use OpenSQLite/OpenPostgres to get one of those.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating routes table: %w", err)
	}
	log.Info("route index migrated")
	return &Store{db: db}, nil
}

// InsertRoute inserts a fully-built, signed Route. A uniqueness violation
// on (provider_id, provider_type, cid) or (provider_id, provider_type,
// url) surfaces as ErrAlreadyIndexed, per §3 invariants 1-2 and §7.
func (s *Store) InsertRoute(ctx context.Context, r route.Route) error {
	rec, err := fromRoute(r)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyIndexed
		}
		return fmt.Errorf("inserting route: %w", err)
	}
	return nil
}

// InsertStub inserts a partial route with a NULL cid and no crypto
// fields. Discovery passes call this for each newly-seen backend object.
func (s *Store) InsertStub(ctx context.Context, stub route.Stub) error {
	rec := fromStub(stub)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyIndexed
		}
		return fmt.Errorf("inserting stub: %w", err)
	}
	return nil
}

// CompleteStub updates an existing stub row in place, keyed by id,
// promoting it to a full Route. The row's id is preserved so holders of a
// stub reference can re-resolve to the finished route, per §9.
func (s *Store) CompleteStub(ctx context.Context, r route.Route) error {
	rec, err := fromRoute(r)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	result := s.db.WithContext(ctx).Model(&record{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"verified_at": rec.VerifiedAt,
		"cid":         rec.Cid,
		"size":        rec.Size,
		"multicodec":  rec.Multicodec,
		"creator":     rec.Creator,
		"signature":   rec.Signature,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return ErrAlreadyIndexed
		}
		return fmt.Errorf("completing stub: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStubNotFound
	}
	return nil
}

// GetRoute fetches a route by id. Stubs are never returned (§3 invariant
// 3); a stub id behaves the same as an unknown id.
func (s *Store) GetRoute(ctx context.Context, id string) (route.Route, error) {
	var rec record
	err := s.db.WithContext(ctx).Where("id = ? AND cid IS NOT NULL", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return route.Route{}, ErrNotFound
		}
		return route.Route{}, fmt.Errorf("getting route: %w", err)
	}
	return rec.toRoute()
}

// RoutesForCid returns every route indexed under the given CID, across
// all providers. Stubs are excluded.
func (s *Store) RoutesForCid(ctx context.Context, c cidx.Cid) ([]route.Route, error) {
	var recs []record
	if err := s.db.WithContext(ctx).Where("cid = ?", c.String()).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("scanning routes for cid: %w", err)
	}
	return toRoutes(recs)
}

// RoutesForURL returns every route indexed under the given URL. Stubs are
// excluded (a stub with this URL, if any, is invisible here per §3
// invariant 3/4).
func (s *Store) RoutesForURL(ctx context.Context, url string) ([]route.Route, error) {
	var recs []record
	if err := s.db.WithContext(ctx).Where("url = ? AND cid IS NOT NULL", url).Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("scanning routes for url: %w", err)
	}
	return toRoutes(recs)
}

// ListRoutes lists completed routes across all providers.
func (s *Store) ListRoutes(ctx context.Context, opts ListOptions) ([]route.Route, error) {
	return s.listRoutes(ctx, "", opts)
}

// AllRoutes is an alias for ListRoutes, matching §4.3's naming.
func (s *Store) AllRoutes(ctx context.Context, opts ListOptions) ([]route.Route, error) {
	return s.ListRoutes(ctx, opts)
}

// ListProviderRoutes lists completed routes for one provider.
func (s *Store) ListProviderRoutes(ctx context.Context, providerID string, opts ListOptions) ([]route.Route, error) {
	return s.listRoutes(ctx, providerID, opts)
}

func (s *Store) listRoutes(ctx context.Context, providerID string, opts ListOptions) ([]route.Route, error) {
	q := s.db.WithContext(ctx).Where("cid IS NOT NULL")
	if providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}
	q = q.Order(opts.orderClause()).Offset(opts.Offset)
	if opts.Limit >= 0 {
		q = q.Limit(opts.Limit)
	}
	var recs []record
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing routes: %w", err)
	}
	return toRoutes(recs)
}

// ListProviderStubs lists pending (un-hashed) stubs for one provider,
// ordered the same way reindex's hash phase walks them (smallest-first
// when OrderBySize/Asc is requested).
func (s *Store) ListProviderStubs(ctx context.Context, providerID string, opts ListOptions) ([]route.Stub, error) {
	q := s.db.WithContext(ctx).
		Where("provider_id = ? AND cid IS NULL", providerID).
		Order(opts.orderClause()).
		Offset(opts.Offset)
	if opts.Limit >= 0 {
		q = q.Limit(opts.Limit)
	}
	var recs []record
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("listing provider stubs: %w", err)
	}
	stubs := make([]route.Stub, 0, len(recs))
	for _, rec := range recs {
		stub, err := rec.toStub()
		if err != nil {
			return nil, err
		}
		stubs = append(stubs, stub)
	}
	return stubs, nil
}

func toRoutes(recs []record) ([]route.Route, error) {
	out := make([]route.Route, 0, len(recs))
	for _, rec := range recs {
		r, err := rec.toRoute()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
