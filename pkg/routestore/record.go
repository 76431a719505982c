package routestore

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cidgate/cidgate/pkg/cidx"
	"github.com/cidgate/cidgate/pkg/route"
)

// record is the GORM model backing the single `routes` table of §4.3. A
// stub has Cid/Creator/Signature NULL and Size/Multicodec NULL unless the
// stub carried them; a completed route has all of them populated. The two unique indexes enforce §3
// invariants 1 and 2.
type record struct {
	ID           string `gorm:"column:id;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;index:idx_routes_created_at"`
	VerifiedAt   time.Time `gorm:"column:verified_at"`
	ProviderID   string `gorm:"column:provider_id;uniqueIndex:uniq_provider_cid;uniqueIndex:uniq_provider_url;index:idx_routes_provider"`
	ProviderType string `gorm:"column:provider_type;uniqueIndex:uniq_provider_cid;uniqueIndex:uniq_provider_url"`
	URL          string `gorm:"column:url;uniqueIndex:uniq_provider_url"`
	Cid          *string `gorm:"column:cid;uniqueIndex:uniq_provider_cid"`
	Size         *uint64 `gorm:"column:size;index:idx_routes_size"`
	Multicodec   *uint64 `gorm:"column:multicodec"`
	Creator      []byte  `gorm:"column:creator"`
	Signature    []byte  `gorm:"column:signature"`
}

func (record) TableName() string { return "routes" }

// isStub reports whether this row has not yet had its content hash
// attached.
func (r record) isStub() bool {
	return r.Cid == nil
}

func fromRoute(r route.Route) (record, error) {
	cidStr := r.Cid.String()
	size := r.Size
	codec := uint64(r.Multicodec)
	return record{
		ID:           r.ID.String(),
		CreatedAt:    r.CreatedAt,
		VerifiedAt:   r.VerifiedAt,
		ProviderID:   r.ProviderID,
		ProviderType: string(r.ProviderType),
		URL:          r.URL,
		Cid:          &cidStr,
		Size:         &size,
		Multicodec:   &codec,
		Creator:      []byte(r.Creator),
		Signature:    r.Signature,
	}, nil
}

func fromStub(s route.Stub) record {
	var size *uint64
	if s.Size != nil {
		v := *s.Size
		size = &v
	}
	var codec *uint64
	if s.Multicodec != nil {
		v := uint64(*s.Multicodec)
		codec = &v
	}
	return record{
		ID:           s.ID.String(),
		CreatedAt:    s.CreatedAt,
		VerifiedAt:   s.VerifiedAt,
		ProviderID:   s.ProviderID,
		ProviderType: string(s.ProviderType),
		URL:          s.URL,
		Size:         size,
		Multicodec:   codec,
	}
}

func (r record) toRoute() (route.Route, error) {
	if r.isStub() {
		return route.Route{}, fmt.Errorf("record %s is a stub, not a route", r.ID)
	}
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return route.Route{}, fmt.Errorf("parsing route id: %w", err)
	}
	c, err := cidx.Parse(*r.Cid)
	if err != nil {
		return route.Route{}, fmt.Errorf("parsing route cid: %w", err)
	}
	var size uint64
	if r.Size != nil {
		size = *r.Size
	}
	var codec cidx.Codec
	if r.Multicodec != nil {
		codec = cidx.Codec(*r.Multicodec)
	}
	return route.Route{
		ID:           id,
		CreatedAt:    r.CreatedAt,
		VerifiedAt:   r.VerifiedAt,
		ProviderID:   r.ProviderID,
		ProviderType: route.ProviderType(r.ProviderType),
		URL:          r.URL,
		Cid:          c,
		Size:         size,
		Multicodec:   codec,
		Creator:      r.Creator,
		Signature:    r.Signature,
	}, nil
}

func (r record) toStub() (route.Stub, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return route.Stub{}, fmt.Errorf("parsing stub id: %w", err)
	}
	var size *uint64
	if r.Size != nil {
		v := *r.Size
		size = &v
	}
	var codec *cidx.Codec
	if r.Multicodec != nil {
		v := cidx.Codec(*r.Multicodec)
		codec = &v
	}
	return route.Stub{
		ID:           id,
		CreatedAt:    r.CreatedAt,
		VerifiedAt:   r.VerifiedAt,
		ProviderID:   r.ProviderID,
		ProviderType: route.ProviderType(r.ProviderType),
		URL:          r.URL,
		Size:         size,
		Multicodec:   codec,
	}, nil
}
