// Package objectstore implements the Azure-like object-store provider of
// §4.4.1: a filtered blob-container discovery pass that seeds stubs,
// followed by a hashing pass that promotes those stubs into signed
// routes. Credential resolution and container listing follow the
// teacher's Azure SDK usage pattern (observed in the broader example
// pack's azure-backed storage handlers: azidentity credential chaining
// plus container.Client paged listing).
package objectstore

import "strings"

// BlobFilter is the predicate algebra of §4.4.1, evaluated against a
// blob's name and size during the discover phase. It deliberately
// mirrors the CID filter algebra's vacuous-truth conventions for And/Or
// so the two read the same way.
type BlobFilter interface {
	Matches(name string, size uint64) bool
}

type allFilter struct{}

// All matches every blob.
func All() BlobFilter { return allFilter{} }

func (allFilter) Matches(string, uint64) bool { return true }

type directoryFilter struct{ prefix string }

// Directory matches blobs whose name starts with prefix.
func Directory(prefix string) BlobFilter { return directoryFilter{prefix} }

func (f directoryFilter) Matches(name string, _ uint64) bool {
	return strings.HasPrefix(name, f.prefix)
}

type fileExtFilter struct{ ext string }

// FileExt matches blobs whose name ends with ext (e.g. ".car").
func FileExt(ext string) BlobFilter { return fileExtFilter{ext} }

func (f fileExtFilter) Matches(name string, _ uint64) bool {
	return strings.HasSuffix(name, f.ext)
}

type nameContainsFilter struct{ sub string }

// NameContains matches blobs whose name contains sub.
func NameContains(sub string) BlobFilter { return nameContainsFilter{sub} }

func (f nameContainsFilter) Matches(name string, _ uint64) bool {
	return strings.Contains(name, f.sub)
}

type sizeFilter struct {
	min *uint64
	max *uint64
}

// Size matches blobs whose size falls within [min, max], either bound
// optional.
func Size(min, max *uint64) BlobFilter { return sizeFilter{min, max} }

func (f sizeFilter) Matches(_ string, size uint64) bool {
	if f.min != nil && size < *f.min {
		return false
	}
	if f.max != nil && size > *f.max {
		return false
	}
	return true
}

type andFilter []BlobFilter

// And is vacuously true when given no sub-filters, matching §4.1's
// convention for the CID filter algebra.
func And(filters ...BlobFilter) BlobFilter { return andFilter(filters) }

func (f andFilter) Matches(name string, size uint64) bool {
	for _, sub := range f {
		if !sub.Matches(name, size) {
			return false
		}
	}
	return true
}

type orFilter []BlobFilter

// Or is vacuously false when given no sub-filters.
func Or(filters ...BlobFilter) BlobFilter { return orFilter(filters) }

func (f orFilter) Matches(name string, size uint64) bool {
	for _, sub := range f {
		if sub.Matches(name, size) {
			return true
		}
	}
	return false
}

type notFilter struct{ inner BlobFilter }

// Not negates a filter.
func Not(inner BlobFilter) BlobFilter { return notFilter{inner} }

func (f notFilter) Matches(name string, size uint64) bool {
	return !f.inner.Matches(name, size)
}
