// Package filter implements the CID filter algebra of the specification:
// a small boolean predicate tree over a CID's multicodec tag and
// multihash function code, composable with And/Or/Not.
package filter

import "github.com/cidgate/cidgate/pkg/cidx"

// Matcher evaluates whether a CID is eligible under some predicate.
type Matcher interface {
	IsMatch(c cidx.Cid) bool
}

// CodeFilter is a predicate over a single uint64 code (a multihash function
// code or a multicodec tag, depending on where it's plugged in).
type CodeFilter interface {
	matchCode(code uint64) bool
}

type codeEq uint64

func (f codeEq) matchCode(code uint64) bool { return code == uint64(f) }

// Eq matches a code exactly.
func Eq(code uint64) CodeFilter { return codeEq(code) }

type codeGt uint64

func (f codeGt) matchCode(code uint64) bool { return code > uint64(f) }

// Gt matches codes strictly greater than the given value.
func Gt(code uint64) CodeFilter { return codeGt(code) }

type codeLt uint64

func (f codeLt) matchCode(code uint64) bool { return code < uint64(f) }

// Lt matches codes strictly less than the given value.
func Lt(code uint64) CodeFilter { return codeLt(code) }

type codeAnd []CodeFilter

// CodeAnd is true for all filters matching (vacuously true for none).
func CodeAnd(filters ...CodeFilter) CodeFilter { return codeAnd(filters) }

func (f codeAnd) matchCode(code uint64) bool {
	for _, sub := range f {
		if !sub.matchCode(code) {
			return false
		}
	}
	return true
}

type codeOr []CodeFilter

// CodeOr is true if any filter matches (vacuously false for none).
func CodeOr(filters ...CodeFilter) CodeFilter { return codeOr(filters) }

func (f codeOr) matchCode(code uint64) bool {
	for _, sub := range f {
		if sub.matchCode(code) {
			return true
		}
	}
	return false
}

type codeNot struct{ inner CodeFilter }

// CodeNot negates a CodeFilter.
func CodeNot(inner CodeFilter) CodeFilter { return codeNot{inner} }

func (f codeNot) matchCode(code uint64) bool { return !f.inner.matchCode(code) }

// CidFilter is the top-level predicate tree over a CID's metadata.
type CidFilter interface {
	Matcher
	// And combines this filter with another via conjunction.
	And(other CidFilter) CidFilter
	// Or combines this filter with another via disjunction.
	Or(other CidFilter) CidFilter
	// Not negates this filter.
	Not() CidFilter
}

type base struct {
	match func(c cidx.Cid) bool
}

func (b base) IsMatch(c cidx.Cid) bool { return b.match(c) }

func (b base) And(other CidFilter) CidFilter { return And(b, other) }
func (b base) Or(other CidFilter) CidFilter  { return Or(b, other) }
func (b base) Not() CidFilter                { return Not(b) }

// None matches every CID.
func None() CidFilter {
	return base{match: func(cidx.Cid) bool { return true }}
}

// MultihashCodeFilter restricts eligibility to CIDs whose multihash
// function code satisfies the given CodeFilter.
func MultihashCodeFilter(cf CodeFilter) CidFilter {
	return base{match: func(c cidx.Cid) bool {
		code, err := c.HashCode()
		if err != nil {
			return false
		}
		return cf.matchCode(uint64(code))
	}}
}

// CodecFilter restricts eligibility to CIDs whose multicodec tag satisfies
// the given CodeFilter.
func CodecFilter(cf CodeFilter) CidFilter {
	return base{match: func(c cidx.Cid) bool {
		return cf.matchCode(uint64(c.Codec()))
	}}
}

// And combines filters with boolean conjunction. An empty And is
// vacuously true, per §4.1's tie-break convention.
func And(filters ...CidFilter) CidFilter {
	cp := append([]CidFilter(nil), filters...)
	return base{match: func(c cidx.Cid) bool {
		for _, f := range cp {
			if !f.IsMatch(c) {
				return false
			}
		}
		return true
	}}
}

// Or combines filters with boolean disjunction. An empty Or is vacuously
// false, per §4.1's tie-break convention.
func Or(filters ...CidFilter) CidFilter {
	cp := append([]CidFilter(nil), filters...)
	return base{match: func(c cidx.Cid) bool {
		for _, f := range cp {
			if f.IsMatch(c) {
				return true
			}
		}
		return false
	}}
}

// Not negates a filter.
func Not(f CidFilter) CidFilter {
	return base{match: func(c cidx.Cid) bool { return !f.IsMatch(c) }}
}
