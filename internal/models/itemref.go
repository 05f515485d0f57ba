// internal/models/itemref.go
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ItemKind tags which identifier space a catalog item belongs to. Regular
// marketplace books and bookstore-supplied library books have independent
// integer id spaces, so an id alone is ambiguous in any merged listing.
type ItemKind string

const (
	ItemKindRegular ItemKind = "regular"
	ItemKindLibrary ItemKind = "library"
)

func (k ItemKind) Valid() bool {
	return k == ItemKindRegular || k == ItemKindLibrary
}

// libraryRefPrefix namespaces library item ids at the API boundary so they
// cannot collide with a regular book id of the same numeric value.
const libraryRefPrefix = "library-"

// ItemRef identifies a catalog item across both kinds. The tagged form is
// used everywhere internally; the string encoding exists only at the system
// boundary and is decoded back immediately on the way in.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   uint     `json:"id"`
}

// String encodes the reference for external callers: library items carry the
// "library-" prefix, regular books are the bare decimal id.
func (r ItemRef) String() string {
	if r.Kind == ItemKindLibrary {
		return libraryRefPrefix + strconv.FormatUint(uint64(r.ID), 10)
	}
	return strconv.FormatUint(uint64(r.ID), 10)
}

// ParseItemRef decodes the boundary encoding. For every valid ref,
// ParseItemRef(ref.String()) returns ref unchanged.
func ParseItemRef(s string) (ItemRef, error) {
	kind := ItemKindRegular
	raw := s
	if strings.HasPrefix(s, libraryRefPrefix) {
		kind = ItemKindLibrary
		raw = strings.TrimPrefix(s, libraryRefPrefix)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return ItemRef{}, fmt.Errorf("invalid item reference %q", s)
	}

	return ItemRef{Kind: kind, ID: uint(id)}, nil
}
