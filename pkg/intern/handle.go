// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"encoding/json"
	"fmt"
)

// Handle is a shared-ownership reference to one canonical interned value.
// Handles are only constructed by Pool.Intern and Handle.Clone; each one
// must be released exactly once, and equality, ordering and hashing on a
// Handle are identity operations on the canonical storage rather than
// structural operations on the value.
//
// A released Handle is dead: any further use panics.
type Handle[T comparable] struct {
	pool *Pool[T]
	e    *entry[T]
}

func (h *Handle[T]) live() *entry[T] {
	if h.e == nil {
		panic("intern: use of released Handle")
	}
	return h.e
}

// Value returns the canonical value this Handle references.
func (h *Handle[T]) Value() T {
	return h.live().value
}

// Clone returns a new Handle aliasing the same canonical value. The
// clone carries its own reference and must itself be released. Cloning
// never takes the pool lock.
func (h *Handle[T]) Clone() *Handle[T] {
	e := h.live()
	e.refs.Inc()
	return &Handle[T]{pool: h.pool, e: e}
}

// Release drops this Handle's reference. When the last Handle for an
// entry is released the pool evicts the entry and a later intern of an
// equal value stores a fresh canonical copy. The non-final release never
// takes the pool lock. Releasing twice panics.
func (h *Handle[T]) Release() {
	e := h.live()
	h.e = nil
	if e.refs.Dec() > 0 {
		return
	}
	h.pool.release(e)
}

// Refcount returns the number of live Handles sharing this value.
// Advisory only under concurrency.
func (h *Handle[T]) Refcount() int32 {
	return h.live().refs.Load()
}

// Equal reports whether both Handles reference the same canonical entry.
// Because the pool holds at most one entry per value, this is value
// equality at pointer-comparison cost. Handles for equal values obtained
// across an eviction reference distinct entries and are not Equal.
func (h *Handle[T]) Equal(other *Handle[T]) bool {
	return h.live() == other.live()
}

// Compare orders Handles by entry identity: 0 iff Equal, otherwise a
// stable total order over live entries (insertion order of the canonical
// copies). The order is consistent within a process but unrelated to the
// values' natural order.
func (h *Handle[T]) Compare(other *Handle[T]) int {
	a, b := h.live().id, other.live().id
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Hash returns the content hash of the referenced value, computed once
// when the value was interned. Handles that are Equal hash identically.
func (h *Handle[T]) Hash() uint64 {
	return h.live().hash
}

// String formats the underlying value.
func (h *Handle[T]) String() string {
	return fmt.Sprint(h.live().value)
}

// MarshalJSON encodes the underlying value; a Handle serializes exactly
// as the value it stands in for.
func (h *Handle[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.live().value)
}

// InternJSON decodes a JSON value of type T and interns it, the
// round-trip counterpart of Handle.MarshalJSON.
func (p *Pool[T]) InternJSON(data []byte) (*Handle[T], error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return p.Intern(v), nil
}
