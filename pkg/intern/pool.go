// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"fmt"
	"hash/maphash"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/DataDog/datadog-agent/pkg/util/log"
)

// entry is the canonical storage for one interned value. All Handles for a
// given value alias the same entry; the entry owns the only stored copy of
// the value and the shared refcount.
type entry[T comparable] struct {
	value T
	// hash is the content hash of value, computed once at insertion.
	// Handle.Hash returns it instead of rehashing the value.
	hash uint64
	// id is the pool-unique insertion id. It gives entries a stable
	// identity for ordering; a re-interned value gets a fresh id.
	id uint64
	// refs counts live Handles. It is incremented either under the pool
	// lock (Intern) or from an already-live Handle (Clone), and
	// decremented without the lock. Only the zero transition touches the
	// pool index again.
	refs atomic.Int32
}

// Pool deduplicates values of type T. It hands out reference-counted
// Handles to a single canonical copy of each distinct value and drops
// that copy once the last Handle for it is released.
//
// A Pool is created empty, grows on first intern of a value and shrinks
// as entries lose their last reference. It is safe for concurrent use.
type Pool[T comparable] struct {
	cfg  config
	hash func(T) uint64

	// mu guards the index. Every check-then-act sequence on an entry's
	// presence (lookup-or-insert, remove-if-still-dead) runs entirely
	// under it; refcount updates that cannot change presence do not
	// take it.
	mu         sync.Mutex
	entries    map[T]*entry[T]
	lastReport time.Time

	nextID    atomic.Uint64
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates an empty pool for values of type T. Values are hashed with
// a per-pool maphash seed; use NewStringPool for the string-specialized
// variant.
func New[T comparable](options ...Option) *Pool[T] {
	seed := maphash.MakeSeed()
	return newPool[T](func(v T) uint64 {
		return maphash.Comparable(seed, v)
	}, options...)
}

func newPool[T comparable](hash func(T) uint64, options ...Option) *Pool[T] {
	cfg := makeConfig(options...)
	if cfg.name == "" {
		cfg.name = fmt.Sprintf("%T", *new(T))
	}
	p := &Pool[T]{
		cfg:        cfg,
		hash:       hash,
		entries:    make(map[T]*entry[T]),
		lastReport: cfg.clock.Now(),
	}
	log.Debugf("intern: created pool %q", cfg.name)
	return p
}

// Intern returns a Handle to the canonical copy of v, storing v as that
// copy if no equal value is currently interned. Handles returned for
// equal values alias the same storage and compare equal until the last
// one is released.
//
// The caller owns the returned Handle and must release it exactly once.
func (p *Pool[T]) Intern(v T) *Handle[T] {
	p.mu.Lock()
	if e, ok := p.entries[v]; ok {
		// A concurrent releaser may already have decremented this
		// entry to zero; bumping it back before the releaser re-takes
		// the lock keeps the entry alive and aborts the eviction.
		e.refs.Inc()
		p.hits.Inc()
		p.maybeReportLocked()
		p.mu.Unlock()
		return &Handle[T]{pool: p, e: e}
	}
	e := &entry[T]{
		value: v,
		hash:  p.hash(v),
		id:    p.nextID.Inc(),
	}
	e.refs.Store(1)
	p.entries[v] = e
	p.misses.Inc()
	p.maybeReportLocked()
	p.mu.Unlock()
	return &Handle[T]{pool: p, e: e}
}

// release removes e from the index if its refcount is still zero. Called
// by the Handle that observed the decrement-to-zero transition.
//
// The re-checks make the removal exactly-once under every interleaving:
// an Intern that revived the entry leaves a non-zero refcount, a racing
// releaser that got here first leaves the key absent, and an Intern that
// ran after that removal leaves a different entry under the key.
func (p *Pool[T]) release(e *entry[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cur, ok := p.entries[e.value]
	if !ok || cur != e || e.refs.Load() != 0 {
		return
	}
	delete(p.entries, e.value)
	p.evictions.Inc()
}

// Len returns the number of currently interned values. The count is
// advisory: concurrent interns and releases may change it immediately.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// IsEmpty reports whether the pool holds no interned values.
func (p *Pool[T]) IsEmpty() bool {
	return p.Len() == 0
}

// Name returns the pool's label, either the WithName option value or the
// value type's name.
func (p *Pool[T]) Name() string {
	return p.cfg.name
}

// Clear drops every entry from the pool. Outstanding Handles remain
// usable and keep their values alive; releasing them later is a no-op
// against the cleared index. Subsequent interns of equal values create
// fresh canonical entries. Intended for tests and explicit resets.
func (p *Pool[T]) Clear() {
	p.mu.Lock()
	n := len(p.entries)
	p.entries = make(map[T]*entry[T])
	p.mu.Unlock()
	if n > 0 {
		log.Debugf("intern: cleared pool %q, dropped %d entries", p.cfg.name, n)
	}
}

// Stats is a point-in-time snapshot of a pool's counters.
type Stats struct {
	// Entries is the number of live canonical values.
	Entries int
	// Hits counts interns that found an existing canonical value.
	Hits uint64
	// Misses counts interns that stored a new canonical value.
	Misses uint64
	// Evictions counts entries removed because their last Handle was
	// released. Clear is not counted.
	Evictions uint64
}

// Stats returns a snapshot of the pool's counters.
func (p *Pool[T]) Stats() Stats {
	return Stats{
		Entries:   p.Len(),
		Hits:      p.hits.Load(),
		Misses:    p.misses.Load(),
		Evictions: p.evictions.Load(),
	}
}

// maybeReportLocked logs pool statistics at most once per report
// interval. Caller holds p.mu.
func (p *Pool[T]) maybeReportLocked() {
	if p.cfg.reportInterval <= 0 {
		return
	}
	now := p.cfg.clock.Now()
	if now.Sub(p.lastReport) < p.cfg.reportInterval {
		return
	}
	p.lastReport = now
	log.Debugf("intern: pool %q holds %d entries (hits=%d misses=%d evictions=%d)",
		p.cfg.name, len(p.entries), p.hits.Load(), p.misses.Load(), p.evictions.Load())
}
