// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

// Package intern provides a reference-counted deduplicating pool. A pool
// stores one canonical copy of each distinct value and hands out
// lightweight Handles to it; equality, ordering and hashing on Handles
// compare identities instead of values, so comparisons of repeated
// values cost a pointer comparison no matter how large the values are.
//
// Unlike an intern table that grows forever, entries are reference
// counted: when the last Handle for a value is released the pool evicts
// that value's storage. Applications whose working set of values changes
// over time keep a bounded footprint at the cost of an atomic counter
// per entry and a mutex acquisition on intern and on last release.
//
// A single pool may be shared by every goroutine in the program. Interns
// and last releases serialize on the pool's mutex; Handle clones, reads
// and non-final releases are lock-free.
//
// Interning is most commonly applied to strings (see StringPool), but a
// Pool accepts any comparable type:
//
//	pool := intern.New[string]()
//	x := pool.Intern("hello")
//	y := pool.Intern("world")
//	z := pool.Intern("hello")
//	x.Equal(y) // false
//	x.Equal(z) // true, and x, z share one stored copy
//	x.Release()
//	y.Release()
//	z.Release() // last "hello" reference: entry evicted
package intern
