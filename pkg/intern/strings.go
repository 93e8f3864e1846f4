// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"github.com/twmb/murmur3"
)

// A StringPool is a Pool of strings with murmur3 content hashes and a
// zero-copy lookup path for byte slices, for callers that parse keys out
// of wire payloads and only want an allocation on first sight of a value.
type StringPool struct {
	*Pool[string]
}

// NewStringPool creates an empty string pool.
func NewStringPool(options ...Option) *StringPool {
	return &StringPool{Pool: newPool[string](murmur3.StringSum64, options...)}
}

// InternBytes returns a Handle to the canonical copy of string(b) without
// converting b on the hit path; the map lookup reads b in place and only
// a miss copies it into a new canonical string.
func (p *StringPool) InternBytes(b []byte) *Handle[string] {
	p.mu.Lock()
	if e, ok := p.entries[string(b)]; ok {
		e.refs.Inc()
		p.hits.Inc()
		p.maybeReportLocked()
		p.mu.Unlock()
		return &Handle[string]{pool: p.Pool, e: e}
	}
	v := string(b)
	e := &entry[string]{
		value: v,
		hash:  murmur3.StringSum64(v),
		id:    p.nextID.Inc(),
	}
	e.refs.Store(1)
	p.entries[v] = e
	p.misses.Inc()
	p.maybeReportLocked()
	p.mu.Unlock()
	return &Handle[string]{pool: p.Pool, e: e}
}
