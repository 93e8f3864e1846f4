// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/twmb/murmur3"
)

func TestStringPoolInternBytes(t *testing.T) {
	pool := NewStringPool()

	h := pool.InternBytes([]byte("metric.name"))
	require.Equal(t, "metric.name", h.Value())
	require.Equal(t, 1, pool.Len())

	// Byte-slice and string paths canonicalize together.
	h2 := pool.Intern("metric.name")
	require.True(t, h.Equal(h2))
	require.Equal(t, 1, pool.Len())

	h.Release()
	h2.Release()
	require.True(t, pool.IsEmpty())
}

func TestStringPoolHash(t *testing.T) {
	pool := NewStringPool()

	h := pool.Intern("host:web-1")
	defer h.Release()
	require.Equal(t, murmur3.StringSum64("host:web-1"), h.Hash())

	hb := pool.InternBytes([]byte("host:web-1"))
	defer hb.Release()
	require.Equal(t, h.Hash(), hb.Hash())
}

func TestStringPoolEmptyAndReuse(t *testing.T) {
	pool := NewStringPool(WithName("tags"))
	require.Equal(t, "tags", pool.Name())

	// The empty string is a value like any other.
	empty := pool.InternBytes(nil)
	require.Equal(t, "", empty.Value())
	require.Equal(t, 1, pool.Len())
	empty.Release()
	require.True(t, pool.IsEmpty())

	// Mutating the source buffer after interning must not affect the
	// canonical copy.
	buf := []byte("abc")
	h := pool.InternBytes(buf)
	defer h.Release()
	buf[0] = 'x'
	require.Equal(t, "abc", h.Value())
}
