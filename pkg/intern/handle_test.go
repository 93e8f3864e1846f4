// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2024-present Datadog, Inc.

package intern

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleIdentity(t *testing.T) {
	pool := New[string]()
	a := pool.Intern("a")
	a2 := pool.Intern("a")
	b := pool.Intern("b")
	defer func() {
		a.Release()
		a2.Release()
		b.Release()
	}()

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, a.Equal(a2))
		assert.True(t, a2.Equal(a))
		assert.False(t, a.Equal(b))
	})

	t.Run("Hash", func(t *testing.T) {
		// Hashes are cached per entry: aliases agree without rehashing.
		assert.Equal(t, a.Hash(), a2.Hash())
		assert.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("Compare", func(t *testing.T) {
		assert.Zero(t, a.Compare(a2))
		assert.NotZero(t, a.Compare(b))
		assert.Equal(t, -b.Compare(a), a.Compare(b))
		// Insertion order: "a" was interned before "b".
		assert.Equal(t, -1, a.Compare(b))
	})
}

func TestHandleValue(t *testing.T) {
	type point struct{ X, Y int }

	pool := New[point]()
	h := pool.Intern(point{1, 2})
	defer h.Release()

	require.Equal(t, point{1, 2}, h.Value())
	require.Equal(t, "{1 2}", h.String())
}

func TestHandleJSON(t *testing.T) {
	type event struct {
		Name string `json:"name"`
		Seq  int    `json:"seq"`
	}

	pool := New[event]()
	h := pool.Intern(event{Name: "boot", Seq: 7})
	defer h.Release()

	data, err := json.Marshal(h)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"boot","seq":7}`, string(data))

	h2, err := pool.InternJSON(data)
	require.NoError(t, err)
	defer h2.Release()
	require.True(t, h.Equal(h2))

	_, err = pool.InternJSON([]byte(`{"name":`))
	require.Error(t, err)
	require.Equal(t, 1, pool.Len())
}

func TestHandleIdentityCrossesEviction(t *testing.T) {
	pool := New[string]()

	h := pool.Intern("v")
	keep := h.Clone()
	h.Release()

	// Entry still live through keep: a re-intern aliases it.
	alias := pool.Intern("v")
	require.True(t, keep.Equal(alias))
	alias.Release()
	keep.Release()

	// Fully evicted: the next intern is a distinct identity even though
	// the value is equal.
	fresh := pool.Intern("v")
	defer fresh.Release()
	require.Equal(t, int32(1), fresh.Refcount())
	require.Equal(t, uint64(2), pool.Stats().Misses)
}
