package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestResolveOrder(t *testing.T) {
	rec := decode(t, `{"a": "", "b": "second", "c": "third"}`)

	v, ok := Resolve(rec, "a", "b", "c")
	require.True(t, ok)
	assert.Equal(t, "second", v, "first non-empty candidate wins")

	_, ok = Resolve(rec, "a", "missing")
	assert.False(t, ok)
}

// Numeric zero and "0" are present values; only nil, empty string, and
// absent keys count as empty. Altitude 0 must survive resolution.
func TestResolveZeroIsPresent(t *testing.T) {
	rec := decode(t, `{"altitude": 0, "bearing": "0", "gone": null}`)

	v, ok := Resolve(rec, "altitude")
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	v, ok = Resolve(rec, "bearing")
	require.True(t, ok)
	assert.Equal(t, "0", v)

	_, ok = Resolve(rec, "gone")
	assert.False(t, ok, "explicit null is empty")

	f, ok := ResolveFloat(rec, "altitude")
	require.True(t, ok)
	assert.Zero(t, f)
}

func TestResolveNestedPaths(t *testing.T) {
	rec := decode(t, `{"address": {"city": "Ottawa"}, "results": [{"name": "first"}, {"name": "second"}]}`)

	assert.Equal(t, "Ottawa", ResolveString(rec, "address.town", "address.city"))
	assert.Equal(t, "first", ResolveString(rec, "results.0.name"))
	assert.Equal(t, "second", ResolveString(rec, "results.1.name"))
	assert.Empty(t, ResolveString(rec, "results.2.name"), "index out of range")
	assert.Empty(t, ResolveString(rec, "address.city.deeper"), "path through a leaf")
}

func TestResolveString(t *testing.T) {
	rec := decode(t, `{"n": 45.25, "flag": true, "list": [1]}`)

	assert.Equal(t, "45.25", ResolveString(rec, "n"))
	assert.Equal(t, "true", ResolveString(rec, "flag"))
	assert.Empty(t, ResolveString(rec, "list"), "non-scalar renders empty")
}

func TestResolveFloat(t *testing.T) {
	rec := decode(t, `{"f": 1.5, "s": "2.25", "bad": "abc"}`)

	f, ok := ResolveFloat(rec, "f")
	require.True(t, ok)
	assert.Equal(t, 1.5, f)

	f, ok = ResolveFloat(rec, "s")
	require.True(t, ok)
	assert.Equal(t, 2.25, f)

	_, ok = ResolveFloat(rec, "bad")
	assert.False(t, ok)
}
