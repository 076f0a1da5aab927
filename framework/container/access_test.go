package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/container"
)

func TestCompoundKey_ValuesRoundTrip(t *testing.T) {
	c := container.New()
	require.NoError(t, c.SetKey("values::x", 5))

	v, err := c.GetKey("values::x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.True(t, c.HasKey("values::x"))
}

func TestCompoundKey_NoPrefixFallsBackToSingleton(t *testing.T) {
	c := container.New()
	require.NoError(t, c.SetKey("x", 5))

	assert.True(t, c.Has("x", container.StorageSingleton))
	assert.False(t, c.Has("x", container.StorageValue))

	v, err := c.GetKey("x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCompoundKey_UnrecognizedPrefixIsPartOfAlias(t *testing.T) {
	c := container.New()
	require.NoError(t, c.SetKey("redis::x", 5))

	// "redis" is not a backend, so the whole key is the alias in the
	// singleton backend.
	assert.True(t, c.Has("redis::x", container.StorageSingleton))

	v, err := c.GetKey("redis::x")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

func TestCompoundKey_Delete(t *testing.T) {
	c := container.New()
	require.NoError(t, c.SetKey("values::x", 5))
	require.True(t, c.HasKey("values::x"))

	c.DeleteKey("values::x")
	assert.False(t, c.HasKey("values::x"))

	_, err := c.GetKey("values::x")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

func TestCompoundKey_StoresDefinitionsUnwrapped(t *testing.T) {
	c := container.New()
	n := 0
	def, err := container.NewDefinition("svc", mustCallableParameter(t, valueTarget(&n, "built"), nil), container.ExtractorCallable)
	require.NoError(t, err)

	require.NoError(t, c.SetKey("factory::svc", def))

	v, err := c.GetKey("factory::svc")
	require.NoError(t, err)
	assert.Equal(t, "built", v)
	assert.Equal(t, 1, n)
}

func mustCallableParameter(t *testing.T, target any, args container.Args) *container.CallableParameter {
	t.Helper()
	p, err := container.NewCallableParameter(target, args)
	require.NoError(t, err)
	return p
}
