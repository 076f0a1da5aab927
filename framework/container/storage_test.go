package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/container"
)

// ── Factory vs Singleton extraction counts ────────────────────────────────────

func TestFactoryStorage_ExtractsOnEveryGet(t *testing.T) {
	c := container.New()
	n := 0
	require.NoError(t, c.Bind("counter", valueTarget(&n, "v"), nil))

	_, err := c.Get("counter")
	require.NoError(t, err)
	_, err = c.Get("counter")
	require.NoError(t, err)

	assert.Equal(t, 2, n, "factory backend must re-extract per Get")
}

func TestSingletonStorage_ExtractsOnceEver(t *testing.T) {
	c := container.New()
	n := 0
	require.NoError(t, c.Singleton("counter", valueTarget(&n, "v"), nil))

	_, err := c.Get("counter")
	require.NoError(t, err)
	_, err = c.Get("counter")
	require.NoError(t, err)

	assert.Equal(t, 1, n, "singleton backend must extract once, ever")
}

func TestSingletonStorage_ReturnsSameIdentity(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Singleton("svc", func(_ *container.Container, _ container.Args) (any, error) {
		return &struct{ n int }{}, nil
	}, nil))

	a, err := c.Get("svc")
	require.NoError(t, err)
	b, err := c.Get("svc")
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestFactoryStorage_MayReturnDistinctValues(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Bind("svc", func(_ *container.Container, _ container.Args) (any, error) {
		return &struct{ n int }{}, nil
	}, nil))

	a, err := c.Get("svc")
	require.NoError(t, err)
	b, err := c.Get("svc")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestSingletonStorage_NoCachingOnFailedExtraction(t *testing.T) {
	c := container.New()
	calls := 0
	require.NoError(t, c.Singleton("flaky", func(_ *container.Container, _ container.Args) (any, error) {
		calls++
		if calls == 1 {
			return nil, container.InvalidParameterError{Reason: "warming up"}
		}
		return "ready", nil
	}, nil))

	_, err := c.Get("flaky")
	require.Error(t, err)

	v, err := c.Get("flaky")
	require.NoError(t, err)
	assert.Equal(t, "ready", v)
	assert.Equal(t, 2, calls)

	// Now cached
	_, err = c.Get("flaky")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestSingletonStorage_RebindDropsCachedInstance(t *testing.T) {
	c := container.New()
	n1, n2 := 0, 0
	require.NoError(t, c.Singleton("svc", valueTarget(&n1, "one"), nil))

	v, err := c.Get("svc")
	require.NoError(t, err)
	require.Equal(t, "one", v)

	require.NoError(t, c.Singleton("svc", valueTarget(&n2, "two"), nil))

	v, err = c.Get("svc")
	require.NoError(t, err)
	assert.Equal(t, "two", v)
}

// ── Value backend ─────────────────────────────────────────────────────────────

func TestValueStorage_Verbatim(t *testing.T) {
	c := container.New()
	s, ok := c.StorageBackend(container.StorageValue)
	require.True(t, ok)

	require.NoError(t, s.Store("answer", 42))
	require.NoError(t, s.Store("nothing", nil))

	v, err := s.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = s.Get("nothing")
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.True(t, s.Has("nothing"))

	s.Remove("answer")
	assert.False(t, s.Has("answer"))
	_, err = s.Get("answer")
	assert.ErrorIs(t, err, container.ErrNotFound)
}

// ── Definition-only backends reject raw values ────────────────────────────────

func TestDefinitionBackends_RejectRawValues(t *testing.T) {
	c := container.New()
	for _, key := range []string{container.StorageFactory, container.StorageSingleton, container.StorageWildcard} {
		s, ok := c.StorageBackend(key)
		require.True(t, ok)
		assert.ErrorIs(t, s.Store("x", 42), container.ErrContainer, key)
	}
}

// ── Wildcard backend ──────────────────────────────────────────────────────────

func TestWildcardStorage_MatchesAndHandsAliasToHandler(t *testing.T) {
	c := container.New()
	var seen []string
	require.NoError(t, c.Wildcard("repo.*", func(_ *container.Container, alias string) (any, error) {
		seen = append(seen, alias)
		return "repo:" + alias, nil
	}))

	assert.True(t, c.Has("repo.user"))

	v, err := c.Get("repo.user")
	require.NoError(t, err)
	assert.Equal(t, "repo:repo.user", v)
	assert.Equal(t, []string{"repo.user"}, seen)
}

func TestWildcardStorage_SeparatorBoundsSingleStar(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Wildcard("repo.*", func(_ *container.Container, alias string) (any, error) {
		return alias, nil
	}))

	assert.True(t, c.Has("repo.user"))
	assert.False(t, c.Has("repo.user.archive"))
	assert.False(t, c.Has("other.user"))
}

func TestWildcardStorage_FirstRegisteredPatternWins(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Wildcard("repo.*", func(_ *container.Container, _ string) (any, error) {
		return "first", nil
	}))
	require.NoError(t, c.Wildcard("*.user", func(_ *container.Container, _ string) (any, error) {
		return "second", nil
	}))

	v, err := c.Get("repo.user")
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	v, err = c.Get("cache.user")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

func TestWildcardStorage_RemoveByPattern(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Wildcard("repo.*", func(_ *container.Container, alias string) (any, error) {
		return alias, nil
	}))

	s, ok := c.StorageBackend(container.StorageWildcard)
	require.True(t, ok)
	s.Remove("repo.*")

	assert.False(t, s.Has("repo.user"))
}

func TestWildcardStorage_InvalidPatternRejectedAtRegistration(t *testing.T) {
	c := container.New()
	err := c.Wildcard("repo.[", func(_ *container.Container, alias string) (any, error) {
		return alias, nil
	})
	assert.ErrorIs(t, err, container.ErrContainer)
}
