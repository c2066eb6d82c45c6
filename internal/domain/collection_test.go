package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instanceWithAttractors(color string, attractors ...*Attractor) *Instance {
	in := NewInstance()
	in.SetColor(color)
	for _, a := range attractors {
		in.AddAttractor(a)
	}
	return in
}

func TestCollectionTermAggregation(t *testing.T) {
	// First instance: attractors {x,y,s} and {y,z,s} -> own intersection {y,s}.
	// Second instance: attractors {y,s} and {s,w} -> own intersection {s}.
	c := NewCollection()
	c.AddInstance(instanceWithAttractors("blue",
		attractorWithTerms("a0", "x", "y", "s"),
		attractorWithTerms("a1", "y", "z", "s"),
	))
	c.AddInstance(instanceWithAttractors("red",
		attractorWithTerms("b0", "y", "s"),
		attractorWithTerms("b1", "s", "w"),
	))

	t.Run("double intersection, not a flattening", func(t *testing.T) {
		got, err := c.TermIDIntersectionAll()

		require.NoError(t, err)
		// y is common to every attractor of the first instance and present
		// in the second, but not in every attractor of the second.
		assert.Equal(t, NewSet("s"), got)
	})

	t.Run("label intersection", func(t *testing.T) {
		got, err := c.TermLabelIntersectionAll()

		require.NoError(t, err)
		assert.Equal(t, NewSet("label s"), got)
	})

	t.Run("term intersection resolves objects", func(t *testing.T) {
		got, err := c.TermIntersectionAll()

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "label s", got["s"].Label)
	})

	t.Run("frequencies sum across instances", func(t *testing.T) {
		got := c.TermIDFrequenciesAll()

		assert.Equal(t, 4, got["s"])
		assert.Equal(t, 3, got["y"])
		assert.Equal(t, 1, got["x"])
		assert.Equal(t, 1, got["w"])
	})

	t.Run("total attractor count", func(t *testing.T) {
		assert.Equal(t, 4, c.TotalAttractorCount())
	})

	t.Run("all terms merged across instances", func(t *testing.T) {
		all := c.AllTerms()

		for _, id := range []string{"x", "y", "z", "s", "w"} {
			assert.Contains(t, all, id)
		}
	})
}

func TestCollectionIdentifierAggregation(t *testing.T) {
	c := NewCollection()
	c.AddInstance(instanceWithAttractors("blue",
		attractorWithIdentifiers("TP53,MDM2", "FOO"),
		attractorWithIdentifiers("TP53", "FOO,BAR"),
	))
	c.AddInstance(instanceWithAttractors("red",
		attractorWithIdentifiers("TP53", "FOO"),
	))

	t.Run("frequencies sum across instances", func(t *testing.T) {
		assert.Equal(t, map[string]int{"TP53": 3, "MDM2": 1}, c.IdentifierFrequenciesAll(Mapped))
		assert.Equal(t, map[string]int{"FOO": 3, "BAR": 1}, c.IdentifierFrequenciesAll(Unmapped))
	})

	t.Run("intersection across instances", func(t *testing.T) {
		mapped, err := c.IdentifierIntersectionAll(Mapped)
		require.NoError(t, err)
		unmapped, err := c.IdentifierIntersectionAll(Unmapped)
		require.NoError(t, err)

		assert.Equal(t, NewSet("TP53"), mapped)
		assert.Equal(t, NewSet("FOO"), unmapped)
	})
}

func TestCollectionEmptyPreconditions(t *testing.T) {
	t.Run("no instances", func(t *testing.T) {
		c := NewCollection()

		_, err := c.TermIDIntersectionAll()
		assert.ErrorIs(t, err, ErrNoInstances)

		_, err = c.TermLabelIntersectionAll()
		assert.ErrorIs(t, err, ErrNoInstances)

		_, err = c.IdentifierIntersectionAll(Mapped)
		assert.ErrorIs(t, err, ErrNoInstances)
	})

	t.Run("an instance without attractors propagates its own condition", func(t *testing.T) {
		c := NewCollection()
		c.AddInstance(NewInstance())

		_, err := c.TermIDIntersectionAll()
		assert.ErrorIs(t, err, ErrNoAttractors)
	})
}
