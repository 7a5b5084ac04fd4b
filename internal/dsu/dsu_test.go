package dsu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniteMergesDistinctSets(t *testing.T) {
	d := New(5)
	assert.True(t, d.Unite(0, 1))
	assert.Equal(t, d.Find(0), d.Find(1))
}

func TestUniteIsIdempotent(t *testing.T) {
	d := New(3)
	assert.True(t, d.Unite(0, 1))
	assert.False(t, d.Unite(0, 1), "second union of the same pair should report no merge")
	assert.False(t, d.Unite(1, 0), "order should not matter once merged")
}

func TestIndependentSetsStayApart(t *testing.T) {
	d := New(4)
	d.Unite(0, 1)
	d.Unite(2, 3)
	assert.NotEqual(t, d.Find(0), d.Find(2))
}

func TestChainedUnionsConverge(t *testing.T) {
	d := New(6)
	d.Unite(0, 1)
	d.Unite(1, 2)
	d.Unite(2, 3)
	root := d.Find(0)
	for v := 1; v <= 3; v++ {
		assert.Equal(t, root, d.Find(v))
	}
	assert.NotEqual(t, root, d.Find(4))
}
