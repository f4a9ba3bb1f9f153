package dots

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grid(n int) []Point {
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: float64(i * 16), Y: float64(i * 8)}
	}
	return pts
}

func TestReconcileGrowsByDeficit(t *testing.T) {
	p := NewPool(400, 400)

	assert.Equal(t, 5, p.Reconcile(grid(5)))
	assert.Equal(t, 5, p.Len())

	assert.Equal(t, 3, p.Reconcile(grid(8)))
	assert.Equal(t, 8, p.Len())

	for i := 0; i < p.Len(); i++ {
		d := p.At(i)
		require.NotNil(t, d.Target)
		assert.Equal(t, grid(8)[i], *d.Target)
		assert.True(t, d.Visible)
	}
}

func TestReconcileSpawnsAtCenter(t *testing.T) {
	p := NewPool(400, 300)
	p.Reconcile(grid(2))
	d := p.At(1)
	assert.Equal(t, 200.0, d.X)
	assert.Equal(t, 150.0, d.Y)
	assert.Equal(t, 0.0, d.Color.A)
}

func TestReconcileShorterHidesTail(t *testing.T) {
	p := NewPool(400, 400)
	p.Reconcile(grid(6))
	ids := make([]uint64, p.Len())
	p.Each(func(i int, d *Dot) { ids[i] = d.ID })

	assert.Equal(t, 0, p.Reconcile(grid(2)))
	assert.Equal(t, 6, p.Len())

	p.Each(func(i int, d *Dot) {
		assert.Equal(t, ids[i], d.ID, "slot %d reused", i)
		require.NotNil(t, d.Target)
		if i < 2 {
			assert.True(t, d.Visible)
			assert.Equal(t, grid(2)[i], *d.Target)
		} else {
			assert.False(t, d.Visible)
			assert.Equal(t, p.Center(), *d.Target)
		}
	})
}

func TestReconcileEmptyHidesAll(t *testing.T) {
	p := NewPool(400, 400)
	p.Reconcile(grid(4))
	assert.Equal(t, 0, p.Reconcile(nil))
	assert.Equal(t, 4, p.Len())
	p.Each(func(i int, d *Dot) {
		assert.False(t, d.Visible)
		assert.Equal(t, Point{X: 200, Y: 200}, *d.Target)
	})
}

func TestTargetsAreNotShared(t *testing.T) {
	p := NewPool(100, 100)
	p.Reconcile(nil)
	p.Reconcile(grid(3))
	p.Reconcile(grid(1))
	assert.NotSame(t, p.At(1).Target, p.At(2).Target)
}

func TestIDsAreUniqueAndIncreasing(t *testing.T) {
	p := NewPool(100, 100)
	p.Reconcile(grid(10))
	q := NewPool(100, 100)
	q.Reconcile(grid(2))

	last := uint64(0)
	p.Each(func(_ int, d *Dot) {
		assert.Greater(t, d.ID, last)
		last = d.ID
	})
	assert.Greater(t, q.At(0).ID, last)
}

func TestResetEmptiesPool(t *testing.T) {
	p := NewPool(100, 100)
	p.Reconcile(grid(3))
	p.Reset()
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.At(0))
}

func TestExplodeProjectsOntoRadius(t *testing.T) {
	p := NewPool(400, 400)
	p.Reconcile(grid(4))
	p.At(1).X, p.At(1).Y = 300, 200
	p.At(2).X, p.At(2).Y = 100, 100

	p.Explode(500)

	c := p.Center()
	p.Each(func(i int, d *Dot) {
		require.NotNil(t, d.Target, "slot %d", i)
		assert.InDelta(t, 500, math.Hypot(d.Target.X-c.X, d.Target.Y-c.Y), 1e-9, "slot %d", i)
	})
	assert.InDelta(t, 700, p.At(1).Target.X, 1e-9)
	assert.InDelta(t, 200, p.At(1).Target.Y, 1e-9)
	assert.InDelta(t, 200-500/math.Sqrt2, p.At(2).Target.X, 1e-9)
	assert.InDelta(t, 200-500/math.Sqrt2, p.At(2).Target.Y, 1e-9)
	// slots 0 and 3 still sit on the center; they must not collapse together
	assert.NotEqual(t, *p.At(0).Target, *p.At(3).Target)
}

func TestExplodeKeepsVisibility(t *testing.T) {
	p := NewPool(400, 400)
	p.Reconcile(grid(3))
	p.Reconcile(grid(1))
	p.Explode(100)
	assert.True(t, p.At(0).Visible)
	assert.False(t, p.At(2).Visible)
}

func TestPoolSettles(t *testing.T) {
	p := NewPool(400, 400)
	params := testParams(t)
	p.Reconcile(grid(20))

	ticks := 0
	for p.Step(params) {
		ticks++
		require.Less(t, ticks, 1000)
	}
	p.Each(func(i int, d *Dot) {
		assert.Nil(t, d.Target, "slot %d", i)
		assert.Equal(t, 1.0, d.Color.A, "slot %d", i)
	})
	assert.False(t, p.Step(params))
}
