package runner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool() (*Pool[ObstacleKind, Obstacle], *int) {
	built := 0
	p := NewPool(func(k ObstacleKind) Obstacle {
		built++
		return Obstacle{Kind: k}
	})
	return p, &built
}

func TestPoolReusesReleasedSlot(t *testing.T) {
	p, built := newTestPool()

	h1, o := p.Acquire(ObstaclePlain)
	require.NotNil(t, o)
	assert.Equal(t, 1, *built)
	assert.True(t, p.IsActive(h1))

	p.Release(h1)
	assert.False(t, p.IsActive(h1))
	assert.Equal(t, 0, p.Active())

	h2, _ := p.Acquire(ObstaclePlain)
	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, *built, "released slot should be reused")
	assert.Equal(t, 1, p.Size())
}

func TestPoolFreeListsArePerKind(t *testing.T) {
	p, built := newTestPool()

	h, _ := p.Acquire(ObstaclePlain)
	p.Release(h)

	h2, o := p.Acquire(ObstacleSlowZone)
	assert.NotEqual(t, h, h2)
	assert.Equal(t, ObstacleSlowZone, o.Kind)
	assert.Equal(t, ObstacleSlowZone, p.Kind(h2))
	assert.Equal(t, 2, *built)
}

func TestPoolPrewarm(t *testing.T) {
	p, built := newTestPool()
	p.Prewarm(ObstaclePlain, 4)
	require.Equal(t, 4, *built)
	assert.Equal(t, 0, p.Active())

	for range 4 {
		p.Acquire(ObstaclePlain)
	}
	assert.Equal(t, 4, *built, "prewarmed slots should cover the first acquires")
	assert.Equal(t, 4, p.Active())

	p.Acquire(ObstaclePlain)
	assert.Equal(t, 5, p.Size())
}

func TestPoolDoubleReleaseIsNoop(t *testing.T) {
	p, _ := newTestPool()
	h, _ := p.Acquire(ObstaclePlain)
	p.Release(h)
	p.Release(h)
	assert.Equal(t, 0, p.Active())

	a, _ := p.Acquire(ObstaclePlain)
	b, _ := p.Acquire(ObstaclePlain)
	assert.NotEqual(t, a, b, "a slot must not be handed out twice")
}

func TestPoolRandomSequenceInvariants(t *testing.T) {
	p, _ := newTestPool()
	rng := rand.New(rand.NewSource(7))
	var live []Handle
	lastSize := 0

	for range 2000 {
		if len(live) == 0 || rng.Intn(3) > 0 {
			h, _ := p.Acquire(ObstacleKind(rng.Intn(int(numObstacleKinds))))
			live = append(live, h)
		} else {
			i := rng.Intn(len(live))
			p.Release(live[i])
			live = append(live[:i], live[i+1:]...)
		}

		require.Equal(t, len(live), p.Active())
		require.GreaterOrEqual(t, p.Size(), lastSize, "pool must never shrink")
		lastSize = p.Size()
	}

	p.ReleaseAll()
	assert.Equal(t, 0, p.Active())
	assert.Equal(t, lastSize, p.Size())
}
