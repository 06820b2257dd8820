package runner

import (
	"math/rand"

	"github.com/LandoCrissian/LAMMB-Runner/internal/config"
	"github.com/LandoCrissian/LAMMB-Runner/internal/core"
)

// PropKind is decorative scenery beside the track.
type PropKind int

const (
	PropCandle PropKind = iota // price-chart candle pillar
	PropSign
	PropRubble
)

// Prop is one scenery item. Props never collide.
type Prop struct {
	Kind   PropKind
	Pos    core.Vec3
	Height float64
}

// Chunk is an immutable segment of track covering [Z-Length, Z].
type Chunk struct {
	Z        float64
	Length   float64
	Dividers []float64 // x of the lines between lanes
	Props    []Prop
}

// FarZ returns the far edge of the chunk in the run direction.
func (c Chunk) FarZ() float64 {
	return c.Z - c.Length
}

// World streams chunks ahead of the player and evicts the ones left behind.
type World struct {
	cfg     config.WorldConfig
	lanes   config.PlayerConfig
	rng     *rand.Rand
	chunks  []Chunk
	nextZ   float64
	built   int
	evicted int
}

// NewWorld creates a world whose scenery rolls come from seed.
func NewWorld(cfg config.WorldConfig, lanes config.PlayerConfig, seed int64) *World {
	w := &World{cfg: cfg, lanes: lanes}
	w.Reset(seed)
	return w
}

// Reset disposes every chunk and rebuilds the initial window at z = 0.
func (w *World) Reset(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
	w.evicted += len(w.chunks)
	w.chunks = w.chunks[:0]
	w.nextZ = 0
	w.Update(0)
}

// Update builds chunks until visible+1 of them start at or ahead of playerZ,
// then evicts chunks anchored more than one chunk length behind.
func (w *World) Update(playerZ float64) {
	horizon := playerZ - float64(w.cfg.VisibleChunks+1)*w.cfg.ChunkLength
	for w.nextZ > horizon {
		w.chunks = append(w.chunks, w.buildChunk(w.nextZ))
		w.nextZ -= w.cfg.ChunkLength
	}

	kept := w.chunks[:0]
	for _, c := range w.chunks {
		if c.Z > playerZ+w.cfg.ChunkLength {
			w.evicted++
			continue
		}
		kept = append(kept, c)
	}
	w.chunks = kept
}

func (w *World) buildChunk(z float64) Chunk {
	c := Chunk{Z: z, Length: w.cfg.ChunkLength}

	center := w.lanes.LaneCount / 2
	for lane := 0; lane < w.lanes.LaneCount-1; lane++ {
		c.Dividers = append(c.Dividers, LaneX(lane, center, w.lanes.LaneWidth)+w.lanes.LaneWidth/2)
	}

	edge := w.cfg.FloorWidth / 2
	n := 3 + w.rng.Intn(6)
	for range n {
		side := 1.0
		if w.rng.Intn(2) == 0 {
			side = -1
		}
		c.Props = append(c.Props, Prop{
			Kind:   PropKind(w.rng.Intn(3)),
			Pos:    core.Vec3{X: side * (edge + 1 + w.rng.Float64()*5), Z: z - w.rng.Float64()*w.cfg.ChunkLength},
			Height: 1 + w.rng.Float64()*6,
		})
	}

	w.built++
	return c
}

// Chunks returns the live chunks ordered by decreasing Z.
func (w *World) Chunks() []Chunk {
	return w.chunks
}

// AheadCount returns how many chunks start at or ahead of playerZ.
func (w *World) AheadCount(playerZ float64) int {
	n := 0
	for _, c := range w.chunks {
		if c.Z <= playerZ {
			n++
		}
	}
	return n
}

// Stats returns how many chunks were built and evicted since creation.
func (w *World) Stats() (built, evicted int) {
	return w.built, w.evicted
}
