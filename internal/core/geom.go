// Package core provides fundamental types and utilities shared by the runner
// simulation and its frontends. It has no external dependencies (especially no
// Bubble Tea) so game logic stays pure and testable.
package core

// Vec3 is a point or displacement in world space.
// The run direction is -Z, lanes spread along X and Y is up.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Lerp moves v toward target by fraction t.
func (v Vec3) Lerp(target Vec3, t float64) Vec3 {
	return Vec3{
		X: v.X + (target.X-v.X)*t,
		Y: v.Y + (target.Y-v.Y)*t,
		Z: v.Z + (target.Z-v.Z)*t,
	}
}

// Size holds the extents of a box along each axis.
type Size struct {
	W, H, D float64
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min, Max Vec3
}

// BoxOnFloor returns a box centred on pos in X and Z whose bottom sits at
// pos.Y + lift.
func BoxOnFloor(pos Vec3, size Size, lift float64) AABB {
	return AABB{
		Min: Vec3{X: pos.X - size.W/2, Y: pos.Y + lift, Z: pos.Z - size.D/2},
		Max: Vec3{X: pos.X + size.W/2, Y: pos.Y + lift + size.H, Z: pos.Z + size.D/2},
	}
}

// BoxAround returns a box centred on pos in all three axes.
func BoxAround(pos Vec3, size Size) AABB {
	return AABB{
		Min: Vec3{X: pos.X - size.W/2, Y: pos.Y - size.H/2, Z: pos.Z - size.D/2},
		Max: Vec3{X: pos.X + size.W/2, Y: pos.Y + size.H/2, Z: pos.Z + size.D/2},
	}
}

// Overlaps reports whether the closed intervals of b and o intersect on all
// three axes. Touching faces count as overlap.
func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Rect represents an integer rectangle on the character screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// MoveToward steps cur toward target by at most maxStep without overshooting.
func MoveToward(cur, target, maxStep float64) float64 {
	diff := target - cur
	if diff > maxStep {
		return cur + maxStep
	}
	if diff < -maxStep {
		return cur - maxStep
	}
	return target
}
