package core

import (
	"math/rand"
	"testing"
)

func TestAABBOverlaps(t *testing.T) {
	unit := Size{W: 1, H: 1, D: 1}

	tests := []struct {
		name     string
		a, b     AABB
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        BoxAround(Vec3{}, unit),
			b:        BoxAround(Vec3{X: 0.5, Y: 0.5, Z: 0.5}, unit),
			expected: true,
		},
		{
			name:     "separated on x",
			a:        BoxAround(Vec3{}, unit),
			b:        BoxAround(Vec3{X: 2}, unit),
			expected: false,
		},
		{
			name:     "separated on y",
			a:        BoxAround(Vec3{}, unit),
			b:        BoxAround(Vec3{Y: 2}, unit),
			expected: false,
		},
		{
			name:     "separated on z",
			a:        BoxAround(Vec3{}, unit),
			b:        BoxAround(Vec3{Z: -2}, unit),
			expected: false,
		},
		{
			name:     "touching faces overlap",
			a:        BoxAround(Vec3{}, unit),
			b:        BoxAround(Vec3{X: 1}, unit),
			expected: true,
		},
		{
			name:     "contained box",
			a:        BoxAround(Vec3{}, Size{W: 4, H: 4, D: 4}),
			b:        BoxAround(Vec3{X: 0.5}, unit),
			expected: true,
		},
		{
			name:     "elevated box clears a low one",
			a:        BoxOnFloor(Vec3{}, Size{W: 0.8, H: 0.5, D: 0.8}, 0),
			b:        BoxOnFloor(Vec3{}, Size{W: 3, H: 2.5, D: 0.5}, 1),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestAABBOverlapsSymmetricRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	randBox := func() AABB {
		pos := Vec3{X: rng.Float64()*10 - 5, Y: rng.Float64() * 3, Z: rng.Float64()*10 - 5}
		size := Size{W: rng.Float64() * 3, H: rng.Float64() * 3, D: rng.Float64() * 3}
		return BoxOnFloor(pos, size, 0)
	}

	for i := 0; i < 2000; i++ {
		a, b := randBox(), randBox()
		if a.Overlaps(b) != b.Overlaps(a) {
			t.Fatalf("asymmetric overlap for %+v and %+v", a, b)
		}
	}
}

func TestBoxOnFloor(t *testing.T) {
	b := BoxOnFloor(Vec3{X: 2.5, Y: 0, Z: -10}, Size{W: 3, H: 2.5, D: 0.5}, 1)

	if b.Min.Y != 1 || b.Max.Y != 3.5 {
		t.Errorf("vertical extent = [%v, %v], expected [1, 3.5]", b.Min.Y, b.Max.Y)
	}
	if b.Min.X != 1 || b.Max.X != 4 {
		t.Errorf("horizontal extent = [%v, %v], expected [1, 4]", b.Min.X, b.Max.X)
	}
	if b.Min.Z != -10.25 || b.Max.Z != -9.75 {
		t.Errorf("depth extent = [%v, %v], expected [-10.25, -9.75]", b.Min.Z, b.Max.Z)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}
}

func TestMoveToward(t *testing.T) {
	tests := []struct {
		cur, target, step, expected float64
	}{
		{0, 2.5, 1, 1},
		{0, 2.5, 5, 2.5}, // never overshoots
		{0, -2.5, 1, -1},
		{-2.5, 0, 3, 0},
		{1, 1, 1, 1},
	}

	for _, tc := range tests {
		if got := MoveToward(tc.cur, tc.target, tc.step); got != tc.expected {
			t.Errorf("MoveToward(%v, %v, %v) = %v, expected %v", tc.cur, tc.target, tc.step, got, tc.expected)
		}
	}
}
