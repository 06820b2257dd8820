package runner

import "github.com/LandoCrissian/LAMMB-Runner/internal/core"

const (
	cameraHeight = 5.0
	cameraBack   = 10.0
	cameraEase   = 5.0 // fraction of the gap closed per second
)

// Camera is a follow camera behind and above the player. It only feeds
// the renderer.
type Camera struct {
	Pos  core.Vec3
	Look core.Vec3
}

// Reset snaps the camera behind p.
func (c *Camera) Reset(p core.Vec3) {
	c.Pos, c.Look = cameraTarget(p)
}

// Follow eases the camera toward its target behind p.
func (c *Camera) Follow(p core.Vec3, dt float64) {
	pos, look := cameraTarget(p)
	t := core.ClampF(cameraEase*dt, 0, 1)
	c.Pos = c.Pos.Lerp(pos, t)
	c.Look = c.Look.Lerp(look, t)
}

func cameraTarget(p core.Vec3) (pos, look core.Vec3) {
	pos = core.Vec3{X: p.X * 0.3, Y: cameraHeight + p.Y*0.3, Z: p.Z + cameraBack}
	look = core.Vec3{X: p.X * 0.5, Y: 1, Z: p.Z - cameraBack}
	return pos, look
}
