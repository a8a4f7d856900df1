package shading

import (
	"github.com/gogpu/splat"
	"github.com/gogpu/splat/math32"
)

// Vertex is the vertex stage output for one splat: the clip-space
// center, the pass-through attributes the fragment stage interpolates,
// and the derived screen-space point size. It is scoped to one draw
// invocation and carries no state across frames or splats.
type Vertex struct {
	ClipPos   math32.Vector4
	Color     math32.Vector3
	Opacity   float32
	Scale     math32.Vector3
	Rotation  math32.Quat
	PointSize float32
}

// PointSize derives a clamped screen-space point size from camera
// distance and splat scale:
//
//	dist = |pos - cameraPos|
//	size = clamp(mean(scale) * SizeGain / max(dist, MinDist), MinSize, MaxSize)
//
// The MinDist floor guarantees no division by zero when camera and
// splat coincide. This is a deliberately cheap stand-in for projecting
// the covariance ellipsoid; see ModeAnisotropic for the exact path.
func PointSize(pos, scale, cameraPos math32.Vector3, p *splat.Profile) float32 {
	dist := pos.DistanceTo(cameraPos)
	avgScale := (scale.X + scale.Y + scale.Z) / 3
	raw := avgScale * p.SizeGain / math32.Max(dist, p.MinDist)
	return math32.Clamp(raw, p.MinSize, p.MaxSize)
}

// TransformVertex runs the vertex stage for one splat: clip-space
// position from the view-projection matrix, attribute pass-through,
// and the size model. There is no failure path; a malformed matrix or
// vector produces a geometrically wrong but non-crashing result (NaNs
// propagate to pixels, they do not panic).
func TransformVertex(s splat.Splat, u *Uniforms, p *splat.Profile) Vertex {
	pos := s.Position
	return Vertex{
		ClipPos:   u.ViewProj.MulVector4(math32.V4(pos.X, pos.Y, pos.Z, 1)),
		Color:     s.Color,
		Opacity:   s.Opacity,
		Scale:     s.Scale,
		Rotation:  s.Rotation,
		PointSize: PointSize(pos, s.Scale, u.CameraPos, p),
	}
}
