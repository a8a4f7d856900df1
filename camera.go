package splat

import "github.com/gogpu/splat/math32"

// Camera is an orbit camera: it circles a target point at a given
// distance, parameterized by azimuth and elevation in degrees. It
// produces the view-projection matrix and world position that make up
// the per-frame uniform state.
//
// Camera is not safe for concurrent mutation; the host updates it once
// per frame and publishes derived uniforms to the renderer.
type Camera struct {
	Position math32.Vector3
	Target   math32.Vector3
	Up       math32.Vector3

	Distance  float32
	Azimuth   float32 // degrees
	Elevation float32 // degrees, clamped to (-90, 90)

	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewCamera creates an orbit camera around target at the given distance,
// with the conventional defaults (50 degree FOV, 0.1/100 clip planes).
func NewCamera(target math32.Vector3, distance float32) *Camera {
	c := &Camera{
		Target:   target,
		Up:       math32.V3(0, 1, 0),
		Distance: distance,
		FOV:      50,
		Aspect:   16.0 / 9.0,
		Near:     0.1,
		Far:      100,
	}
	c.updatePosition()
	return c
}

// updatePosition recomputes the world position from the orbit parameters.
func (c *Camera) updatePosition() {
	az := math32.DegToRad(c.Azimuth)
	el := math32.DegToRad(c.Elevation)

	x := c.Distance * math32.Cos(el) * math32.Sin(az)
	y := c.Distance * math32.Sin(el)
	z := c.Distance * math32.Cos(el) * math32.Cos(az)
	c.Position = c.Target.Add(math32.V3(x, y, z))
}

// Rotate orbits the camera by the given azimuth/elevation deltas in
// degrees. Elevation is clamped short of the poles to keep the view
// matrix well defined.
func (c *Camera) Rotate(deltaAzimuth, deltaElevation float32) {
	c.Azimuth += deltaAzimuth
	c.Elevation = math32.Clamp(c.Elevation+deltaElevation, -89, 89)
	c.updatePosition()
}

// Zoom moves the camera along the view axis. Distance is floored at
// 0.1 so the camera never lands exactly on the target.
func (c *Camera) Zoom(delta float32) {
	c.Distance = math32.Max(c.Distance+delta, 0.1)
	c.updatePosition()
}

// Pan translates the orbit target in the camera's screen plane.
func (c *Camera) Pan(deltaX, deltaY float32) {
	forward := c.Target.Sub(c.Position).Normal()
	right := forward.Cross(c.Up).Normal()
	up := right.Cross(forward)

	c.Target = c.Target.Add(right.MulScalar(deltaX)).Add(up.MulScalar(deltaY))
	c.updatePosition()
}

// ViewMatrix returns the right-handed look-at view matrix.
func (c *Camera) ViewMatrix() math32.Matrix4 {
	return math32.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the right-handed perspective projection.
func (c *Camera) ProjectionMatrix() math32.Matrix4 {
	return math32.Perspective(math32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view, the matrix applied to
// world-space splat centers by the vertex stage.
func (c *Camera) ViewProjection() math32.Matrix4 {
	return c.ProjectionMatrix().MulMatrix4(c.ViewMatrix())
}
