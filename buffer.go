package splat

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/splat/math32"
)

// RecordStride is the byte stride of one splat record in the wire
// buffer layout shared with producers:
//
//	position: 3 x f32
//	color:    3 x f32, linear RGB in [0, 1]
//	opacity:  1 x f32 in [0, 1]
//	scale:    3 x f32, > 0
//	rotation: 4 x f32, (w, x, y, z) unit quaternion
//
// All fields are little-endian float32, 14 floats = 56 bytes total.
const RecordStride = 14 * 4

// AppendBuffer appends the cloud's splats to dst in the wire buffer
// layout and returns the extended slice.
func (c *Cloud) AppendBuffer(dst []byte) []byte {
	var rec [RecordStride]byte
	for i := range c.Positions {
		putVec3(rec[0:], c.Positions[i])
		putVec3(rec[12:], c.Colors[i])
		putF32(rec[24:], c.Opacities[i])
		putVec3(rec[28:], c.Scales[i])
		putF32(rec[40:], c.Rotations[i].W)
		putF32(rec[44:], c.Rotations[i].X)
		putF32(rec[48:], c.Rotations[i].Y)
		putF32(rec[52:], c.Rotations[i].Z)
		dst = append(dst, rec[:]...)
	}
	return dst
}

// DecodeBuffer parses a wire buffer produced by a splat generator into
// a Cloud. It fails only on truncated input; field values are taken as
// given, per the producer-validates contract.
func DecodeBuffer(buf []byte) (*Cloud, error) {
	if len(buf)%RecordStride != 0 {
		return nil, fmt.Errorf("splat: buffer length %d is not a multiple of record stride %d", len(buf), RecordStride)
	}
	n := len(buf) / RecordStride
	c := NewCloudCapacity(n)
	for i := 0; i < n; i++ {
		rec := buf[i*RecordStride:]
		c.Positions = append(c.Positions, getVec3(rec[0:]))
		c.Colors = append(c.Colors, getVec3(rec[12:]))
		c.Opacities = append(c.Opacities, getF32(rec[24:]))
		c.Scales = append(c.Scales, getVec3(rec[28:]))
		c.Rotations = append(c.Rotations, math32.Quat{
			W: getF32(rec[40:]),
			X: getF32(rec[44:]),
			Y: getF32(rec[48:]),
			Z: getF32(rec[52:]),
		})
	}
	return c, nil
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec3(b []byte, v math32.Vector3) {
	putF32(b[0:], v.X)
	putF32(b[4:], v.Y)
	putF32(b[8:], v.Z)
}

func getF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func getVec3(b []byte) math32.Vector3 {
	return math32.Vector3{X: getF32(b[0:]), Y: getF32(b[4:]), Z: getF32(b[8:])}
}
