package splat

import (
	"bufio"
	"fmt"
	"io"
)

// WritePLY writes the cloud to w in the binary little-endian PLY
// point-cloud dialect used by Gaussian Splatting tools: position,
// placeholder normals, uint8 color, opacity, per-axis scale, and the
// (w, x, y, z) rotation quaternion per vertex.
func (c *Cloud) WritePLY(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ply\n")
	fmt.Fprintf(bw, "format binary_little_endian 1.0\n")
	fmt.Fprintf(bw, "element vertex %d\n", c.Len())
	for _, prop := range []string{
		"float x", "float y", "float z",
		"float nx", "float ny", "float nz",
		"uchar red", "uchar green", "uchar blue",
		"float opacity",
		"float scale_0", "float scale_1", "float scale_2",
		"float rot_0", "float rot_1", "float rot_2", "float rot_3",
	} {
		fmt.Fprintf(bw, "property %s\n", prop)
	}
	fmt.Fprintf(bw, "end_header\n")

	var rec [4]byte
	writeF32 := func(v float32) {
		putF32(rec[:], v)
		bw.Write(rec[:])
	}

	for i := 0; i < c.Len(); i++ {
		p := c.Positions[i]
		writeF32(p.X)
		writeF32(p.Y)
		writeF32(p.Z)

		// Normals are a placeholder required by downstream viewers.
		writeF32(0)
		writeF32(0)
		writeF32(0)

		col := c.Colors[i]
		bw.WriteByte(colorByte(col.X))
		bw.WriteByte(colorByte(col.Y))
		bw.WriteByte(colorByte(col.Z))

		writeF32(c.Opacities[i])

		s := c.Scales[i]
		writeF32(s.X)
		writeF32(s.Y)
		writeF32(s.Z)

		q := c.Rotations[i]
		writeF32(q.W)
		writeF32(q.X)
		writeF32(q.Y)
		writeF32(q.Z)
	}

	return bw.Flush()
}

// colorByte converts a [0, 1] channel to uint8, clamping out-of-range
// producer values instead of wrapping.
func colorByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v * 255)
}
