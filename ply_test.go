package splat

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/splat/math32"
)

func TestWritePLY_Header(t *testing.T) {
	c := NewCloud()
	c.Add(testSplat(0, 0, 0))
	c.Add(testSplat(1, 1, 1))

	var buf bytes.Buffer
	if err := c.WritePLY(&buf); err != nil {
		t.Fatalf("WritePLY: %v", err)
	}

	header, _, ok := strings.Cut(buf.String(), "end_header\n")
	if !ok {
		t.Fatal("missing end_header")
	}
	for _, want := range []string{
		"ply\n",
		"format binary_little_endian 1.0\n",
		"element vertex 2\n",
		"property float x\n",
		"property uchar red\n",
		"property float opacity\n",
		"property float scale_2\n",
		"property float rot_3\n",
	} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestWritePLY_VertexRecord(t *testing.T) {
	c := NewCloud()
	c.Add(Splat{
		Position: math32.V3(1, 2, 3),
		Color:    math32.V3(1, 0, 0.5),
		Opacity:  0.75,
		Scale:    math32.V3(4, 5, 6),
		Rotation: math32.Quat{W: 0.7, X: 0.1, Y: 0.2, Z: 0.3},
	})

	var buf bytes.Buffer
	if err := c.WritePLY(&buf); err != nil {
		t.Fatalf("WritePLY: %v", err)
	}
	_, body, ok := bytes.Cut(buf.Bytes(), []byte("end_header\n"))
	if !ok {
		t.Fatal("missing end_header")
	}

	// 14 floats + 3 color bytes per vertex: position, normals,
	// opacity, scales, and the four rotation components.
	wantLen := 14*4 + 3
	if len(body) != wantLen {
		t.Fatalf("body length = %d, want %d", len(body), wantLen)
	}

	f32 := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(body[off:]))
	}
	if f32(0) != 1 || f32(4) != 2 || f32(8) != 3 {
		t.Errorf("position = (%v, %v, %v), want (1, 2, 3)", f32(0), f32(4), f32(8))
	}
	// Normals are zero placeholders.
	if f32(12) != 0 || f32(16) != 0 || f32(20) != 0 {
		t.Error("placeholder normals are not zero")
	}
	// Color clamps and quantizes to uint8.
	if body[24] != 255 || body[25] != 0 || body[26] != 127 {
		t.Errorf("color bytes = %v, want [255 0 127]", body[24:27])
	}
	if f32(27) != 0.75 {
		t.Errorf("opacity = %v, want 0.75", f32(27))
	}
	if f32(43) != 0.7 {
		t.Errorf("rot_0 (w) = %v, want 0.7", f32(43))
	}
}

func TestWritePLY_InvalidCloud(t *testing.T) {
	c := NewCloud()
	c.Positions = append(c.Positions, math32.V3(0, 0, 0))
	if err := c.WritePLY(&bytes.Buffer{}); err == nil {
		t.Error("WritePLY accepted an inconsistent cloud")
	}
}
