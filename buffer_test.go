package splat

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/splat/math32"
)

func TestBuffer_RoundTrip(t *testing.T) {
	c := NewCloud()
	c.Add(Splat{
		Position: math32.V3(1, 2, 3),
		Color:    math32.V3(0.25, 0.5, 0.75),
		Opacity:  0.9,
		Scale:    math32.V3(0.1, 0.2, 0.3),
		Rotation: math32.Quat{W: 0.5, X: 0.5, Y: 0.5, Z: 0.5},
	})
	c.Add(testSplat(-4, 0, 12))

	buf := c.AppendBuffer(nil)
	if len(buf) != 2*RecordStride {
		t.Fatalf("buffer length = %d, want %d", len(buf), 2*RecordStride)
	}

	got, err := DecodeBuffer(buf)
	if err != nil {
		t.Fatalf("DecodeBuffer: %v", err)
	}
	if got.Len() != c.Len() {
		t.Fatalf("decoded Len() = %d, want %d", got.Len(), c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if got.At(i) != c.At(i) {
			t.Errorf("splat %d = %+v, want %+v", i, got.At(i), c.At(i))
		}
	}
}

func TestBuffer_FieldOrder(t *testing.T) {
	// The wire layout is position, color, opacity, scale, rotation, and
	// the quaternion is stored (w, x, y, z).
	c := NewCloud()
	c.Add(Splat{
		Position: math32.V3(10, 11, 12),
		Color:    math32.V3(0.1, 0.2, 0.3),
		Opacity:  0.4,
		Scale:    math32.V3(20, 21, 22),
		Rotation: math32.Quat{W: 30, X: 31, Y: 32, Z: 33},
	})
	buf := c.AppendBuffer(nil)

	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	want := []float32{10, 11, 12, 0.1, 0.2, 0.3, 0.4, 20, 21, 22, 30, 31, 32, 33}
	for i, w := range want {
		if at(i) != w {
			t.Errorf("float %d = %v, want %v", i, at(i), w)
		}
	}
}

func TestDecodeBuffer_Truncated(t *testing.T) {
	if _, err := DecodeBuffer(make([]byte, RecordStride-1)); err == nil {
		t.Error("DecodeBuffer accepted a truncated record")
	}
	if c, err := DecodeBuffer(nil); err != nil || c.Len() != 0 {
		t.Errorf("DecodeBuffer(nil) = (%v, %v), want empty cloud", c, err)
	}
}
