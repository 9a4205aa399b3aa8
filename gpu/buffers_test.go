package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/duskhall/render"
)

func TestColorBufferSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          uint64
	}{
		{"classic", 320, 200, 256000},
		{"single pixel", 1, 1, 4},
		{"tall", 2, 1000, 8000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := colorBufferSize(tc.width, tc.height); got != tc.want {
				t.Errorf("colorBufferSize(%d, %d) = %d, want %d",
					tc.width, tc.height, got, tc.want)
			}
		})
	}
}

// The direction buffer allocates a full 16-byte lane but only 12 bytes
// of it are live data.
func TestDirectionBufferSizes(t *testing.T) {
	if directionBufferSize != 16 {
		t.Errorf("directionBufferSize = %d, want 16", directionBufferSize)
	}
	if directionDataSize != 12 {
		t.Errorf("directionDataSize = %d, want 12", directionDataSize)
	}
}

func TestPackDirection(t *testing.T) {
	dir := render.Vec3{X: 1.0, Y: -0.5, Z: 0.25}
	packed := packDirection(dir)

	want := []float32{1.0, -0.5, 0.25}
	for i, w := range want {
		got := math.Float32frombits(binary.LittleEndian.Uint32(packed[i*4:]))
		if got != w {
			t.Errorf("lane %d = %v, want %v", i, got, w)
		}
	}
}

func TestPackDirectionPrecisionNarrowing(t *testing.T) {
	// float64 components narrow to float32 lanes.
	dir := render.Vec3{X: math.Pi, Y: 0, Z: 0}
	packed := packDirection(dir)

	got := math.Float32frombits(binary.LittleEndian.Uint32(packed[0:]))
	if got != float32(math.Pi) {
		t.Errorf("lane 0 = %v, want %v", got, float32(math.Pi))
	}
}
