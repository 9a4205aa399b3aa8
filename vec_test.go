package render

import (
	"math"
	"testing"
)

const vecEpsilon = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < vecEpsilon &&
		math.Abs(a.Y-b.Y) < vecEpsilon &&
		math.Abs(a.Z-b.Z) < vecEpsilon
}

func TestVec3Length(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want float64
	}{
		{"zero", Vec3{}, 0},
		{"unit z", Vec3{Z: 1}, 1},
		{"pythagorean", Vec3{X: 3, Y: 4}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.Length(); math.Abs(got-tc.want) > vecEpsilon {
				t.Errorf("Length() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{X: 0, Y: 3, Z: 4}.Normalized()
	if math.Abs(v.Length()-1) > vecEpsilon {
		t.Errorf("normalized length = %v, want 1", v.Length())
	}
	if !vecNear(v, Vec3{Y: 0.6, Z: 0.8}) {
		t.Errorf("Normalized() = %v", v)
	}
}

func TestVec3Scaled(t *testing.T) {
	v := Vec3{X: 1, Y: -2, Z: 3}.Scaled(2)
	if !vecNear(v, Vec3{X: 2, Y: -4, Z: 6}) {
		t.Errorf("Scaled(2) = %v", v)
	}
}

func TestVec3RotatedY(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		angle float64
		want  Vec3
	}{
		{"quarter turn", Vec3{Z: 1}, math.Pi / 2, Vec3{X: 1}},
		{"half turn", Vec3{Z: 1}, math.Pi, Vec3{Z: -1}},
		{"full turn", Vec3{X: 0.5, Z: 0.5}, 2 * math.Pi, Vec3{X: 0.5, Z: 0.5}},
		{"y preserved", Vec3{X: 1, Y: 2, Z: 3}, 1.234, Vec3{Y: 2, X: 0, Z: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.RotatedY(tc.angle)
			if tc.name == "y preserved" {
				if math.Abs(got.Y-tc.want.Y) > vecEpsilon {
					t.Errorf("RotatedY changed Y: %v", got)
				}
				if math.Abs(got.Length()-tc.v.Length()) > vecEpsilon {
					t.Errorf("RotatedY changed length: %v vs %v", got.Length(), tc.v.Length())
				}
				return
			}
			if !vecNear(got, tc.want) {
				t.Errorf("RotatedY(%v) = %v, want %v", tc.angle, got, tc.want)
			}
		})
	}
}
