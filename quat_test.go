package arcball

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func assertVecNear(t *testing.T, want, got r3.Vec, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "X")
	assert.InDelta(t, want.Y, got.Y, eps, "Y")
	assert.InDelta(t, want.Z, got.Z, eps, "Z")
}

func TestAxisAngleRotates(t *testing.T) {
	r := AxisAngle(r3.Vec{Y: 1}, math.Pi/2)
	assertVecNear(t, r3.Vec{X: 1}, r.Rotate(r3.Vec{Z: 1}), 1e-12)
	assert.InDelta(t, math.Pi/2, Angle(r), 1e-12)
	assert.InDelta(t, 1, Norm(r), 1e-12)
}

func TestComposeAppliesRightFirst(t *testing.T) {
	a := AxisAngle(r3.Vec{Z: 1}, math.Pi/2) // x -> y
	b := AxisAngle(r3.Vec{Y: 1}, math.Pi/2) // z -> x

	got := Compose(a, b).Rotate(r3.Vec{Z: 1})
	assertVecNear(t, r3.Vec{Y: 1}, got, 1e-12)
}

func TestConjugateInverts(t *testing.T) {
	r := AxisAngle(r3.Unit(r3.Vec{X: 1, Y: 2, Z: 3}), 1.1)
	v := r3.Vec{X: 0.3, Y: -2, Z: 5}
	assertVecNear(t, v, Conjugate(r).Rotate(r.Rotate(v)), 1e-12)
	assert.InDelta(t, 0, Angle(Compose(r, Conjugate(r))), 1e-12)
}

func TestSlerp(t *testing.T) {
	axis := r3.Vec{X: 1}
	a := Identity
	b := AxisAngle(axis, 1.2)

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, 0},
		{"quarter", 0.25, 0.3},
		{"half", 0.5, 0.6},
		{"end", 1, 1.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slerp(a, b, tt.t)
			assert.InDelta(t, 1, Norm(got), 1e-12)
			assert.InDelta(t, tt.want, Angle(got), 1e-12)
		})
	}
}

func TestSlerpTakesShortestPath(t *testing.T) {
	a := Identity
	// -b is the same rotation as b; slerp must not go the long way round.
	b := AxisAngle(r3.Vec{Y: 1}, 0.4)
	negB := r3.Rotation{Real: -b.Real, Imag: -b.Imag, Jmag: -b.Jmag, Kmag: -b.Kmag}

	got := Slerp(a, negB, 0.5)
	assert.InDelta(t, 0.2, AngleBetween(Identity, got), 1e-12)
}

func TestSlerpNearlyEqualFallsBackToLerp(t *testing.T) {
	a := AxisAngle(r3.Vec{Z: 1}, 1e-5)
	b := AxisAngle(r3.Vec{Z: 1}, 2e-5)
	got := Normalize(Slerp(a, b, 0.5))
	assert.True(t, isFinite(got))
	assert.InDelta(t, 1.5e-5, Angle(got), 1e-12)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   r3.Rotation
		want r3.Rotation
	}{
		{"scaled identity", r3.Rotation{Real: 2}, Identity},
		{"zero", r3.Rotation{}, Identity},
		{"nan", r3.Rotation{Real: math.NaN()}, Identity},
		{"inf", r3.Rotation{Imag: math.Inf(-1)}, Identity},
		{"vector", r3.Rotation{Jmag: -2}, r3.Rotation{Jmag: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestAngleSmallRotations(t *testing.T) {
	for _, a := range []float64{1e-3, 1e-6, 1e-9, 1e-12} {
		r := AxisAngle(r3.Vec{X: 1}, a)
		assert.InEpsilon(t, a, Angle(r), 1e-9, "angle %g", a)
	}
}

func TestAngleBetweenIgnoresSign(t *testing.T) {
	a := AxisAngle(r3.Vec{X: 1}, 0.7)
	b := AxisAngle(r3.Vec{X: 1}, 0.2)
	negB := r3.Rotation{Real: -b.Real, Imag: -b.Imag, Jmag: -b.Jmag, Kmag: -b.Kmag}
	assert.InDelta(t, 0.5, AngleBetween(a, b), 1e-12)
	assert.InDelta(t, 0.5, AngleBetween(a, negB), 1e-12)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, isFinite(Identity))
	assert.False(t, isFinite(r3.Rotation{Kmag: math.NaN()}))
	assert.True(t, vecFinite(r3.Vec{X: 1}))
	assert.False(t, vecFinite(r3.Vec{Z: math.Inf(1)}))
}
