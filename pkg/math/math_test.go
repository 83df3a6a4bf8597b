// pkg/math/math_test.go
// Copyright(c) 2024-2026 neuroview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestClamp(t *testing.T) {
	if c := Clamp(float32(50), 1, 5000); c != 50 {
		t.Errorf("Clamp(50) = %g, expected 50", c)
	}
	if c := Clamp(float32(0), 1, 5000); c != 1 {
		t.Errorf("Clamp(0) = %g, expected 1", c)
	}
	if c := Clamp(float32(1e6), 1, 5000); c != 5000 {
		t.Errorf("Clamp(1e6) = %g, expected 5000", c)
	}
}

func TestBox3Union(t *testing.T) {
	a := Box3{P0: [3]float32{0, 0, 0}, P1: [3]float32{1, 2, 3}}
	b := Box3{P0: [3]float32{-1, 1, 1}, P1: [3]float32{0.5, 5, 2}}

	u := Union3(a, b)
	if u.P0 != [3]float32{-1, 0, 0} || u.P1 != [3]float32{1, 5, 3} {
		t.Errorf("unexpected union %+v", u)
	}

	// Union with an empty box returns the other box unchanged.
	if u := Union3(EmptyBox3(), a); u != a {
		t.Errorf("union with empty box gave %+v", u)
	}
	if !EmptyBox3().IsEmpty() {
		t.Errorf("empty box is not empty")
	}
	if a.IsEmpty() {
		t.Errorf("non-empty box reported empty")
	}
}

func TestBox3Center(t *testing.T) {
	b := Box3{P0: [3]float32{-2, 0, 10}, P1: [3]float32{2, 4, 30}}
	if c := b.Center(); c != [3]float32{0, 2, 20} {
		t.Errorf("center %+v", c)
	}
	if l := b.Lens(); l != [3]float32{4, 4, 20} {
		t.Errorf("lens %+v", l)
	}
}

func TestBox3DegenerateAxes(t *testing.T) {
	full := Box3{P1: [3]float32{1, 1, 1}}
	if n := full.DegenerateAxes(1e-5); n != 0 {
		t.Errorf("full box: %d degenerate axes", n)
	}

	// A flattened surface has exactly one degenerate axis.
	flat := Box3{P1: [3]float32{1, 1, 1e-7}}
	if n := flat.DegenerateAxes(1e-5); n != 1 {
		t.Errorf("flat box: %d degenerate axes", n)
	}

	line := Box3{P1: [3]float32{1, 0, 0}}
	if n := line.DegenerateAxes(1e-5); n != 2 {
		t.Errorf("line box: %d degenerate axes", n)
	}
}

func TestAdjustAspect(t *testing.T) {
	// Wide viewport: x grows, y unchanged.
	x, y := AdjustAspect(10, 10, 200, 100)
	if x != 20 || y != 10 {
		t.Errorf("got %g x %g, expected 20 x 10", x, y)
	}

	// Tall viewport: y grows, x unchanged.
	x, y = AdjustAspect(10, 10, 100, 200)
	if x != 10 || y != 20 {
		t.Errorf("got %g x %g, expected 10 x 20", x, y)
	}

	// Matching aspect: unchanged.
	x, y = AdjustAspect(20, 10, 200, 100)
	if x != 20 || y != 10 {
		t.Errorf("got %g x %g, expected 20 x 10", x, y)
	}

	// The adjusted extents never shrink.
	for _, wh := range [][2]int{{100, 100}, {640, 480}, {480, 640}, {1, 1000}} {
		x, y := AdjustAspect(3, 7, wh[0], wh[1])
		if x < 3 || y < 7 {
			t.Errorf("%v: extents shrank to %g x %g", wh, x, y)
		}
	}
}

func TestVec3(t *testing.T) {
	if v := Add3f([3]float32{1, 2, 3}, [3]float32{4, 5, 6}); v != [3]float32{5, 7, 9} {
		t.Errorf("Add3f: %+v", v)
	}
	if l := Length3f([3]float32{3, 4, 0}); l != 5 {
		t.Errorf("Length3f: %g", l)
	}
	if c := Cross3f([3]float32{1, 0, 0}, [3]float32{0, 1, 0}); c != [3]float32{0, 0, 1} {
		t.Errorf("Cross3f: %+v", c)
	}
	n := Normalize3f([3]float32{0, 0, 10})
	if n != [3]float32{0, 0, 1} {
		t.Errorf("Normalize3f: %+v", n)
	}
}
