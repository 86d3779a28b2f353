package vec

import (
	"testing"
)

var (
	NULL = Vec3{}
)

func TestLength(t *testing.T) {
	if NULL.Length() != 0 {
		t.Errorf("Null vector has not 0 length")
	}
	v := Vec3{2, 2, 1}
	if v.Length() != 3 {
		t.Errorf("%v Length is not 3", v)
	}
}

func TestAdd(t *testing.T) {
	v := Vec3{1, 2, 3}
	got := Add(v, v)
	want := Vec3{2, 4, 6}
	if !Equal(got, want) {
		t.Errorf("Add(%v,%v) = %v want %v", v, v, got, want)
	}
}

func TestSub(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := Sub(v, v); !Equal(got, NULL) {
		t.Errorf("Sub(%v,%v) = %v want %v", v, v, got, NULL)
	}
}

func TestDot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got := Dot(a, b); got != 32 {
		t.Errorf("Dot(%v,%v) = %v want 32", a, b, got)
	}
	if got := DoublePrecDot(a, b); got != 32 {
		t.Errorf("DoublePrecDot(%v,%v) = %v want 32", a, b, got)
	}
}

func TestCross(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	want := Vec3{0, 0, 1}
	if got := Cross(a, b); !Equal(got, want) {
		t.Errorf("Cross(%v,%v) = %v want %v", a, b, got, want)
	}
}

func TestMinMax(t *testing.T) {
	a := Vec3{1, 5, 3}
	b := Vec3{2, 4, 0}
	min, max := MinMax(a, b)
	if !Equal(min, Vec3{1, 4, 0}) || !Equal(max, Vec3{2, 5, 3}) {
		t.Errorf("MinMax(%v,%v) = %v,%v", a, b, min, max)
	}
}
