package mipmap

import (
	"testing"

	"go.viam.com/test"
)

func sumLevel(l Level) float64 {
	var s float64
	for _, v := range l.Data {
		s += v
	}
	return s
}

func TestBuildPreservesSum(t *testing.T) {
	w, h := 17, 13 // deliberately not a power of two
	data := make([]float64, w*h)
	for i := range data {
		data[i] = float64(i%5) + 0.25
	}
	p := Build(data, w, h, 1)

	want := sumLevel(p.Levels[0])
	for i, l := range p.Levels {
		got := sumLevel(l)
		test.That(t, got, test.ShouldAlmostEqual, want, 1e-6)
		_ = i
	}
}

func TestBuildTopLevelWithinMinSize(t *testing.T) {
	p := Build(make([]float64, 64*48), 64, 48, 4)
	top := p.Levels[len(p.Levels)-1]
	test.That(t, top.Width, test.ShouldBeLessThanOrEqualTo, 4)
	test.That(t, top.Height, test.ShouldBeLessThanOrEqualTo, 4)
	test.That(t, top.Width, test.ShouldBeGreaterThanOrEqualTo, 1)
}

func TestBuildSingleLevelWhenAlreadySmall(t *testing.T) {
	p := Build([]float64{1, 2, 3, 4}, 2, 2, 4)
	test.That(t, len(p.Levels), test.ShouldEqual, 1)
}
