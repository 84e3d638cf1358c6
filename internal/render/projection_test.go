package render

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectionMatchesFramebufferAspect(t *testing.T) {
	want := mgl32.Perspective(mgl32.DegToRad(70), 1600.0/900.0, 0.1, 200)
	if got := Projection(70, 1600, 900, 200); got != want {
		t.Fatalf("got %v, want %v", got, want)
	}
	if Projection(70, 1920, 1080, 200) == Projection(70, 1080, 1920, 200) {
		t.Fatal("projection ignores the framebuffer aspect")
	}
}

func TestProjectionZeroHeightStaysFinite(t *testing.T) {
	got := Projection(70, 800, 0, 200)
	for i, v := range got {
		if v != v {
			t.Fatalf("element %d is NaN", i)
		}
	}
}

// A resize changes which chunks sit inside the view: a box off to the side
// is visible through a wide framebuffer and culled through a tall one.
func TestProjectionResizeChangesFrustum(t *testing.T) {
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	min := mgl32.Vec3{5.5, -0.5, -10.5}
	max := mgl32.Vec3{6.5, 0.5, -9.5}

	wide := NewFrustum(Projection(70, 1920, 1080, 200).Mul4(view))
	if !wide.ContainsAABB(min, max) {
		t.Fatal("side box culled through the wide framebuffer")
	}
	tall := NewFrustum(Projection(70, 1080, 1920, 200).Mul4(view))
	if tall.ContainsAABB(min, max) {
		t.Fatal("side box visible through the tall framebuffer")
	}
}
