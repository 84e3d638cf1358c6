package render

import "github.com/go-gl/mathgl/mgl32"

// Frustum holds the six clip planes of a combined projection*view matrix.
// Plane normals point into the visible volume; W carries the plane offset.
type Frustum [6]mgl32.Vec4

// NewFrustum extracts the planes from m = projection * view.
func NewFrustum(m mgl32.Mat4) Frustum {
	r0 := m.Row(0)
	r1 := m.Row(1)
	r2 := m.Row(2)
	r3 := m.Row(3)

	f := Frustum{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	}
	for i, p := range f {
		n := p.Vec3().Len()
		if n > 0 {
			f[i] = p.Mul(1 / n)
		}
	}
	return f
}

// ContainsAABB reports whether the box intersects the frustum. The test is
// conservative: a box may pass for some corner cases outside the volume,
// but a visible box never fails.
func (f Frustum) ContainsAABB(min, max mgl32.Vec3) bool {
	for _, p := range f {
		// Farthest corner along the plane normal.
		v := mgl32.Vec3{min.X(), min.Y(), min.Z()}
		if p.X() >= 0 {
			v[0] = max.X()
		}
		if p.Y() >= 0 {
			v[1] = max.Y()
		}
		if p.Z() >= 0 {
			v[2] = max.Z()
		}
		if p.X()*v.X()+p.Y()*v.Y()+p.Z()*v.Z()+p.W() < 0 {
			return false
		}
	}
	return true
}
