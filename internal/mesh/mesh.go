package mesh

// VertexStride is the number of float32 components per vertex:
// position x3, texture coordinates x2, normal x3, ambient occlusion x1.
const VertexStride = 9

// VertsPerFace and IndicesPerFace describe the indexed-quad layout:
// four shared vertices and two triangles per visible face.
const (
	VertsPerFace   = 4
	IndicesPerFace = 6
)

// Mesh is the CPU-side geometry of one chunk. Positions are chunk-local;
// the renderer translates by the chunk origin in the model matrix.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// FaceCount returns the number of visible block faces in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / IndicesPerFace
}

// Empty reports whether the mesh has no geometry. Empty meshes still flow
// through the pipeline so a chunk that loses its last visible face clears
// its GPU buffers.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}
