package render

import (
	"sort"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"govoxel/internal/coord"
	"govoxel/internal/mesh"
)

// chunkBuffers is the GPU side of one chunk mesh.
type chunkBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Queue owns the GPU buffers of every uploaded chunk. New meshes park in a
// pending map; Upload moves at most uploadBudget of them to the GPU per
// frame, nearest chunks first, so a teleport or fresh spawn cannot stall a
// frame on buffer traffic.
type Queue struct {
	entries      map[coord.ChunkPos]*chunkBuffers
	pending      map[coord.ChunkPos]*mesh.Mesh
	uploadBudget int
}

func NewQueue(uploadBudget int) *Queue {
	if uploadBudget < 1 {
		uploadBudget = 1
	}
	return &Queue{
		entries:      make(map[coord.ChunkPos]*chunkBuffers),
		pending:      make(map[coord.ChunkPos]*mesh.Mesh),
		uploadBudget: uploadBudget,
	}
}

// Upsert replaces the mesh for a chunk. The old buffers keep drawing until
// the new mesh is uploaded, so a remeshing chunk never flickers.
func (q *Queue) Upsert(pos coord.ChunkPos, m *mesh.Mesh) {
	q.pending[pos] = m
}

// Remove frees everything held for a chunk.
func (q *Queue) Remove(pos coord.ChunkPos) {
	delete(q.pending, pos)
	if b, ok := q.entries[pos]; ok {
		deleteBuffers(b)
		delete(q.entries, pos)
	}
}

// PendingUploads returns the number of meshes waiting for GPU upload.
func (q *Queue) PendingUploads() int {
	return len(q.pending)
}

// Resident returns the number of chunks with live GPU buffers.
func (q *Queue) Resident() int {
	return len(q.entries)
}

// Upload pushes pending meshes to the GPU, nearest to eye first, stopping
// at the per-frame budget.
func (q *Queue) Upload(eye mgl32.Vec3) int {
	if len(q.pending) == 0 {
		return 0
	}
	order := make([]coord.ChunkPos, 0, len(q.pending))
	for pos := range q.pending {
		order = append(order, pos)
	}
	sort.Slice(order, func(i, j int) bool {
		return chunkDistSq(order[i], eye) < chunkDistSq(order[j], eye)
	})
	if len(order) > q.uploadBudget {
		order = order[:q.uploadBudget]
	}
	for _, pos := range order {
		q.upload(pos, q.pending[pos])
		delete(q.pending, pos)
	}
	return len(order)
}

func chunkDistSq(pos coord.ChunkPos, eye mgl32.Vec3) float32 {
	ox, oy, oz := pos.Origin()
	c := mgl32.Vec3{
		float32(ox) + coord.ChunkSize/2,
		float32(oy) + coord.ChunkSize/2,
		float32(oz) + coord.ChunkSize/2,
	}
	return c.Sub(eye).LenSqr()
}

func (q *Queue) upload(pos coord.ChunkPos, m *mesh.Mesh) {
	if old, ok := q.entries[pos]; ok {
		deleteBuffers(old)
		delete(q.entries, pos)
	}
	if m.Empty() {
		return
	}

	b := &chunkBuffers{indexCount: int32(len(m.Indices))}
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(m.Vertices), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 4*len(m.Indices), gl.Ptr(m.Indices), gl.STATIC_DRAW)

	const stride = int32(mesh.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, nil)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, uintptr(3*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, uintptr(5*4))
	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, uintptr(8*4))

	gl.BindVertexArray(0)
	q.entries[pos] = b
}

func deleteBuffers(b *chunkBuffers) {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
	gl.DeleteVertexArrays(1, &b.vao)
}

// Draw renders every uploaded chunk that intersects the frustum, farthest
// chunk first so blended faces composite over what lies behind them. The
// model matrix carries the chunk origin; geometry inside the buffers is
// chunk-local. Returns drawn and culled chunk counts.
func (q *Queue) Draw(frustum Frustum, modelLoc int32, eye mgl32.Vec3) (drawn, culled int) {
	visible := make([]coord.ChunkPos, 0, len(q.entries))
	for pos := range q.entries {
		ox, oy, oz := pos.Origin()
		min := mgl32.Vec3{float32(ox), float32(oy), float32(oz)}
		max := min.Add(mgl32.Vec3{coord.ChunkSize, coord.ChunkSize, coord.ChunkSize})
		if !frustum.ContainsAABB(min, max) {
			culled++
			continue
		}
		visible = append(visible, pos)
	}
	backToFront(visible, eye)
	for _, pos := range visible {
		b := q.entries[pos]
		ox, oy, oz := pos.Origin()
		model := mgl32.Translate3D(float32(ox), float32(oy), float32(oz))
		gl.UniformMatrix4fv(modelLoc, 1, false, &model[0])
		gl.BindVertexArray(b.vao)
		gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
		drawn++
	}
	gl.BindVertexArray(0)
	return drawn, culled
}

// backToFront orders chunks by descending eye distance, the order alpha
// blending needs.
func backToFront(positions []coord.ChunkPos, eye mgl32.Vec3) {
	sort.Slice(positions, func(i, j int) bool {
		return chunkDistSq(positions[i], eye) > chunkDistSq(positions[j], eye)
	})
}

// Free releases every GPU object the queue holds.
func (q *Queue) Free() {
	for pos, b := range q.entries {
		deleteBuffers(b)
		delete(q.entries, pos)
	}
	q.pending = make(map[coord.ChunkPos]*mesh.Mesh)
}
