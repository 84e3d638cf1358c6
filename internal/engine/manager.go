// Package engine drives chunk lifecycle: deciding which chunks the player
// needs, running generation and meshing on workers, and integrating their
// results back on the main thread.
//
// All Manager methods are main-thread only. Workers receive immutable
// inputs (a seed-fixed generator, frozen snapshots) and report back over
// buffered channels that Update drains once per frame, so no lock is ever
// held across frame boundaries.
package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"govoxel/internal/block"
	"govoxel/internal/coord"
	"govoxel/internal/mesh"
	"govoxel/internal/world"
	"govoxel/internal/worldgen"
)

// MeshSink receives finished chunk meshes. The render queue implements it;
// tests substitute their own.
type MeshSink interface {
	Upsert(pos coord.ChunkPos, m *mesh.Mesh)
	Remove(pos coord.ChunkPos)
}

// Options configures a Manager.
type Options struct {
	// Radius is the load distance in columns. A column is required when
	// its squared Euclidean distance to the player's column is at most
	// Radius squared.
	Radius int32
	// BottomChunkY and TopChunkY bound the vertical chunk range of every
	// loaded column, inclusive.
	BottomChunkY, TopChunkY int32
	// Workers bounds concurrently running generation and mesh jobs.
	Workers int64
	Log     *slog.Logger
}

type chunkState uint8

const (
	stateLoading chunkState = iota
	stateGenerated
	stateMeshed
)

// entry tracks one chunk through its lifecycle. meshInFlight marks a mesh
// job running for the coordinate; remeshPending coalesces every edit that
// arrives meanwhile into a single follow-up build. The epoch ties worker
// results to one tenancy of the coordinate: a result from before an
// eviction carries a stale epoch and is dropped even when the chunk has
// since been re-tracked.
type entry struct {
	state         chunkState
	epoch         uint64
	meshInFlight  bool
	remeshPending bool
}

type genResult struct {
	chunk *world.Chunk
	epoch uint64
}

type meshResult struct {
	pos   coord.ChunkPos
	m     *mesh.Mesh
	epoch uint64
}

// Manager owns the chunk lifecycle around a moving player.
type Manager struct {
	opts Options
	grid *world.Grid
	gen  *worldgen.Generator
	sink MeshSink
	log  *slog.Logger

	entries map[coord.ChunkPos]*entry
	genCh   chan genResult
	meshCh  chan meshResult
	sem     *semaphore.Weighted
	ctx     context.Context
	cancel  context.CancelFunc

	center    coord.ColumnPos
	hasCenter bool
	nextEpoch uint64
}

func New(grid *world.Grid, gen *worldgen.Generator, sink MeshSink, opts Options) *Manager {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	columns := len(RequiredColumns(coord.ColumnPos{}, opts.Radius))
	depth := columns * int(opts.TopChunkY-opts.BottomChunkY+1)
	return &Manager{
		opts:    opts,
		grid:    grid,
		gen:     gen,
		sink:    sink,
		log:     log,
		entries: make(map[coord.ChunkPos]*entry),
		genCh:   make(chan genResult, depth),
		meshCh:  make(chan meshResult, depth),
		sem:     semaphore.NewWeighted(opts.Workers),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Close stops accepting new work and releases waiting workers.
func (m *Manager) Close() {
	m.cancel()
}

// Update advances the lifecycle for one frame. It reconciles the loaded
// set when the player's column changed since the last call, then
// integrates every finished worker result without blocking.
func (m *Manager) Update(wx, wz int32) {
	col := coord.ColumnAt(wx, wz)
	if !m.hasCenter || col != m.center {
		m.hasCenter = true
		m.center = col
		m.reconcile()
	}
	m.drain()
}

// Block reads a block at a world position. Unloaded regions read as air.
func (m *Manager) Block(wx, wy, wz int32) block.ID {
	return m.grid.Block(wx, wy, wz)
}

// SetBlock applies a player edit and queues rebuilds for every mesh whose
// geometry or occlusion the edit can touch. Edits into unloaded chunks are
// dropped; it reports whether the edit landed.
func (m *Manager) SetBlock(wx, wy, wz int32, id block.ID) bool {
	if !m.grid.SetBlock(wx, wy, wz, id) {
		m.log.Debug("edit outside loaded world dropped", "x", wx, "y", wy, "z", wz)
		return false
	}
	// A one-block halo: border edits change culling and occlusion in
	// face- and corner-adjacent chunks.
	seen := make(map[coord.ChunkPos]struct{}, 8)
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				pos := coord.ChunkAt(wx+dx, wy+dy, wz+dz)
				if _, dup := seen[pos]; dup {
					continue
				}
				seen[pos] = struct{}{}
				if e := m.entries[pos]; e != nil && e.state != stateLoading {
					m.scheduleMesh(pos)
				}
			}
		}
	}
	return true
}

// InFlight returns the number of chunks with a generation or mesh job
// outstanding. Zero means the pipeline is quiescent.
func (m *Manager) InFlight() int {
	n := 0
	for _, e := range m.entries {
		if e.state == stateLoading || e.meshInFlight {
			n++
		}
	}
	return n
}

// Tracked returns the number of chunks under lifecycle management.
func (m *Manager) Tracked() int {
	return len(m.entries)
}

// reconcile aligns the tracked set with the player's column: missing
// required chunks start loading, chunks beyond the eviction radius are
// dropped. The eviction radius sits one column past the load radius so a
// player oscillating on a boundary does not thrash.
func (m *Manager) reconcile() {
	for _, col := range RequiredColumns(m.center, m.opts.Radius) {
		for cy := m.opts.BottomChunkY; cy <= m.opts.TopChunkY; cy++ {
			pos := coord.ChunkPos{X: col.X, Y: cy, Z: col.Z}
			if _, ok := m.entries[pos]; ok {
				continue
			}
			m.nextEpoch++
			e := &entry{state: stateLoading, epoch: m.nextEpoch}
			m.entries[pos] = e
			m.submitGen(pos, e.epoch)
		}
	}

	evictSq := int64(m.opts.Radius+1) * int64(m.opts.Radius+1)
	for pos := range m.entries {
		if pos.Column().DistSq(m.center) > evictSq {
			delete(m.entries, pos)
			m.grid.Remove(pos)
			m.sink.Remove(pos)
		}
	}
}

// drain integrates finished results without blocking. Results for chunks
// evicted since submission carry a coordinate that is no longer tracked
// and are discarded here.
func (m *Manager) drain() {
	for {
		select {
		case r := <-m.genCh:
			m.handleGen(r)
		case r := <-m.meshCh:
			m.handleMesh(r)
		default:
			return
		}
	}
}

func (m *Manager) handleGen(r genResult) {
	e, ok := m.entries[r.chunk.Pos]
	if !ok || e.epoch != r.epoch || e.state != stateLoading {
		m.log.Debug("stale generation result dropped", "pos", r.chunk.Pos)
		return
	}
	m.grid.Put(r.chunk)
	e.state = stateGenerated
	m.scheduleMesh(r.chunk.Pos)

	// Neighbors meshed against this gap assumed air; rebuild them so the
	// seam heals.
	for _, d := range [6][3]int32{
		{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1},
	} {
		npos := coord.ChunkPos{X: r.chunk.Pos.X + d[0], Y: r.chunk.Pos.Y + d[1], Z: r.chunk.Pos.Z + d[2]}
		if ne := m.entries[npos]; ne != nil && (ne.state == stateMeshed || ne.meshInFlight) {
			m.scheduleMesh(npos)
		}
	}
}

func (m *Manager) handleMesh(r meshResult) {
	e, ok := m.entries[r.pos]
	if !ok || e.epoch != r.epoch {
		return
	}
	e.meshInFlight = false
	e.state = stateMeshed
	m.sink.Upsert(r.pos, r.m)
	if e.remeshPending {
		e.remeshPending = false
		m.scheduleMesh(r.pos)
	}
}

// scheduleMesh requests a rebuild for a generated chunk. With a build
// already in flight it only flags a follow-up; any number of requests in
// that window collapse into one rebuild against the final block state.
func (m *Manager) scheduleMesh(pos coord.ChunkPos) {
	e := m.entries[pos]
	if e == nil || e.state == stateLoading {
		return
	}
	if e.meshInFlight {
		e.remeshPending = true
		return
	}
	e.meshInFlight = true
	snap := mesh.Capture(pos, m.grid.NeighborhoodReader(pos))
	m.submitMesh(snap, e.epoch)
}

func (m *Manager) submitGen(pos coord.ChunkPos, epoch uint64) {
	go func() {
		if err := m.sem.Acquire(m.ctx, 1); err != nil {
			return
		}
		defer m.sem.Release(1)
		c := m.gen.Generate(pos)
		select {
		case m.genCh <- genResult{chunk: c, epoch: epoch}:
		case <-m.ctx.Done():
		}
	}()
}

func (m *Manager) submitMesh(snap *mesh.Snapshot, epoch uint64) {
	go func() {
		if err := m.sem.Acquire(m.ctx, 1); err != nil {
			return
		}
		defer m.sem.Release(1)
		built := mesh.Build(snap)
		select {
		case m.meshCh <- meshResult{pos: snap.Pos(), m: built, epoch: epoch}:
		case <-m.ctx.Done():
		}
	}()
}
